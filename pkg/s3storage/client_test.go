package s3storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/customini/pkg/config"
)

func TestNew_RequiresEndpointAndBucket(t *testing.T) {
	_, err := New(config.S3Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)

	_, err = New(config.S3Config{Bucket: "mods"})
	assert.Error(t, err)
}

func TestNew_NoNetworkAtCreation(t *testing.T) {
	c, err := New(config.S3Config{Endpoint: "localhost:9000", Bucket: "mods"})
	require.NoError(t, err)
	assert.Equal(t, "mods", c.bucket)
}

func TestIsNotFound(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", Key: "extra.ini"}

	assert.False(t, IsNotFound(nil))
	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(fmt.Errorf("s3: read extra.ini: %w", notFound)))
	assert.False(t, IsNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, IsNotFound(errors.New("connection refused")))
}
