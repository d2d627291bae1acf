package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/customini/pkg/s3storage"
)

type fakeS3 struct {
	objects []s3storage.StoredObject
	err     error
	prefix  string
}

func (f *fakeS3) ListFiles(_ context.Context, prefix string) ([]s3storage.StoredObject, error) {
	f.prefix = prefix
	return f.objects, f.err
}

func (f *fakeS3) DownloadFile(context.Context, string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func TestDirLister_ListsOnlyTopLevelFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"IconTag.ba2", "b.txt", "SeventySix - Main.ba2"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o644))
	}
	nested := filepath.Join(root, "Nested.ba2")
	require.NoError(t, os.Mkdir(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "Deep.ba2"), nil, 0o644))

	names, err := DirLister{Root: root}.List(context.Background())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"IconTag.ba2", "b.txt", "SeventySix - Main.ba2"}, names)
}

func TestDirLister_MissingRoot(t *testing.T) {
	_, err := DirLister{Root: filepath.Join(t.TempDir(), "absent")}.List(context.Background())

	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestDirLister_RootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := DirLister{Root: file}.List(context.Background())

	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestDirLister_EmptyRoot(t *testing.T) {
	names, err := DirLister{Root: t.TempDir()}.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestS3Lister_BaseNames(t *testing.T) {
	fake := &fakeS3{objects: []s3storage.StoredObject{
		{Key: "Data/IconTag.ba2"},
		{Key: "Data/Zeta.ba2"},
	}}

	names, err := S3Lister{Client: fake, Prefix: "Data"}.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"IconTag.ba2", "Zeta.ba2"}, names)
	assert.Equal(t, "Data", fake.prefix)
}

func TestS3Lister_Errors(t *testing.T) {
	_, err := S3Lister{}.List(context.Background())
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = S3Lister{Client: &fakeS3{err: boom}}.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
