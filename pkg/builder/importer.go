package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ilkoid/customini/pkg/s3storage"
)

// S3Scheme - префикс ссылки на импортируемый блок в бакете.
const S3Scheme = "s3://"

// Importer читает блок, дописываемый в конец ini.
type Importer interface {
	Read(ctx context.Context, ref string) (string, error)
}

// FileImporter читает локальный файл или объект s3://key.
type FileImporter struct {
	S3 s3storage.ClientInterface // Нужен только для s3:// ссылок
}

// Read возвращает содержимое без изменений.
func (fi FileImporter) Read(ctx context.Context, ref string) (string, error) {
	if key, ok := strings.CutPrefix(ref, S3Scheme); ok {
		return fi.readS3(ctx, key)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrImportNotFound, ref)
		}
		return "", fmt.Errorf("read import file %s: %w", ref, err)
	}
	return string(data), nil
}

func (fi FileImporter) readS3(ctx context.Context, key string) (string, error) {
	if fi.S3 == nil {
		return "", fmt.Errorf("import %s%s: s3 is not configured", S3Scheme, key)
	}
	data, err := fi.S3.DownloadFile(ctx, key)
	if err != nil {
		if s3storage.IsNotFound(err) {
			return "", fmt.Errorf("%w: %s%s", ErrImportNotFound, S3Scheme, key)
		}
		return "", fmt.Errorf("download import %s%s: %w", S3Scheme, key, err)
	}
	return string(data), nil
}
