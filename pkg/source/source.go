// Package source перечисляет кандидатов для классификатора: имена файлов
// одной папки Data (локальной или в S3-совместимом хранилище).
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/ilkoid/customini/pkg/s3storage"
)

// ErrRootNotFound возвращается когда папка Data не существует.
var ErrRootNotFound = errors.New("data folder not found")

// Lister возвращает имена файлов-кандидатов.
type Lister interface {
	List(ctx context.Context) ([]string, error)
	// Location - человекочитаемое расположение для логов.
	Location() string
}

// DirLister перечисляет обычные файлы одной папки без обхода вложенных.
type DirLister struct {
	Root string
}

// List возвращает имена файлов в порядке os.ReadDir (по имени).
func (d DirLister) List(ctx context.Context) ([]string, error) {
	info, err := os.Stat(d.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, d.Root)
		}
		return nil, fmt.Errorf("stat %s: %w", d.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, d.Root)
	}

	entries, err := os.ReadDir(d.Root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.Root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Location реализует Lister.
func (d DirLister) Location() string {
	return d.Root
}

// S3Lister перечисляет объекты непосредственно под префиксом бакета.
type S3Lister struct {
	Client s3storage.ClientInterface
	Prefix string
}

// List возвращает базовые имена объектов.
func (s S3Lister) List(ctx context.Context) ([]string, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("s3 lister: client is not configured")
	}
	objects, err := s.Client.ListFiles(ctx, s.Prefix)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		names = append(names, path.Base(obj.Key)) // Смотрим только на имя файла
	}
	return names, nil
}

// Location реализует Lister.
func (s S3Lister) Location() string {
	return "s3://" + s.Prefix
}
