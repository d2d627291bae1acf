// Package builder связывает источник кандидатов, классификатор и запись файла:
// сканирует папку Data, рендерит Fallout76Custom.ini и пишет его на диск.
//
// Каждый прогон работает со своей копией реестра (Registry.Clone), поэтому
// один Generator можно вызывать повторно (TUI, режим -watch). Одновременные
// вызовы Generate для одного OutputPath вызывающий сериализует сам.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilkoid/customini/pkg/classifier"
	"github.com/ilkoid/customini/pkg/history"
	"github.com/ilkoid/customini/pkg/source"
	"github.com/ilkoid/customini/pkg/utils"
)

// Recorder сохраняет запись о сгенерированном файле (history.Store).
type Recorder interface {
	Record(ctx context.Context, run history.Run) (int64, error)
}

// Options - зависимости генератора.
type Options struct {
	Source     source.Lister        // Откуда брать имена файлов
	Eligible   classifier.Predicate // nil - все файлы
	Registry   *classifier.Registry // Шаблон секций, клонируется на каждый прогон
	OutputPath string               // Полный путь к ini
	ImportPath string               // "" - без импорта
	Importer   Importer             // nil - FileImporter{}
	Recorder   Recorder             // nil - без журнала
}

// Report - результат сканирования без записи файла.
type Report struct {
	Registry *classifier.Registry
	Stats    classifier.Stats
}

// Result - результат генерации.
type Result struct {
	Report
	Path     string
	Content  string
	Imported bool    // Импортируемый блок дописан
	Warnings []error // Нефатальные проблемы (импорт, журнал)
}

// Generator строит ini из папки Data.
type Generator struct {
	opts Options
}

// New проверяет опции и создаёт Generator.
func New(opts Options) (*Generator, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("builder: source is required")
	}
	if opts.Registry == nil {
		return nil, fmt.Errorf("builder: registry is required")
	}
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("builder: output path is required")
	}
	if opts.Importer == nil {
		opts.Importer = FileImporter{}
	}
	return &Generator{opts: opts}, nil
}

// OutputPath возвращает путь генерируемого файла.
func (g *Generator) OutputPath() string {
	return g.opts.OutputPath
}

// Scan перечисляет кандидатов и раскладывает их по свежей копии реестра.
func (g *Generator) Scan(ctx context.Context) (*Report, error) {
	names, err := g.opts.Source.List(ctx)
	if err != nil {
		if errors.Is(err, source.ErrRootNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDataFolderMissing, g.opts.Source.Location())
		}
		return nil, fmt.Errorf("scan %s: %w", g.opts.Source.Location(), err)
	}

	reg := g.opts.Registry.Clone()
	stats := classifier.Classify(reg, names, g.opts.Eligible)

	utils.Debug("Scanned data folder",
		"location", g.opts.Source.Location(),
		"seen", stats.Seen,
		"eligible", stats.Eligible,
		"skipped", stats.Skipped)

	return &Report{Registry: reg, Stats: stats}, nil
}

// Generate сканирует, рендерит и записывает ini.
//
// Отсутствующий или нечитаемый файл импорта не прерывает генерацию:
// ошибка попадает в Result.Warnings.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	report, err := g.Scan(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Report:  *report,
		Path:    g.opts.OutputPath,
		Content: classifier.Render(report.Registry),
	}

	for _, line := range classifier.Lines(report.Registry) {
		b, _ := report.Registry.Bucket(line.Key)
		utils.Info("Added archives", "bucket", line.Key, "count", b.Count())
	}

	if g.opts.ImportPath != "" {
		extra, err := g.opts.Importer.Read(ctx, g.opts.ImportPath)
		if err != nil {
			utils.Warn("Import skipped", "path", g.opts.ImportPath, "error", err)
			res.Warnings = append(res.Warnings, err)
		} else {
			res.Content = classifier.AppendTrailing(res.Content, extra)
			res.Imported = true
			utils.Info("Imported contents", "path", g.opts.ImportPath)
		}
	}

	if err := writeFile(g.opts.OutputPath, res.Content); err != nil {
		return nil, err
	}
	utils.Info("Created ini", "path", g.opts.OutputPath, "archives", report.Registry.Total())

	if g.opts.Recorder != nil {
		_, err := g.opts.Recorder.Record(ctx, history.Run{
			CreatedAt:  time.Now(),
			OutputPath: g.opts.OutputPath,
			DataFolder: g.opts.Source.Location(),
			Archives:   report.Registry.Total(),
			Buckets:    report.Registry.Counts(),
		})
		if err != nil {
			utils.Warn("History record failed", "error", err)
			res.Warnings = append(res.Warnings, err)
		}
	}

	return res, nil
}

// writeFile создаёт недостающие папки и перезаписывает файл.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return wrapWriteErr(path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return wrapWriteErr(path, err)
	}
	return nil
}

func wrapWriteErr(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: writing to %s: %v", ErrPermissionDenied, path, err)
	}
	return fmt.Errorf("write %s: %w", path, err)
}
