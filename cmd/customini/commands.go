package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ilkoid/customini/pkg/app"
	"github.com/ilkoid/customini/pkg/builder"
	"github.com/ilkoid/customini/pkg/config"
	"github.com/ilkoid/customini/pkg/history"
	"github.com/ilkoid/customini/pkg/watch"
)

// iniGenerator - то, что нужно CLI от builder.Generator.
type iniGenerator interface {
	Generate(ctx context.Context) (*builder.Result, error)
}

// generateAndWatch создаёт ini и, если включён -watch, переходит в режим наблюдения.
//
// Неудачная первая генерация не мешает -watch: следующая попытка будет
// после изменения папки Data.
func generateAndWatch(ctx context.Context, comps *app.Components, watchMode bool, stdout, stderr io.Writer) int {
	code := generate(ctx, comps.Generator, comps.Config, stdout, stderr)
	if !watchMode {
		return code
	}
	return watchLoop(ctx, comps, stdout, stderr)
}

// generate создаёт ini и печатает результат в формате исходной утилиты.
func generate(ctx context.Context, gen iniGenerator, cfg *config.AppConfig, stdout, stderr io.Writer) int {
	res, err := gen.Generate(ctx)
	if err != nil {
		switch {
		case errors.Is(err, builder.ErrDataFolderMissing):
			fmt.Fprintf(stderr, "Error: Data folder '%s' does not exist!\n", cfg.Paths.DataFolder)
		case errors.Is(err, builder.ErrPermissionDenied):
			fmt.Fprintf(stderr, "Error: Permission denied writing to '%s'. Try running with -runasadmin\n", cfg.Paths.IniPath())
		default:
			fmt.Fprintf(stderr, "Error creating ini file: %v\n", err)
		}
		return 1
	}

	for _, w := range res.Warnings {
		if errors.Is(w, builder.ErrImportNotFound) {
			fmt.Fprintf(stdout, "Warning: Import file '%s' not found!\n", cfg.Paths.ImportIni)
			continue
		}
		fmt.Fprintf(stdout, "Warning: %v\n", w)
	}
	if res.Imported {
		fmt.Fprintf(stdout, "Imported contents from: %s\n", cfg.Paths.ImportIni)
	}

	fmt.Fprintf(stdout, "Successfully created %s\n", res.Path)
	return 0
}

// watchLoop перегенерирует ini при изменениях в папке Data до отмены ctx.
func watchLoop(ctx context.Context, comps *app.Components, stdout, stderr io.Writer) int {
	cfg := comps.Config
	if comps.S3 != nil && cfg.S3.Prefix != "" {
		fmt.Fprintln(stderr, "Error: -watch works only with a local data folder")
		return 1
	}

	wc := cfg.Watch.GetDefaults()
	w, err := watch.New(watch.Options{
		Dir:         cfg.Paths.DataFolder,
		Eligible:    cfg.Filter.ArchiveFilter().Eligible,
		Debounce:    wc.Debounce,
		MinInterval: wc.MinInterval,
	}, func(ctx context.Context) error {
		if generate(ctx, comps.Generator, cfg, stdout, stderr) != 0 {
			return fmt.Errorf("generation failed")
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Watching %s for changes (Ctrl+C to stop)\n", cfg.Paths.DataFolder)
	if err := w.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// printHistory печатает последние сгенерированные файлы.
func printHistory(ctx context.Context, store *history.Store, limit int, stdout, stderr io.Writer) int {
	if store == nil {
		fmt.Fprintln(stderr, "Error: history is disabled")
		return 1
	}
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "No generated files recorded yet")
		return 0
	}
	for _, r := range runs {
		fmt.Fprintf(stdout, "%s  %3d archives  %s  (from %s)\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Archives, r.OutputPath, r.DataFolder)
	}
	return 0
}
