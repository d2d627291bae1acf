// Package app собирает компоненты генератора из конфигурации.
//
// Используется и CLI, и TUI, чтобы не дублировать инициализацию:
// источник архивов (папка или S3), импорт, журнал запусков, Generator.
package app

import (
	"fmt"

	"github.com/ilkoid/customini/pkg/builder"
	"github.com/ilkoid/customini/pkg/config"
	"github.com/ilkoid/customini/pkg/history"
	"github.com/ilkoid/customini/pkg/s3storage"
	"github.com/ilkoid/customini/pkg/source"
	"github.com/ilkoid/customini/pkg/utils"
)

// Overrides - значения флагов командной строки поверх конфигурации.
// Пустые поля не меняют конфигурацию.
type Overrides struct {
	DataFolder  string
	IniFolder   string
	IniFilename string
	ImportIni   string
	S3Prefix    string
	History     bool
}

// Apply переносит непустые значения в cfg.
func (o Overrides) Apply(cfg *config.AppConfig) {
	if o.DataFolder != "" {
		cfg.Paths.DataFolder = o.DataFolder
	}
	if o.IniFolder != "" {
		cfg.Paths.IniFolder = o.IniFolder
	}
	if o.IniFilename != "" {
		cfg.Paths.IniFilename = o.IniFilename
	}
	if o.ImportIni != "" {
		cfg.Paths.ImportIni = o.ImportIni
	}
	if o.S3Prefix != "" {
		cfg.S3.Prefix = o.S3Prefix
	}
	if o.History {
		cfg.History.Enabled = true
	}
}

// Components содержит собранные компоненты приложения.
type Components struct {
	Config    *config.AppConfig
	Generator *builder.Generator
	Source    source.Lister
	S3        *s3storage.Client // nil если s3 не настроен
	History   *history.Store    // nil если журнал выключен
}

// Initialize собирает компоненты. Вызывающий обязан вызвать Close.
//
// Источник архивов: S3 (если задан s3.prefix и настроен бакет), иначе папка Data.
func Initialize(cfg *config.AppConfig) (*Components, error) {
	utils.Info("Initializing components",
		"data_folder", cfg.Paths.DataFolder,
		"ini", cfg.Paths.IniPath(),
		"s3", cfg.S3.Enabled())

	reg, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	comps := &Components{Config: cfg}

	// 1. S3 клиент (опционально)
	if cfg.S3.Enabled() {
		comps.S3, err = s3storage.New(cfg.S3)
		if err != nil {
			utils.Error("S3 client creation failed", "error", err)
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		utils.Info("S3 client initialized", "bucket", cfg.S3.Bucket)
	}

	// 2. Источник архивов
	if comps.S3 != nil && cfg.S3.Prefix != "" {
		comps.Source = source.S3Lister{Client: comps.S3, Prefix: cfg.S3.Prefix}
	} else {
		comps.Source = source.DirLister{Root: cfg.Paths.DataFolder}
	}

	// 3. Журнал запусков (опционально)
	var recorder builder.Recorder
	if cfg.History.Enabled {
		hc := cfg.History.GetDefaults()
		comps.History, err = history.Open(hc.Path)
		if err != nil {
			utils.Error("History store open failed", "error", err)
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		recorder = comps.History
	}

	// 4. Generator
	importer := builder.FileImporter{}
	if comps.S3 != nil {
		importer.S3 = comps.S3
	}

	comps.Generator, err = builder.New(builder.Options{
		Source:     comps.Source,
		Eligible:   cfg.Filter.ArchiveFilter().Eligible,
		Registry:   reg,
		OutputPath: cfg.Paths.IniPath(),
		ImportPath: cfg.Paths.ImportIni,
		Importer:   importer,
		Recorder:   recorder,
	})
	if err != nil {
		comps.Close()
		return nil, err
	}

	return comps, nil
}

// Close освобождает ресурсы (журнал).
func (c *Components) Close() error {
	if c == nil || c.History == nil {
		return nil
	}
	return c.History.Close()
}
