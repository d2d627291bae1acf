package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ilkoid/customini/pkg/classifier"
	"github.com/ilkoid/customini/pkg/utils"
)

// DefaultIniFilename - имя файла, который читает Fallout 76.
const DefaultIniFilename = "Fallout76Custom.ini"

// AppConfig - корневая структура конфигурации.
// Она зеркалит структуру customini.yaml.
type AppConfig struct {
	Paths   PathsConfig   `yaml:"paths"`
	Filter  FilterConfig  `yaml:"filter"`
	Archive ArchiveConfig `yaml:"archive"`
	S3      S3Config      `yaml:"s3"`
	History HistoryConfig `yaml:"history"`
	Watch   WatchConfig   `yaml:"watch"`
	UI      UIConfig      `yaml:"ui"`
	App     AppSpecific   `yaml:"app"`
}

// PathsConfig - где искать архивы и куда писать ini.
type PathsConfig struct {
	DataFolder  string `yaml:"data_folder"`  // Папка Data игры
	IniFolder   string `yaml:"ini_folder"`   // Папка My Games/Fallout 76
	IniFilename string `yaml:"ini_filename"` // Fallout76Custom.ini
	ImportIni   string `yaml:"import_ini"`   // Файл, дописываемый в конец (или s3://key)
}

// IniPath возвращает полный путь к генерируемому файлу.
func (p PathsConfig) IniPath() string {
	return filepath.Join(p.IniFolder, p.IniFilename)
}

// FilterConfig - какие файлы считаются архивами модов.
type FilterConfig struct {
	ReservedPrefix string `yaml:"reserved_prefix"`
	Extension      string `yaml:"extension"`
}

// ArchiveFilter возвращает фильтр классификатора.
func (f FilterConfig) ArchiveFilter() classifier.ArchiveFilter {
	return classifier.ArchiveFilter{
		ReservedPrefix: f.ReservedPrefix,
		Extension:      f.Extension,
	}
}

// BucketConfig - одна секция Custom.ini.
type BucketConfig struct {
	Name     string   `yaml:"name"`               // Ключ в ini
	Mods     []string `yaml:"mods"`               // Известные архивы, порядок значим
	Defaults []string `yaml:"defaults,omitempty"` // Всегда идут первыми
}

// ArchiveConfig - секции и правила рендера.
type ArchiveConfig struct {
	Buckets       []BucketConfig `yaml:"buckets"`
	DefaultBucket string         `yaml:"default_bucket"` // Куда попадают неизвестные архивы
	PlaceLast     string         `yaml:"place_last"`     // Всегда последний среди неизвестных
}

// S3Config - настройки объектного хранилища.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"` // "Папка" с архивами внутри бакета
}

// Enabled сообщает, настроено ли хранилище.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// HistoryConfig - журнал сгенерированных файлов (SQLite).
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Limit   int    `yaml:"limit"` // Сколько записей показывать
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *HistoryConfig) GetDefaults() HistoryConfig {
	result := *c

	if result.Path == "" {
		result.Path = "customini-history.db"
	}
	if result.Limit == 0 {
		result.Limit = 10
	}

	return result
}

// WatchConfig - режим наблюдения за папкой Data.
type WatchConfig struct {
	Debounce    time.Duration `yaml:"debounce"`     // Склейка пачки событий
	MinInterval time.Duration `yaml:"min_interval"` // Не чаще одной генерации за интервал
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *WatchConfig) GetDefaults() WatchConfig {
	result := *c

	if result.Debounce == 0 {
		result.Debounce = 500 * time.Millisecond
	}
	if result.MinInterval == 0 {
		result.MinInterval = 2 * time.Second
	}

	return result
}

// UIConfig - настройки TUI.
type UIConfig struct {
	DarkMode bool `yaml:"dark_mode"`
}

// AppSpecific - общие настройки приложения.
type AppSpecific struct {
	Debug bool `yaml:"debug"`
}

// Default возвращает встроенную конфигурацию Fallout 76.
//
// ini_folder заполняется найденной папкой игры в домашнем каталоге.
func Default() *AppConfig {
	home := homeDir()

	defs := classifier.DefaultDefinitions()
	buckets := make([]BucketConfig, 0, len(defs))
	for _, d := range defs {
		buckets = append(buckets, BucketConfig{Name: d.Name, Mods: d.Known, Defaults: d.Defaults})
	}

	return &AppConfig{
		Paths: PathsConfig{
			DataFolder:  ".",
			IniFolder:   FindGameDir(home),
			IniFilename: DefaultIniFilename,
		},
		Filter: FilterConfig{
			ReservedPrefix: classifier.DefaultReservedPrefix,
			Extension:      classifier.DefaultExtension,
		},
		Archive: ArchiveConfig{
			Buckets:       buckets,
			DefaultBucket: classifier.DefaultBucket,
			PlaceLast:     classifier.DefaultPlaceLast,
		},
	}
}

// homeDir возвращает домашний каталог, а без него - текущую директорию (абсолютную).
func homeDir() string {
	home, err := os.UserHomeDir()
	if err == nil {
		return home
	}
	utils.Warn("Home directory is unknown, using working directory", "error", err)
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Load читает YAML файл поверх Default(), подставляет ENV переменные и валидирует.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML поверх дефолтов: незаданные секции остаются встроенными
	cfg := Default()
	if err := yaml.Unmarshal([]byte(contentWithEnv), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Валидируем
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault как Load, но отсутствие файла не ошибка.
func LoadOrDefault(path string) (*AppConfig, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save сохраняет настройки в YAML.
//
// Переменные окружения уже подставлены: секреты S3 попадут в файл как есть.
func (c *AppConfig) Save(path string) error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Registry строит реестр секций из секции archive.
func (c *AppConfig) Registry() (*classifier.Registry, error) {
	defs := make([]classifier.Definition, 0, len(c.Archive.Buckets))
	for _, b := range c.Archive.Buckets {
		defs = append(defs, classifier.Definition{
			Name:     b.Name,
			Known:    b.Mods,
			Defaults: b.Defaults,
		})
	}
	return classifier.NewRegistry(defs, c.Archive.DefaultBucket, c.Archive.PlaceLast)
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.Paths.IniFilename) == "" {
		return fmt.Errorf("paths.ini_filename is required")
	}
	if strings.TrimSpace(c.Archive.DefaultBucket) == "" {
		return fmt.Errorf("archive.default_bucket is required")
	}
	if _, err := c.Registry(); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if c.S3.Bucket != "" && c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required when s3.bucket is set")
	}
	return nil
}
