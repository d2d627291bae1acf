package config

import (
	"os"
	"path/filepath"
)

// SettingsFilename - файл настроек рядом с утилитой.
const SettingsFilename = "customini.yaml"

// GameDirCandidates возвращает возможные расположения папки "My Games/Fallout 76"
// в порядке предпочтения.
func GameDirCandidates(home string) []string {
	return []string{
		// OneDrive Documents
		filepath.Join(home, "OneDrive", "Documents", "My Games", "Fallout 76"),
		// Обычные Documents
		filepath.Join(home, "Documents", "My Games", "Fallout 76"),
		filepath.Join(home, "OneDrive - Personal", "Documents", "My Games", "Fallout 76"),
		// OneDrive перенаправил весь Documents
		filepath.Join(home, "OneDrive", "My Games", "Fallout 76"),
		filepath.Join(home, "OneDrive - Business", "Documents", "My Games", "Fallout 76"),
	}
}

// FindGameDir возвращает первую существующую папку из GameDirCandidates.
//
// Если ни одна не найдена - Documents/My Games/Fallout 76 (будет создана при записи).
func FindGameDir(home string) string {
	for _, path := range GameDirCandidates(home) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return filepath.Join(home, "Documents", "My Games", "Fallout 76")
}

// FindConfigPath находит путь к customini.yaml.
//
// Порядок поиска:
// 1. Флаг -config (если указан)
// 2. Текущая директория
// 3. Директория бинарника
//
// Возвращает путь в текущей директории, даже если файла нет:
// туда же сохраняются настройки.
func FindConfigPath(flagValue string) string {
	// 1. Флаг имеет приоритет
	if flagValue != "" {
		return resolveAbsPath(flagValue)
	}

	// 2. Текущая директория
	if _, err := os.Stat(SettingsFilename); err == nil {
		return resolveAbsPath(SettingsFilename)
	}

	// 3. Директория бинарника
	if execPath, err := os.Executable(); err == nil {
		cfgPath := filepath.Join(filepath.Dir(execPath), SettingsFilename)
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}

	return resolveAbsPath(SettingsFilename)
}

func resolveAbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
