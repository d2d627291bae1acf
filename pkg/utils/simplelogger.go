// Package utils предоставляет простой файловый логгер для CLI и TUI.
//
// Логгер создаёт .log файл с timestamp в имени. Пока InitLogger не вызван,
// все вызовы Info/Warn/Error/Debug - no-op.
// Thread-safe через sync.Mutex.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logFile  *os.File
	logPath  string
	logMutex sync.Mutex
)

// InitLogger создает/открывает .log файл в директории dir ("" - текущая).
//
// Имя файла: customini-YYYY-MM-DD-HH-MM.log. Возвращает полный путь.
// Повторный вызов возвращает уже открытый файл.
func InitLogger(dir string) (string, error) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		return logPath, nil
	}

	timestamp := time.Now().Format("2006-01-02-15-04")
	path := filepath.Join(dir, fmt.Sprintf("customini-%s.log", timestamp))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	logPath = path

	// Пишем напрямую без Info чтобы избежать deadlock (мьютекс уже захвачен)
	writeLine(formatLine("INFO", "Logger initialized", "file", path))

	return path, nil
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	log("INFO", msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	log("ERROR", msg, keyvals...)
}

// Debug - отладочное сообщение.
func Debug(msg string, keyvals ...any) {
	log("DEBUG", msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	log("WARN", msg, keyvals...)
}

func log(level, msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile == nil {
		return
	}
	writeLine(formatLine(level, msg, keyvals...))
}

// formatLine: [YYYY-MM-DD HH:MM:SS] LEVEL: message key1=value1 key2=value2
func formatLine(level, msg string, keyvals ...any) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	for i := 0; i+1 < len(keyvals); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}

	return line + "\n"
}

// writeLine пишет в файл; при ошибке fallback на stderr.
// Вызывается под logMutex.
func writeLine(line string) {
	if _, err := logFile.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "%s", line)
		fmt.Fprintf(os.Stderr, "[LOGGER ERROR: WriteString failed: %v]\n", err)
		return
	}

	if err := logFile.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Sync failed: %v]\n", err)
	}
}

// Close закрывает лог-файл.
//
// Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Close failed: %v]\n", err)
		}
		logFile = nil
		logPath = ""
	}
}
