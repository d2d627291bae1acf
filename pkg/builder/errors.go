package builder

import "fmt"

// Ошибки генератора. Проверяются через errors.Is на верхнем уровне (CLI, TUI),
// чтобы показать пользователю понятное сообщение.

// ErrDataFolderMissing возвращается когда папка Data не существует.
var ErrDataFolderMissing = fmt.Errorf("data folder does not exist")

// ErrPermissionDenied возвращается когда нельзя записать ini (папка под UAC).
//
// Пример обработки:
//
//	if errors.Is(err, builder.ErrPermissionDenied) {
//	    fmt.Println("Try running with -runasadmin")
//	}
var ErrPermissionDenied = fmt.Errorf("permission denied")

// ErrImportNotFound - файл для импорта не найден.
//
// Не фатальна: попадает в Result.Warnings, ini пишется без импортируемого блока.
var ErrImportNotFound = fmt.Errorf("import file not found")
