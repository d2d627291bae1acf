package classifier

import "strings"

const (
	// DefaultReservedPrefix - префикс официальных архивов игры.
	DefaultReservedPrefix = "SeventySix"

	// DefaultExtension - расширение архивов модов.
	DefaultExtension = ".ba2"
)

// ArchiveFilter отбирает архивы модов среди файлов папки Data.
type ArchiveFilter struct {
	ReservedPrefix string // Сравнивается с учётом регистра
	Extension      string // Сравнивается без учёта регистра
}

// DefaultFilter возвращает фильтр Fallout 76: *.ba2 кроме SeventySix*.
func DefaultFilter() ArchiveFilter {
	return ArchiveFilter{
		ReservedPrefix: DefaultReservedPrefix,
		Extension:      DefaultExtension,
	}
}

// Eligible реализует Predicate.
func (f ArchiveFilter) Eligible(name string) bool {
	if f.ReservedPrefix != "" && strings.HasPrefix(name, f.ReservedPrefix) {
		return false
	}
	if f.Extension == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(f.Extension))
}
