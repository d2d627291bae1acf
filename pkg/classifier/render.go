package classifier

import (
	"sort"
	"strings"
)

const (
	// Header - заголовок секции архивов в Custom.ini.
	Header = "[Archive]"

	// LineEnding - игра читает ini с CRLF на любой платформе.
	LineEnding = "\r\n"

	// Separator - разделитель архивов в значении.
	Separator = ", "
)

// Line - одна строка вида "key = value".
type Line struct {
	Key   string
	Value string
}

// String возвращает строку с CRLF.
func (l Line) String() string {
	return l.Key + " = " + l.Value + LineEnding
}

// Lines строит строки для непустых секций в объявленном порядке.
func Lines(reg *Registry) []Line {
	var lines []Line
	for _, b := range reg.buckets {
		if b.Count() == 0 {
			continue
		}
		lines = append(lines, Line{Key: b.Name, Value: value(b, reg.placeLast)})
	}
	return lines
}

// Render возвращает заголовок и строки всех непустых секций.
func Render(reg *Registry) string {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString(LineEnding)
	for _, line := range Lines(reg) {
		sb.WriteString(line.String())
	}
	return sb.String()
}

// AppendTrailing дописывает импортируемый блок без изменений.
func AppendTrailing(rendered, extra string) string {
	return rendered + extra
}

// value собирает значение строки:
//  1. Defaults в объявленном порядке
//  2. найденные Known в объявленном порядке
//  3. найденные неизвестные по возрастанию, placeLast в самом конце
func value(b *Bucket, placeLast string) string {
	tokens := make([]string, 0, len(b.Defaults)+len(b.matched))
	tokens = append(tokens, b.Defaults...)

	for _, member := range b.Known {
		if b.Has(member) {
			tokens = append(tokens, member)
		}
	}

	tokens = append(tokens, unknown(b, placeLast)...)

	// Пустые имена не попадают в значение: иначе получилось бы ", A"
	parts := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			parts = append(parts, t)
		}
	}

	return strings.TrimPrefix(strings.Join(parts, Separator), Separator)
}

func unknown(b *Bucket, placeLast string) []string {
	var (
		out  []string
		last bool
	)
	for name := range b.matched {
		if b.IsKnown(name) {
			continue
		}
		if placeLast != "" && name == placeLast {
			last = true
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	if last {
		out = append(out, placeLast)
	}
	return out
}
