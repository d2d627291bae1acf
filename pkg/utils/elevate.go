package utils

import "errors"

// ErrElevationUnsupported возвращается RelaunchAsAdmin вне Windows.
var ErrElevationUnsupported = errors.New("relaunch as administrator is only supported on Windows")

// StripFlag убирает флаг (в формах -name, --name, -name=true) из аргументов,
// чтобы перезапущенный процесс не ушёл в бесконечный перезапуск.
func StripFlag(args []string, name string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "-" + name, "--" + name, "-" + name + "=true", "--" + name + "=true":
			continue
		}
		out = append(out, arg)
	}
	return out
}
