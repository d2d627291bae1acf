//go:build !windows

package utils

// RelaunchAsAdmin вне Windows не поддерживается: запустите утилиту через sudo.
func RelaunchAsAdmin(args []string) error {
	return ErrElevationUnsupported
}
