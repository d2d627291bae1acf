//go:build windows

package utils

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RelaunchAsAdmin перезапускает текущий бинарник через UAC (Start-Process -Verb RunAs).
//
// Текущий процесс должен завершиться после успешного вызова.
func RelaunchAsAdmin(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("find executable: %w", err)
	}

	script := fmt.Sprintf("Start-Process -FilePath %s -Verb RunAs", psQuote(exe))
	if len(args) > 0 {
		quoted := make([]string, 0, len(args))
		for _, a := range args {
			quoted = append(quoted, psQuote(a))
		}
		script += " -ArgumentList " + strings.Join(quoted, ",")
	}

	cmd := exec.Command("powershell", "-NoProfile", "-Command", script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("relaunch as administrator: %w", err)
	}
	Info("Relaunched as administrator", "exe", exe)
	return nil
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
