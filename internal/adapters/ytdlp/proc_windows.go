//go:build windows

package ytdlp

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureProcess keeps the child from opening a console window.
// Cancellation uses the default Cancel, which kills yt-dlp only.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
