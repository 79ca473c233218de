// Package platform shells out to the desktop for the few things a
// terminal app cannot do itself.
package platform

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/unkn0wn-root/tinct/internal/errdef"
)

// OpenFolder reveals dir in the system file manager, creating it first
// so the window never opens on a missing path.
func OpenFolder(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create folder %s", dir)
	}
	if err := openCommand(dir).Start(); err != nil {
		return errdef.Wrap(errdef.CodeSystem, err, "open folder %s", dir)
	}
	return nil
}

func openCommand(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
