package shell

import (
	"os"
	"os/exec"
	"runtime"
)

// clearTerminal clears the screen on Windows, Linux and macOS.
func clearTerminal() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "cls")
	case "linux", "darwin":
		cmd = exec.Command("clear")
	default:
		return
	}
	cmd.Stdout = os.Stdout
	_ = cmd.Run()
}
