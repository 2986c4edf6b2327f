package export

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoClipboard means no clipboard helper was found on PATH.
var ErrNoClipboard = errors.New("no clipboard command available")

// Clipboard pipes text into a platform clipboard helper.
type Clipboard struct {
	cmd []string
	run func(ctx context.Context, argv []string, stdin string) error
}

// DetectClipboard looks for pbcopy, xclip, wl-copy, xsel, or clip.
func DetectClipboard() *Clipboard {
	cmd, _ := detectClipboardCommand(runtime.GOOS, exec.LookPath)
	return &Clipboard{cmd: cmd, run: runCommand}
}

// Available reports whether a helper was found.
func (c *Clipboard) Available() bool {
	return c != nil && len(c.cmd) > 0
}

// Copy sends text to the clipboard unchanged.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	if !c.Available() {
		return ErrNoClipboard
	}
	if err := c.run(ctx, c.cmd, text); err != nil {
		return errors.Wrapf(err, "run %s", c.cmd[0])
	}
	return nil
}

func runCommand(ctx context.Context, argv []string, stdin string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}

func detectClipboardCommand(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	found := func(name string) (string, bool) {
		path, err := lookPath(name)
		return path, err == nil && path != ""
	}

	if strings.EqualFold(goos, "windows") {
		for _, name := range []string{"clip.exe", "clip"} {
			if path, ok := found(name); ok {
				return []string{path}, true
			}
		}
		for _, name := range []string{"powershell", "powershell.exe", "pwsh"} {
			if path, ok := found(name); ok {
				return []string{path, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
	}

	candidates := [][]string{
		{"pbcopy"},
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	for _, candidate := range candidates {
		if path, ok := found(candidate[0]); ok {
			return append([]string{path}, candidate[1:]...), true
		}
	}
	return nil, false
}
