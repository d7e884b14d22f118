// Package browser opens outbound links in the user's browser.
//
// A link is handed to a separate, detached process: no inherited standard
// streams, its own process group, and an environment stripped of lungmap
// variables. The process is released immediately, so the opened page has
// no way back to the lungmap process that launched it.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vanderheijden86/lungmap/pkg/debug"
)

// Errors returned by Open and Resolve.
var (
	ErrDisabled          = errors.New("browser launching disabled")
	ErrUnsupportedScheme = errors.New("unsupported link scheme")
	ErrEmptyTarget       = errors.New("empty link")
)

// DisableEnv turns Open into a no-op that returns ErrDisabled.
const DisableEnv = "LUNGMAP_NO_BROWSER"

// envPrefix marks variables that are never passed to the browser.
const envPrefix = "LUNGMAP_"

// Opener launches links. The zero value uses the platform default command
// and resolves relative paths against the working directory.
type Opener struct {
	// Command overrides the platform launcher, e.g. "firefox --new-window".
	// The link is appended as the final argument.
	Command string
	// BaseDir resolves relative asset paths such as the bundled paper.
	BaseDir string

	start func(*exec.Cmd) error
}

// New returns an Opener with the given command override and base dir.
func New(command, baseDir string) *Opener {
	return &Opener{Command: command, BaseDir: baseDir}
}

// Open resolves target and launches it.
func (o *Opener) Open(target string) error {
	resolved, err := Resolve(target, o.BaseDir)
	if err != nil {
		return err
	}
	if v := os.Getenv(DisableEnv); v != "" && v != "0" {
		debug.Log("browser: %s set, not opening %s", DisableEnv, resolved)
		return ErrDisabled
	}

	cmd, err := o.command(resolved)
	if err != nil {
		return err
	}
	start := o.start
	if start == nil {
		start = startDetached
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("launching %s: %w", cmd.Path, err)
	}
	debug.Log("browser: opened %s via %s", resolved, cmd.Path)
	return nil
}

// Resolve validates target and returns the string to hand to the launcher.
// Absolute http(s) URLs pass through unchanged. Anything without a scheme
// is a local file path: relative paths are joined to baseDir and the file
// must exist.
func Resolve(target, baseDir string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", ErrEmptyTarget
	}
	u, err := url.Parse(target)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			if u.Host == "" {
				return "", fmt.Errorf("%w: %q has no host", ErrUnsupportedScheme, target)
			}
			return u.String(), nil
		case "":
		default:
			if !isWindowsDrive(u.Scheme) {
				return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
			}
		}
	}

	path := target
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", target, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("opening %s: %w", target, err)
	}
	return abs, nil
}

// isWindowsDrive reports whether a parsed "scheme" is really a drive letter
// as in C:\docs\paper.pdf.
func isWindowsDrive(scheme string) bool {
	return runtime.GOOS == "windows" && len(scheme) == 1
}

func (o *Opener) command(target string) (*exec.Cmd, error) {
	argv := strings.Fields(o.Command)
	if len(argv) == 0 {
		argv = defaultCommand(runtime.GOOS)
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("browser command %q: %w", argv[0], err)
	}
	cmd := exec.Command(path, append(argv[1:], target)...)
	cmd.Env = filterEnv(os.Environ())
	return cmd, nil
}

func defaultCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

func filterEnv(env []string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if strings.HasPrefix(kv, envPrefix) {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// startDetached starts cmd with no standard streams attached and releases
// it without waiting.
func startDetached(cmd *exec.Cmd) error {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
