// Package browser opens story links with the platform's URL handler.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/pders01/hnstories/internal/config"
	"github.com/pders01/hnstories/internal/debuglog"
	"github.com/pders01/hnstories/internal/validation"
)

type Launcher struct {
	opener    string
	registry  *Registry
	validator *validation.EndpointValidator
	start     func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewRegistry(runtime.GOOS)
	if err != nil {
		debuglog.Warnf("opener definitions unavailable: %v", err)
		registry = &Registry{openers: map[string]OpenerDefinition{}, goos: runtime.GOOS}
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = cfg.Browser.Darwin
	case "windows":
		candidates = cfg.Browser.Windows
	default:
		candidates = cfg.Browser.Linux
	}

	opener := findCommand(candidates...)
	if opener == "" {
		opener = cfg.Browser.DefaultOpener
	}

	return &Launcher{
		opener:    opener,
		registry:  registry,
		validator: validation.NewEndpointValidator(),
		start:     startDetached,
	}
}

// Opener is the command used to open links.
func (l *Launcher) Opener() string { return l.opener }

// Open validates link and hands it to the opener without waiting for it.
func (l *Launcher) Open(link string) error {
	normalized, err := l.validator.ValidateAndNormalize(link)
	if err != nil {
		return fmt.Errorf("refusing to open link: %w", err)
	}
	if l.opener == "" {
		return fmt.Errorf("no application found to open links")
	}

	cmd, err := l.registry.Command(l.opener, normalized)
	if err != nil {
		return err
	}
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.opener, err)
	}

	debuglog.Infof("opened %s with %s", normalized, l.opener)
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
