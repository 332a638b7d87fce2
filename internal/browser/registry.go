package browser

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

//go:embed openers.toml
var openersTOML []byte

// OpenerDefinition describes how to invoke one opener command.
type OpenerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args"`
}

type openersFile struct {
	Openers map[string]OpenerDefinition `toml:"openers"`
}

// Registry maps opener names to their definitions.
type Registry struct {
	openers map[string]OpenerDefinition
	goos    string
}

// NewRegistry loads the built-in definitions, then any user overrides from
// ~/.config/hnstories/openers.toml.
func NewRegistry(goos string) (*Registry, error) {
	r, err := parseRegistry(openersTOML, goos)
	if err != nil {
		return nil, err
	}

	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, ".config", "hnstories", "openers.toml")); err == nil {
			if user, err := parseRegistry(data, goos); err == nil {
				r.merge(user)
			}
		}
	}

	return r, nil
}

func parseRegistry(data []byte, goos string) (*Registry, error) {
	var f openersFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing openers.toml: %w", err)
	}
	if f.Openers == nil {
		f.Openers = map[string]OpenerDefinition{}
	}
	return &Registry{openers: f.Openers, goos: goos}, nil
}

func (r *Registry) merge(other *Registry) {
	for name, def := range other.openers {
		r.openers[name] = def
	}
}

// Command builds the command that opens link with the named opener. Unknown
// openers are run with the link as their only argument.
func (r *Registry) Command(name, link string) (*exec.Cmd, error) {
	args, err := r.Args(name, link)
	if err != nil {
		return nil, err
	}
	return exec.Command(name, args...), nil
}

// Args returns the argument list Command would use.
func (r *Registry) Args(name, link string) ([]string, error) {
	def, ok := r.openers[name]
	if !ok {
		return []string{link}, nil
	}
	if len(def.Platforms) > 0 && !slices.Contains(def.Platforms, r.goos) {
		return nil, fmt.Errorf("%s not supported on %s", name, r.goos)
	}
	return append(slices.Clone(def.Args), link), nil
}
