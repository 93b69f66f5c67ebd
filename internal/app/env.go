// Package app holds the per-process context shared by every command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/open-cli-collective/cvgen/internal/config"
)

// Env is built once at startup and passed to every operation. It is not
// mutated after construction.
type Env struct {
	// Root is the project directory; relative paths resolve against it.
	Root       string
	ConfigPath string
	Config     *config.Config
	Log        *zap.SugaredLogger
	Now        func() time.Time
	Stdout     io.Writer
}

// SkipEnvAnnotation marks commands that run without an Env, such as
// completion and config management.
const SkipEnvAnnotation = "cvgen.skip-env"

// Options are the global flags an Env is built from.
type Options struct {
	Root       string
	ConfigPath string
	Verbose    bool
	NoColor    bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// New resolves the project root, loads the configuration and sets up logging.
func New(opts Options) (*Env, error) {
	root, err := ResolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath(root)
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, err
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Env{
		Root:       root,
		ConfigPath: path,
		Config:     cfg,
		Log:        NewLogger(stderr, opts.Verbose, opts.NoColor),
		Now:        time.Now,
		Stdout:     stdout,
	}, nil
}

// ErrNoEnv is returned when a command runs without the root command's setup.
var ErrNoEnv = errors.New("app environment not initialized")

type envKey struct{}

// WithEnv returns a copy of ctx carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromContext returns the Env stored by WithEnv.
func FromContext(ctx context.Context) (*Env, error) {
	if ctx == nil {
		return nil, ErrNoEnv
	}
	env, ok := ctx.Value(envKey{}).(*Env)
	if !ok || env == nil {
		return nil, ErrNoEnv
	}
	return env, nil
}

// Path resolves rel against the project root. Absolute paths are returned as is.
func (e *Env) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(e.Root, rel)
}

// SectionPath returns the path of a LaTeX fragment in the sections directory.
func (e *Env) SectionPath(name string) string {
	return e.Path(filepath.Join(e.Config.Paths.SectionsDir, name))
}

// ResolveRoot turns dir (or the working directory when empty) into an
// absolute project root. Running from the scripts directory resolves to
// its parent.
func ResolveRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %q: %w", dir, err)
	}

	if filepath.Base(abs) == "scripts" {
		abs = filepath.Dir(abs)
	}
	return abs, nil
}
