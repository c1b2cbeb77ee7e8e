package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Defaults for the root commit.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultBranch        = "main"
	DefaultCommitMessage = "initial commit"

	fallbackName  = "stackgen"
	fallbackEmail = "stackgen@localhost"
)

// Initializer turns a directory into a git repository with one commit
// holding every file.
type Initializer interface {
	Init(ctx context.Context, dir string) error
}

// Compile-time interface compliance check.
var _ Initializer = (*systemGit)(nil)

// systemGit implements Initializer using the system git binary.
type systemGit struct {
	branch  string
	message string
	timeout time.Duration
	retry   RetryPolicy
	logger  *slog.Logger
}

// Option configures the system initializer.
type Option func(*systemGit)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *systemGit) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithCommitMessage overrides DefaultCommitMessage.
func WithCommitMessage(msg string) Option {
	return func(g *systemGit) {
		if msg != "" {
			g.message = msg
		}
	}
}

// WithTimeout bounds the whole init sequence.
func WithTimeout(d time.Duration) Option {
	return func(g *systemGit) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRetryPolicy replaces DefaultRetryPolicy for the staging and commit steps.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(g *systemGit) {
		g.retry = p
	}
}

// @MX:ANCHOR: [AUTO] Entry point for repository creation; the git pipeline stage holds this value.
// @MX:REASON: [AUTO] fan_in=3, used by the CLI wiring, the pipeline defaults and tests
// NewInitializer returns an Initializer backed by the system git binary.
func NewInitializer(opts ...Option) Initializer {
	g := &systemGit{
		branch:  DefaultBranch,
		message: DefaultCommitMessage,
		timeout: DefaultTimeout,
		retry:   DefaultRetryPolicy,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("module", "git")
	return g
}

// Init runs git init, points HEAD at the default branch, stages every file
// and records the root commit. When no identity is configured a fallback
// author is passed on the command line.
func (g *systemGit) Init(ctx context.Context, dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path %s: %w", dir, err)
	}
	if _, err := os.Stat(filepath.Join(absDir, ".git")); err == nil {
		return fmt.Errorf("init %s: %w", absDir, ErrAlreadyRepository)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if _, err := execGit(ctx, absDir, "init", "--quiet"); err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	if _, err := execGit(ctx, absDir, "symbolic-ref", "HEAD", "refs/heads/"+g.branch); err != nil {
		return fmt.Errorf("set default branch: %w", err)
	}
	if err := g.run(ctx, absDir, "add", "-A"); err != nil {
		return fmt.Errorf("stage files: %w", err)
	}

	commit := []string{"-c", "commit.gpgsign=false"}
	if !hasIdentity(ctx, absDir) {
		g.logger.Debug("no git identity configured, using fallback author")
		commit = append(commit, "-c", "user.name="+fallbackName, "-c", "user.email="+fallbackEmail)
	}
	commit = append(commit, "commit", "--quiet", "--no-verify", "-m", g.message)
	if err := g.run(ctx, absDir, commit...); err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	g.logger.Debug("repository initialized", "dir", absDir, "branch", g.branch)
	return nil
}

// run executes a mutating git step, retrying while the index is locked.
func (g *systemGit) run(ctx context.Context, dir string, args ...string) error {
	attempt := 0
	return retryLocked(ctx, g.retry, func() error {
		if attempt++; attempt > 1 {
			g.logger.Debug("index locked, retrying", "args", args, "attempt", attempt)
		}
		_, err := execGit(ctx, dir, args...)
		return err
	})
}

func hasIdentity(ctx context.Context, dir string) bool {
	name, err := execGit(ctx, dir, "config", "user.name")
	if err != nil || name == "" {
		return false
	}
	email, err := execGit(ctx, dir, "config", "user.email")
	return err == nil && email != ""
}

// execGit executes a git command in the given directory and returns stdout.
// It sets GIT_TERMINAL_PROMPT=0 and LC_ALL=C for consistent behavior.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("system git lookup: %w", ErrSystemGitNotFound)
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"LC_ALL=C",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if len(args) > 0 {
			return "", fmt.Errorf("git %s: %s: %w", args[0], stderrStr, err)
		}
		return "", fmt.Errorf("git: %s: %w", stderrStr, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}
