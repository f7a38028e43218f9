package executor

import (
	"os"
	"os/exec"
	"strings"
)

// ============================================================================
// Shell Runner Interface
// ============================================================================

// ShellRunner builds and launches the shell commands attached to slides
type ShellRunner interface {
	Command(command string) *exec.Cmd
	Spawn(command string) error
}

// ============================================================================
// Executor
// ============================================================================

// Executor runs [command=...] settings through the user's shell
type Executor struct {
	shell string
	dir   string
}

// NewExecutor creates an executor running commands with shell from dir
func NewExecutor(shell, dir string) *Executor {
	if shell == "" {
		shell = "/bin/sh"
	}
	return &Executor{
		shell: shell,
		dir:   dir,
	}
}

// Shell returns the configured shell
func (e *Executor) Shell() string {
	return e.shell
}

// ============================================================================
// Command Execution
// ============================================================================

// Command returns an interactive command wired to the terminal
func (e *Executor) Command(command string) *exec.Cmd {
	cmd := exec.Command(e.shell, "-c", command)
	cmd.Dir = e.dir
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Spawn starts a command in the background without waiting for it.
// A trailing '&' is stripped.
func (e *Executor) Spawn(command string) error {
	command = strings.TrimSuffix(strings.TrimSpace(command), "&")
	cmd := exec.Command(e.shell, "-c", command)
	cmd.Dir = e.dir
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// IsBackground reports whether a slide command asks to run detached
func IsBackground(command string) bool {
	return strings.HasSuffix(strings.TrimSpace(command), "&")
}
