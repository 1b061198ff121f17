// SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/oomol-lab/wsl-get/pkg/logger"
	"github.com/oomol-lab/wsl-get/pkg/types"
)

// Result is the captured output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner starts external commands. Implementations block until the command exits.
type Runner interface {
	// Run captures stdout and stderr.
	Run(ctx context.Context, name string, args ...string) (*Result, error)
	// Stream copies stdout into w while capturing stderr.
	Stream(ctx context.Context, w io.Writer, name string, args ...string) error
	// Interactive attaches the current process's standard streams.
	Interactive(ctx context.Context, name string, args ...string) error
}

// ExecError reports a command that could not start or exited non-zero.
type ExecError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	out := strings.TrimSpace(strings.TrimSpace(e.Stderr) + " " + strings.TrimSpace(e.Stdout))
	if out == "" {
		return fmt.Sprintf("`%s` failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("`%s` failed: %s (%v)", e.Command, out, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Output returns the diagnostic text the tool printed, stderr first.
func (e *ExecError) Output() string {
	return strings.TrimSpace(e.Stderr + "\n" + e.Stdout)
}

type Exec struct {
	log *logger.Context
	env []string
}

func NewExec(log *logger.Context) *Exec {
	return &Exec{
		log: log,
	}
}

// WithEnv returns a copy of e that appends env to the inherited environment.
func (e *Exec) WithEnv(env ...string) *Exec {
	return &Exec{
		log: e.log,
		env: append(append([]string{}, e.env...), env...),
	}
}

func (e *Exec) command(ctx context.Context, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = sysProcAttr()
	if len(e.env) != 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	e.log.Infof("Running command: %s %s", name, strings.Join(args, " "))
	return cmd
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := e.command(ctx, name, args)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	r := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode(cmd, err),
	}

	if err != nil {
		return r, newExecError(name, args, r, err)
	}

	return r, nil
}

func (e *Exec) Stream(ctx context.Context, w io.Writer, name string, args ...string) error {
	cmd := e.command(ctx, name, args)
	var stderr bytes.Buffer
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return newExecError(name, args, &Result{Stderr: stderr.Bytes(), ExitCode: exitCode(cmd, err)}, err)
	}

	return nil
}

func (e *Exec) Interactive(ctx context.Context, name string, args ...string) error {
	cmd := e.command(ctx, name, args)
	cmd.SysProcAttr = nil
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return newExecError(name, args, &Result{ExitCode: exitCode(cmd, err)}, err)
	}

	return nil
}

func newExecError(name string, args []string, r *Result, err error) *ExecError {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		err = fmt.Errorf("%w: %w", types.ErrDependencyMissing, err)
	}

	return &ExecError{
		Command:  strings.TrimSpace(name + " " + strings.Join(args, " ")),
		ExitCode: r.ExitCode,
		Stdout:   string(r.Stdout),
		Stderr:   string(r.Stderr),
		Err:      err,
	}
}

func exitCode(cmd *exec.Cmd, err error) int {
	var eerr *exec.ExitError
	if errors.As(err, &eerr) {
		return eerr.ExitCode()
	}
	if err != nil || cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}

// LookPath reports ErrDependencyMissing when name is not an executable on PATH.
func LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", types.ErrDependencyMissing, name, err)
	}
	return p, nil
}
