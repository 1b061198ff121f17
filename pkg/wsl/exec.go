// SPDX-FileCopyrightText: 2025 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"context"
	"errors"

	"github.com/oomol-lab/wsl-get/pkg/util"
)

// ExecContext builds one wsl.exe invocation, optionally inside an instance.
type ExecContext struct {
	c *Controller

	distro string
	user   string
}

func (c *Controller) Exec() *ExecContext {
	return &ExecContext{
		c: c,
	}
}

func (e *ExecContext) SetDistro(name string) *ExecContext {
	e.distro = name
	return e
}

func (e *ExecContext) SetUser(name string) *ExecContext {
	e.user = name
	return e
}

func (e *ExecContext) args(args []string) []string {
	var newArgs []string
	if e.distro != "" {
		newArgs = append(newArgs, "-d", e.distro)
	}
	if e.user != "" {
		newArgs = append(newArgs, "-u", e.user)
	}
	if e.distro != "" {
		newArgs = append(newArgs, "--")
	}
	return append(newArgs, args...)
}

// Run returns stdout. Output of wsl.exe itself is decoded, output of a
// command inside a distro is returned byte for byte. On failure the returned
// *util.ExecError carries the decoded diagnostics of wsl.exe.
func (e *ExecContext) Run(ctx context.Context, args ...string) (string, error) {
	r, err := e.c.runner.Run(ctx, e.c.exe, e.args(args)...)
	if err != nil {
		return "", decodeExecError(err)
	}

	if e.distro != "" {
		return string(r.Stdout), nil
	}
	return decodeOutput(r.Stdout), nil
}

// Interactive runs with the terminal attached, e.g. for passwd.
func (e *ExecContext) Interactive(ctx context.Context, args ...string) error {
	return e.c.runner.Interactive(ctx, e.c.exe, e.args(args)...)
}

func decodeExecError(err error) error {
	var eerr *util.ExecError
	if !errors.As(err, &eerr) {
		return err
	}

	return &util.ExecError{
		Command:  eerr.Command,
		ExitCode: eerr.ExitCode,
		Stdout:   decodeOutput([]byte(eerr.Stdout)),
		Stderr:   decodeOutput([]byte(eerr.Stderr)),
		Err:      eerr.Err,
	}
}
