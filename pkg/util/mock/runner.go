// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

// Package mock provides a scripted util.Runner that never starts a process.
package mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/oomol-lab/wsl-get/pkg/util"
)

// Response is what a scripted command prints and how it exits.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Err replaces the exit error, for example to simulate a missing binary.
	Err error
}

type rule struct {
	prefix string
	resp   Response
}

// Runner records every command and answers with the most recently added rule
// whose prefix matches the command line. Unmatched commands succeed silently.
type Runner struct {
	mu        sync.Mutex
	rules     []rule
	calls     []string
	deadlines []string
}

func New() *Runner {
	return &Runner{}
}

// On scripts the response for command lines starting with prefix.
func (r *Runner) On(prefix string, resp Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{prefix: prefix, resp: resp})
	return r
}

// Calls returns the command lines seen so far, in order.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.calls...)
}

// CallsWithDeadline returns the command lines whose context had a deadline.
func (r *Runner) CallsWithDeadline() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.deadlines...)
}

// CallsWithPrefix filters Calls by prefix.
func (r *Runner) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range r.Calls() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Runner) respond(ctx context.Context, name string, args []string) (string, Response) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, line)
	if _, ok := ctx.Deadline(); ok {
		r.deadlines = append(r.deadlines, line)
	}

	if err := ctx.Err(); err != nil {
		return line, Response{ExitCode: -1, Err: err}
	}

	for i := len(r.rules) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, r.rules[i].prefix) {
			return line, r.rules[i].resp
		}
	}
	return line, Response{}
}

func failure(line string, resp Response) error {
	if resp.Err == nil && resp.ExitCode == 0 {
		return nil
	}

	err := resp.Err
	if err == nil {
		err = fmt.Errorf("exit status %d", resp.ExitCode)
	}

	return &util.ExecError{
		Command:  line,
		ExitCode: resp.ExitCode,
		Stdout:   resp.Stdout,
		Stderr:   resp.Stderr,
		Err:      err,
	}
}

func (r *Runner) Run(ctx context.Context, name string, args ...string) (*util.Result, error) {
	line, resp := r.respond(ctx, name, args)
	res := &util.Result{
		Stdout:   []byte(resp.Stdout),
		Stderr:   []byte(resp.Stderr),
		ExitCode: resp.ExitCode,
	}
	return res, failure(line, resp)
}

func (r *Runner) Stream(ctx context.Context, w io.Writer, name string, args ...string) error {
	line, resp := r.respond(ctx, name, args)
	if _, err := io.WriteString(w, resp.Stdout); err != nil {
		return errors.Join(err, failure(line, resp))
	}
	return failure(line, resp)
}

func (r *Runner) Interactive(ctx context.Context, name string, args ...string) error {
	line, resp := r.respond(ctx, name, args)
	return failure(line, resp)
}
