// SPDX-FileCopyrightText: 2024 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const logCount = 5

var (
	csMu sync.Mutex
	cs   = make([]*Context, 0, 2)
)

// New creates a new log file named n in directory p, rotating older ones
func New(p, n string) (*Context, error) {
	c := &Context{
		path: p,
		name: n,
	}
	if err := c.createLog(); err != nil {
		return nil, err
	}

	csMu.Lock()
	cs = append(cs, c)
	csMu.Unlock()

	return c, nil
}

// NewWriter creates a logger that writes to w without touching the filesystem
func NewWriter(w io.Writer) *Context {
	return &Context{
		syncWriter: syncWriter{
			w: w,
		},
	}
}

// Discard returns a logger that drops every message
func Discard() *Context {
	return NewWriter(io.Discard)
}

func CloseAll() {
	csMu.Lock()
	defer csMu.Unlock()

	for _, c := range cs {
		if c.file != nil {
			_ = c.file.Sync()
			_ = c.file.Close()
		}
	}
	cs = cs[:0]
}

type syncWriter struct {
	m       sync.Mutex
	w       io.Writer
	file    *os.File
	console io.Writer
}

func (w *syncWriter) write(b []byte) (n int, err error) {
	w.m.Lock()
	defer w.m.Unlock()

	if w.console != nil {
		_, _ = w.console.Write(b)
	}
	return w.w.Write(b)
}

func (w *syncWriter) sync() {
	if w.file != nil {
		_ = w.file.Sync()
	}
}

type Context struct {
	path string
	name string
	syncWriter
}

func (c *Context) createLog() error {
	if err := os.MkdirAll(c.path, 0755); err != nil {
		return fmt.Errorf("cannot create log folder %s: %v", c.path, err)
	}

	for i := logCount - 1; i > 0; i-- {
		logName := c.name
		if i > 1 {
			logName += "." + strconv.Itoa(i)
		}
		logPath := filepath.Join(c.path, logName+".log")

		if _, err := os.Stat(logPath); err == nil {
			err := os.Rename(logPath, filepath.Join(c.path, c.name+"."+strconv.Itoa(i+1)+".log"))
			if err != nil {
				return fmt.Errorf("cannot rename log file: %v", err)
			}
		}

		if i == 1 {
			f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR|os.O_TRUNC, 0644)
			if err != nil {
				return fmt.Errorf("cannot open log file: %v", err)
			}
			c.file = f
			c.w = f
		}
	}
	return nil
}

// Path returns the active log file, or an empty string for writer-backed loggers
func (c *Context) Path() string {
	if c.file == nil {
		return ""
	}
	return c.file.Name()
}

// MirrorTo copies every subsequent line to w as well
func (c *Context) MirrorTo(w io.Writer) {
	c.m.Lock()
	c.console = w
	c.m.Unlock()
}

func (c *Context) base(t, message string) {
	d := time.Now().Format("2006-01-02 15:04:05.000")
	_, _ = c.write([]byte(fmt.Sprintf("%s [%s]: %s\n", d, t, message)))
}

func (c *Context) Info(message string) {
	c.base("INFO", message)
}

func (c *Context) Infof(format string, args ...any) {
	c.Info(fmt.Sprintf(format, args...))
}

func (c *Context) Warn(message string) {
	c.base("WARN", message)
	c.sync()
}

func (c *Context) Warnf(format string, args ...any) {
	c.Warn(fmt.Sprintf(format, args...))
}

func (c *Context) Error(message string) {
	c.base("ERROR", message)
	c.sync()
}

func (c *Context) Errorf(format string, args ...any) {
	c.Error(fmt.Sprintf(format, args...))
}

func (c *Context) Close() {
	if c.file != nil {
		_ = c.file.Close()
	}

	csMu.Lock()
	defer csMu.Unlock()

	for i, context := range cs {
		if context == c {
			cs = append(cs[:i], cs[i+1:]...)
			break
		}
	}
}
