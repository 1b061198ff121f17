// SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/oomol-lab/wsl-get/pkg/logger"
	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/util"
)

// Controller drives wsl.exe. Calls are never retried.
type Controller struct {
	log    *logger.Context
	runner util.Runner
	exe    string

	// configureUID writes the default uid into the distro configuration.
	// Nil where the WSL API is unavailable.
	configureUID func(ctx context.Context, instance string, uid uint32) error

	// WSLVersion is passed to --import.
	WSLVersion int
}

// New returns a Controller running wsl.exe through r.
func New(log *logger.Context, r util.Runner) *Controller {
	return &Controller{
		log:          log,
		runner:       r,
		exe:          Find(),
		configureUID: configureDefaultUID,
		WSLVersion:   types.DefaultWSLVersion,
	}
}

// Import registers instance from the tarball, storing its disk in installDir.
func (c *Controller) Import(ctx context.Context, tarball, instance, installDir string) error {
	c.log.Infof("Importing %s as %s into %s", tarball, instance, installDir)

	if c.WSLVersion == 2 {
		if build, ok := windowsBuild(); !ok {
			c.log.Warnf("Windows build %d is older than %d, WSL2 import may fail", build, minBuildNumber)
		}
	}

	if _, err := c.Exec().Run(ctx, "--import", instance, installDir, tarball, "--version", strconv.Itoa(c.WSLVersion)); err != nil {
		return fmt.Errorf("%w: %s: %w", types.ErrImportFailed, instance, err)
	}

	return nil
}

// Unregister removes instance and its disk.
func (c *Controller) Unregister(ctx context.Context, instance string) error {
	c.log.Infof("Unregistering %s", instance)

	if _, err := c.Exec().Run(ctx, "--unregister", instance); err != nil {
		return fmt.Errorf("%w: %s: %w", types.ErrUnregisterFailed, instance, err)
	}

	return nil
}

// Terminate stops a running instance.
func (c *Controller) Terminate(ctx context.Context, instance string) error {
	if _, err := c.Exec().Run(ctx, "--terminate", instance); err != nil {
		return fmt.Errorf("could not terminate distro %q: %w", instance, err)
	}

	return nil
}

// List returns registered instance names in the order wsl.exe prints them.
func (c *Controller) List(ctx context.Context) ([]string, error) {
	out, err := c.Exec().Run(ctx, "--list", "--quiet")
	if err != nil {
		if noDistributions(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("could not get distros: %w", err)
	}

	return parseList(out), nil
}

// IsRegistered reports whether instance appears in List.
func (c *Controller) IsRegistered(ctx context.Context, instance string) (bool, error) {
	distros, err := c.List(ctx)
	if err != nil {
		return false, err
	}

	for _, d := range distros {
		if strings.EqualFold(d, instance) {
			return true, nil
		}
	}

	return false, nil
}

func parseList(out string) []string {
	distros := []string{}

	scanner := bufio.NewScanner(strings.NewReader(out))
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		distros = append(distros, line)
	}

	return distros
}

// noDistributions detects the non-zero exit wsl.exe uses for an empty list.
func noDistributions(err error) bool {
	var eerr *util.ExecError
	if !errors.As(err, &eerr) {
		return false
	}

	return strings.Contains(strings.ToLower(eerr.Output()), "no installed distributions")
}
