// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ubuntu/decorate"

	"github.com/oomol-lab/wsl-get/pkg/types"
)

// cleanupTimeout bounds the rollback, which runs after ctx may be cancelled.
const cleanupTimeout = 30 * time.Second

var (
	userNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_-]*[$]?$`)
	shells     = []string{"/usr/bin/bash", "/bin/bash", "/usr/bin/sh", "/bin/sh"}
	groups     = []string{"wheel", "sudo"}
)

// ValidateUserName rejects names useradd would refuse or that are unsafe to
// pass through a shell.
func ValidateUserName(user string) error {
	if len(user) > 32 || !userNameRe.MatchString(user) {
		return fmt.Errorf("invalid user name %q", user)
	}
	return nil
}

// SetDefaultUser makes user the login user of instance. The user must exist.
// The resolved uid goes to the distro configuration API when the host offers
// it, otherwise wsl.exe --manage or /etc/wsl.conf carries the name.
func (c *Controller) SetDefaultUser(ctx context.Context, instance, user string) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", types.ErrSetDefaultUserFailed, instance, err)
		}
	}()

	if err := ValidateUserName(user); err != nil {
		return err
	}

	uid, err := c.lookupUID(ctx, instance, user)
	if err != nil {
		return err
	}
	c.log.Infof("User %s has uid %d in %s", user, uid, instance)

	if c.configureUID != nil {
		cerr := c.configureUID(ctx, instance, uid)
		if cerr == nil {
			return nil
		}
		c.log.Warnf("Failed to set default uid through the WSL API: %v", cerr)
	}

	v, verr := c.Version(ctx)
	if verr == nil && v.GreaterThanOrEqual(manageMinVersion) {
		_, err := c.Exec().Run(ctx, "--manage", instance, "--set-default-user", user)
		return err
	}
	if verr != nil {
		c.log.Warnf("Falling back to %s: %v", wslConfPath, verr)
	}

	return c.writeDefaultUser(ctx, instance, user)
}

func (c *Controller) lookupUID(ctx context.Context, instance, user string) (uint32, error) {
	out, err := c.Exec().SetDistro(instance).SetUser("root").Run(ctx, "id", "-u", user)
	if err != nil {
		return 0, fmt.Errorf("user %q not found: %w", user, err)
	}

	uid, err := strconv.ParseUint(strings.TrimSpace(out), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected uid %q for user %q", strings.TrimSpace(out), user)
	}
	return uint32(uid), nil
}

// writeDefaultUser records the user in /etc/wsl.conf and terminates the
// instance so the next launch reads it.
func (c *Controller) writeDefaultUser(ctx context.Context, instance, user string) (err error) {
	defer decorate.OnError(&err, "could not update %s", wslConfPath)

	root := c.Exec().SetDistro(instance).SetUser("root")

	current, err := root.Run(ctx, "sh", "-c", fmt.Sprintf("cat %s 2>/dev/null || true", wslConfPath))
	if err != nil {
		return err
	}

	updated := setConfKey(current, "user", "default", user)
	encoded := base64.StdEncoding.EncodeToString([]byte(updated))

	if _, err := root.Run(ctx, "sh", "-c", fmt.Sprintf("echo %s | base64 -d > %s", encoded, wslConfPath)); err != nil {
		return err
	}

	return c.Terminate(ctx, instance)
}

// CreateUser adds a login user with a home directory, puts it in the wheel and
// sudo groups when they exist, and asks for its password on the terminal.
// The user is deleted again when a later step fails.
func (c *Controller) CreateUser(ctx context.Context, instance, user string) (err error) {
	defer decorate.OnError(&err, "could not create user %q in %s", user, instance)

	if err := ValidateUserName(user); err != nil {
		return err
	}

	root := c.Exec().SetDistro(instance).SetUser("root")

	args := []string{"/usr/sbin/useradd", "-m"}
	if shell := c.lookupShell(ctx, instance); shell != "" {
		args = append(args, "-s", shell)
	}
	args = append(args, user)

	if _, err := root.Run(ctx, args...); err != nil {
		return err
	}

	defer func() {
		if err == nil {
			return
		}
		cctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		if _, derr := root.Run(cctx, "/usr/sbin/userdel", "--remove", user); derr != nil {
			c.log.Warnf("Failed to remove user %s after error: %v", user, derr)
		}
	}()

	for _, g := range groups {
		script := fmt.Sprintf("getent group %[1]s > /dev/null && /usr/sbin/usermod -aG %[1]s %[2]s || true", g, user)
		if _, err := root.Run(ctx, "sh", "-c", script); err != nil {
			return err
		}
	}

	if err := root.Interactive(ctx, "passwd", user); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	return nil
}

func (c *Controller) lookupShell(ctx context.Context, instance string) string {
	for _, s := range shells {
		if _, err := c.Exec().SetDistro(instance).SetUser("root").Run(ctx, "test", "-e", s); err == nil {
			return s
		}
	}
	return ""
}
