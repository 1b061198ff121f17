// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

// Package container materializes a rootfs tarball from a container image by
// driving a docker compatible CLI.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/ubuntu/decorate"
	"golang.org/x/sync/errgroup"

	"github.com/oomol-lab/wsl-get/pkg/distro"
	"github.com/oomol-lab/wsl-get/pkg/logger"
	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/util"
)

const (
	containerPrefix = "wsl-get-"
	cleanupTimeout  = 30 * time.Second
)

type Fetcher struct {
	log     *logger.Context
	runner  util.Runner
	runtime string

	// Platform is passed to pull and create when set, e.g. "linux/amd64".
	Platform string
	// KeepImage leaves an image pulled by this fetch in the runtime's store.
	KeepImage bool
	// Progress receives the runtime's pull output.
	Progress io.Writer
}

// New creates a Fetcher that runs the runtime executable through r.
func New(log *logger.Context, r util.Runner, runtime string) *Fetcher {
	return &Fetcher{
		log:      log,
		runner:   r,
		runtime:  runtime,
		Progress: io.Discard,
	}
}

// Fetch pulls ref and writes its flattened, gzip compressed filesystem to
// dest. A temporary container is always removed before Fetch returns.
func (f *Fetcher) Fetch(ctx context.Context, ref distro.Reference, dest string) (err error) {
	defer decorate.OnError(&err, "could not fetch %s", ref)

	image := ref.Image()

	existed := f.imageExists(ctx, image)

	f.log.Infof("Pulling image %s", image)
	if err := f.runner.Stream(ctx, f.Progress, f.runtime, f.platformArgs("pull", image)...); err != nil {
		return classify(err)
	}

	if !existed && !f.KeepImage {
		defer f.removeImage(image)
	}

	id, err := f.createContainer(ctx, image)
	if err != nil {
		return err
	}
	defer f.removeContainer(id)

	return f.export(ctx, id, dest)
}

func (f *Fetcher) platformArgs(sub string, rest ...string) []string {
	args := []string{sub}
	if f.Platform != "" {
		args = append(args, "--platform", f.Platform)
	}
	return append(args, rest...)
}

func (f *Fetcher) imageExists(ctx context.Context, image string) bool {
	_, err := f.runner.Run(ctx, f.runtime, "image", "inspect", "--format", "{{.Id}}", image)
	return err == nil
}

func (f *Fetcher) createContainer(ctx context.Context, image string) (string, error) {
	name := containerPrefix + uuid.NewString()

	r, err := f.runner.Run(ctx, f.runtime, f.platformArgs("create", "--name", name, image)...)
	if err != nil {
		return "", classify(err)
	}

	id := strings.TrimSpace(string(r.Stdout))
	if id == "" {
		// Some runtimes print nothing; the name identifies the container as well.
		id = name
	}

	f.log.Infof("Created temporary container %s", id)
	return id, nil
}

// export streams `<runtime> export` through gzip into a temporary sibling of
// dest, then renames it into place.
func (f *Fetcher) export(ctx context.Context, id, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("%w: failed to create folder for %s: %v", types.ErrIOFailed, dest, err)
	}

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: failed to create file %s: %v", types.ErrIOFailed, tmp, err)
	}

	done := false
	defer func() {
		_ = out.Close()
		if !done {
			_ = util.RemoveIfExists(tmp)
		}
	}()

	f.log.Infof("Exporting container %s to %s", id, dest)

	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := f.runner.Stream(gctx, pw, f.runtime, "export", id)
		_ = pw.CloseWithError(err)
		return classify(err)
	})

	g.Go(func() error {
		zw, err := gzip.NewWriterLevel(out, gzip.BestSpeed)
		if err != nil {
			_ = pr.CloseWithError(err)
			return fmt.Errorf("%w: failed to create gzip writer: %v", types.ErrIOFailed, err)
		}

		if _, err := io.Copy(zw, pr); err != nil {
			_ = pr.CloseWithError(err)
			var eerr *util.ExecError
			if errors.As(err, &eerr) {
				// The export side reports its own failure.
				return nil
			}
			return fmt.Errorf("%w: failed to write %s: %v", types.ErrIOFailed, tmp, err)
		}

		if err := zw.Close(); err != nil {
			return fmt.Errorf("%w: failed to flush %s: %v", types.ErrIOFailed, tmp, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %v", types.ErrIOFailed, tmp, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("%w: failed to rename file: %v", types.ErrIOFailed, err)
	}

	done = true
	return nil
}

// cleanupContext outlives a cancelled invocation so cleanup still runs.
func cleanupContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cleanupTimeout)
}

func (f *Fetcher) removeContainer(id string) {
	ctx, cancel := cleanupContext()
	defer cancel()

	if _, err := f.runner.Run(ctx, f.runtime, "rm", "--force", id); err != nil {
		f.log.Warnf("Failed to remove temporary container %s: %v", id, err)
		return
	}
	f.log.Infof("Removed temporary container %s", id)
}

func (f *Fetcher) removeImage(image string) {
	ctx, cancel := cleanupContext()
	defer cancel()

	if _, err := f.runner.Run(ctx, f.runtime, "rmi", image); err != nil {
		f.log.Warnf("Failed to remove image %s: %v", image, err)
		return
	}
	f.log.Infof("Removed image %s", image)
}

// classify tags runtime failures as fetch failures unless the runtime is missing.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrDependencyMissing) || errors.Is(err, types.ErrIOFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", types.ErrFetchFailed, err)
}
