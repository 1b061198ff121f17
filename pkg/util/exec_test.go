//go:build !windows

package util_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oomol-lab/wsl-get/pkg/logger"
	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestExecRun(t *testing.T) {
	testCases := map[string]struct {
		script string

		wantStdout string
		wantStderr string
		wantCode   int
		wantErr    bool
	}{
		"Success captures stdout":       {script: "echo hello", wantStdout: "hello\n"},
		"Success captures stderr":       {script: "echo oops >&2", wantStderr: "oops\n"},
		"Error on non-zero exit code":   {script: "echo bad >&2; exit 3", wantStderr: "bad\n", wantCode: 3, wantErr: true},
		"Error keeps stdout of failure": {script: "echo partial; exit 1", wantStdout: "partial\n", wantCode: 1, wantErr: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			e := util.NewExec(logger.Discard())

			r, err := e.Run(context.Background(), "sh", "-c", tc.script)
			require.NotNil(t, r, "Run should always return a result")
			require.Equal(t, tc.wantStdout, string(r.Stdout))
			require.Equal(t, tc.wantStderr, string(r.Stderr))
			require.Equal(t, tc.wantCode, r.ExitCode)

			if !tc.wantErr {
				require.NoError(t, err)
				return
			}

			var eerr *util.ExecError
			require.ErrorAs(t, err, &eerr)
			require.Equal(t, tc.wantCode, eerr.ExitCode)
			require.Contains(t, err.Error(), "sh -c")
		})
	}
}

func TestExecEnv(t *testing.T) {
	e := util.NewExec(logger.Discard()).WithEnv("WSL_GET_TEST_VALUE=42")

	r, err := e.Run(context.Background(), "sh", "-c", `echo "$WSL_GET_TEST_VALUE"`)
	require.NoError(t, err)
	require.Equal(t, "42\n", string(r.Stdout))
}

func TestExecStream(t *testing.T) {
	e := util.NewExec(logger.Discard())

	var out bytes.Buffer
	require.NoError(t, e.Stream(context.Background(), &out, "sh", "-c", "printf abc"))
	require.Equal(t, "abc", out.String())

	err := e.Stream(context.Background(), &out, "sh", "-c", "echo denied >&2; exit 2")
	var eerr *util.ExecError
	require.ErrorAs(t, err, &eerr)
	require.Equal(t, "denied", eerr.Output())
}

func TestExecMissingBinary(t *testing.T) {
	e := util.NewExec(logger.Discard())

	_, err := e.Run(context.Background(), "wsl-get-no-such-binary")
	require.ErrorIs(t, err, types.ErrDependencyMissing)

	_, err = util.LookPath("wsl-get-no-such-binary")
	require.ErrorIs(t, err, types.ErrDependencyMissing)
}

func TestExecCancel(t *testing.T) {
	e := util.NewExec(logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err, "a cancelled context must stop the command")
}

func TestRemoveIfExists(t *testing.T) {
	p := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0600))

	require.NoError(t, util.RemoveIfExists(p))
	require.Error(t, util.Exists(p))
	require.NoError(t, util.RemoveIfExists(p), "removing a missing file is not an error")
}

func TestSanitizeName(t *testing.T) {
	require.Equal(t, "library-ubuntu", util.SanitizeName("library/ubuntu"))
	require.Equal(t, "alpine", util.SanitizeName("alpine"))
}
