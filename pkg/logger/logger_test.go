package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oomol-lab/wsl-get/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestNewRotatesLogs(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 3; i++ {
		log, err := logger.New(dir, "wsl-get")
		require.NoError(t, err, "New should create a log file")
		log.Infof("run %d", i)
		log.Close()
	}

	latest, err := os.ReadFile(filepath.Join(dir, "wsl-get.log"))
	require.NoError(t, err)
	require.Contains(t, string(latest), "[INFO]: run 2")

	oldest, err := os.ReadFile(filepath.Join(dir, "wsl-get.3.log"))
	require.NoError(t, err)
	require.Contains(t, string(oldest), "[INFO]: run 0")
}

func TestPathAndClose(t *testing.T) {
	dir := t.TempDir()

	log, err := logger.New(dir, "wsl-get")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "wsl-get.log"), log.Path())

	log.Info("before close")
	log.Close()
	logger.CloseAll()

	got, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	require.Contains(t, string(got), "[INFO]: before close")
}

func TestLevelsAndMirror(t *testing.T) {
	var out, mirror bytes.Buffer
	log := logger.NewWriter(&out)
	log.MirrorTo(&mirror)

	log.Info("hello")
	log.Warnf("careful %s", "now")
	log.Error("broken")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "[INFO]: hello")
	require.Contains(t, lines[1], "[WARN]: careful now")
	require.Contains(t, lines[2], "[ERROR]: broken")
	require.Equal(t, out.String(), mirror.String(), "mirror should receive the same lines")
	require.Empty(t, log.Path())
}
