package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--word.width=4", "--sweep"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "running fill checks")
}

func TestRunAll(t *testing.T) {
	var stdout, stderr bytes.Buffer
	metricsFile := filepath.Join(t.TempDir(), "memfill.prom")

	code := run([]string{"--word.width=8", "--all", "--strict", "--metrics.file=" + metricsFile}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "Unaligned FillWords32 check failed on byte 1.")
	require.Contains(t, lines[1], "Unaligned FillWords check failed on byte 1.")

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(metrics), `memfill_check_failures_total{filler="FillWords32",probe="Unaligned"} 1`)
}

func TestRunBadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--word.width=3"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "failed parsing config")
}
