package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xschemadev/urlfetch/config"
	"github.com/xschemadev/urlfetch/ui"
)

const sampleInput = "[click](http://foo.com/x)\nvisit http://bar.com/y now\n"

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("commands are written for sh")
	}
}

func TestRunExecuteInLineOrder(t *testing.T) {
	requireShell(t)
	input := writeInput(t, sampleInput)

	var buf bytes.Buffer
	summary, err := Run(context.Background(), config.Config{
		Input:   input,
		Execute: "echo",
		Verbose: true,
	}, ui.New(&buf, true))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Found)
	assert.Equal(t, 2, summary.Executed)
	assert.Zero(t, summary.Failed)
	assert.False(t, summary.Truncated)

	out := buf.String()
	first := strings.Index(out, "Executing: echo http://foo.com/x")
	second := strings.Index(out, "Executing: echo http://bar.com/y")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)

	assert.Equal(t, sampleInput, readFile(t, input), "input must be untouched without --zero")
}

func TestRunAppendAndZero(t *testing.T) {
	input := writeInput(t, sampleInput)
	dest := filepath.Join(t.TempDir(), "seen.txt")

	summary, err := Run(context.Background(), config.Config{
		Input:    input,
		AppendTo: dest,
		Zero:     true,
	}, ui.Discard())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Appended)
	assert.True(t, summary.Truncated)
	assert.Equal(t, "http://foo.com/x\r\nhttp://bar.com/y\r\n", readFile(t, dest))
	assert.Empty(t, readFile(t, input))
}

func TestRunZeroAfterExecute(t *testing.T) {
	requireShell(t)
	input := writeInput(t, sampleInput)

	summary, err := Run(context.Background(), config.Config{
		Input:   input,
		Execute: "true",
		Zero:    true,
	}, ui.Discard())
	require.NoError(t, err)

	assert.True(t, summary.Truncated)
	assert.Empty(t, readFile(t, input))
}

func TestRunNothingToDo(t *testing.T) {
	input := writeInput(t, sampleInput)

	var buf bytes.Buffer
	summary, err := Run(context.Background(), config.Config{
		Input: input,
		Zero:  true,
	}, ui.New(&buf, false))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Nothing done with urls, consider using --execute or --appendTo")
	assert.False(t, summary.Truncated, "--zero without an action must not empty the input")
	assert.Equal(t, sampleInput, readFile(t, input))
}

func TestRunFiltersBeforeActing(t *testing.T) {
	input := writeInput(t, strings.Join([]string{
		"http://x/?a=1&b=2",
		"[m](http://y/p?utm_source=feed&id=7)",
		"broken http://[::1 link",
	}, "\n"))
	dest := filepath.Join(t.TempDir(), "out.txt")

	summary, err := Run(context.Background(), config.Config{
		Input:    input,
		AppendTo: dest,
		Exclude:  []string{"b", "utm_source"},
	}, ui.Discard())
	require.NoError(t, err)

	assert.Equal(t, "http://x/?a=1\r\nhttp://y/p?id=7\r\n", readFile(t, dest))
	assert.Equal(t, 2, summary.Appended)
}

func TestRunCommandFailuresDoNotAbort(t *testing.T) {
	requireShell(t)
	input := writeInput(t, sampleInput)
	dest := filepath.Join(t.TempDir(), "out.txt")

	var buf bytes.Buffer
	summary, err := Run(context.Background(), config.Config{
		Input:    input,
		Execute:  "false",
		AppendTo: dest,
		Zero:     true,
	}, ui.New(&buf, false))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 2, summary.Appended)
	assert.True(t, summary.Truncated)
	assert.Contains(t, buf.String(), "Command failed: false http://foo.com/x")
	assert.Equal(t, config.ExitOK, config.ExitCode(err))
}

func TestRunUnique(t *testing.T) {
	input := writeInput(t, "http://a.com\nhttp://a.com http://b.com\n")
	dest := filepath.Join(t.TempDir(), "out.txt")

	_, err := Run(context.Background(), config.Config{Input: input, AppendTo: dest, Unique: true}, ui.Discard())
	require.NoError(t, err)
	assert.Equal(t, "http://a.com\r\nhttp://b.com\r\n", readFile(t, dest))
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Config
		want int
	}{
		{"missing input flag", config.Config{}, config.ExitUsage},
		{"bad cwd", config.Config{Input: writeInput(t, ""), Cwd: filepath.Join(dir, "nope")}, config.ExitUsage},
		{"missing input file", config.Config{Input: filepath.Join(dir, "nope.txt"), AppendTo: filepath.Join(dir, "o")}, config.ExitInputFailed},
		{"input is a directory", config.Config{Input: dir, AppendTo: filepath.Join(dir, "o")}, config.ExitInputFailed},
		{"unwritable append", config.Config{Input: writeInput(t, "http://a.com"), AppendTo: filepath.Join(dir, "x", "y")}, config.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.cfg, ui.Discard())
			require.Error(t, err)
			assert.Equal(t, tt.want, config.ExitCode(err))
		})
	}
}

func TestRunMissingInputTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	_, err := Run(context.Background(), config.Config{
		Input:    filepath.Join(dir, "missing.txt"),
		AppendTo: dest,
	}, ui.Discard())
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSummaryString(t *testing.T) {
	s := Summary{Found: 3, Skipped: 1, Executed: 2, Failed: 1, Appended: 2, Truncated: true}
	assert.Equal(t, "3 URLs found, 1 skipped, 2 executed (1 failed), 2 appended, input emptied", s.String())
	assert.Equal(t, "1 URL found", Summary{Found: 1}.String())
}

func TestRunInterruptedLeavesInputUntouched(t *testing.T) {
	requireShell(t)
	input := writeInput(t, "http://a.com\n")
	dest := filepath.Join(t.TempDir(), "out.txt")

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(300*time.Millisecond, cancel)

	summary, err := Run(ctx, config.Config{
		Input:    input,
		Execute:  "sleep 5;",
		AppendTo: dest,
		Zero:     true,
	}, ui.Discard())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotEqual(t, config.ExitOK, config.ExitCode(err))

	assert.False(t, summary.Truncated)
	assert.Equal(t, "http://a.com\n", readFile(t, input))
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "interrupted run must not append")
}
