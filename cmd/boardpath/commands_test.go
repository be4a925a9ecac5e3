package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boardpath/boardgraph"
	"github.com/katalvlaran/boardpath/pathquery"
)

const testBoard = `
. . .
. X .
@ X .
`

func writeBoard(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoute(t *testing.T) {
	file := writeBoard(t, testBoard)
	out, _, err := run(t, "route", "--map", file, "--to", "2,0")
	require.NoError(t, err)
	assert.Equal(t, "cost: 6\n"+
		"path: (0,0) (0,1) (0,2) (1,2) (2,2) (2,1) (2,0)\n"+
		"| | |\n"+
		"| X |\n"+
		"@ X |\n", out)
}

func TestRoute_Drill(t *testing.T) {
	file := writeBoard(t, testBoard)
	out, _, err := run(t, "route", "--map", file, "--to", "2,0", "--drill")
	require.NoError(t, err)
	assert.Contains(t, out, "cost: 2\n")
}

func TestRoute_Unreachable(t *testing.T) {
	file := writeBoard(t, "@ X .")
	out, _, err := run(t, "route", "--map", file, "--to", "2,0")
	require.NoError(t, err)
	assert.Equal(t, "no path from (0,0) to (2,0) (unreachable)\n", out)
}

func TestRoute_Errors(t *testing.T) {
	file := writeBoard(t, testBoard)

	_, _, err := run(t, "route", "--map", file, "--to", "1,0")
	assert.ErrorIs(t, err, pathquery.ErrNodeNotInGraph)

	_, _, err = run(t, "route", "--map", file, "--from", "1,1", "--to", "2,0")
	assert.ErrorIs(t, err, boardgraph.ErrInvalidBoard, "robot placed on an obstacle")

	_, _, err = run(t, "route", "--map", file, "--to", "2,0", "--conn", "6")
	assert.ErrorContains(t, err, "--conn")

	_, _, err = run(t, "route", "--map", file, "--to", "2,0", "--log-level", "loud")
	assert.ErrorContains(t, err, "--log-level")

	_, _, err = run(t, "route", "--to", "2,0")
	assert.ErrorContains(t, err, "--map")

	_, _, err = run(t, "route", "--map", file)
	assert.Error(t, err, "--to is required")
}

func TestRoute_DebugLogs(t *testing.T) {
	file := writeBoard(t, testBoard)
	_, stderr, err := run(t, "route", "--map", file, "--to", "2,2", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "board loaded")
	assert.Contains(t, stderr, "size=3x3")
	assert.Contains(t, stderr, "msg=search")
}

func TestComponents(t *testing.T) {
	file := writeBoard(t, `
. X .
. X .
@ X .
`)
	out, _, err := run(t, "components", "--map", file)
	require.NoError(t, err)
	assert.Equal(t, "nodes: 6 edges: 4\nregions: 2 sizes: [3 3]\n", out)

	out, _, err = run(t, "components", "--map", file, "--drill")
	require.NoError(t, err)
	assert.Contains(t, out, "regions: 1 sizes: [9]")
}

func TestRender(t *testing.T) {
	file := writeBoard(t, "..B\n@Xw\n")
	out, _, err := run(t, "render", "--map", file)
	require.NoError(t, err)
	assert.Equal(t, ". . o\n@ X w\n", out)
}

func TestConfigFile(t *testing.T) {
	file := writeBoard(t, `
. X .
. X .
@ X .
`)
	cfg := filepath.Join(t.TempDir(), "boardpath.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("drill: true\nconn: 8\n"), 0o600))

	out, _, err := run(t, "components", "--map", file, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "regions: 1 sizes: [9]")

	// Flags win over the file.
	_, _, err = run(t, "components", "--map", file, "--config", cfg, "--conn", "5")
	assert.ErrorContains(t, err, "--conn 5")

	require.NoError(t, os.WriteFile(cfg, []byte("conn: [8"), 0o600))
	_, _, err = run(t, "components", "--map", file, "--config", cfg)
	assert.ErrorContains(t, err, "config")
}

func TestRoute_MaxSteps(t *testing.T) {
	file := writeBoard(t, testBoard)
	out, _, err := run(t, "route", "--map", file, "--to", "2,0", "--max-steps", "2")
	require.NoError(t, err)
	assert.Equal(t, "no path from (0,0) to (2,0) (budget_exceeded)\n", out)
}

// syncBuffer lets the test read output while the watch loop writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_ReplansOnChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "board.txt")
	require.NoError(t, os.WriteFile(file, []byte(testBoard), 0o600))

	var out syncBuffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"watch", "--map", file, "--to", "2,0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "tick 0\ncost: 6\n")
	}, 5*time.Second, 10*time.Millisecond)

	// Close the top row; replace the file the way editors do.
	tmp := filepath.Join(dir, "board.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(". X .\n. X .\n@ X .\n"), 0o600))
	require.NoError(t, os.Rename(tmp, file))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "no path from (0,0) to (2,0) (unreachable)")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
