package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore points the CLI at a fresh JSON file and returns its path.
func setupStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "book.json")
	t.Setenv("FOODWHERE_STORAGE_DRIVER", "file")
	t.Setenv("FOODWHERE_STORAGE_PATH", path)
	t.Setenv("FOODWHERE_LOG_LEVEL", "error")
	return path
}

func invoke(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestFirstRunSavesSampleData(t *testing.T) {
	path := setupStore(t)
	out, _, code := invoke(t, "stall", "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "1. Alex Chicken Rice")
	assert.Contains(t, out, "4 stalls listed!")

	_, err := os.Stat(path)
	require.NoError(t, err, "sample data should be saved on first run")
}

func TestStallLifecyclePersists(t *testing.T) {
	setupStore(t)

	out, _, code := invoke(t, "stall", "add", "-n", "Amy Bee", "-a", "Blk 123", "-d", "cheap")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "New stall added: Amy Bee")

	_, errOut, code := invoke(t, "stall", "add", "-n", "Amy Bee", "-a", "Elsewhere")
	assert.Equal(t, 1, code)
	assert.Equal(t, msgDuplicateStall+"\n", errOut)

	out, _, code = invoke(t, "stall", "edit", "5", "-n", "Amy Bee Two")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Edited Stall: Amy Bee Two")

	_, errOut, code = invoke(t, "stall", "edit", "5")
	assert.Equal(t, 1, code)
	assert.Equal(t, msgNotEdited+"\n", errOut)

	out, _, code = invoke(t, "stall", "find", "two")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "1. Amy Bee Two")
	assert.Contains(t, out, "1 stalls listed!")

	out, _, code = invoke(t, "stall", "delete", "1", "--find", "two")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Deleted Stall: Amy Bee Two")

	_, errOut, code = invoke(t, "stall", "delete", "9")
	assert.Equal(t, 1, code)
	assert.Equal(t, msgBadStallIndex+"\n", errOut)
}

func TestReviewLifecycleAndSort(t *testing.T) {
	setupStore(t)

	out, _, code := invoke(t, "review", "add", "1", "--find", "kuey", "-D", "1/10/2022", "-c", "Smoky", "-r", "3")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "New review added: Char Char Kuey Tiao")

	// Reviews are rebuilt in stall order on every load, so the new review is second.
	out, _, code = invoke(t, "review", "edit", "2", "-r", "1", "--detail=")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Edited Review: Char Char Kuey Tiao")
	assert.Contains(t, out, "Rating: 1")

	out, _, code = invoke(t, "sort", "reviews", "Rating")
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "1. Char Char Kuey Tiao"), lines[0])
	assert.Equal(t, "The review list is now sorted by rating", lines[3])

	_, errOut, code := invoke(t, "sort", "stalls", "rating")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "rating")

	out, _, code = invoke(t, "review", "delete", "1", "--find", "kuey")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Deleted Review: Char Char Kuey Tiao")

	out, _, code = invoke(t, "review", "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "2 reviews listed!")
}

func TestSampleCommandResets(t *testing.T) {
	setupStore(t)
	_, _, code := invoke(t, "stall", "delete", "1")
	require.Equal(t, 0, code)

	out, _, code := invoke(t, "sample")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "4 stalls, 2 reviews")
}

func TestInvalidDocumentAbortsStartup(t *testing.T) {
	path := setupStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"stalls":[{"name":"","address":"Blk 1"}]}`), 0o600))

	_, errOut, code := invoke(t, "stall", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "stalls[0].name")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name":""`, "invalid data must not be overwritten")
}

func TestMetricsFile(t *testing.T) {
	setupStore(t)
	metrics := filepath.Join(t.TempDir(), "foodwhere.prom")
	_, _, code := invoke(t, "--metrics-file", metrics, "stall", "delete", "2")
	require.Equal(t, 0, code)

	b, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(b), `foodwhere_operations_total{op="delete_stall",result="success"} 1`)
	assert.Contains(t, string(b), "foodwhere_stalls 3")
}

func TestParseIndex(t *testing.T) {
	for _, raw := range []string{"0", "-2", "x", ""} {
		_, err := parseIndex(raw)
		assert.Error(t, err, raw)
	}
	i, err := parseIndex(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}
