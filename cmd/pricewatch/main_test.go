package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMain returns a Main backed by a temp-dir database so state survives
// across Run invocations within a test.
func newMain(t *testing.T) *Main {
	t.Helper()
	m := NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "pricewatch.db")
	return m
}

func run(t *testing.T, m *Main, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_AddListRemove(t *testing.T) {
	t.Parallel()

	m := newMain(t)

	stdout, _, err := run(t, m, "add", "https://shop.example.com/item",
		"--id", "price", "--title", "Gundam Model Kit", "--currency", "usd")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added watch")

	matches := regexp.MustCompile(`Added watch (\S+)`).FindStringSubmatch(stdout)
	require.Len(t, matches, 2)
	watchID := matches[1]

	stdout, _, err = run(t, m, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, watchID)
	assert.Contains(t, stdout, "https://shop.example.com/item")
	assert.Contains(t, stdout, "id=price")

	_, stderr, err := run(t, m, "remove", watchID)
	require.Error(t, err)
	assert.Contains(t, stderr, "--force")

	stdout, _, err = run(t, m, "remove", watchID, "--force")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed watch")

	stdout, _, err = run(t, m, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No watches found")
}

func TestMain_Add_RequiresLocator(t *testing.T) {
	t.Parallel()

	m := newMain(t)

	_, stderr, err := run(t, m, "add", "https://shop.example.com/item")
	require.Error(t, err)
	assert.Contains(t, stderr, "--id or --class")
}

func TestMain_Remove_NotFound(t *testing.T) {
	t.Parallel()

	m := newMain(t)

	_, stderr, err := run(t, m, "remove", "no-such-id", "--force")
	require.Error(t, err)
	assert.Contains(t, stderr, "not found")
}

func TestMain_Check(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><span id="price">$19.99</span></body></html>`))
	}))
	defer srv.Close()

	m := newMain(t)

	stdout, _, err := run(t, m, "check", srv.URL, "--id", "price")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"single","value":19.99}`, stdout)
}

func TestMain_Check_FetchFailed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := newMain(t)

	stdout, _, err := run(t, m, "check", srv.URL, "--id", "price")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"status":"fetch_failed"`)
	assert.Contains(t, stdout, "404")
}

func TestMain_Check_UnsupportedCurrency(t *testing.T) {
	t.Parallel()

	m := newMain(t)

	_, stderr, err := run(t, m, "check", "https://shop.example.com/item",
		"--id", "price", "--currency", "eur")
	require.Error(t, err)
	assert.Contains(t, stderr, "currency")
}

func TestMain_RunOnce_RecordsLastPrice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><span id="price">$42.50</span></body></html>`))
	}))
	defer srv.Close()

	m := newMain(t)

	_, _, err := run(t, m, "add", srv.URL, "--id", "price")
	require.NoError(t, err)

	_, _, err = run(t, m, "run", "--once")
	require.NoError(t, err)

	stdout, _, err := run(t, m, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "42.50")
}

func TestMain_NoCommand(t *testing.T) {
	t.Parallel()

	m := newMain(t)

	_, _, err := run(t, m, "")
	require.Error(t, err)
}

func TestMain_Help(t *testing.T) {
	t.Parallel()

	m := newMain(t)

	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "check")
	assert.Contains(t, stdout.String(), "add")
}
