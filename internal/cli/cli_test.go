package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoquiz/pkg/pipeline"
)

const volgaDoc = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{"name":"Volga"},
	 "geometry":{"type":"LineString","coordinates":[[45,58],[47,56],[44,53]]}}
]}`

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestExecute_InitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "pipeline.yaml")
	var stdout, stderr bytes.Buffer

	code := Execute(context.Background(), "build_rivers", []string{"-config", path, "-init-config"}, &stdout, &stderr, BuildRivers)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Config file generated")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rivers:")
}

func TestExecute_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), "build_lakes", []string{"-nope"}, &stdout, &stderr, BuildLakes)
	assert.Equal(t, 2, code)
}

func TestExecute_BuildRivers(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "rivers.geojson")
	out := filepath.Join(dir, "public", "rivers.json")
	require.NoError(t, os.WriteFile(src, []byte(volgaDoc), 0o644))

	cfg := writeConfig(t, dir, fmt.Sprintf(`
log:
  path: %q
  level: debug
rivers:
  sources: [%q]
  output: %q
  tolerance: 0.035
`, filepath.Join(dir, "logs", "pipeline.log"), src, out))

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), "build_rivers", []string{"-config", cfg}, &stdout, &stderr, BuildRivers)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"Volga"`)

	// every other declared river is missing and reported
	assert.Contains(t, stdout.String(), "warning(s) during run")
	assert.Contains(t, stdout.String(), "Missing features")

	logData, err := os.ReadFile(filepath.Join(dir, "logs", "pipeline.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "run=")
	assert.Contains(t, string(logData), "Pipeline finished")
}

func TestExecute_Failure(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, fmt.Sprintf(`
lakes:
  sources: [%q]
  output: %q
`, filepath.Join(dir, "missing.geojson"), filepath.Join(dir, "lakes.json")))

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), "build_lakes", []string{"-config", cfg}, &stdout, &stderr, BuildLakes)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "CRITICAL ERROR: build_lakes failed")

	_, err := os.Stat(filepath.Join(dir, "lakes.json"))
	assert.True(t, os.IsNotExist(err), "no output on failure")
}

func TestExecute_InvalidConfig(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), "request:\n  retries: 0\n")

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), "fix_countries", []string{"-config", cfg}, &stdout, &stderr, FixCountries)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "request.retries")
}

func TestExecute_Cache(t *testing.T) {
	var hits int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(volgaDoc))
	}))
	defer svr.Close()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, fmt.Sprintf(`
request:
  delay: 1ms
cache:
  enabled: true
  path: %q
  ttl: 1h
rivers:
  sources: [%q]
  output: %q
`, filepath.Join(dir, "cache.db"), svr.URL+"/rivers.geojson", filepath.Join(dir, "rivers.json")))

	for i := 0; i < 2; i++ {
		var stdout, stderr bytes.Buffer
		code := Execute(context.Background(), "build_rivers", []string{"-config", cfg}, &stdout, &stderr, BuildRivers)
		require.Equal(t, 0, code, stderr.String())
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second run is served from the cache")
}

func TestExecute_RunError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := writeConfig(t, t.TempDir(), "log:\n  level: warn\n")
	run := func(ctx context.Context, env *Env) (*pipeline.Report, error) {
		require.NotNil(t, env.Loader)
		return nil, errors.New("boom")
	}

	code := Execute(context.Background(), "merge_marine", []string{"-config", cfg}, &stdout, &stderr, run)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr.String(), "CRITICAL ERROR: merge_marine failed: boom"))
}
