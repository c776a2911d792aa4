package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/health":
		w.Write([]byte(`{"status":"ok","uptime":12}`)) //nolint:errcheck
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"message":"Not found"}`)) //nolint:errcheck
	}
})

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
}

func TestRunDir(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "health.json"), map[string]interface{}{
		"name":         "health",
		"requestUrl":   "/health",
		"expectedCode": 200,
		"partialMatch": true,
		"responseBody": map[string]string{"status": "ok"},
	})
	writeJSON(t, filepath.Join(dir, "missing.json"), map[string]interface{}{
		"name":             "missing",
		"requestUrl":       "/nope",
		"expectedCode":     404,
		"responseFileName": "missing_res.json",
	})
	writeJSON(t, filepath.Join(dir, "missing_res.json"), map[string]interface{}{
		"status": 404, "message": "Not found",
	})

	var seen []string
	RunDir(t, echo, dir, func(s *Scenario, _ *http.Request) { seen = append(seen, s.Name) })
	assert.Equal(t, []string{"health", "missing"}, seen)
}

func TestLoadScenarioValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	writeJSON(t, path, map[string]interface{}{"name": "x", "requestUrl": "/"})

	_, err := LoadScenario(path)
	assert.ErrorContains(t, err, "expectedCode is required")
}

func TestDiffJSON(t *testing.T) {
	var exp, act interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":[1,2],"c":null}`), &exp))
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":[1,2],"c":null,"extra":true}`), &act))
	assert.Empty(t, DiffJSON("", exp, act))

	require.NoError(t, json.Unmarshal([]byte(`{"a":2,"b":[1],"c":"x"}`), &act))
	assert.Len(t, DiffJSON("", exp, act), 3)
}

type thing struct {
	ID   uint
	Name string
}

func TestOpenDBIsolated(t *testing.T) {
	db := OpenDB(t, &thing{})
	require.NoError(t, db.Create(&thing{Name: "a"}).Error)

	var n int64
	require.NoError(t, db.Model(&thing{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
