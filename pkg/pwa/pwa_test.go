package pwa

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T) *Assets {
	t.Helper()
	a, err := Build(Options{AppName: "My Store", Version: "v7"})
	require.NoError(t, err)
	return a
}

func TestObserve(t *testing.T) {
	assert.Equal(t, StateCached, Observe(false))
	assert.Equal(t, StateUpdateAvailable, Observe(true))
}

func TestClassifyOnlyInstalled(t *testing.T) {
	for _, s := range []string{"installing", "activating", "activated", "redundant", ""} {
		_, ok := Classify(s, true)
		assert.False(t, ok, s)
	}
	state, ok := Classify("installed", false)
	assert.True(t, ok)
	assert.Equal(t, StateCached, state)
}

func TestBuildRendersVersionedAssets(t *testing.T) {
	a := build(t)
	assert.Equal(t, "my-store-v7", a.CacheName())

	worker := string(a.worker)
	assert.Contains(t, worker, `const CACHE_NAME = "my-store-v7";`)
	assert.Contains(t, worker, `key.startsWith("my-store-")`)
	assert.Contains(t, worker, `"/manifest.webmanifest"`)

	register := string(a.register)
	assert.Contains(t, register, `"serviceWorker" in navigator`)
	assert.Contains(t, register, `register("/sw.js"`)
	assert.Contains(t, register, `version: "v7"`)

	assert.Contains(t, string(a.manifest), `"name": "My Store"`)

	_, err := Build(Options{})
	assert.Error(t, err)
}

func TestServeWorkerHeaders(t *testing.T) {
	a := build(t)
	w := httptest.NewRecorder()
	a.ServeWorker(w, httptest.NewRequest(http.MethodGet, WorkerPath, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "/", w.Header().Get("Service-Worker-Allowed"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/javascript"))

	head := httptest.NewRecorder()
	a.ServeManifest(head, httptest.NewRequest(http.MethodHead, ManifestPath, nil))
	assert.Empty(t, head.Body.String())
	assert.Equal(t, "application/manifest+json", head.Header().Get("Content-Type"))
}

func postEvent(a *Assets, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.HandleEvent(w, httptest.NewRequest(http.MethodPost, EventsPath, strings.NewReader(body)))
	return w
}

func TestHandleEvent(t *testing.T) {
	a := build(t)

	w := postEvent(a, `{"workerState":"installed","hadController":false,"version":"v7"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":200,"data":{"state":"cached","current":true}}`, w.Body.String())

	w = postEvent(a, `{"workerState":"installed","hadController":true,"version":"v6"}`)
	assert.JSONEq(t, `{"status":200,"data":{"state":"update-available","current":false}}`, w.Body.String())

	w = postEvent(a, `{"workerState":"activated","hadController":true}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = postEvent(a, `{"workerState":"exploded"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postEvent(a, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleVersion(t *testing.T) {
	a := build(t)
	w := httptest.NewRecorder()
	a.HandleVersion(w, httptest.NewRequest(http.MethodGet, VersionPath, nil))
	assert.JSONEq(t, `{"status":200,"data":{"version":"v7","cacheName":"my-store-v7"}}`, w.Body.String())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "my-store", slug("  My   Store! "))
	assert.Equal(t, "storefront", slug("storefront"))
}
