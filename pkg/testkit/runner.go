package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// Run executes a single scenario file against handler as a subtest.
func Run(t *testing.T, handler http.Handler, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("%v", err)
	}

	t.Run(s.Name, func(t *testing.T) {
		RunScenario(t, handler, s, nil)
	})
}

// RunDir runs every *.json scenario in dir, in file name order. Files
// ending in _req.json or _res.json are bodies, not scenarios. prepare, when
// non-nil, may add headers (for example a bearer token) to each request.
func RunDir(t *testing.T, handler http.Handler, dir string, prepare func(*Scenario, *http.Request)) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}

	for _, path := range entries {
		if strings.HasSuffix(path, "_req.json") || strings.HasSuffix(path, "_res.json") {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			t.Errorf("%v", err)
			continue
		}

		t.Run(s.Name, func(t *testing.T) {
			RunScenario(t, handler, s, prepare)
		})
	}
}

// RunScenario fires s against handler and asserts status and body.
func RunScenario(t *testing.T, handler http.Handler, s *Scenario, prepare func(*Scenario, *http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := s.requestPayload()
	if err != nil {
		t.Fatalf("[%s] request body: %v", s.Name, err)
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}
	if prepare != nil {
		prepare(s, req)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	expected, err := s.expectedPayload()
	if err != nil {
		t.Errorf("[%s] response file: %v", s.Name, err)
	} else if expected != nil {
		AssertJSONBody(t, s, expected, rec.Body.Bytes())
	}
	return rec
}
