// Package testkit drives HTTP API tests from JSON scenario files and
// provides an in-memory database for package tests.
//
// Scenario files live next to the *_test.go files:
//
//	testdata/
//	  products_index.json        ← scenario
//	  products_index_res.json    ← expected response body
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    handler := kernel.NewHTTPKernel(db).Handler()
//	    testkit.RunDir(t, handler, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario dir
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline alternative to requestFileName
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int             `json:"expectedCode"`
	ResponseFileName string          `json:"responseFileName"`
	ResponseBody     json.RawMessage `json:"responseBody"` // inline alternative to responseFileName

	// PartialMatch compares only the keys present in the expected body;
	// arrays must still have equal length.
	PartialMatch bool `json:"partialMatch"`

	dir string
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.RequestURL == "" {
		return errors.New("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return errors.New("expectedCode is required")
	}
	if s.RequestFileName != "" && len(s.RequestBody) > 0 {
		return errors.New("requestFileName and requestBody are mutually exclusive")
	}
	if s.ResponseFileName != "" && len(s.ResponseBody) > 0 {
		return errors.New("responseFileName and responseBody are mutually exclusive")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// requestPayload returns the request body bytes, or nil for none.
func (s *Scenario) requestPayload() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	if s.RequestFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.RequestFileName))
}

// expectedPayload returns the expected response body, or nil to skip the check.
func (s *Scenario) expectedPayload() ([]byte, error) {
	if len(s.ResponseBody) > 0 {
		return s.ResponseBody, nil
	}
	if s.ResponseFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.ResponseFileName))
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
