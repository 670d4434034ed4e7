// Package testutil contains common utility functions for unit tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// FakeClient returns an HTTP client that replies to all requests to the given
// address with the provided body text, and to every other address with a
// 404 status.
func FakeClient(url string, body []byte) *http.Client {
	return &http.Client{
		Transport: mockRoundTrip{
			url:  url,
			body: body,
		},
	}
}

type mockRoundTrip struct {
	url  string
	body []byte
}

func (r mockRoundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	var rsp http.Response
	rsp.Header = make(http.Header)
	rsp.Request = req

	if req.URL.String() == r.url {
		rsp.StatusCode = http.StatusOK
		rsp.Status = "200 OK"
		rsp.Body = io.NopCloser(bytes.NewReader(r.body))
	} else {
		rsp.StatusCode = http.StatusNotFound
		rsp.Status = "404 Not Found"
		rsp.Body = io.NopCloser(strings.NewReader("404 not found"))
	}
	return &rsp, nil
}

// Logger adapts a testing.T to the Printf-style loggers accepted by
// the generators, so their output appears with -v.
type Logger struct {
	testing.TB
}

func (l Logger) Printf(format string, v ...interface{}) {
	l.Helper()
	l.Logf(format, v...)
}

// A Recorder is a logger that keeps every message.
type Recorder struct {
	Lines []string
}

func (r *Recorder) Printf(format string, v ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, v...))
}

// Contains reports whether any recorded line contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, line := range r.Lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// CompareToGolden compares data with the contents of
// testdata/golden/<name>. If the golden file does not exist, it is
// created from data.
func CompareToGolden(t testing.TB, name string, data []byte) {
	t.Helper()
	goldenPath := filepath.Join("testdata", "golden", name)
	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("could not read golden file, %v", err)
			return
		}
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
			t.Errorf("could not create golden directory, %v", err)
			return
		}
		if err := os.WriteFile(goldenPath, data, 0644); err != nil {
			t.Errorf("could not create golden file, %v", err)
		}
		return
	}
	if diff := cmp.Diff(string(expected), string(data)); diff != "" {
		t.Errorf("output does not match %s (-want +got):\n%s", goldenPath, diff)
	}
}
