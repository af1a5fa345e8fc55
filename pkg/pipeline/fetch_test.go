package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/table"
)

func TestIsURL(t *testing.T) {
	for s, want := range map[string]bool{
		"https://example.com/words.csv": true,
		"http://localhost:8080/t":       true,
		"words.csv":                     false,
		"ftp://example.com/words.csv":   false,
		"-":                             false,
	} {
		if got := IsURL(s); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestFetchFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/export":
			w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
		case "/blob":
			w.Header().Set("Content-Type", "application/octet-stream")
		}
		w.Write([]byte(wordsCSV))
	}))
	defer srv.Close()

	tests := []struct {
		path string
		want table.Format
	}{
		{"/words.json", table.FormatJSON},
		{"/export", table.FormatTSV},
		{"/blob", ""},
	}
	f := NewFetcher()
	for _, tt := range tests {
		data, format, err := f.Fetch(context.Background(), srv.URL+tt.path)
		if err != nil {
			t.Fatalf("Fetch(%s) error = %v", tt.path, err)
		}
		if format != tt.want || string(data) != wordsCSV {
			t.Errorf("Fetch(%s) format = %q, want %q", tt.path, format, tt.want)
		}
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(wordsCSV))
	}))
	defer srv.Close()

	if _, _, err := NewFetcher().Fetch(context.Background(), srv.URL+"/words.csv"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.csv":
			http.NotFound(w, r)
		case "/forbidden.csv":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.Write([]byte(wordsCSV))
		}
	}))
	defer srv.Close()

	small := NewFetcher()
	small.MaxBytes = 8

	tests := []struct {
		name     string
		fetcher  *Fetcher
		url      string
		wantCode errors.Code
	}{
		{"not found", NewFetcher(), srv.URL + "/missing.csv", errors.ErrCodeNotFound},
		{"forbidden", NewFetcher(), srv.URL + "/forbidden.csv", errors.ErrCodeNetwork},
		{"too large", small, srv.URL + "/words.csv", errors.ErrCodeInvalidInput},
		{"bad scheme", NewFetcher(), "file:///etc/passwd", errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.fetcher.Fetch(context.Background(), tt.url)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Fetch() = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestExecuteURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(wordsCSV))
	}))
	defer srv.Close()

	opts := wordOptions()
	opts.Format = ""
	res, err := NewRunner(nil, nil, nil).ExecuteURL(context.Background(), srv.URL+"/export", opts)
	if err != nil {
		t.Fatalf("ExecuteURL() error = %v", err)
	}
	if len(res.Entries) != 2 || res.Entries[0].Size != 8 {
		t.Errorf("entries = %+v", res.Entries)
	}
}
