package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCanFetch(t *testing.T) {
	var robotsCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		robotsCalls.Add(1)
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("test-agent", 2*time.Second)

	allowed, err := checker.CanFetch(context.Background(), server.URL+"/public/page")
	if err != nil {
		t.Fatalf("CanFetch error: %v", err)
	}
	if !allowed {
		t.Error("public path should be allowed")
	}

	allowed, err = checker.CanFetch(context.Background(), server.URL+"/private/page")
	if err != nil {
		t.Fatalf("CanFetch error: %v", err)
	}
	if allowed {
		t.Error("disallowed path should be blocked")
	}

	// robots.txt is fetched once per host
	if n := robotsCalls.Load(); n != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", n)
	}
}

func TestCanFetchAllowsOnFetchFailure(t *testing.T) {
	checker := NewRobotsChecker("test-agent", 200*time.Millisecond)

	allowed, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil {
		t.Fatalf("CanFetch error: %v", err)
	}
	if !allowed {
		t.Error("unreachable robots.txt should allow by default")
	}
}
