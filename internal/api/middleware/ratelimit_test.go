package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitEnforcesBurst(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RateLimit(1, 2)(next)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d within burst: got %d, want 200", i+1, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("request past burst: got %d, want 429", rr.Code)
	}
}

func TestRateLimitStateIsPerInstance(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// drain one instance's bucket for the client IP
	exhausted := RateLimit(1, 2)(next)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		exhausted.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	}

	// a freshly built chain starts with a full bucket
	fresh := RateLimit(1, 2)(next)
	rr := httptest.NewRecorder()
	fresh.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("fresh instance inherited drained bucket: got %d, want 200", rr.Code)
	}
}

func TestRateLimitTracksClientsSeparately(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RateLimit(1, 1)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first client: got %d, want 200", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("second client throttled by first client's bucket: got %d, want 200", rr.Code)
	}
}
