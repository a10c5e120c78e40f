package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/dbkeepalive/internal/domain"
)

func testTarget(endpoint string) domain.Target {
	return domain.Target{Name: "abcproject", Endpoint: endpoint, Key: "test-key"}
}

func TestHTTPPinger_StatusOK(t *testing.T) {
	var gotPath, gotAPIKey, gotAuth string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(200)
		w.Write([]byte("[]"))
	}))
	defer s.Close()

	p := NewHTTPPinger(2*time.Second, "/rest/v1/", zap.NewNop())
	out := p.Check(context.Background(), testTarget(s.URL))

	if !out.Success {
		t.Fatalf("want success, got %+v", out)
	}
	if out.StatusCode == nil || *out.StatusCode != 200 {
		t.Fatalf("want status 200, got %+v", out.StatusCode)
	}
	if out.Error != "" {
		t.Fatalf("want empty error on success, got %q", out.Error)
	}
	if out.DurationMS < 0 {
		t.Fatalf("duration should be >= 0, got %d", out.DurationMS)
	}
	if gotPath != "/rest/v1/" {
		t.Fatalf("want path /rest/v1/, got %q", gotPath)
	}
	if gotAPIKey != "test-key" || gotAuth != "Bearer test-key" {
		t.Fatalf("auth headers wrong: apikey=%q auth=%q", gotAPIKey, gotAuth)
	}
}

func TestHTTPPinger_NonOKStatusIsFailure(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", 401)
	}))
	defer s.Close()

	p := NewHTTPPinger(2*time.Second, "", zap.NewNop())
	out := p.Check(context.Background(), testTarget(s.URL))

	if out.Success {
		t.Fatalf("want failure, got %+v", out)
	}
	if out.StatusCode == nil || *out.StatusCode != 401 {
		t.Fatalf("want status 401, got %+v", out.StatusCode)
	}
	if out.Error == "" {
		t.Fatalf("want error set on non-2xx")
	}
}

func TestHTTPPinger_TransportFailureHasNoStatus(t *testing.T) {
	// Server sleeps longer than the client timeout.
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	p := NewHTTPPinger(50*time.Millisecond, "", zap.NewNop())
	out := p.Check(context.Background(), testTarget(s.URL))

	if out.Success {
		t.Fatalf("want failure due to timeout, got %+v", out)
	}
	if out.StatusCode != nil {
		t.Fatalf("want nil status on transport error, got %d", *out.StatusCode)
	}
	if out.Error == "" {
		t.Fatalf("want non-empty error message")
	}
	if out.DurationMS < 0 {
		t.Fatalf("duration still recorded on failure, got %d", out.DurationMS)
	}
}

func TestHTTPPinger_NeverPanicsOnGarbageEndpoint(t *testing.T) {
	p := NewHTTPPinger(time.Second, "", zap.NewNop())
	out := p.Check(context.Background(), testTarget("http://\x7f invalid"))
	if out.Success || out.Error == "" {
		t.Fatalf("want captured failure, got %+v", out)
	}
}
