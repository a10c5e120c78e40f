package probe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/dbkeepalive/internal/domain"
)

// HTTPPinger issues a cheap authenticated GET against a target's REST
// surface to reset its inactivity timer. The path is configurable so a
// deployment can point at a dedicated keepalive table instead of the
// metadata root; either way the request must stay idempotent and
// side-effect-free on the target.
type HTTPPinger struct {
	Client *http.Client
	Path   string
	Logger *zap.Logger
}

func NewHTTPPinger(timeout time.Duration, path string, logger *zap.Logger) *HTTPPinger {
	if path == "" {
		path = "/rest/v1/"
	}
	return &HTTPPinger{
		Client: &http.Client{Timeout: timeout},
		Path:   path,
		Logger: logger,
	}
}

func (p *HTTPPinger) Check(ctx context.Context, t domain.Target) domain.ProbeResult {
	start := time.Now()
	res := domain.ProbeResult{
		TargetName: t.Name,
		CheckedAt:  start.UTC(),
	}

	url := strings.TrimRight(t.Endpoint, "/") + p.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		res.Error = err.Error()
		res.DurationMS = time.Since(start).Milliseconds()
		p.logOutcome(res)
		return res
	}
	req.Header.Set("apikey", t.Key)
	req.Header.Set("Authorization", "Bearer "+t.Key)

	resp, err := p.Client.Do(req)
	res.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		// No response obtained: DNS, TLS, timeout, reset. No status code.
		res.Error = err.Error()
		p.logOutcome(res)
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	code := resp.StatusCode
	res.StatusCode = &code
	res.Success = code >= 200 && code < 300
	if !res.Success {
		res.Error = resp.Status
	}
	p.logOutcome(res)
	return res
}

func (p *HTTPPinger) logOutcome(r domain.ProbeResult) {
	fields := []zap.Field{
		zap.String("target", r.TargetName),
		zap.Bool("success", r.Success),
		zap.Int64("duration_ms", r.DurationMS),
	}
	if r.StatusCode != nil {
		fields = append(fields, zap.Int("status", *r.StatusCode))
	}
	if r.Error != "" {
		fields = append(fields, zap.String("error", r.Error))
	}
	if r.Success {
		p.Logger.Info("probe_ok", fields...)
	} else {
		p.Logger.Warn("probe_failed", fields...)
	}
}
