package registry

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/hamed0406/dbkeepalive/internal/domain"
)

// MaxOrdinal bounds the URL_<i>/KEY_<i> scan.
const MaxOrdinal = 99

// Discover scans the environment for paired URL_<i>/KEY_<i> entries and
// returns the configured targets in ordinal order. A target is included
// only when both halves of the pair are non-empty; a half-configured pair
// is logged and skipped, a fully absent one is skipped silently. Gaps in
// the ordinals are fine. Zero targets is a valid result.
func Discover(getenv func(string) string, log *zap.Logger) []domain.Target {
	var targets []domain.Target
	for i := 1; i <= MaxOrdinal; i++ {
		rawURL := strings.TrimSpace(getenv(fmt.Sprintf("URL_%d", i)))
		key := strings.TrimSpace(getenv(fmt.Sprintf("KEY_%d", i)))

		if rawURL == "" && key == "" {
			continue
		}
		if rawURL == "" || key == "" {
			log.Warn("incomplete_target_pair",
				zap.Int("ordinal", i),
				zap.Bool("has_url", rawURL != ""),
				zap.Bool("has_key", key != ""),
			)
			continue
		}

		targets = append(targets, domain.Target{
			Name:     deriveName(rawURL, i),
			Endpoint: rawURL,
			Key:      key,
		})
	}
	return targets
}

// deriveName takes the first label of the endpoint's hostname, so
// https://abcproject.supabase.co becomes "abcproject". Unparseable
// endpoints fall back to a positional name.
func deriveName(rawURL string, ordinal int) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return fmt.Sprintf("target-%d", ordinal)
	}
	label := strings.Split(u.Hostname(), ".")[0]
	if label == "" {
		return fmt.Sprintf("target-%d", ordinal)
	}
	return label
}
