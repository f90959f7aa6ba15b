package reports

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bokfora/ledger_backend/config"
)

// Report caching is opt-in (ENABLE_REPORT_CACHE=true). Reports over open
// periods change with every posting, so the TTL stays short;
// REPORT_CACHE_TTL_SECONDS overrides the default.
const defaultCacheTTL = 60 * time.Second

func cacheEnabled() bool {
	return os.Getenv("ENABLE_REPORT_CACHE") == "true"
}

func cacheTTL() time.Duration {
	if raw := os.Getenv("REPORT_CACHE_TTL_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultCacheTTL
}

func cacheKey(report string, workspaceId string, periodId int) string {
	return fmt.Sprintf("Report:%s:%s:%d", report, workspaceId, periodId)
}

func cacheGet[T any](key string) (*T, bool) {
	if !cacheEnabled() {
		return nil, false
	}
	var value T
	exists, err := config.GetRedisObject(key, &value)
	if err != nil || !exists {
		return nil, false
	}
	return &value, true
}

func cacheSet[T any](key string, value *T) {
	if !cacheEnabled() {
		return
	}
	// Cache misses are acceptable; cache write failures are not worth failing
	// the report over.
	_ = config.SetRedisObject(key, value, cacheTTL())
}
