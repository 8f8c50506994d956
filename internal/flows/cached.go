package flows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

func cacheKey(flow string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return flow + ":" + hex.EncodeToString(h.Sum(nil))
}

// cached returns a stored result for key or runs gen and stores its result. Cache failures are
// logged and otherwise ignored.
func cached[T any](ctx context.Context, s *Service, log *logger.Logger, flow, key string, gen func(ctx context.Context) (T, error)) (T, error) {
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Warn("cache get failed", "key", key, "error", err)
	} else if ok {
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			s.metrics.ObserveCache(flow, true)
			log.Debug("cache hit", "key", key)
			return out, nil
		}
		log.Warn("cache entry unreadable, regenerating", "key", key)
	}
	s.metrics.ObserveCache(flow, false)

	out, err := gen(ctx)
	if err != nil {
		return out, err
	}
	raw, err := json.Marshal(out)
	if err != nil {
		log.Warn("cache encode failed", "key", key, "error", err)
		return out, nil
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		log.Warn("cache set failed", "key", key, "error", err)
	}
	return out, nil
}
