package ephemeris

import (
	"fmt"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/redis"
)

// New builds the configured position provider.
// ⭐ SSOT: 천체력 프로바이더 생성은 여기서만
func New(cfg config.EphemerisConfig, log *logger.Logger, limiter *redis.RateLimiter) (contracts.PositionProvider, error) {
	switch cfg.Provider {
	case "builtin":
		return NewMeanProvider(), nil
	case "remote":
		return NewRemoteProvider(cfg, log, limiter), nil
	default:
		return nil, fmt.Errorf("unknown ephemeris provider: %q", cfg.Provider)
	}
}
