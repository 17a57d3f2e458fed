package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textvary/pkg/observability"
)

// debugHooks logs every observability event at debug level.
type debugHooks struct {
	logger *log.Logger
}

func registerDebugHooks(l *log.Logger) {
	h := debugHooks{logger: l}
	observability.SetGenerateHooks(h)
	observability.SetCacheHooks(h)
	observability.SetStoreHooks(h)
}

func (h debugHooks) OnGenerateStart(_ context.Context, count, comments int) {
	h.logger.Debug("generate start", "variations", count, "comments", comments)
}

func (h debugHooks) OnGenerateComplete(_ context.Context, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("generate done", "variations", count, "duration", d)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h debugHooks) OnStoreOp(_ context.Context, backend, op string, d time.Duration, err error) {
	h.logger.Debug("store op", "backend", backend, "op", op, "duration", d, "error", err)
}
