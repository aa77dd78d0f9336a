package mentor

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Settings tune the scripted responders.
type Settings struct {
	ChatDelay   time.Duration
	WidgetDelay time.Duration
	Cache       ReplyCache
	CacheTTL    time.Duration
	Rand        *rand.Rand
	Logger      *zap.Logger
}

// NewResponders wires the scripted responder for every placement. Only the
// chat placement is cached; sidebar replies are random.
func NewResponders(cfg Settings) map[Placement]Responder {
	var chat Responder = DelayedResponder{
		Next:  RoutingResponder{Next: NewKeywordScript()},
		Delay: cfg.ChatDelay,
	}
	if cfg.Cache != nil {
		chat = CachedResponder{Next: chat, Cache: cfg.Cache, TTL: cfg.CacheTTL, Logger: cfg.Logger}
	}
	return map[Placement]Responder{
		PlacementChat:    chat,
		PlacementBubble:  DelayedResponder{Next: NewFixedScript(), Delay: cfg.WidgetDelay},
		PlacementSidebar: DelayedResponder{Next: NewRotatingScript(cfg.Rand), Delay: cfg.WidgetDelay},
	}
}
