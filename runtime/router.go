package runtime

import (
	"docsync/contract"
	"docsync/observability"
	"log/slog"
)

// Router fans frames out to an audience computed at send time from the
// registry's all-connections set.
//
// Delivery is best effort with no guarantees regarding ordering across
// recipients, durability, or retries. A recipient whose connection is
// already gone is skipped silently; one failing send must not abort
// delivery to the rest. The Router is not a message broker.
type Router struct {
	registry *Registry
	monitor  *observability.Monitor
	log      *slog.Logger
}

func NewRouter(registry *Registry, monitor *observability.Monitor, log *slog.Logger) *Router {
	return &Router{registry: registry, monitor: monitor, log: log}
}

// ToAll delivers the frame to every current connection, the originator
// included if present.
func (r *Router) ToAll(frame string) {
	r.monitor.IncrFanout()
	r.registry.broadcast(frame, nil)
}

// ToOthers delivers the frame to every current connection except the
// sender. The exclusion compares connection identity, not display name.
func (r *Router) ToOthers(frame string, sender contract.Conn) {
	r.monitor.IncrFanout()
	r.registry.broadcast(frame, sender)
}
