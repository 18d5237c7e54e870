package runtime

import (
	"docsync/contract"
	"docsync/protocol"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

type Set map[contract.Conn]struct{}

// Registry owns the display-name to connection mapping and the
// all-connections set. It is the only shared mutable state across
// connections and must support concurrent add/remove/iterate.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.Conn // display name -> connection
	conns    Set                      // every connection, logged in or not
	log      *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]contract.Conn),
		conns:    make(Set),
		log:      log,
	}
}

// Track adds a connection to the all-connections set before any login has
// happened, so pre-login connections already receive broadcasts aimed at
// everyone.
func (r *Registry) Track(conn contract.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[conn] = struct{}{}
}

// Add registers a display name for a connection. It rejects blank names and
// names already mapped, without mutation. On success the connection joins
// the all-connections set and every other connection synchronously receives
// a USER_JOINED notification; that side effect is part of the contract.
func (r *Registry) Add(displayName string, conn contract.Conn) bool {
	r.mu.Lock()
	if displayName == "" {
		r.mu.Unlock()
		return false
	}
	if _, taken := r.sessions[displayName]; taken {
		r.mu.Unlock()
		return false
	}
	r.sessions[displayName] = conn
	r.conns[conn] = struct{}{}
	r.mu.Unlock()

	r.broadcast(protocol.UserJoined(displayName), conn)
	return true
}

// Remove looks up the display name owning the connection via a linear scan
// over current mappings; the expected population is small. If a name is
// found its mapping is deleted and the remaining connections receive a
// USER_LEFT notification. The connection always leaves the all-connections
// set, which covers a disconnect before login completed.
func (r *Registry) Remove(conn contract.Conn) {
	r.mu.Lock()
	var displayName string
	for name, c := range r.sessions {
		if c == conn {
			displayName = name
			break
		}
	}
	if displayName != "" {
		delete(r.sessions, displayName)
	}
	delete(r.conns, conn)
	r.mu.Unlock()

	if displayName != "" {
		r.broadcast(protocol.UserLeft(displayName), nil)
	}
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Names returns a snapshot of connected display names. Order is unspecified.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.sessions)
}

// snapshot copies the all-connections set so fan-out iterates over the
// audience computed at call time, untouched by concurrent add/remove.
func (r *Registry) snapshot() []contract.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.conns)
}

// broadcast delivers a frame to every tracked connection except the one
// given. Fan-out is best effort: a failing recipient is logged and skipped,
// never aborting delivery to the rest.
func (r *Registry) broadcast(frame string, except contract.Conn) {
	for _, conn := range r.snapshot() {
		if conn == except {
			continue
		}
		if err := conn.Send(frame); err != nil {
			r.log.Debug("broadcast delivery failed", "conn", conn.ID(), "error", err)
		}
	}
}
