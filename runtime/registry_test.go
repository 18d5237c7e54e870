package runtime

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeConn records delivered frames; used across the runtime tests.
type fakeConn struct {
	id     string
	fail   bool
	mu     sync.Mutex
	frames []string
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(frame string) error {
	if c.fail {
		return fmt.Errorf("connection gone")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, frame)
	return nil
}

func (c *fakeConn) Frames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.frames...)
}

func TestRegistry_Add_FirstLoginWins(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	conn1 := newFakeConn("c1")
	conn2 := newFakeConn("c2")
	registry.Track(conn1)
	registry.Track(conn2)

	// When two connections claim the same display name
	first := registry.Add("alice", conn1)
	second := registry.Add("alice", conn2)

	// Then only the first mapping exists
	req.True(first)
	req.False(second)
	req.Equal(1, registry.Count())
	req.ElementsMatch([]string{"alice"}, registry.Names())
}

func TestRegistry_Add_BlankNameRejected(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	conn := newFakeConn("c1")

	req.False(registry.Add("", conn))
	req.Zero(registry.Count())
}

func TestRegistry_Add_BroadcastsUserJoinedToOthers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	conn1 := newFakeConn("c1")
	conn2 := newFakeConn("c2")
	registry.Track(conn1)
	registry.Track(conn2)

	req.True(registry.Add("alice", conn1))

	// The other connection hears about alice; alice does not hear about herself
	req.Equal([]string{"USER_JOINED#alice#"}, conn2.Frames())
	req.Empty(conn1.Frames())
}

func TestRegistry_Remove_BroadcastsUserLeft(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	conn1 := newFakeConn("c1")
	conn2 := newFakeConn("c2")
	registry.Track(conn1)
	registry.Track(conn2)
	req.True(registry.Add("alice", conn1))
	req.True(registry.Add("bob", conn2))

	// When alice disconnects
	registry.Remove(conn1)

	// Then her name is gone and bob received exactly one USER_LEFT
	req.NotContains(registry.Names(), "alice")
	req.Equal(1, registry.Count())
	frames := conn2.Frames()
	req.Equal("USER_LEFT#alice#", frames[len(frames)-1])
}

func TestRegistry_Remove_BeforeLogin(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	conn1 := newFakeConn("c1")
	conn2 := newFakeConn("c2")
	registry.Track(conn1)
	registry.Track(conn2)
	req.True(registry.Add("alice", conn2))

	// When a never-logged-in connection goes away
	registry.Remove(conn1)

	// Then no USER_LEFT is broadcast, but the set no longer holds it
	req.Empty(conn2.Frames())
	req.Len(registry.snapshot(), 1)
}
