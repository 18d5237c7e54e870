package runtime

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouter_ToAll_IncludesOriginator(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	router := NewRouter(registry, nil, slog.Default())
	conn1 := newFakeConn("c1")
	conn2 := newFakeConn("c2")
	registry.Track(conn1)
	registry.Track(conn2)

	router.ToAll("SUCCESS#hello#")

	req.Equal([]string{"SUCCESS#hello#"}, conn1.Frames())
	req.Equal([]string{"SUCCESS#hello#"}, conn2.Frames())
}

func TestRouter_ToOthers_ExcludesSenderByIdentity(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	router := NewRouter(registry, nil, slog.Default())
	sender := newFakeConn("c1")
	other1 := newFakeConn("c2")
	other2 := newFakeConn("c3")
	registry.Track(sender)
	registry.Track(other1)
	registry.Track(other2)

	router.ToOthers("EDIT#doc.txt#hi", sender)

	req.Empty(sender.Frames())
	req.Equal([]string{"EDIT#doc.txt#hi"}, other1.Frames())
	req.Equal([]string{"EDIT#doc.txt#hi"}, other2.Frames())
}

func TestRouter_ToOthers_FailingRecipientDoesNotAbortFanout(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	router := NewRouter(registry, nil, slog.Default())
	sender := newFakeConn("c1")
	broken := newFakeConn("c2")
	broken.fail = true
	healthy := newFakeConn("c3")
	registry.Track(sender)
	registry.Track(broken)
	registry.Track(healthy)

	router.ToOthers("EDIT#doc.txt#hi", sender)

	// delivery failure to one recipient is swallowed, the rest still receive
	req.Equal([]string{"EDIT#doc.txt#hi"}, healthy.Frames())
}
