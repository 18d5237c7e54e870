package runtime

import (
	"docsync/contract"
	"docsync/domain"
	"docsync/observability"
	"docsync/protocol"
	"docsync/storage"
	"fmt"
	"log/slog"
	"strings"
)

// Engine is the per-connection protocol state machine. A connection starts
// anonymous and becomes authenticated on a successful LOGIN; there is no
// transition back short of disconnect. Commands from one connection are
// handled strictly in arrival order by the owning transport goroutine, so
// the engine itself needs no locking.
type Engine struct {
	conn     contract.Conn
	registry *Registry
	router   *Router
	store    storage.IDocumentStore
	monitor  *observability.Monitor
	log      *slog.Logger

	displayName string
	loggedIn    bool
}

func NewEngine(conn contract.Conn, registry *Registry, router *Router,
	store storage.IDocumentStore, monitor *observability.Monitor, log *slog.Logger) *Engine {
	return &Engine{conn: conn, registry: registry, router: router,
		store: store, monitor: monitor, log: log}
}

// HandleFrame decodes and dispatches one raw frame. Anything unanticipated
// escaping a handler is recovered here and reported as PROCESSING_ERROR to
// the sender; a bad command never terminates the connection.
func (e *Engine) HandleFrame(raw string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("command dispatch panicked", "conn", e.conn.ID(), "panic", r)
			e.sendError(protocol.KindProcessingError, fmt.Sprintf("%v", r))
		}
	}()

	e.monitor.IncrFrames()

	msgType, param1, param2 := protocol.Decode(raw)
	if msgType == "" {
		e.sendError(protocol.KindInvalidMessage, "invalid message format")
		return
	}

	cmd := domain.Command{Type: domain.CommandType(msgType), Param1: param1, Param2: param2}
	if cmd.Type.RequiresAuth() && !e.loggedIn {
		e.sendError(protocol.KindNotLoggedIn, "login required")
		return
	}

	switch cmd.Type {
	case domain.Login:
		e.handleLogin(cmd.Param1)
	case domain.ListFilesRequest:
		e.handleListFiles()
	case domain.OpenFileRequest:
		e.handleOpenFile(cmd.Param1)
	case domain.Edit:
		e.handleEdit(cmd.Param1, cmd.Param2)
	case domain.CreateFile:
		e.handleCreateFile(cmd.Param1)
	case domain.SaveFile:
		e.handleSaveFile(cmd.Param1, cmd.Param2)
	default:
		e.sendError(protocol.KindUnknownCommand, "unknown command: "+msgType)
	}
}

// Disconnect releases the connection's registry state. Called by the
// transport when the underlying channel goes away; this is the only way a
// session ends.
func (e *Engine) Disconnect() {
	e.registry.Remove(e.conn)
}

// LoggedIn reports whether the connection has authenticated.
func (e *Engine) LoggedIn() bool {
	return e.loggedIn
}

func (e *Engine) handleLogin(displayName string) {
	if e.loggedIn {
		e.sendError(protocol.KindAlreadyLoggedIn, "already logged in")
		return
	}
	if strings.TrimSpace(displayName) == "" {
		e.sendError(protocol.KindInvalidUsername, "display name must not be blank")
		return
	}
	if !e.registry.Add(displayName, e.conn) {
		e.sendError(protocol.KindUsernameTaken, "display name already in use")
		return
	}
	e.displayName = displayName
	e.loggedIn = true
	e.send(protocol.Success("login successful"))

	// courtesy push so a fresh client starts with the current state
	e.handleListFiles()
}

func (e *Engine) handleListFiles() {
	e.send(protocol.ListFilesResponse(strings.Join(e.store.List(), ",")))
}

func (e *Engine) handleOpenFile(name string) {
	content, err := e.store.Read(name)
	if err != nil {
		e.sendError(protocol.KindFileError, err.Error())
		return
	}
	e.send(protocol.OpenFileResponse(name, content))
}

// handleEdit persists the whole buffer, then fans the same EDIT out to the
// other connections. The sender gets no echo and no direct reply; last
// write on a name wins with no conflict signal.
func (e *Engine) handleEdit(name, content string) {
	if err := e.store.Write(name, content); err != nil {
		e.sendError(protocol.KindSaveError, err.Error())
		return
	}
	e.router.ToOthers(protocol.EditNotification(name, content), e.conn)
}

func (e *Engine) handleCreateFile(name string) {
	if !e.store.Create(name) {
		e.sendError(protocol.KindCreateError, "could not create file (it may already exist)")
		return
	}
	e.send(protocol.Success("file created: " + name))
	e.handleListFiles()
	e.router.ToOthers(protocol.ListFilesRequestNudge(), e.conn)
}

func (e *Engine) handleSaveFile(name, content string) {
	if err := e.store.Write(name, content); err != nil {
		e.sendError(protocol.KindSaveError, err.Error())
		return
	}
	e.send(protocol.Success("file saved: " + name))
}

func (e *Engine) sendError(kind, detail string) {
	e.monitor.IncrErrors()
	e.send(protocol.Error(kind, detail))
}

// send unicasts to the originating connection. A recipient that is already
// gone is a delivery error, absorbed here and never surfaced.
func (e *Engine) send(frame string) {
	if err := e.conn.Send(frame); err != nil {
		e.log.Debug("unicast delivery failed", "conn", e.conn.ID(), "error", err)
	}
}
