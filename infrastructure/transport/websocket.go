package transport

import (
	"context"
	"docsync/observability"
	"docsync/runtime"
	"docsync/storage"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsConn adapts a websocket connection to the session layer's Conn
// capability. Websocket frames are message-delimited, so protocol frames
// travel verbatim with no newline escaping.
type wsConn struct {
	id string
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) Send(frame string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, []byte(frame))
}

// WSServer exposes the same protocol over a websocket endpoint at /ws, for
// browser-based editors. It shares the registry with the TCP transport, so
// clients on either channel collaborate on the same documents.
type WSServer struct {
	addr     string
	registry *runtime.Registry
	router   *runtime.Router
	store    storage.IDocumentStore
	monitor  *observability.Monitor
	log      *slog.Logger
}

func NewWSServer(addr string, registry *runtime.Registry, router *runtime.Router,
	store storage.IDocumentStore, monitor *observability.Monitor, log *slog.Logger) *WSServer {
	return &WSServer{addr: addr, registry: registry, router: router,
		store: store, monitor: monitor, log: log}
}

// Run serves the websocket endpoint until the context is canceled. It
// satisfies the Worker contract.
func (s *WSServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	srv := &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("websocket transport listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *WSServer) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // editors are served from arbitrary origins
		},
	}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}

	conn := &wsConn{id: uuid.NewString(), ws: ws}
	s.monitor.ConnOpened()
	s.registry.Track(conn)
	engine := runtime.NewEngine(conn, s.registry, s.router, s.store, s.monitor, s.log)
	defer func() {
		engine.Disconnect()
		_ = ws.Close()
		s.monitor.ConnClosed()
	}()

	ws.SetReadLimit(maxFrameSize)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("websocket read ended", "conn", conn.id, "error", err)
			}
			return
		}
		engine.HandleFrame(string(data))
	}
}
