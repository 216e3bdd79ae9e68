// Package liveserver streams render progress to connected browsers over a
// websocket, one JSON frame per completed column.
package liveserver

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server accepts websocket connections on /progress and fans out every
// Broadcast call to all of them. It satisfies renderer.Broadcaster.
type Server struct {
	logger *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New creates a Server that logs connection lifecycle events through logger.
func New(logger *zap.Logger) *Server {
	return &Server{
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the /progress endpoint handler to register on an
// http.ServeMux.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Error("websocket upgrade failed", zap.Error(err))
			return
		}

		s.mu.Lock()
		s.clients[conn] = struct{}{}
		s.mu.Unlock()

		go s.drainUntilClosed(conn)
	}
}

// drainUntilClosed discards incoming messages (the protocol is
// server-to-client only) until the client disconnects, then forgets it.
func (s *Server) drainUntilClosed(conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast pushes frame to every connected client, dropping any client
// whose write fails.
func (s *Server) Broadcast(frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			s.logger.Warn("dropping live-progress client", zap.Error(err))
			conn.Close()
			delete(s.clients, conn)
		}
	}
}
