package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/cacaolab/biotherm/thermal"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the wire envelope pushed to clients.
type Message struct {
	Type string           `json:"type"`
	Data thermal.Snapshot `json:"data,omitempty"`
}

// Server exposes the live statistics stream over HTTP. Wire it to a run via
// OnStep and Done.
type Server struct {
	hub *Hub
	srv *http.Server
}

func New(addr string) *Server {
	s := &Server{hub: NewHub()}
	s.srv = &http.Server{Addr: addr, Handler: s.Handler()}
	return s
}

// Handler returns the route table, separate from Start so tests can mount it
// on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	c := &client{hub: s.hub, conn: conn, send: make(chan []byte, sendBuffer)}
	s.hub.register <- c
	go c.writePump()
	go c.readPump()
}

// Start runs the hub and listens on the configured address, blocking until
// the server is shut down.
func (s *Server) Start() error {
	go s.hub.Run()
	log.WithField("addr", s.srv.Addr).Info("serving live statistics")
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// RunHub starts only the hub, for use behind an external HTTP server.
func (s *Server) RunHub() { go s.hub.Run() }

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int { return s.hub.ClientCount() }

// OnStep pushes one accepted time level to all clients. It matches the
// solver's callback signature.
func (s *Server) OnStep(step thermal.Step) {
	msg, err := json.Marshal(Message{Type: "snapshot", Data: step.Stats})
	if err != nil {
		log.WithError(err).Error("marshaling snapshot")
		return
	}
	s.hub.Broadcast(msg)
}

// Done announces the end of the run to all clients.
func (s *Server) Done() {
	msg, _ := json.Marshal(Message{Type: "complete"})
	s.hub.Broadcast(msg)
}

// Shutdown closes the hub and stops the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}
