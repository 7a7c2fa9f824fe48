package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/game"
)

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used to stamp outgoing messages.
func WithClock(c quartz.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithSavePath saves the game to path after every settled fight.
func WithSavePath(path string) Option {
	return func(s *Server) { s.savePath = path }
}

// Server exposes one game over WebSocket. All clients drive the same game and
// receive every fight event.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	clock       quartz.Clock
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	runOnce     sync.Once

	// gameMu serialises every call into the game and its fight session.
	gameMu   sync.Mutex
	game     *game.Game
	events   *combat.SimpleEventBus
	savePath string
}

// NewServer creates a new WebSocket server for g
func NewServer(addr string, g *game.Game, logger *log.Logger, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		clock:       quartz.NewReal(),
		ctx:         ctx,
		cancel:      cancel,
		game:        g,
		events:      combat.NewEventBus(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events.Subscribe(combat.SubscriberFunc(s.broadcastEvent))
	return s
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	s.runOnce.Do(func() { go s.run() })

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		_ = s.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down WebSocket server")
	_ = s.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Stop closes every connection.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// ConnectionCount returns the number of connected clients.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s)
	select {
	case s.register <- client:
	case <-s.ctx.Done():
		_ = client.Close()
		return
	}
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) newMessage(t MessageType, data any) (*Message, error) {
	return NewMessage(t, data, s.clock.Now())
}

// broadcast sends msg to every connected client
func (s *Server) broadcast(msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		_ = conn.SendMessage(msg)
	}
}

func (s *Server) broadcastEvent(event combat.Event) {
	msg, err := NewMessage(MessageTypeEvent, EventData{
		EventType: event.EventType().String(),
		Event:     event,
	}, event.Timestamp())
	if err != nil {
		s.logger.Error("Failed to encode event", "type", event.EventType(), "error", err)
		return
	}
	s.broadcast(msg)
}

// dispatch runs one client request. Events published by the game reach every
// client before the reply is queued.
func (s *Server) dispatch(ctx context.Context, msg *Message) (any, error) {
	s.gameMu.Lock()
	defer s.gameMu.Unlock()

	switch msg.Type {
	case MessageTypeState:
		return gameStateFrom(s.game), nil

	case MessageTypeStartFight:
		sess, err := s.game.StartFight(combat.WithEventBus(s.events))
		if err != nil {
			return nil, err
		}
		return fightStateFrom(sess), nil

	case MessageTypeEndFight:
		st, err := s.game.EndFight(ctx)
		if err != nil {
			return nil, err
		}
		if s.savePath != "" {
			if err := s.game.Save(s.savePath); err != nil {
				s.logger.Error("Failed to save game", "path", s.savePath, "error", err)
			}
		}
		return st, nil
	}

	sess, err := s.game.Fight()
	if err != nil {
		if msg.Type.known() {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, msg.Type)
	}

	switch msg.Type {
	case MessageTypeNewRound:
		return sess.StartNewRound()

	case MessageTypeSelectCard:
		var data SelectCardData
		if err := decode(msg, &data); err != nil {
			return nil, err
		}
		return sess.SelectCard(data.CardID)

	case MessageTypePlayCard:
		var data PlayCardData
		if err := decode(msg, &data); err != nil {
			return nil, err
		}
		target, err := s.resolveTarget(data)
		if err != nil {
			return nil, err
		}
		return sess.PlayCard(data.CardID, target)

	case MessageTypeResolve:
		return sess.ResolveRound()

	case MessageTypeConcede:
		if err := sess.Concede(); err != nil {
			return nil, err
		}
		return fightStateFrom(sess), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, msg.Type)
	}
}

// resolveTarget parses the requested target, falling back to the card's
// default.
func (s *Server) resolveTarget(data PlayCardData) (card.Target, error) {
	if data.Target != "" {
		t, err := card.ParseTarget(data.Target)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", combat.ErrInvalidTarget, err)
		}
		return t, nil
	}
	c, ok := s.game.Catalog().Lookup(data.CardID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", combat.ErrCardNotInHand, data.CardID)
	}
	return c.DefaultTarget, nil
}

func decode(msg *Message, v any) error {
	if len(msg.Data) == 0 {
		return fmt.Errorf("%w: %s needs data", ErrInvalidMessage, msg.Type)
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return nil
}
