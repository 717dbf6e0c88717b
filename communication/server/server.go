package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"connect4/communication"
	"connect4/engine"
	"connect4/meta"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

var ErrSessionNotFound = errors.New("session not found")

type Option func(s *Server)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithMaintenanceInterval(interval time.Duration) Option {
	return func(s *Server) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithEngineFactory sets how engines are built for new sessions and
// websocket connections.
func WithEngineFactory(factory func() *engine.LocalEngine) Option {
	return func(s *Server) {
		if factory != nil {
			s.newEngine = factory
		}
	}
}

type session struct {
	engine   *engine.LocalEngine
	lastUsed time.Time
}

// Server exposes engines over HTTP. Every session and every websocket
// connection owns its own engine, so clients never share search state.
type Server struct {
	mu        sync.Mutex
	sessions  map[string]*session
	newEngine func() *engine.LocalEngine
	ttl       time.Duration
	interval  time.Duration
	upgrader  websocket.Upgrader
	router    chi.Router
}

func NewServer(options ...Option) *Server {
	s := &Server{ // Default values
		sessions:  make(map[string]*session),
		newEngine: func() *engine.LocalEngine { return engine.NewLocalEngine() },
		ttl:       meta.SESSION_TTL,
		interval:  meta.MAINTENANCE_INTERVAL,
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	for _, option := range options {
		option(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sessions", s.handleOpenSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Delete("/", s.handleCloseSession)
			r.Post("/messages", s.handleMessage)
			r.Post("/move", s.handleTyped(communication.GetMove))
			r.Post("/reset", s.handleTyped(communication.Reset))
		})
		r.Get("/ws", s.handleWebsocket)
	})
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run sweeps sessions every maintenance interval until ctx is done: idle
// sessions are dropped and the remaining engines maintain their tables.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep drops sessions idle since before now minus the TTL and maintains the
// rest. It returns the number of sessions dropped.
func (s *Server) Sweep(now time.Time) int {
	s.mu.Lock()
	var live []*engine.LocalEngine
	dropped := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.ttl {
			delete(s.sessions, id)
			dropped++
			continue
		}
		live = append(live, sess.engine)
	}
	s.mu.Unlock()

	for _, e := range live {
		e.Maintain()
	}
	if dropped > 0 {
		log.Info().Msgf("dropped %d idle sessions, %d remaining", dropped, len(live))
	}
	return dropped
}

// ListenAndServe serves on addr and runs the sweep loop until ctx is done,
// then shuts the HTTP server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.Run(ctx)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &session{engine: s.newEngine(), lastUsed: time.Now()}
	s.mu.Unlock()

	hlog.FromRequest(r).Info().Str("session", id).Msg("session opened")
	writeJSON(w, http.StatusCreated, communication.Session{ID: id})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, communication.ErrorMessage(ErrSessionNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	s.serveMessage(w, r, "")
}

// handleTyped serves the REST shortcuts, where the path fixes the message
// type and the body may omit it.
func (s *Server) handleTyped(typ communication.MessageType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveMessage(w, r, typ)
	}
}

func (s *Server) serveMessage(w http.ResponseWriter, r *http.Request, typ communication.MessageType) {
	e, ok := s.touch(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, communication.ErrorMessage(ErrSessionNotFound))
		return
	}

	var msg communication.Message
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			writeJSON(w, http.StatusBadRequest, communication.ErrorMessage(fmt.Errorf("invalid payload: %w", err)))
			return
		}
	}
	if typ != "" {
		msg.Type = typ
	}

	reply, status := exchange(r.Context(), e, msg)
	writeJSON(w, status, reply)
}

// touch returns the session's engine and marks the session as used.
func (s *Server) touch(id string) (*engine.LocalEngine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastUsed = time.Now()
	return sess.engine, true
}

// handleWebsocket serves one engine per connection. Messages are answered
// strictly in the order they arrive.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	e := s.newEngine()
	e.StartMaintenance(ctx, s.interval)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket read failed")
			}
			return
		}

		var msg communication.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := conn.WriteJSON(communication.ErrorMessage(fmt.Errorf("invalid payload: %w", err))); err != nil {
				return
			}
			continue
		}

		reply, _ := exchange(ctx, e, msg)
		if err := conn.WriteJSON(reply); err != nil {
			log.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// exchange validates a request, runs it on e and returns the reply with the
// matching HTTP status.
func exchange(ctx context.Context, e engine.Engine, msg communication.Message) (communication.Message, int) {
	if err := msg.Validate(); err != nil {
		return communication.ErrorMessage(err), http.StatusBadRequest
	}

	req := engine.Request{Command: engine.Reset}
	if msg.Type == communication.GetMove {
		req = engine.Request{Command: engine.GetMove, Board: *msg.Board, Difficulty: msg.Difficulty}
	}

	response, err := engine.Handle(ctx, e, req)
	if err != nil {
		return communication.ErrorMessage(err), http.StatusInternalServerError
	}
	if req.Command == engine.Reset {
		return communication.Message{Type: communication.ResetOK}, http.StatusOK
	}
	return communication.MoveMessage(response.Column, string(response.Layer)), http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}
