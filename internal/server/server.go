// Package server exposes chess games over HTTP and WebSocket.
//
// Every game lives in a Hub and is guarded by its own mutex; the engine
// itself is never touched concurrently. Each accepted move is persisted to
// the store and pushed to the game's WebSocket watchers.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/store"
)

const maxJSONBodyBytes int64 = 1 << 16

// MovesResponse lists the destinations of one piece.
type MovesResponse struct {
	Square  string   `json:"square"`
	Moves   []string `json:"moves"`
	Castles []string `json:"castles"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type createBody struct {
	Position string `json:"position"`
}

type moveBody struct {
	Move string `json:"move"`
}

// wsMessage is sent to and received from WebSocket clients. Clients send
// {"type":"move","move":"e2e4"}; the server answers with "state" or "error".
type wsMessage struct {
	Type  string           `json:"type"`
	Move  string           `json:"move,omitempty"`
	State *output.JSONGame `json:"state,omitempty"`
	Error *ErrorResponse   `json:"error,omitempty"`
}

// Server routes HTTP requests to a Hub.
type Server struct {
	cfg      *config.Config
	hub      *Hub
	router   *mux.Router
	handler  http.Handler
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// New creates a server for the games in st.
func New(cfg *config.Config, st *store.Store) *Server {
	logOut := cfg.LogFile
	if logOut == nil {
		logOut = io.Discard
	}
	logger := log.New(logOut, "chess-server ", log.LstdFlags)

	s := &Server{
		cfg:    cfg,
		hub:    NewHub(st, logger),
		router: mux.NewRouter(),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.Server.AllowedOrigins),
		},
	}
	s.routes()
	s.handler = s.wrap(s.router)
	return s
}

// Hub returns the server's game hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", s.withJSON(s.handleCreate)).Methods(http.MethodPost)
	api.HandleFunc("/games", s.withJSON(s.handleList)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.withJSON(s.handleState)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/moves/{square}", s.withJSON(s.handlePossibleMoves)).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/moves", s.withJSON(s.handleMove)).Methods(http.MethodPost)

	s.router.HandleFunc("/ws/games/{id}", s.handleWatch)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.NotFoundHandler = s.withJSON(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
}

// Handler returns the router wrapped in access logging and, when origins
// are configured, CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) wrap(h http.Handler) http.Handler {
	if origins := s.cfg.Server.AllowedOrigins; len(origins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type", "If-None-Match"}),
			handlers.ExposedHeaders([]string{"ETag"}),
		)(h)
	}
	if s.cfg.Verbosity > 0 && s.cfg.LogFile != nil {
		h = handlers.LoggingHandler(s.cfg.LogFile, h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		MaxHeaderBytes:    1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ---- JSON helpers ----

func (s *Server) withJSON(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Printf("internal error: %v", err)
	}
	writeJSON(w, status, errorResponse(err))
}

func errorResponse(err error) *ErrorResponse {
	return &ErrorResponse{Error: err.Error(), Kind: errors.Kind(err)}
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, errors.ErrGameNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrGameOver):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrInvalidMove),
		stderrors.Is(err, errors.ErrInvalidSquare),
		stderrors.Is(err, errors.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Kind(err) != "":
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// etag returns a strong validator for an encoded state.
func etag(body []byte) string {
	return fmt.Sprintf("\"%016x\"", xxhash.Sum64(body))
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return err
		}
		return fmt.Errorf("decode request body: %v: %w", err, errors.ErrInvalidMove)
	}
	return nil
}

// ---- API handlers ----

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	state, err := s.hub.Create(body.Position)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/games/"+state.ID)
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	games, err := s.hub.List()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output.JSONOutput{Games: games})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := s.hub.State(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	body, err := json.Marshal(state)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tag := etag(body)
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}

func (s *Server) handlePossibleMoves(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp, err := s.hub.PossibleMoves(vars["id"], vars["square"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var body moveBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	state, err := s.hub.Move(mux.Vars(r)["id"], body.Move)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ---- WebSocket ----

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil // gorilla's default: same origin only
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.hub.State(id); err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("game %s: websocket upgrade: %v", id, err)
		return
	}
	if err := s.hub.watch(id, conn); err != nil {
		s.logger.Printf("game %s: watch: %v", id, err)
		conn.Close()
		return
	}
	s.logger.Printf("game %s: watcher %s joined", id, conn.RemoteAddr())

	go s.readLoop(id, conn)
}

// readLoop plays the moves a watcher sends until the connection fails.
// Accepted moves reach the sender through the broadcast; rejections are
// answered to the sender alone.
func (s *Server) readLoop(id string, conn *websocket.Conn) {
	defer func() {
		s.hub.unwatch(id, conn)
		conn.Close()
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("game %s: read from %s: %v", id, conn.RemoteAddr(), err)
			}
			return
		}
		if msg.Type != "move" {
			s.sendError(id, conn, fmt.Errorf("unknown message type %q: %w", msg.Type, errors.ErrInvalidMove))
			continue
		}
		if _, err := s.hub.Move(id, msg.Move); err != nil {
			s.sendError(id, conn, err)
		}
	}
}

func (s *Server) sendError(id string, conn *websocket.Conn, err error) {
	if werr := s.hub.reply(id, conn, wsMessage{Type: "error", Error: errorResponse(err)}); werr != nil {
		s.logger.Printf("game %s: reply to %s: %v", id, conn.RemoteAddr(), werr)
	}
}
