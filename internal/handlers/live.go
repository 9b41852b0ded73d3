// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling
// mechanisms.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/collabscope/core/internal/config"
	"github.com/collabscope/core/internal/graph"
	"github.com/collabscope/core/internal/metrics"
	"github.com/collabscope/core/internal/store"
)

// thresholdMessage is what the renderer sends as the slider moves.
type thresholdMessage struct {
	MinWeight float64 `json:"min_weight"`
}

// LiveHandler upgrades /live connections to WebSocket threshold sessions.
// Each message from the client selects a new min_weight and is answered with
// the filtered view at that threshold. When the dataset reloads, every open
// session receives a fresh view at its last threshold.
type LiveHandler struct {
	upgrader websocket.Upgrader
	store    *store.Store
	cfg      *config.Config
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*liveSession
}

type liveSession struct {
	id   string
	conn *websocket.Conn

	// Guards minWeight and conn writes: the read loop and the reload
	// broadcast both touch them.
	mu        sync.Mutex
	minWeight float64
}

func NewLiveHandler(st *store.Store, cfg *config.Config, logger *zap.Logger) *LiveHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LiveHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return cfg.CORSAllowedOrigin == "*" || origin == cfg.CORSAllowedOrigin
			},
		},
		store:    st,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*liveSession),
	}
}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := &liveSession{
		id:        uuid.NewString(),
		conn:      conn,
		minWeight: h.cfg.Filter.DefaultWeight,
	}

	h.mu.Lock()
	h.sessions[session.id] = session
	h.mu.Unlock()
	metrics.LiveSessions.Inc()

	h.logger.Info("live session opened", zap.String("session", session.id))

	// Initial view at the default threshold so the renderer has something to
	// draw before the first slider move.
	h.send(session)

	go h.readLoop(session)
}

// Run pushes fresh views to all sessions after each dataset reload, until
// the context is cancelled.
func (h *LiveHandler) Run(ctx context.Context) {
	updates, cancel := h.store.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			h.mu.Lock()
			sessions := make([]*liveSession, 0, len(h.sessions))
			for _, s := range h.sessions {
				sessions = append(sessions, s)
			}
			h.mu.Unlock()

			for _, s := range sessions {
				h.send(s)
			}
		}
	}
}

func (h *LiveHandler) readLoop(session *liveSession) {
	defer h.close(session)

	for {
		_, data, err := session.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg thresholdMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("malformed live message",
				zap.String("session", session.id),
				zap.Error(err))
			continue
		}

		session.mu.Lock()
		session.minWeight = h.cfg.Clamp(msg.MinWeight)
		session.mu.Unlock()
		h.send(session)
	}
}

func (h *LiveHandler) send(session *liveSession) {
	session.mu.Lock()
	minWeight := session.minWeight
	session.mu.Unlock()

	result := graph.BuildView(h.store.Graph(), minWeight, h.cfg.Weights.IncludeSelfLoops)
	metrics.FilterOperations.Inc()

	session.mu.Lock()
	err := session.conn.WriteJSON(result)
	session.mu.Unlock()

	if err != nil {
		h.logger.Debug("live write failed",
			zap.String("session", session.id),
			zap.Error(err))
	}
}

func (h *LiveHandler) close(session *liveSession) {
	h.mu.Lock()
	_, open := h.sessions[session.id]
	delete(h.sessions, session.id)
	h.mu.Unlock()

	if open {
		metrics.LiveSessions.Dec()
		h.logger.Info("live session closed", zap.String("session", session.id))
	}
	session.conn.Close()
}
