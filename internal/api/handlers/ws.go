package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/profile"
	"github.com/wonny/jyotish/backend/internal/transit"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

const (
	// wsRefreshInterval is how often a fresh transit report is pushed; the
	// Moon moves about half a degree per hour, so minutes is plenty
	wsRefreshInterval = 5 * time.Minute

	wsPingInterval = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// TransitStreamHandler pushes live transit reports over a websocket
// ⭐ SSOT: 트랜짓 스트림은 이 핸들러에서만
type TransitStreamHandler struct {
	resolver contracts.ChartResolver
	profiles *profile.Repository
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

// NewTransitStreamHandler creates the stream handler
func NewTransitStreamHandler(resolver contracts.ChartResolver, profiles *profile.Repository, log *logger.Logger) *TransitStreamHandler {
	return &TransitStreamHandler{
		resolver: resolver,
		profiles: profiles,
		logger:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Stream upgrades the connection and pushes a report immediately, then on
// every refresh tick until the client goes away
// GET /ws/transits?profile_id=...
func (h *TransitStreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profile_id")
	if profileID == "" {
		writeError(w, http.StatusBadRequest, "profile_id is required")
		return
	}

	p, err := h.profiles.GetByID(r.Context(), profileID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.WithField("profile_id", profileID).Info("Transit stream opened")

	// Reader detects the client closing; nothing inbound is expected
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	refresh := time.NewTicker(wsRefreshInterval)
	defer refresh.Stop()
	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	if !h.push(conn, p) {
		return
	}

	for {
		select {
		case <-done:
			h.logger.WithField("profile_id", profileID).Info("Transit stream closed by client")
			return
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-refresh.C:
			if !h.push(conn, p) {
				return
			}
		}
	}
}

// push computes and writes one report; false means the stream should end
func (h *TransitStreamHandler) push(conn *websocket.Conn, p *profile.Profile) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	instant, hasTime := p.BirthInstant()
	natal, err := h.resolver.Resolve(ctx, instant, hasTime, p.Location, contracts.AllBodies)
	if err != nil {
		h.logger.WithError(err).Warn("Stream natal resolution failed")
		return false
	}

	now := time.Now().UTC()
	transiting, err := h.resolver.Resolve(ctx, now, true, p.Location, contracts.AllBodies)
	if err != nil {
		h.logger.WithError(err).Warn("Stream transit resolution failed")
		return false
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(transit.Compute(transiting, natal)); err != nil {
		h.logger.WithError(err).Debug("Stream write failed, closing")
		return false
	}
	return true
}
