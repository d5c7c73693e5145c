package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	giftservice "birthday-backend/internal/features/gift/service"
	"birthday-backend/internal/features/luckgame/engine"
	selectionmodels "birthday-backend/internal/features/selection/models"
	selectionservice "birthday-backend/internal/features/selection/service"
)

const (
	writeTimeout = 10 * time.Second
	sendBuffer   = 16
)

// LuckGameHandler runs live luck-game sessions over a websocket: the
// server owns the phase machine and streams phase and box-position
// events; the client only sends its two clicks.
type LuckGameHandler struct {
	gifts      giftservice.GiftService
	selections selectionservice.SelectionService
	upgrader   websocket.Upgrader
	engineOpts []engine.Option
}

// NewLuckGameHandler builds the session handler. Extra engine options
// configure every session's game; tests pass a fake clock here.
func NewLuckGameHandler(gifts giftservice.GiftService, selections selectionservice.SelectionService, engineOpts ...engine.Option) *LuckGameHandler {
	return &LuckGameHandler{
		gifts:      gifts,
		selections: selections,
		engineOpts: engineOpts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Single-tenant decorative site; the page itself is public.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *LuckGameHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/luck/session", h.session)
}

// serverEvent is one message pushed to the client.
type serverEvent struct {
	Type  string       `json:"type"` // phase | boxes | selected | error
	Phase engine.Phase `json:"phase,omitempty"`
	Boxes []engine.Box `json:"boxes,omitempty"`
	BoxID string       `json:"boxId,omitempty"`
	Error string       `json:"error,omitempty"`
}

// clientMessage is one message received from the client.
type clientMessage struct {
	Type   string `json:"type"` // select | final
	BoxID  string `json:"boxId,omitempty"`
	GiftID string `json:"giftId,omitempty"`
}

// @Summary Luck game session
// @Description Upgrades to a websocket, runs the phase machine server-side and streams its events
// @Tags luck
// @Router /luck/session [get]
func (h *LuckGameHandler) session(c *gin.Context) {
	view, err := h.gifts.LuckGameView(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	session := &gameSession{
		conn:       conn,
		selections: h.selections,
		userAgent:  c.Request.UserAgent(),
		send:       make(chan serverEvent, sendBuffer),
		done:       make(chan struct{}),
	}

	opts := append([]engine.Option{engine.WithEvents(engine.Events{
		OnPhase: session.onPhase,
		OnBoxes: session.onBoxes,
	})}, h.engineOpts...)
	session.game = engine.NewGame(view, opts...)

	go session.writeLoop()
	session.push(serverEvent{Type: "boxes", Boxes: session.game.Boxes()})
	session.push(serverEvent{Type: "phase", Phase: session.game.Phase()})
	session.game.Start()

	session.readLoop()
}

type gameSession struct {
	conn       *websocket.Conn
	game       *engine.Game
	selections selectionservice.SelectionService
	userAgent  string

	send     chan serverEvent
	done     chan struct{}
	doneOnce sync.Once
}

func (s *gameSession) onPhase(phase engine.Phase) {
	s.push(serverEvent{Type: "phase", Phase: phase})
}

func (s *gameSession) onBoxes(boxes []engine.Box) {
	s.push(serverEvent{Type: "boxes", Boxes: boxes})
}

// push drops events once the session is closing; a stalled client must
// not block the phase machine.
func (s *gameSession) push(event serverEvent) {
	select {
	case <-s.done:
	case s.send <- event:
	default:
		log.Warn().Str("event", event.Type).Msg("Luck game event dropped, send buffer full")
	}
}

func (s *gameSession) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(event); err != nil {
				s.close()
				return
			}
		}
	}
}

func (s *gameSession) readLoop() {
	defer s.close()

	for {
		var msg clientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "select":
			winID, err := s.game.SelectBox(msg.BoxID)
			if err != nil {
				// Out-of-phase and repeat clicks are no-ops; a missing
				// win box is the one failure worth telling the client.
				if err == engine.ErrNoWinBox {
					s.push(serverEvent{Type: "error", Error: err.Error()})
				}
				continue
			}
			s.push(serverEvent{Type: "selected", BoxID: winID})

		case "final":
			if err := s.game.ChooseFinalGift(msg.GiftID); err != nil {
				continue
			}
			s.persistOutcome(msg.GiftID)
		}
	}
}

// persistOutcome appends the luck-game result to the selection log;
// non-empty openedGiftIds marks it as the final outcome. The custom
// wish the visitor wrote on the gifts page rides along from their
// latest entry, so the final record shows both together.
func (s *gameSession) persistOutcome(giftID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	customText := ""
	if entries, err := s.selections.List(ctx); err == nil && len(entries) > 0 {
		customText = entries[0].CustomText
	}

	_, err := s.selections.Create(ctx, &selectionmodels.UserSelection{
		SelectedGiftID: giftID,
		CustomText:     customText,
		OpenedGiftIds:  []string{giftID},
		Timestamp:      time.Now().UnixMilli(),
	}, s.userAgent)
	if err != nil {
		log.Error().Err(err).Str("gift_id", giftID).Msg("Failed to persist luck game outcome")
		s.push(serverEvent{Type: "error", Error: "failed to save your gift, please retry"})
	}
}

func (s *gameSession) close() {
	s.doneOnce.Do(func() {
		close(s.done)
		s.game.Stop()
		_ = s.conn.Close()
	})
}
