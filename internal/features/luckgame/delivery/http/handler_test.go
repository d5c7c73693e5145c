package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	giftmodels "birthday-backend/internal/features/gift/models"
	"birthday-backend/internal/features/luckgame/engine"
	selectionmodels "birthday-backend/internal/features/selection/models"
)

// stubGiftService serves a fixed luck-game view; the session only ever
// calls LuckGameView.
type stubGiftService struct {
	view []*giftmodels.Gift
}

func (s *stubGiftService) Create(context.Context, *giftmodels.Gift) (*giftmodels.Gift, error) {
	return nil, nil
}

func (s *stubGiftService) GetByID(context.Context, string) (*giftmodels.Gift, error) {
	return nil, nil
}

func (s *stubGiftService) List(context.Context) ([]*giftmodels.Gift, error) { return nil, nil }

func (s *stubGiftService) Update(context.Context, map[string]json.RawMessage) (*giftmodels.Gift, error) {
	return nil, nil
}

func (s *stubGiftService) Delete(context.Context, string) error { return nil }

func (s *stubGiftService) SelectionView(context.Context) ([]*giftmodels.Gift, error) {
	return nil, nil
}

func (s *stubGiftService) LuckGameView(context.Context) ([]*giftmodels.Gift, error) {
	return s.view, nil
}

func (s *stubGiftService) RemoveFromPage(context.Context, string, giftmodels.Page) error {
	return nil
}

type memSelectionService struct {
	mu  sync.Mutex
	log []*selectionmodels.UserSelection
}

func (s *memSelectionService) Create(_ context.Context, selection *selectionmodels.UserSelection, userAgent string) (*selectionmodels.UserSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *selection
	if clone.UserAgent == "" {
		clone.UserAgent = userAgent
	}
	s.log = append([]*selectionmodels.UserSelection{&clone}, s.log...)
	return &clone, nil
}

func (s *memSelectionService) List(_ context.Context) ([]*selectionmodels.UserSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*selectionmodels.UserSelection, len(s.log))
	copy(out, s.log)
	return out, nil
}

func (s *memSelectionService) Delete(context.Context, string) error { return nil }

func (s *memSelectionService) newest() *selectionmodels.UserSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.log) == 0 {
		return nil
	}
	clone := *s.log[0]
	return &clone
}

func luckGameView(n int) []*giftmodels.Gift {
	gifts := make([]*giftmodels.Gift, 0, n+1)
	for i := 0; i < n; i++ {
		gifts = append(gifts, &giftmodels.Gift{
			ID:      fmt.Sprintf("gift-%d", i),
			Title:   fmt.Sprintf("Gift %d", i),
			Enabled: true,
			Order:   i,
		})
	}
	win := giftmodels.WinGift()
	return append(gifts, &win)
}

// dialSession spins up the handler behind an httptest server and dials
// the websocket endpoint.
func dialSession(t *testing.T, selections *memSelectionService, clock clockwork.Clock) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewLuckGameHandler(&stubGiftService{view: luckGameView(2)}, selections, engine.WithClock(clock))

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/luck/session"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) serverEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var event serverEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

// readUntilPhase consumes events until the wanted phase arrives,
// skipping interleaved boxes updates.
func readUntilPhase(t *testing.T, conn *websocket.Conn, want engine.Phase) {
	t.Helper()
	for {
		event := readEvent(t, conn)
		if event.Type == "phase" && event.Phase == want {
			return
		}
	}
}

func TestSessionStreamsInitialBoxesAndIntro(t *testing.T) {
	clock := clockwork.NewFakeClock()
	conn := dialSession(t, &memSelectionService{}, clock)

	event := readEvent(t, conn)
	require.Equal(t, "boxes", event.Type)
	require.Len(t, event.Boxes, 3)
	assert.Equal(t, engine.WinBoxID, event.Boxes[2].ID)

	event = readEvent(t, conn)
	require.Equal(t, "phase", event.Type)
	assert.Equal(t, engine.PhaseIntro, event.Phase)
}

func TestSessionFullFlowPersistsFinalOutcome(t *testing.T) {
	clock := clockwork.NewFakeClock()
	selections := &memSelectionService{}

	// The wish the visitor wrote on the gifts page earlier in the visit.
	_, err := selections.Create(context.Background(), &selectionmodels.UserSelection{
		ID:             "earlier",
		SelectedGiftID: selectionmodels.CustomGiftID,
		CustomText:     "A puppy",
		Timestamp:      1,
	}, "test-agent")
	require.NoError(t, err)

	conn := dialSession(t, selections, clock)

	clock.BlockUntil(1)
	clock.Advance(1000 * time.Millisecond)
	readUntilPhase(t, conn, engine.PhaseShowing)

	clock.Advance(3000 * time.Millisecond)
	readUntilPhase(t, conn, engine.PhaseHiding)

	clock.Advance(1000 * time.Millisecond)
	readUntilPhase(t, conn, engine.PhaseShuffling)

	clock.Advance(4500 * time.Millisecond)
	readUntilPhase(t, conn, engine.PhaseSelecting)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "select", BoxID: "box-1"}))

	sawRevealed := false
	for {
		event := readEvent(t, conn)
		if event.Type == "phase" && event.Phase == engine.PhaseRevealed {
			sawRevealed = true
			continue
		}
		if event.Type == "selected" {
			assert.Equal(t, engine.WinBoxID, event.BoxID)
			break
		}
	}
	assert.True(t, sawRevealed, "revealed phase should precede the selected event")

	clock.Advance(3000 * time.Millisecond)
	readUntilPhase(t, conn, engine.PhaseChoosingFinalGift)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "final", GiftID: "gift-0"}))

	require.Eventually(t, func() bool {
		newest := selections.newest()
		return newest != nil && newest.IsFinalOutcome()
	}, 2*time.Second, 5*time.Millisecond)

	outcome := selections.newest()
	assert.Equal(t, "gift-0", outcome.SelectedGiftID)
	assert.Equal(t, []string{"gift-0"}, outcome.OpenedGiftIds)
	assert.Equal(t, "A puppy", outcome.CustomText)

	clock.Advance(2000 * time.Millisecond)
	readUntilPhase(t, conn, engine.PhaseFinal)
}

func TestSessionRejectsOutOfPhaseSelect(t *testing.T) {
	clock := clockwork.NewFakeClock()
	selections := &memSelectionService{}
	conn := dialSession(t, selections, clock)

	// Still in intro; the click must change nothing and the session must
	// keep streaming.
	require.NoError(t, conn.WriteJSON(clientMessage{Type: "select", BoxID: "box-0"}))

	clock.BlockUntil(1)
	clock.Advance(1000 * time.Millisecond)
	readUntilPhase(t, conn, engine.PhaseShowing)

	assert.Nil(t, selections.newest())
}
