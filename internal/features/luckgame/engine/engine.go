// Package engine runs one luck-game session: a linear phase machine over
// scheduled timers, a box shuffler, and the selection resolver. One
// Game per visitor session; nothing here is persisted.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	giftmodels "birthday-backend/internal/features/gift/models"
)

// Phase is one step of the fixed linear game flow. There are no
// backward transitions.
type Phase string

const (
	PhaseIntro             Phase = "intro"
	PhaseShowing           Phase = "showing"
	PhaseHiding            Phase = "hiding"
	PhaseShuffling         Phase = "shuffling"
	PhaseSelecting         Phase = "selecting"
	PhaseRevealed          Phase = "revealed"
	PhaseChoosingFinalGift Phase = "choosingFinalGift"
	PhaseFinal             Phase = "final"
)

// Dwell times of the auto-advancing phases.
const (
	introDwell     = 1000 * time.Millisecond
	showingDwell   = 3000 * time.Millisecond
	hidingDwell    = 1000 * time.Millisecond
	shuffleWindow  = 4500 * time.Millisecond
	shuffleTick    = 500 * time.Millisecond
	revealedDwell  = 3000 * time.Millisecond
	finalPickDwell = 2000 * time.Millisecond
)

// WinBoxID is the id of the synthetic box that every click resolves to.
const WinBoxID = "box-win"

var (
	ErrNotSelecting    = errors.New("selection only accepted during the selecting phase")
	ErrAlreadySelected = errors.New("a box was already selected this session")
	ErrNoWinBox        = errors.New("no win box present")
	ErrNotChoosing     = errors.New("final gift can only be chosen during the choosingFinalGift phase")
	ErrUnknownGift     = errors.New("gift is not part of this game")
)

// Box pairs a gift with a shuffleable position slot. Identities never
// move; only Position changes during shuffling.
type Box struct {
	ID       string          `json:"id"`
	Gift     giftmodels.Gift `json:"gift"`
	Position int             `json:"position"`
	IsWinBox bool            `json:"isWinBox"`
}

// Events receives game notifications. Nil callbacks are skipped. The
// callbacks run outside the game lock; calling back into the Game from
// them is safe.
type Events struct {
	OnPhase func(Phase)
	OnBoxes func([]Box)
}

// Game is one luck-game session. All state transitions go through the
// mutex; timer callbacks that lose a race against a user action degrade
// to no-ops.
type Game struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	rng    *rand.Rand
	events Events

	phase       Phase
	boxes       []Box
	selectedBox string
	finalGift   string

	timers       map[int]clockwork.Timer
	nextTimerID  int
	shuffleTimer clockwork.Timer
	stopped      bool
}

// Option configures a Game.
type Option func(*Game)

// WithClock injects a clock; tests pass a fake one.
func WithClock(clock clockwork.Clock) Option {
	return func(g *Game) { g.clock = clock }
}

// WithRand injects the random source used by the shuffler.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithEvents registers notification callbacks.
func WithEvents(events Events) Option {
	return func(g *Game) { g.events = events }
}

// NewGame builds the box layout from the luck-game gift view: one box
// per gift in order, plus the synthetic win box appended last. The gift
// list may be empty; the win box is always present.
func NewGame(gifts []*giftmodels.Gift, opts ...Option) *Game {
	g := &Game{
		clock:  clockwork.NewRealClock(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:  PhaseIntro,
		timers: make(map[int]clockwork.Timer),
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, gift := range gifts {
		if gift.ID == giftmodels.WinGiftID {
			continue
		}
		// Id and position derive from the boxes built so far, not from
		// the input index, so a skipped win sentinel leaves no gap.
		g.boxes = append(g.boxes, Box{
			ID:       boxID(len(g.boxes)),
			Gift:     *gift,
			Position: len(g.boxes),
		})
	}
	g.boxes = append(g.boxes, Box{
		ID:       WinBoxID,
		Gift:     giftmodels.WinGift(),
		Position: len(g.boxes),
		IsWinBox: true,
	})

	return g
}

func boxID(index int) string {
	return fmt.Sprintf("box-%d", index)
}

// Start kicks off the automatic phase chain. Call at most once.
func (g *Game) Start() {
	g.schedule(introDwell, func() { g.advance(PhaseIntro, PhaseShowing) })
}

// Stop tears the session down, cancelling every pending timer. No
// transition fires after Stop returns.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopped = true
	for id, timer := range g.timers {
		timer.Stop()
		delete(g.timers, id)
	}
	g.stopShuffleLocked()
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Boxes returns a snapshot of the boxes sorted by current position, the
// order in which they render.
func (g *Game) Boxes() []Box {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.displayBoxesLocked()
}

// SelectedBox returns the id of the resolved box, empty before any
// accepted click.
func (g *Game) SelectedBox() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selectedBox
}

// FinalGift returns the gift id picked during choosingFinalGift.
func (g *Game) FinalGift() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finalGift
}

// SelectBox resolves the visitor's first click during the selecting
// phase. Whatever box was clicked, the outcome is always the win box;
// there is no losing path. Later clicks and clicks outside the phase
// are rejected without effect.
func (g *Game) SelectBox(clickedBoxID string) (string, error) {
	g.mu.Lock()

	if g.stopped || g.phase != PhaseSelecting {
		g.mu.Unlock()
		return "", ErrNotSelecting
	}
	if g.selectedBox != "" {
		g.mu.Unlock()
		return "", ErrAlreadySelected
	}

	winID := ""
	for _, box := range g.boxes {
		if box.IsWinBox {
			winID = box.ID
			break
		}
	}
	if winID == "" {
		// Should not happen given construction, but the selection must
		// stay empty and the phase must not advance.
		g.mu.Unlock()
		return "", ErrNoWinBox
	}

	g.selectedBox = winID
	g.phase = PhaseRevealed
	g.scheduleLocked(revealedDwell, func() { g.advance(PhaseRevealed, PhaseChoosingFinalGift) })
	g.mu.Unlock()

	g.notifyPhase(PhaseRevealed)

	return winID, nil
}

// ChooseFinalGift records the visitor's pick among the real gifts and
// schedules the transition into the terminal phase.
func (g *Game) ChooseFinalGift(giftID string) error {
	g.mu.Lock()

	if g.stopped || g.phase != PhaseChoosingFinalGift {
		g.mu.Unlock()
		return ErrNotChoosing
	}

	known := false
	for _, box := range g.boxes {
		if !box.IsWinBox && box.Gift.ID == giftID {
			known = true
			break
		}
	}
	if !known {
		g.mu.Unlock()
		return ErrUnknownGift
	}

	g.finalGift = giftID
	g.scheduleLocked(finalPickDwell, func() { g.advance(PhaseChoosingFinalGift, PhaseFinal) })
	g.mu.Unlock()

	return nil
}

// advance moves from one phase to its successor. The successor's own
// timers are registered in the same critical section that publishes the
// phase, so no observer can see a phase whose dwell timer is missing.
// A stale timer whose "from" phase already passed is a no-op.
func (g *Game) advance(from, to Phase) {
	g.mu.Lock()
	if g.stopped || g.phase != from {
		g.mu.Unlock()
		return
	}
	g.phase = to

	switch to {
	case PhaseShowing:
		g.scheduleLocked(showingDwell, func() { g.advance(PhaseShowing, PhaseHiding) })
	case PhaseHiding:
		g.scheduleLocked(hidingDwell, func() { g.advance(PhaseHiding, PhaseShuffling) })
	case PhaseShuffling:
		// The repeating swap tick plus the authoritative window close,
		// which cancels the pending tick exactly once and releases the
		// selecting phase.
		g.shuffleTimer = g.clock.AfterFunc(shuffleTick, g.shuffleTickFired)
		g.scheduleLocked(shuffleWindow, g.closeShuffleWindow)
	}
	// selecting, revealed, choosingFinalGift and final wait on input or
	// on timers scheduled by the inputs themselves.
	g.mu.Unlock()

	g.notifyPhase(to)
}

func (g *Game) shuffleTickFired() {
	g.mu.Lock()
	if g.stopped || g.phase != PhaseShuffling || g.shuffleTimer == nil {
		g.mu.Unlock()
		return
	}

	g.swapLocked()
	boxes := g.displayBoxesLocked()
	g.shuffleTimer = g.clock.AfterFunc(shuffleTick, g.shuffleTickFired)
	g.mu.Unlock()

	g.notifyBoxes(boxes)
}

func (g *Game) closeShuffleWindow() {
	g.mu.Lock()
	if g.stopped || g.phase != PhaseShuffling {
		g.mu.Unlock()
		return
	}
	g.stopShuffleLocked()
	g.phase = PhaseSelecting
	boxes := g.displayBoxesLocked()
	g.mu.Unlock()

	g.notifyBoxes(boxes)
	g.notifyPhase(PhaseSelecting)
}

// stopShuffleLocked cancels the pending swap timer. Guarded by the nil
// check so the cancellation happens exactly once.
func (g *Game) stopShuffleLocked() {
	if g.shuffleTimer != nil {
		g.shuffleTimer.Stop()
		g.shuffleTimer = nil
	}
}

// swapLocked transposes the positions of two distinct boxes chosen
// uniformly at random. Box identity and content never move.
func (g *Game) swapLocked() {
	if len(g.boxes) < 2 {
		return
	}

	i := g.rng.Intn(len(g.boxes))
	j := g.rng.Intn(len(g.boxes))
	for j == i {
		j = g.rng.Intn(len(g.boxes))
	}

	g.boxes[i].Position, g.boxes[j].Position = g.boxes[j].Position, g.boxes[i].Position
}

func (g *Game) displayBoxesLocked() []Box {
	boxes := make([]Box, len(g.boxes))
	copy(boxes, g.boxes)
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Position < boxes[j].Position
	})
	return boxes
}

// schedule registers a one-shot timer that is cancelled by Stop.
func (g *Game) schedule(d time.Duration, fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scheduleLocked(d, fn)
}

func (g *Game) scheduleLocked(d time.Duration, fn func()) {
	if g.stopped {
		return
	}

	id := g.nextTimerID
	g.nextTimerID++
	g.timers[id] = g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		delete(g.timers, id)
		stopped := g.stopped
		g.mu.Unlock()
		if !stopped {
			fn()
		}
	})
}

func (g *Game) notifyPhase(phase Phase) {
	if g.events.OnPhase != nil {
		g.events.OnPhase(phase)
	}
}

func (g *Game) notifyBoxes(boxes []Box) {
	if g.events.OnBoxes != nil {
		g.events.OnBoxes(boxes)
	}
}
