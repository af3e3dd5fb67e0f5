package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Handler turns raw keyboard state into viewer playback commands. One-shot
// commands (step, interval changes) stay latched until consumed.
type Handler struct {
	// Playback state
	paused        bool
	stepRequested bool
	quitRequested bool

	// Pending turn interval adjustment in ticks; negative means faster.
	intervalDelta int
}

func NewHandler() *Handler {
	return &Handler{}
}

// Update samples the keyboard. Call once per ebiten tick.
func (h *Handler) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.paused = !h.paused
	}

	// Stepping implies pausing so a battle can be inspected move by move.
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		h.paused = true
		h.stepRequested = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.quitRequested = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		h.intervalDelta -= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		h.intervalDelta += 2
	}
}

func (h *Handler) Paused() bool {
	return h.paused
}

func (h *Handler) QuitRequested() bool {
	return h.quitRequested
}

// ConsumeStep reports and clears a pending single-step request.
func (h *Handler) ConsumeStep() bool {
	s := h.stepRequested
	h.stepRequested = false
	return s
}

// ConsumeIntervalDelta reports and clears the pending interval change.
func (h *Handler) ConsumeIntervalDelta() int {
	d := h.intervalDelta
	h.intervalDelta = 0
	return d
}
