// Package playback enforces the single-active-player rule of the feed: at
// most one mounted element plays with audio, and it is the element of the
// current index.
package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/glabrego/reels-cli/internal/media"
)

// UnmutedVolume is applied to the current element when audio is on.
const UnmutedVolume = 0.5

var (
	ErrUnknownIndex = errors.New("index does not reference a loaded reel")
	ErrNotMounted   = errors.New("element is not mounted")
)

type State int

const (
	StateIdle State = iota
	StateSwitching
	StatePlaying
	// StateMutedFallback means the unmuted start was rejected and the
	// element plays muted instead.
	StateMutedFallback
	// StateBlocked means even the muted retry was rejected; the element
	// stays paused until the user taps it.
	StateBlocked
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwitching:
		return "switching"
	case StatePlaying:
		return "playing"
	case StateMutedFallback:
		return "muted-fallback"
	case StateBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Reels is the read-only view of the loaded list the controller needs.
type Reels interface {
	Len() int
	IDAt(index int) (string, bool)
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	State       State
	Current     int
	GlobalMuted bool
}

// Controller is the only writer of the current index, the global mute flag
// and media-element playback attributes.
type Controller struct {
	reels  Reels
	logger *slog.Logger

	mu          sync.Mutex
	elements    map[string]media.Element
	current     int
	globalMuted bool
	state       State
	generation  uint64
}

func NewController(reels Reels, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		reels:       reels,
		logger:      logger,
		elements:    make(map[string]media.Element),
		current:     -1,
		globalMuted: true,
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Current: c.current, GlobalMuted: c.globalMuted}
}

func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) GlobalMuted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.globalMuted
}

// Element returns the mounted element for a reel id.
func (c *Controller) Element(id string) (media.Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.elements[id]
	return el, ok
}

// Mount registers an element. Elements that are not current are silenced
// immediately; starting the current one is left to SwitchTo.
func (c *Controller) Mount(el media.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements[el.ID()] = el
	if el.ID() != c.currentIDLocked() {
		deactivate(el)
		return
	}
	c.applyAudioLocked(el)
}

// Unmount forgets an element. The element itself is owned by the caller.
func (c *Controller) Unmount(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.elements, id)
}

// Reset returns the controller to Idle at index 0 (or -1 for an empty
// list), silencing every element and invalidating in-flight plays.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.current = -1
	if c.reels.Len() > 0 {
		c.current = 0
	}
	c.state = StateIdle
	for _, el := range c.elements {
		deactivate(el)
	}
}

// SwitchTo makes target the current index and starts its element. Calling
// it again for the index that is already playing is a no-op.
func (c *Controller) SwitchTo(ctx context.Context, target int) error {
	c.mu.Lock()
	id, ok := c.reels.IDAt(target)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("switch to %d: %w", target, ErrUnknownIndex)
	}
	c.current = target
	c.generation++
	gen := c.generation

	for elID, el := range c.elements {
		if elID != id {
			deactivate(el)
		}
	}

	el, mounted := c.elements[id]
	if !mounted {
		c.state = StateSwitching
		c.mu.Unlock()
		return nil
	}
	c.applyAudioLocked(el)
	if !el.Paused() {
		if c.state != StateMutedFallback || !el.Muted() {
			c.state = StatePlaying
		}
		c.mu.Unlock()
		return nil
	}

	c.state = StateSwitching
	c.mu.Unlock()

	return c.start(ctx, el, gen)
}

func (c *Controller) start(ctx context.Context, el media.Element, gen uint64) error {
	err := el.Play(ctx)

	c.mu.Lock()
	if c.staleLocked(el, gen) {
		c.mu.Unlock()
		return nil
	}
	if err == nil {
		c.state = StatePlaying
		c.mu.Unlock()
		return nil
	}
	if !errors.Is(err, media.ErrAutoplayBlocked) {
		c.state = StateBlocked
		c.mu.Unlock()
		return fmt.Errorf("start %s: %w", el.ID(), err)
	}
	el.SetMuted(true)
	el.SetVolume(0)
	c.mu.Unlock()

	c.logger.Debug("autoplay rejected, retrying muted", "reel_id", el.ID())
	err = el.Play(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.staleLocked(el, gen) {
		return nil
	}
	if err != nil {
		c.state = StateBlocked
		c.logger.Info("muted autoplay rejected, waiting for tap", "reel_id", el.ID(), "err", err)
		return nil
	}
	c.state = StateMutedFallback
	return nil
}

// staleLocked reports whether a newer switch superseded gen. A stale start
// that resolved on an element which is no longer current is undone.
func (c *Controller) staleLocked(el media.Element, gen uint64) bool {
	if gen == c.generation {
		return false
	}
	if el.ID() != c.currentIDLocked() {
		deactivate(el)
	}
	return true
}

// ToggleMute flips the global mute flag. Muting silences every mounted
// element; unmuting applies to the current element and other elements pick
// the flag up when they become current.
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.globalMuted = !c.globalMuted

	if c.globalMuted {
		for _, el := range c.elements {
			el.SetMuted(true)
			el.SetVolume(0)
		}
		return true
	}

	if el, ok := c.elements[c.currentIDLocked()]; ok {
		c.applyAudioLocked(el)
		if c.state == StateMutedFallback {
			c.state = StatePlaying
		}
	}
	return false
}

// TogglePlay flips the paused state of one element. It does not change the
// current index.
func (c *Controller) TogglePlay(ctx context.Context, id string) (playing bool, err error) {
	c.mu.Lock()
	el, ok := c.elements[id]
	if !ok {
		c.mu.Unlock()
		return false, fmt.Errorf("toggle %s: %w", id, ErrNotMounted)
	}
	if !el.Paused() {
		el.Pause()
		c.mu.Unlock()
		return false, nil
	}
	isCurrent := id == c.currentIDLocked()
	if isCurrent {
		c.applyAudioLocked(el)
	} else {
		el.SetMuted(true)
		el.SetVolume(0)
	}
	gen := c.generation
	c.mu.Unlock()

	err = el.Play(ctx)
	if errors.Is(err, media.ErrAutoplayBlocked) {
		c.mu.Lock()
		stale := c.staleLocked(el, gen)
		if !stale {
			el.SetMuted(true)
			el.SetVolume(0)
		}
		c.mu.Unlock()
		if stale {
			return false, nil
		}
		err = el.Play(ctx)
	}
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A switch while Play was pending owns the element now.
	if c.staleLocked(el, gen) {
		return !el.Paused(), nil
	}
	if isCurrent && id == c.currentIDLocked() {
		c.state = StatePlaying
		if el.Muted() && !c.globalMuted {
			c.state = StateMutedFallback
		}
	}
	return true, nil
}

func (c *Controller) currentIDLocked() string {
	if c.current < 0 {
		return ""
	}
	id, _ := c.reels.IDAt(c.current)
	return id
}

func (c *Controller) applyAudioLocked(el media.Element) {
	el.SetMuted(c.globalMuted)
	if c.globalMuted {
		el.SetVolume(0)
		return
	}
	el.SetVolume(UnmutedVolume)
}

func deactivate(el media.Element) {
	el.SetMuted(true)
	el.SetVolume(0)
	el.Pause()
	el.SetCurrentTime(0)
}
