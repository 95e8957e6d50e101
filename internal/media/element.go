// Package media provides the media-element handles the playback controller
// drives. The controller never creates or destroys elements; the rendering
// layer mounts them and hands out references.
package media

import (
	"context"
	"errors"
)

// ErrAutoplayBlocked is returned by Play when an unmuted start is attempted
// before the user has interacted with the feed.
var ErrAutoplayBlocked = errors.New("autoplay blocked: unmuted playback requires a user gesture")

// Element is a single mounted video player.
type Element interface {
	ID() string
	Paused() bool
	Muted() bool
	Volume() float64
	CurrentTime() float64
	SetMuted(bool)
	SetVolume(float64)
	SetCurrentTime(float64)
	Pause()
	// Play starts playback. It may block until the element is ready and
	// may reject, e.g. with ErrAutoplayBlocked.
	Play(ctx context.Context) error
	// Load (re)fetches the media source and clears a previous error.
	Load(ctx context.Context) error
	Err() error
}

// Audible reports whether el is producing sound.
func Audible(el Element) bool {
	return !el.Paused() && !el.Muted()
}
