package media

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"
)

const defaultClipDuration = 15.0

// Clip is the terminal stand-in for a video element. Its playhead advances
// with the clock while playing and loops at the end of the clip. Load probes
// the source with a HEAD request so unreachable media surfaces as an
// element error.
type Clip struct {
	id       string
	src      string
	duration float64
	policy   *Policy
	http     *http.Client
	now      func() time.Time

	mu        sync.Mutex
	paused    bool
	muted     bool
	volume    float64
	position  float64
	startedAt time.Time
	err       error
}

type ClipOption func(*Clip)

func WithClock(now func() time.Time) ClipOption {
	return func(c *Clip) { c.now = now }
}

func WithHTTPClient(client *http.Client) ClipOption {
	return func(c *Clip) { c.http = client }
}

func WithPolicy(p *Policy) ClipOption {
	return func(c *Clip) { c.policy = p }
}

func NewClip(id, src string, duration float64, opts ...ClipOption) *Clip {
	if duration <= 0 {
		duration = defaultClipDuration
	}
	c := &Clip{
		id:       id,
		src:      src,
		duration: duration,
		now:      time.Now,
		paused:   true,
		muted:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Clip) ID() string        { return c.id }
func (c *Clip) Source() string    { return c.src }
func (c *Clip) Duration() float64 { return c.duration }

func (c *Clip) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

func (c *Clip) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

func (c *Clip) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

func (c *Clip) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = muted
}

func (c *Clip) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = math.Max(0, math.Min(1, v))
}

func (c *Clip) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

func (c *Clip) SetCurrentTime(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = math.Max(0, math.Mod(t, c.duration))
	if !c.paused {
		c.startedAt = c.now()
	}
}

func (c *Clip) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.position = c.positionLocked()
	c.paused = true
}

func (c *Clip) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return fmt.Errorf("play %s: %w", c.id, c.err)
	}
	if !c.policy.Allows(c.muted) {
		return ErrAutoplayBlocked
	}
	if c.paused {
		c.paused = false
		c.startedAt = c.now()
	}
	return nil
}

func (c *Clip) Load(ctx context.Context) error {
	err := c.probe(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	if err != nil {
		c.position = 0
		c.paused = true
	}
	return err
}

func (c *Clip) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Clip) probe(ctx context.Context) error {
	if c.src == "" {
		return fmt.Errorf("load %s: no video source", c.id)
	}
	if c.http == nil {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.src, nil)
	if err != nil {
		return fmt.Errorf("load %s: build request: %w", c.id, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.id, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("load %s: media responded with status %d", c.id, resp.StatusCode)
	}
	return nil
}

func (c *Clip) positionLocked() float64 {
	if c.paused {
		return c.position
	}
	elapsed := c.now().Sub(c.startedAt).Seconds()
	return math.Mod(c.position+elapsed, c.duration)
}
