// Package teststubs holds the shared test doubles used across package tests.
package teststubs

import (
	"context"
	"sync"
	"time"

	"sports-scoreboard/internal/domain"
)

// Provider is a scriptable ScoreboardProvider.
type Provider struct {
	mu    sync.Mutex
	Games []domain.GameRecord
	Err   error
	Calls int
	Delay time.Duration
}

func (p *Provider) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	p.mu.Lock()
	p.Calls++
	games, err, delay := p.Games, p.Err, p.Delay
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return nil, err
	}
	return games, nil
}

// SetGames swaps the scripted response.
func (p *Provider) SetGames(games []domain.GameRecord) {
	p.mu.Lock()
	p.Games = games
	p.mu.Unlock()
}

// SetErr scripts a failure for subsequent calls.
func (p *Provider) SetErr(err error) {
	p.mu.Lock()
	p.Err = err
	p.mu.Unlock()
}

// CallCount returns how many fetches were attempted.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Calls
}

// Renderer records rendered frames and can be scripted to refuse drawing.
type Renderer struct {
	mu        sync.Mutex
	Frames    []domain.GameRecord
	Cleared   int
	RefuseAll bool
}

func (r *Renderer) RenderGame(g domain.GameRecord, forceClear bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.RefuseAll {
		return false
	}
	r.Frames = append(r.Frames, g)
	return true
}

func (r *Renderer) Clear() {
	r.mu.Lock()
	r.Cleared++
	r.mu.Unlock()
}

// FrameCount returns how many frames were drawn.
func (r *Renderer) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Frames)
}

// LastFrame returns the most recently drawn game, if any.
func (r *Renderer) LastFrame() (domain.GameRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Frames) == 0 {
		return domain.GameRecord{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// ClearCount returns how many times Clear ran.
func (r *Renderer) ClearCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Cleared
}

// Clock is a manually advanced time source for deterministic dwell tests.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock starts a clock at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{t: start}
}

// Now satisfies the now func() time.Time injection points.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Set jumps the clock to an instant.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}
