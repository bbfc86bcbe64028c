package services

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/dmitrijs2005/vaultview/internal/logging"
	"github.com/dmitrijs2005/vaultview/internal/totp"
)

// dashFull is the full circumference value of the circular countdown
// indicator. It is part of the contract with the indicator rendering, not a
// tunable.
const dashFull = 78.6

// lowThresholdSeconds is the point at which the countdown switches to its
// low-time (warning) appearance.
const lowThresholdSeconds = 7

// TotpState is a snapshot of the code countdown shown next to a login's
// one-time code.
type TotpState struct {
	Code             string
	CodeFormatted    string
	SecondsRemaining int
	Dash             float64
	Low              bool
}

// CodeClock derives the one-time code for the record in view and advances
// the countdown once per second.
//
// The clock owns its timer goroutine exclusively: Stop is idempotent and
// must be called when the record changes or the view tears down, otherwise
// a periodic task referencing a stale record leaks. Start replaces any
// previous timer, so a stopped clock can be started again.
type CodeClock struct {
	log logging.Logger

	// test seams
	now    func() time.Time
	derive func(t time.Time) (string, error)

	mu    sync.Mutex
	key   *totp.Key
	state *TotpState

	// nil while the clock is not ticking
	stop chan struct{}
}

// NewCodeClock returns a stopped clock.
func NewCodeClock(log logging.Logger) *CodeClock {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &CodeClock{log: log, now: time.Now}
}

// Start parses the secret, derives the initial code, and begins ticking on a
// one-second cadence. Any previous timer is cancelled first. An unparseable
// secret returns common.ErrInvalidSecret and leaves the clock stopped;
// callers degrade silently on it.
func (c *CodeClock) Start(secret string) error {
	key, err := totp.Parse(secret)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.key = key
	c.state = &TotpState{}
	if !c.regenerateLocked() {
		c.mu.Unlock()
		return nil
	}
	c.tickLocked()
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(stop)
	return nil
}

// run is the clock's single timer goroutine.
func (c *CodeClock) run(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Tick()
		case <-stop:
			return
		}
	}
}

// Tick advances the countdown one step. Exported so tests (and alternative
// schedulers) can drive the clock without waiting on wall time.
func (c *CodeClock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickLocked()
}

func (c *CodeClock) tickLocked() {
	if c.key == nil || c.state == nil {
		return
	}

	interval := int64(c.key.Period)
	epoch := c.now().Unix()
	mod := epoch % interval

	c.state.SecondsRemaining = int(interval - mod)
	c.state.Dash = math.Round(dashFull/float64(interval)*float64(mod)*100) / 100
	c.state.Low = c.state.SecondsRemaining <= lowThresholdSeconds

	if mod == 0 {
		if !c.regenerateLocked() {
			// Secret stopped yielding codes: clear and halt.
			go c.Stop()
		}
	}
}

func (c *CodeClock) deriveLocked(t time.Time) (string, error) {
	if c.derive != nil {
		return c.derive(t)
	}
	return c.key.Generate(t), nil
}

// regenerateLocked derives a fresh code for the current window. It reports
// false when derivation yields nothing, in which case state is cleared.
func (c *CodeClock) regenerateLocked() bool {
	code, err := c.deriveLocked(c.now())
	if err != nil || code == "" {
		c.log.Debug(context.Background(), "code derivation yielded no value, stopping clock")
		c.key = nil
		c.state = nil
		return false
	}

	c.state.Code = code
	c.state.CodeFormatted = formatCode(code)
	return true
}

// State returns a snapshot of the countdown, and whether the clock is
// currently producing codes.
func (c *CodeClock) State() (TotpState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return TotpState{}, false
	}
	return *c.state, true
}

// Stop halts the clock and clears its state. Safe to call any number of
// times, from any goroutine.
func (c *CodeClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.key = nil
	c.state = nil
}

// formatCode splits long codes at the midpoint for readability: "492039"
// becomes "492 039". Codes of four characters or fewer stay as-is.
func formatCode(code string) string {
	if len(code) <= 4 {
		return code
	}
	half := len(code) / 2
	return code[:half] + " " + code[half:]
}
