// Package console drives an interactive, line-oriented weather lookup session.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/delivery/view"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
)

// ErrBusy is returned when a lookup is submitted while another is in flight.
var ErrBusy = errors.New("a lookup is already in progress")

// State is the controller's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
)

func (s State) String() string {
	if s == StateLoading {
		return "loading"
	}
	return "idle"
}

// Lookuper performs a single weather lookup
type Lookuper interface {
	Lookup(ctx context.Context, city string) (domain.WeatherRecord, error)
}

// Controller holds the status line and the last displayed record. Every status
// change is also written to out, followed by the display block on success.
type Controller struct {
	lookuper Lookuper
	out      io.Writer

	mu      sync.Mutex
	state   State
	status  string
	display string
}

// NewController creates a controller in the idle state.
func NewController(lookuper Lookuper, out io.Writer) *Controller {
	if out == nil {
		out = io.Discard
	}
	return &Controller{
		lookuper: lookuper,
		out:      out,
		status:   view.PromptMessage,
	}
}

// Submit looks up city and updates the status and display. It returns the
// lookup error, or ErrBusy if a lookup is already running.
func (c *Controller) Submit(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)

	c.mu.Lock()
	if c.state == StateLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	if city == "" {
		c.setStatusLocked(view.EmptyCityMsg)
		c.mu.Unlock()
		return domain.InvalidInput("city name is empty")
	}
	c.state = StateLoading
	c.display = ""
	c.setStatusLocked(view.LoadingMessage)
	c.mu.Unlock()

	record, err := c.lookuper.Lookup(ctx, city)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	if err != nil {
		c.setStatusLocked(view.FailureMessage(err))
		return err
	}
	c.display = view.FormatRecord(record)
	c.setStatusLocked(view.SuccessMessage)
	fmt.Fprintln(c.out, c.display)
	return nil
}

// Clear drops the displayed record and restores the prompt.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display = ""
	c.setStatusLocked(view.PromptMessage)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Display returns the last successful record's display block, or "".
func (c *Controller) Display() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display
}

func (c *Controller) setStatusLocked(msg string) {
	c.status = msg
	fmt.Fprintln(c.out, msg)
}
