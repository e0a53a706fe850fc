package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/presentation"
)

type assistant interface {
	Translate(ctx context.Context, text string) (string, error)
	CorrectGrammar(ctx context.Context, text string) (string, error)
	DefineWord(ctx context.Context, word string) (*domain.WordMeaningResult, error)
}

// Snapshot is the observable state of one view.
type Snapshot struct {
	View      domain.TaskKind       `json:"view"`
	State     domain.State          `json:"state"`
	Seq       uint64                `json:"seq"`
	Input     string                `json:"input,omitempty"`
	Text      string                `json:"text,omitempty"`
	Audio     []domain.Voice        `json:"audio,omitempty"`
	Error     string                `json:"error,omitempty"`
	Widgets   []presentation.Widget `json:"widgets"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Controller drives the request lifecycle of one task view:
// Idle -> Pending -> Succeeded | Failed, with Reset back to Idle.
// At most one request is in flight; a result that settles after its
// request was superseded is dropped.
type Controller struct {
	kind   domain.TaskKind
	svc    assistant
	log    *slog.Logger
	notify func(Snapshot)

	mu        sync.Mutex
	state     domain.State
	seq       uint64
	input     string
	text      string
	word      *domain.WordMeaningResult
	errMsg    string
	updatedAt time.Time
	widgets   *presentation.Registry
}

func newController(kind domain.TaskKind, svc assistant, logger *slog.Logger, notify func(Snapshot)) *Controller {
	if notify == nil {
		notify = func(Snapshot) {}
	}
	return &Controller{
		kind:      kind,
		svc:       svc,
		log:       logger.With("view", kind.String()),
		notify:    notify,
		state:     domain.StateIdle,
		updatedAt: time.Now(),
		widgets:   presentation.NewRegistry(),
	}
}

// Kind returns the task this view runs.
func (c *Controller) Kind() domain.TaskKind { return c.kind }

// Submit runs the task for input and blocks until it settles.
//
// Blank input returns ErrSkipped and leaves the state untouched. A submit
// while Pending returns ErrConflict. A result superseded by Reset returns
// ErrStale. A remote failure moves the view to Failed and is returned
// wrapped; the snapshot then carries the user-facing message.
// The task is not canceled when ctx is.
func (c *Controller) Submit(ctx context.Context, input string) (Snapshot, error) {
	if domain.IsBlank(input) {
		return c.Snapshot(), domain.ErrSkipped
	}

	ticket, err := c.begin(input)
	if err != nil {
		return c.Snapshot(), err
	}

	text, word, runErr := c.run(context.WithoutCancel(ctx), input)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seq != ticket {
		c.log.InfoContext(ctx, "dropping superseded result", slog.Uint64("ticket", ticket), slog.Uint64("seq", c.seq))
		return c.snapshotLocked(), domain.ErrStale
	}

	if runErr != nil {
		c.state = domain.StateFailed
		c.errMsg = c.kind.FailureMessage()
		c.touchLocked()
		c.log.ErrorContext(ctx, "task failed", slog.String("error", runErr.Error()))
		return c.snapshotLocked(), fmt.Errorf("%s: %w", c.kind, runErr)
	}

	c.state = domain.StateSucceeded
	c.text, c.word = text, word
	c.widgets.Remount(presentation.Plan(text, presentation.AvailabilityOf(word)))
	c.touchLocked()
	return c.snapshotLocked(), nil
}

// begin moves the view to Pending and returns the request's ticket.
func (c *Controller) begin(input string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.CanSubmit() {
		return 0, fmt.Errorf("%s: request in flight: %w", c.kind, domain.ErrConflict)
	}
	c.seq++
	c.clearLocked()
	c.state = domain.StatePending
	c.input = input
	c.touchLocked()
	return c.seq, nil
}

func (c *Controller) run(ctx context.Context, input string) (string, *domain.WordMeaningResult, error) {
	switch c.kind {
	case domain.TaskTranslate:
		text, err := c.svc.Translate(ctx, input)
		return text, nil, err
	case domain.TaskCorrectGrammar:
		text, err := c.svc.CorrectGrammar(ctx, input)
		return text, nil, err
	case domain.TaskDefineWord:
		word, err := c.svc.DefineWord(ctx, input)
		if err != nil {
			return "", nil, err
		}
		return word.Text, word, nil
	}
	return "", nil, fmt.Errorf("unknown task %q", c.kind)
}

// Reset returns the view to Idle. An in-flight request keeps running but
// its result will be dropped.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.clearLocked()
	c.state = domain.StateIdle
	c.touchLocked()
	return c.snapshotLocked()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Audio returns the pronunciation of the current successful word lookup.
func (c *Controller) Audio(v domain.Voice) (*domain.Audio, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateSucceeded || c.word == nil {
		return nil, fmt.Errorf("%s: no result: %w", c.kind, domain.ErrNotFound)
	}
	a := c.word.AudioFor(v)
	if a == nil {
		return nil, fmt.Errorf("%s audio: %w: %w", v, domain.ErrAudioUnavailable, domain.ErrNotFound)
	}
	return a, nil
}

func (c *Controller) clearLocked() {
	c.input, c.text, c.errMsg = "", "", ""
	c.word = nil
	c.widgets.Unmount()
}

// touchLocked stamps the change and publishes it.
func (c *Controller) touchLocked() {
	c.updatedAt = time.Now()
	c.notify(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		View:      c.kind,
		State:     c.state,
		Seq:       c.seq,
		Input:     c.input,
		Text:      c.text,
		Error:     c.errMsg,
		Widgets:   c.widgets.Mounted(),
		UpdatedAt: c.updatedAt,
	}
	for _, v := range []domain.Voice{domain.VoiceUK, domain.VoiceUS} {
		if c.word.AudioFor(v) != nil {
			s.Audio = append(s.Audio, v)
		}
	}
	return s
}
