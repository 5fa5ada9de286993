// Package coord provides background score maintenance and survey reminders
// for gutlog. Uses context cancellation as the ONLY stop mechanism.
package coord

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/nroussel/gutlog/internal/correlation"
	"github.com/nroussel/gutlog/internal/insight"
	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/logging"
	"github.com/nroussel/gutlog/internal/score"
	"github.com/nroussel/gutlog/internal/store"
	"github.com/nroussel/gutlog/internal/ui"
)

// reminderCheckInterval is the time between survey-reminder checks.
const reminderCheckInterval = time.Minute

// analysisFlushInterval is the time between retries of a deferred insight
// refresh.
const analysisFlushInterval = 10 * time.Second

// requestBuffer bounds queued recompute requests.
const requestBuffer = 32

// notifier abstracts *tea.Program for testing.
type notifier interface {
	Send(tea.Msg)
}

// Coordinator serves recompute requests after movement edits and nags about
// the daily survey. The analyzer rerun is throttled so a burst of edits
// coalesces into one refresh.
type Coordinator struct {
	store        *store.Store
	clock        func() time.Time // injectable for testing
	resetHour    int
	reminderHour int
	opts         correlation.Options
	limiter      *rate.Limiter
	requests     chan string
	wg           sync.WaitGroup

	mu           sync.Mutex
	lastReminded string // day key already nagged about
}

// New creates a Coordinator using the wall clock.
func New(st *store.Store, resetHour, reminderHour int, opts correlation.Options) *Coordinator {
	return NewWithClock(st, resetHour, reminderHour, opts, time.Now)
}

// NewWithClock allows injecting a clock (for testing).
func NewWithClock(st *store.Store, resetHour, reminderHour int, opts correlation.Options, clock func() time.Time) *Coordinator {
	return &Coordinator{
		store:        st,
		clock:        clock,
		resetHour:    resetHour,
		reminderHour: reminderHour,
		opts:         opts,
		limiter:      rate.NewLimiter(rate.Every(30*time.Second), 1),
		requests:     make(chan string, requestBuffer),
	}
}

// RequestRecompute queues a day for score recomputation after one of its
// movements was created, edited, or deleted. Never blocks; an overflowing
// queue drops the request and logs, since a periodic refresh will catch up.
func (c *Coordinator) RequestRecompute(day string) {
	select {
	case c.requests <- day:
	default:
		logging.Warn("Recompute queue full, dropping request", "day", day)
	}
}

// Start begins the background loops. Call with a cancellable context.
func (c *Coordinator) Start(ctx context.Context, program notifier) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.recomputeLoop(ctx, program)
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.reminderLoop(ctx, program)
	}()
}

// Wait blocks until the background goroutines exit.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// recomputeLoop drains recompute requests and refreshes insights, deferring
// the (comparatively expensive) analyzer rerun when edits arrive in bursts.
func (c *Coordinator) recomputeLoop(ctx context.Context, program notifier) {
	ticker := time.NewTicker(analysisFlushInterval)
	defer ticker.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return

		case day := <-c.requests:
			if err := score.Recompute(c.store, day); err != nil {
				logging.Error("Recompute failed", "day", day, "error", err)
				continue
			}
			if program != nil {
				program.Send(ui.ScoreRecomputed{Day: day})
			}
			if c.limiter.Allow() {
				c.refreshInsights(program)
			} else {
				pending = true
			}

		case <-ticker.C:
			if pending && c.limiter.Allow() {
				c.refreshInsights(program)
				pending = false
			}
		}
	}
}

// refreshInsights snapshots the journal, reruns the analyzer, and publishes
// the formatted result. The analysis itself is synchronous and pure; all I/O
// happens here before it runs.
func (c *Coordinator) refreshInsights(program notifier) {
	movements, err := c.store.Movements()
	if err != nil {
		logging.Error("Loading movements for analysis failed", "error", err)
		return
	}
	surveys, err := c.store.Surveys()
	if err != nil {
		logging.Error("Loading surveys for analysis failed", "error", err)
		return
	}
	notes, err := c.store.Notes()
	if err != nil {
		logging.Error("Loading notes for analysis failed", "error", err)
		return
	}

	series := correlation.BuildSeries(movements, surveys)
	results := correlation.Analyze(notes, series, c.opts)

	if program != nil {
		program.Send(ui.InsightsLoaded{Insights: insight.FormatAll(results)})
	}
}

// reminderLoop nags once per survey day when the evening arrives without a
// submitted survey.
func (c *Coordinator) reminderLoop(ctx context.Context, program notifier) {
	ticker := time.NewTicker(reminderCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkReminder(program)
		}
	}
}

// checkReminder sends a SurveyDue message when the current survey day (by
// reset-hour boundary) has no survey and the reminder hour has passed.
// At most one reminder per day key.
func (c *Coordinator) checkReminder(program notifier) {
	now := c.clock()
	if now.Hour() < c.reminderHour {
		return
	}

	day := journal.DayKey(now, c.resetHour)

	c.mu.Lock()
	already := c.lastReminded == day
	c.mu.Unlock()
	if already {
		return
	}

	survey, err := c.store.Survey(day)
	if err != nil {
		logging.Error("Reminder survey lookup failed", "day", day, "error", err)
		return
	}
	if survey != nil {
		return
	}

	c.mu.Lock()
	c.lastReminded = day
	c.mu.Unlock()

	if program != nil {
		program.Send(ui.SurveyDue{Day: day})
	}
}
