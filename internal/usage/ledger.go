// Package usage tracks per-day request counters with a lazy day-rollover
// reset. Enforcement is advisory: last write wins and there is no lock across
// sessions.
package usage

import (
	"context"
	"errors"
	"time"

	"recipee/internal/store"
)

// ErrLimitReached is returned when a quota-consuming operation is attempted
// after the daily limit.
var ErrLimitReached = errors.New("daily limit reached")

// Kind selects which quota a call consumes.
type Kind string

const (
	KindScan   Kind = "scan"
	KindRecipe Kind = "recipe"
)

// counter is the stored {date, count} pair. A stored date different from
// today reads as zero; there is no background reset job.
type counter struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Ledger reads and increments the daily counters.
type Ledger struct {
	store  store.Store
	limits map[Kind]int
	now    func() time.Time
}

func NewLedger(st store.Store, scanLimit, recipeLimit int) *Ledger {
	return &Ledger{
		store:  st,
		limits: map[Kind]int{KindScan: scanLimit, KindRecipe: recipeLimit},
		now:    time.Now,
	}
}

// Limit returns the configured daily limit for kind.
func (l *Ledger) Limit(kind Kind) int {
	return l.limits[kind]
}

// Remaining returns how many operations of kind are left today.
func (l *Ledger) Remaining(ctx context.Context, kind Kind) (int, error) {
	count, err := l.countToday(ctx, kind)
	if err != nil {
		return 0, err
	}
	remaining := l.limits[kind] - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Increment records one successful operation of kind for today, creating the
// counter if absent. Read-modify-write; concurrent sessions race and the last
// write wins.
func (l *Ledger) Increment(ctx context.Context, kind Kind) error {
	count, err := l.countToday(ctx, kind)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, l.key(kind), counter{Date: l.today(), Count: count + 1})
}

func (l *Ledger) countToday(ctx context.Context, kind Kind) (int, error) {
	var c counter
	found, err := l.store.Get(ctx, l.key(kind), &c)
	if err != nil {
		return 0, err
	}
	if !found || c.Date != l.today() {
		return 0, nil
	}
	return c.Count, nil
}

func (l *Ledger) key(kind Kind) string {
	if kind == KindScan {
		return store.KeyScanUsage
	}
	return store.KeyRecipeUsage
}

func (l *Ledger) today() string {
	return l.now().Format("2006-01-02")
}
