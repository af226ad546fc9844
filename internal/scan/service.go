package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recipee/internal/extract"
	"recipee/internal/imageproc"
	"recipee/internal/pantry"
	"recipee/internal/profile"
	"recipee/internal/prompt"
	"recipee/internal/store"
	"recipee/internal/usage"
)

var (
	// ErrNoImage is returned when the upload cannot be decoded; callers
	// treat it as "no image selected".
	ErrNoImage = errors.New("image could not be decoded")

	// ErrScanNotFound is returned by Confirm for an unknown scan id.
	ErrScanNotFound = errors.New("scan not found")

	// ErrUpstream marks a model transport failure; the upstream body is
	// logged, not shown.
	ErrUpstream = errors.New("scan model request failed")
)

// maxHistory bounds the stored history sequence; the oldest records fall off.
const maxHistory = 100

// ModelClient is the model call a scan needs: instruction plus image in,
// accumulated raw text out.
type ModelClient interface {
	ScanImage(ctx context.Context, model, instruction, imageDataURI string) (string, error)
}

// Service runs the scan pipeline: quota gate, preprocess, model call,
// extraction, usage increment, history projection.
type Service struct {
	model     ModelClient
	modelName string
	store     store.Store
	pantry    *pantry.Service
	profile   *profile.Service
	ledger    *usage.Ledger
	now       func() time.Time
}

func NewService(model ModelClient, modelName string, st store.Store, pantrySvc *pantry.Service, profileSvc *profile.Service, ledger *usage.Ledger) *Service {
	return &Service{
		model:     model,
		modelName: modelName,
		store:     st,
		pantry:    pantrySvc,
		profile:   profileSvc,
		ledger:    ledger,
		now:       time.Now,
	}
}

// Scan runs one ingredient-recognition operation. A model response that
// cannot be parsed still succeeds, carrying the sentinel record; only quota,
// input and transport failures are errors. There is no retry: a failed
// attempt is terminal for this user action.
func (s *Service) Scan(ctx context.Context, imageData []byte) (*Result, error) {
	if !s.profile.AdminMode(ctx) {
		remaining, err := s.ledger.Remaining(ctx, usage.KindScan)
		if err != nil {
			return nil, err
		}
		if remaining <= 0 {
			return nil, usage.ErrLimitReached
		}
	}

	dataURI, ok := imageproc.Compress(imageData)
	if !ok {
		return nil, ErrNoImage
	}

	raw, err := s.model.ScanImage(ctx, s.modelName, prompt.Scan(), dataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	items := extract.Ingredients(raw)
	confident, uncertain := extract.Partition(items)
	if len(items) == 1 && items[0].Name == extract.SentinelName {
		slog.Warn("scan output unparseable", "raw_len", len(raw))
	}

	if err := s.ledger.Increment(ctx, usage.KindScan); err != nil {
		slog.Warn("failed to increment scan counter", "error", err)
	}

	record := Record{
		ID:          s.now().UnixMilli(),
		Date:        s.now(),
		Image:       dataURI,
		Ingredients: confident,
	}
	if err := s.addToHistory(ctx, record); err != nil {
		return nil, err
	}

	return &Result{Record: record, Uncertain: uncertain}, nil
}

// Confirm appends the user-accepted uncertain items to the stored scan record
// and to the pantry. Items not sent back are discarded, which also covers the
// "skip remaining" escape hatch.
func (s *Service) Confirm(ctx context.Context, scanID int64, accepted []Ingredient) (*Record, error) {
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range history {
		if history[i].ID == scanID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrScanNotFound
	}

	record := &history[idx]
	for _, item := range accepted {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" || containsName(record.Ingredients, item.Name) {
			continue
		}
		item.Confident = true
		if item.Quantity == "" {
			item.Quantity = "1"
		}
		record.Ingredients = append(record.Ingredients, item)
		if _, err := s.pantry.Add(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := s.store.Set(ctx, store.KeyScanHistory, history); err != nil {
		return nil, err
	}
	return record, nil
}

// History returns scan records most-recent-first.
func (s *Service) History(ctx context.Context) ([]Record, error) {
	var history []Record
	if _, err := s.store.Get(ctx, store.KeyScanHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// addToHistory prepends unconditionally; identical scans produce distinct
// records.
func (s *Service) addToHistory(ctx context.Context, record Record) error {
	history, err := s.History(ctx)
	if err != nil {
		return err
	}
	history = append([]Record{record}, history...)
	if len(history) > maxHistory {
		history = history[:maxHistory]
	}
	return s.store.Set(ctx, store.KeyScanHistory, history)
}

func containsName(items []Ingredient, name string) bool {
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return true
		}
	}
	return false
}
