package scan

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recipee/internal/extract"
	"recipee/internal/pantry"
	"recipee/internal/profile"
	"recipee/internal/store"
	"recipee/internal/usage"
)

// mockModel is a canned ScanImage implementation.
type mockModel struct {
	response    string
	returnError error

	receivedInstruction string
	receivedImage       string
}

func (m *mockModel) ScanImage(ctx context.Context, model, instruction, imageDataURI string) (string, error) {
	m.receivedInstruction = instruction
	m.receivedImage = imageDataURI
	if m.returnError != nil {
		return "", m.returnError
	}
	return m.response, nil
}

func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService(model ModelClient, st store.Store, scanLimit int) *Service {
	pantrySvc := pantry.NewService(st)
	profileSvc := profile.NewService(st, "", "")
	ledger := usage.NewLedger(st, scanLimit, 5)
	return NewService(model, "test/vision-model", st, pantrySvc, profileSvc, ledger)
}

func TestScan(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	model := &mockModel{response: `{"ingredients": [{"Name": "Tomato", "Quantity": "3", "confident": true}, {"Name": "Basil", "Quantity": "1", "confident": false}]}`}
	svc := newTestService(model, st, 10)

	result, err := svc.Scan(ctx, testImage(t))

	assert.NoError(t, err)
	assert.Len(t, result.Record.Ingredients, 1)
	assert.Equal(t, "Tomato", result.Record.Ingredients[0].Name)
	assert.Len(t, result.Uncertain, 1)
	assert.Equal(t, "Basil", result.Uncertain[0].Name)
	assert.NotZero(t, result.Record.ID)
	assert.Contains(t, model.receivedImage, "data:image/jpeg;base64,")

	history, err := svc.History(ctx)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, result.Record.ID, history[0].ID)
}

func TestScan_IncrementsUsage(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	model := &mockModel{response: `{"ingredients": [{"Name": "Tomato", "Quantity": "1"}]}`}
	svc := newTestService(model, st, 2)

	_, err := svc.Scan(ctx, testImage(t))
	assert.NoError(t, err)
	_, err = svc.Scan(ctx, testImage(t))
	assert.NoError(t, err)

	_, err = svc.Scan(ctx, testImage(t))
	assert.ErrorIs(t, err, usage.ErrLimitReached)
}

func TestScan_AdminModeBypassesQuota(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	assert.NoError(t, st.Set(ctx, store.KeyAdminMode, true))

	model := &mockModel{response: `{"ingredients": [{"Name": "Tomato", "Quantity": "1"}]}`}
	svc := newTestService(model, st, 0)

	_, err := svc.Scan(ctx, testImage(t))
	assert.NoError(t, err)
}

func TestScan_BadImage(t *testing.T) {
	svc := newTestService(&mockModel{}, store.NewMemoryStore(), 10)

	_, err := svc.Scan(context.Background(), []byte("not an image"))
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestScan_UpstreamFailure(t *testing.T) {
	model := &mockModel{returnError: errors.New("connection refused")}
	svc := newTestService(model, store.NewMemoryStore(), 10)

	_, err := svc.Scan(context.Background(), testImage(t))
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestScan_UnparseableResponseStillSucceeds(t *testing.T) {
	ctx := context.Background()
	model := &mockModel{response: "I see a lovely kitchen but cannot identify any items."}
	svc := newTestService(model, store.NewMemoryStore(), 10)

	result, err := svc.Scan(ctx, testImage(t))

	assert.NoError(t, err)
	assert.Len(t, result.Record.Ingredients, 1)
	assert.Equal(t, extract.SentinelName, result.Record.Ingredients[0].Name)
	assert.Empty(t, result.Uncertain)
}

func TestScan_HistoryMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	model := &mockModel{response: `{"ingredients": [{"Name": "Tomato", "Quantity": "1"}]}`}
	svc := newTestService(model, store.NewMemoryStore(), 10)

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	first, err := svc.Scan(ctx, testImage(t))
	assert.NoError(t, err)

	clock = clock.Add(time.Minute)
	second, err := svc.Scan(ctx, testImage(t))
	assert.NoError(t, err)

	history, err := svc.History(ctx)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, second.Record.ID, history[0].ID)
	assert.Equal(t, first.Record.ID, history[1].ID)
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	model := &mockModel{response: `{"ingredients": [{"Name": "Tomato", "Quantity": "3", "confident": true}, {"Name": "Basil", "Quantity": "1", "confident": false}, {"Name": "Mint", "Quantity": "1", "confident": false}]}`}
	svc := newTestService(model, st, 10)

	result, err := svc.Scan(ctx, testImage(t))
	assert.NoError(t, err)
	assert.Len(t, result.Uncertain, 2)

	// The user accepts Basil and drops Mint.
	record, err := svc.Confirm(ctx, result.Record.ID, []Ingredient{{Name: "Basil", Quantity: "1"}})
	assert.NoError(t, err)
	assert.Len(t, record.Ingredients, 2)
	assert.Equal(t, "Basil", record.Ingredients[1].Name)
	assert.True(t, record.Ingredients[1].Confident)

	pantrySvc := pantry.NewService(st)
	names, err := pantrySvc.Names(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Basil"}, names)

	history, err := svc.History(ctx)
	assert.NoError(t, err)
	assert.Len(t, history[0].Ingredients, 2)
}

func TestConfirm_UnknownScan(t *testing.T) {
	svc := newTestService(&mockModel{}, store.NewMemoryStore(), 10)

	_, err := svc.Confirm(context.Background(), 12345, nil)
	assert.ErrorIs(t, err, ErrScanNotFound)
}
