package history

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dukerupert/superlista/internal/model"
)

type fakeBackend struct {
	entries   []model.HistoryEntry
	appendErr error
	rpcErr    error
	listErr   error
	rpcCalls  int
}

func (f *fakeBackend) AppendHistory(_ context.Context, e model.HistoryEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeBackend) actions(userID string) []model.ActionType {
	var out []model.ActionType
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e.ActionType)
		}
	}
	return out
}

func (f *fakeBackend) HistoricalStats(_ context.Context, userID string) (model.HistoricalStats, error) {
	f.rpcCalls++
	if f.rpcErr != nil {
		return model.HistoricalStats{}, f.rpcErr
	}
	return Fold(f.actions(userID)).Stats(), nil
}

func (f *fakeBackend) ListActionTypes(_ context.Context, userID string) ([]model.ActionType, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.actions(userID), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seed(t *testing.T, r *Recorder, userID string, counts map[model.ActionType]int) {
	t.Helper()
	for a, n := range counts {
		for i := 0; i < n; i++ {
			if err := r.Record(context.Background(), model.NewHistoryEntry(userID, a, model.Item{Name: "x"})); err != nil {
				t.Fatalf("record: %v", err)
			}
		}
	}
}

func TestFold(t *testing.T) {
	c := Fold([]model.ActionType{
		model.ActionAdded, model.ActionAdded, model.ActionCompleted,
		model.ActionDeletedPending, model.ActionDeletedCompleted, "bogus",
	})
	want := model.ActionCounts{Added: 2, Completed: 1, DeletedPending: 1, DeletedCompleted: 1}
	if c != want {
		t.Errorf("fold = %+v, want %+v", c, want)
	}
}

func TestAggregatePathsAgree(t *testing.T) {
	b := &fakeBackend{}
	r := NewRecorder(b, discardLogger(), nil)
	seed(t, r, "u1", map[model.ActionType]int{
		model.ActionAdded:          10,
		model.ActionDeletedPending: 2,
		model.ActionCompleted:      4,
	})

	viaRPC, err := r.Aggregate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	b.rpcErr = errors.New("function missing")
	viaFold, err := r.Aggregate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("aggregate fallback: %v", err)
	}

	if viaRPC != viaFold {
		t.Errorf("rpc = %+v, fold = %+v", viaRPC, viaFold)
	}
	if viaRPC.CompletionRate != 50 || viaRPC.TotalAdded != 8 {
		t.Errorf("stats = %+v, want rate 50, net added 8", viaRPC)
	}
}

func TestAggregateBothPathsFail(t *testing.T) {
	b := &fakeBackend{rpcErr: errors.New("rpc"), listErr: errors.New("offline")}
	r := NewRecorder(b, discardLogger(), nil)

	if _, err := r.Aggregate(context.Background(), "u1"); err == nil {
		t.Error("expected error when both paths fail")
	}
}

func TestRecordFailureIsReturned(t *testing.T) {
	b := &fakeBackend{appendErr: errors.New("timeout")}
	r := NewRecorder(b, discardLogger(), nil)

	err := r.Record(context.Background(), model.NewHistoryEntry("u1", model.ActionAdded, model.Item{Name: "Pan"}))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordWithoutUserIsSkipped(t *testing.T) {
	b := &fakeBackend{}
	r := NewRecorder(b, discardLogger(), nil)

	if err := r.Record(context.Background(), model.NewHistoryEntry("", model.ActionAdded, model.Item{})); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(b.entries) != 0 {
		t.Error("entry without user should not be appended")
	}
}
