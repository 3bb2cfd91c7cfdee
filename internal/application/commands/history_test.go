package commands

import (
	"context"
	"errors"
	"testing"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
)

func TestHistoryCommand(t *testing.T) {
	store := &memoryStore{}
	for i := range 3 {
		run := &domain.CheckRun{SessionID: "s", Connectors: i}
		if err := store.Record(run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	runs, err := NewHistoryCommand(store, 2).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Connectors != 2 {
		t.Errorf("expected the 2 newest runs, got %+v", runs)
	}

	_, err = NewHistoryCommand(store, -1).Execute(context.Background())
	var valErr *application.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError for negative limit, got %v", err)
	}
}

func TestShowRunCommand(t *testing.T) {
	store := &memoryStore{}
	run := &domain.CheckRun{Problems: []domain.Problem{{Message: domain.MsgMissingRoute}}}
	if err := store.Record(run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := NewShowRunCommand(store, run.ID).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(got.Problems) != 1 {
		t.Errorf("expected problems loaded, got %d", len(got.Problems))
	}

	_, err = NewShowRunCommand(store, "missing").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = NewShowRunCommand(store, "").Execute(context.Background())
	var valErr *application.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
