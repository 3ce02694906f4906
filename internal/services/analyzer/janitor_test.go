package analyzer

import (
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

func TestSweepFailsStaleRuns(t *testing.T) {
	storage := newTestStorage(t)
	statusStore := storage.StatusStorage()

	stale := &models.ProcessingStatus{
		ContentID: "content_stale",
		State:     models.StateRunning,
		Progress:  25,
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	if err := statusStore.SaveStatus(stale); err != nil {
		t.Fatalf("Failed to save stale status: %v", err)
	}

	fresh := &models.ProcessingStatus{
		ContentID: "content_fresh",
		State:     models.StateRunning,
		Progress:  25,
		UpdatedAt: time.Now(),
	}
	if err := statusStore.SaveStatus(fresh); err != nil {
		t.Fatalf("Failed to save fresh status: %v", err)
	}

	done := &models.ProcessingStatus{
		ContentID: "content_done",
		State:     models.StateComplete,
		Progress:  100,
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	if err := statusStore.SaveStatus(done); err != nil {
		t.Fatalf("Failed to save complete status: %v", err)
	}

	janitor := NewJanitor(storage, 10*time.Minute, arbor.NewLogger())
	janitor.Sweep()

	got, err := statusStore.GetStatus("content_stale")
	if err != nil {
		t.Fatalf("Failed to get stale status: %v", err)
	}
	if got.State != models.StateFailed {
		t.Errorf("Expected stale run to be failed, got %s", got.State)
	}
	if got.Error == "" {
		t.Error("Expected deadline detail on failed status")
	}

	got, err = statusStore.GetStatus("content_fresh")
	if err != nil {
		t.Fatalf("Failed to get fresh status: %v", err)
	}
	if got.State != models.StateRunning {
		t.Errorf("Expected fresh run untouched, got %s", got.State)
	}

	got, err = statusStore.GetStatus("content_done")
	if err != nil {
		t.Fatalf("Failed to get complete status: %v", err)
	}
	if got.State != models.StateComplete {
		t.Errorf("Expected terminal status untouched, got %s", got.State)
	}
}
