package badger

import (
	"errors"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	db, err := NewBadgerDB(arbor.NewLogger(), &common.BadgerConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestContentItemRoundTrip(t *testing.T) {
	db := newTestDB(t)
	storage := NewContentStorage(db, arbor.NewLogger())

	item := &models.ContentItem{
		ID:          "content_1",
		SourceURL:   "https://example.com/photosynthesis.html",
		Title:       "Photosynthesis",
		Subject:     "Biology",
		GradeLevel:  "9",
		ClassroomID: "class_a",
	}

	if err := storage.SaveContentItem(item); err != nil {
		t.Fatalf("Failed to save content item: %v", err)
	}
	if item.UploadedAt.IsZero() {
		t.Error("Expected UploadedAt to be stamped on first save")
	}

	got, err := storage.GetContentItem("content_1")
	if err != nil {
		t.Fatalf("Failed to get content item: %v", err)
	}
	if got.Title != "Photosynthesis" || got.ClassroomID != "class_a" {
		t.Errorf("Unexpected item after round trip: %+v", got)
	}

	count, err := storage.CountContentItems()
	if err != nil {
		t.Fatalf("Failed to count content items: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 item, got %d", count)
	}
}

func TestGetContentItemNotFound(t *testing.T) {
	db := newTestDB(t)
	storage := NewContentStorage(db, arbor.NewLogger())

	_, err := storage.GetContentItem("content_missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListContentItemsByClassroom(t *testing.T) {
	db := newTestDB(t)
	storage := NewContentStorage(db, arbor.NewLogger())

	items := []*models.ContentItem{
		{ID: "content_1", Title: "A", ClassroomID: "class_a"},
		{ID: "content_2", Title: "B", ClassroomID: "class_a"},
		{ID: "content_3", Title: "C", ClassroomID: "class_b"},
	}
	for _, item := range items {
		if err := storage.SaveContentItem(item); err != nil {
			t.Fatalf("Failed to save %s: %v", item.ID, err)
		}
	}

	all, err := storage.ListContentItems(nil)
	if err != nil {
		t.Fatalf("Failed to list all items: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 items, got %d", len(all))
	}

	filtered, err := storage.ListContentItems(&interfaces.ContentListOptions{ClassroomID: "class_a"})
	if err != nil {
		t.Fatalf("Failed to list filtered items: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("Expected 2 items in class_a, got %d", len(filtered))
	}
}

func TestDeleteContentItem(t *testing.T) {
	db := newTestDB(t)
	storage := NewContentStorage(db, arbor.NewLogger())

	if err := storage.SaveContentItem(&models.ContentItem{ID: "content_1", Title: "A"}); err != nil {
		t.Fatalf("Failed to save item: %v", err)
	}
	if err := storage.DeleteContentItem("content_1"); err != nil {
		t.Fatalf("Failed to delete item: %v", err)
	}
	if _, err := storage.GetContentItem("content_1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent item is a no-op
	if err := storage.DeleteContentItem("content_missing"); err != nil {
		t.Errorf("Expected nil on deleting absent item, got %v", err)
	}
}

func TestStatusDefaultsToNone(t *testing.T) {
	db := newTestDB(t)
	storage := NewStatusStorage(db, arbor.NewLogger())

	status, err := storage.GetStatus("content_unknown")
	if err != nil {
		t.Fatalf("Expected no error for unknown content, got %v", err)
	}
	if status.State != models.StateNone {
		t.Errorf("Expected state none, got %s", status.State)
	}
	if status.ContentID != "content_unknown" {
		t.Errorf("Expected content ID echoed back, got %s", status.ContentID)
	}
}

func TestStatusLifecyclePersistence(t *testing.T) {
	db := newTestDB(t)
	storage := NewStatusStorage(db, arbor.NewLogger())

	status := models.NewProcessingStatus("content_1")
	if err := storage.SaveStatus(status); err != nil {
		t.Fatalf("Failed to save pending status: %v", err)
	}

	status.MarkRunning(25)
	if err := storage.SaveStatus(status); err != nil {
		t.Fatalf("Failed to save running status: %v", err)
	}

	got, err := storage.GetStatus("content_1")
	if err != nil {
		t.Fatalf("Failed to get status: %v", err)
	}
	if got.State != models.StateRunning || got.Progress != 25 {
		t.Errorf("Expected running at 25%%, got %s at %d%%", got.State, got.Progress)
	}

	status.MarkComplete()
	if err := storage.SaveStatus(status); err != nil {
		t.Fatalf("Failed to save complete status: %v", err)
	}

	got, err = storage.GetStatus("content_1")
	if err != nil {
		t.Fatalf("Failed to get status: %v", err)
	}
	if got.State != models.StateComplete || got.Progress != 100 {
		t.Errorf("Expected complete at 100%%, got %s at %d%%", got.State, got.Progress)
	}

	statuses, err := storage.ListStatuses()
	if err != nil {
		t.Fatalf("Failed to list statuses: %v", err)
	}
	if len(statuses) != 1 {
		t.Errorf("Expected 1 status, got %d", len(statuses))
	}
}

func TestAnalysisNotProcessed(t *testing.T) {
	db := newTestDB(t)
	storage := NewAnalysisStorage(db, arbor.NewLogger())

	_, err := storage.GetAnalysis("content_1")
	if !errors.Is(err, models.ErrNotProcessed) {
		t.Errorf("Expected ErrNotProcessed, got %v", err)
	}
}

func TestAnalysisWholesaleReplace(t *testing.T) {
	db := newTestDB(t)
	storage := NewAnalysisStorage(db, arbor.NewLogger())

	first := &models.ContentAnalysis{
		ContentID: "content_1",
		Summaries: models.Summaries{Short: "v1", Bullets: "- v1", Detailed: "v1 detailed"},
		KeyConcepts: []models.KeyConcept{
			{Term: "Old", Definition: "old def", Category: "concept", Importance: 5},
		},
		Embedding:       []float32{0.1, 0.2},
		DifficultyLevel: "beginner",
	}
	if err := storage.SaveAnalysis(first); err != nil {
		t.Fatalf("Failed to save first bundle: %v", err)
	}

	got, err := storage.GetAnalysis("content_1")
	if err != nil {
		t.Fatalf("Failed to get first bundle: %v", err)
	}
	if got.ProcessingVersion != models.ProcessingVersion {
		t.Errorf("Expected processing version %d, got %d", models.ProcessingVersion, got.ProcessingVersion)
	}
	if got.ProcessedAt.IsZero() {
		t.Error("Expected ProcessedAt to be stamped")
	}

	// No embedding on the replacement: the old vector must not survive
	second := &models.ContentAnalysis{
		ContentID: "content_1",
		Summaries: models.Summaries{Short: "v2", Bullets: "- v2", Detailed: "v2 detailed"},
		KeyConcepts: []models.KeyConcept{
			{Term: "New", Definition: "new def", Category: "fact", Importance: 7},
		},
		DifficultyLevel: "advanced",
	}
	if err := storage.SaveAnalysis(second); err != nil {
		t.Fatalf("Failed to save second bundle: %v", err)
	}

	got, err = storage.GetAnalysis("content_1")
	if err != nil {
		t.Fatalf("Failed to get second bundle: %v", err)
	}
	if got.Summaries.Short != "v2" {
		t.Errorf("Expected replaced summary, got %q", got.Summaries.Short)
	}
	if got.HasEmbedding() {
		t.Error("Expected old embedding to be gone after wholesale replace")
	}
	if len(got.KeyConcepts) != 1 || got.KeyConcepts[0].Term != "New" {
		t.Errorf("Expected replaced concepts, got %+v", got.KeyConcepts)
	}
}

func TestRecordTypesDoNotCollide(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	content := NewContentStorage(db, logger)
	status := NewStatusStorage(db, logger)
	analysis := NewAnalysisStorage(db, logger)

	// Same content ID across all three record types in the shared store
	if err := content.SaveContentItem(&models.ContentItem{ID: "content_1", Title: "A"}); err != nil {
		t.Fatalf("Failed to save item: %v", err)
	}
	if err := status.SaveStatus(models.NewProcessingStatus("content_1")); err != nil {
		t.Fatalf("Failed to save status: %v", err)
	}
	if err := analysis.SaveAnalysis(&models.ContentAnalysis{
		ContentID:       "content_1",
		Summaries:       models.Summaries{Short: "s", Bullets: "- b", Detailed: "d"},
		KeyConcepts:     []models.KeyConcept{{Term: "T", Definition: "D", Category: "concept", Importance: 1}},
		DifficultyLevel: "beginner",
	}); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}

	if _, err := content.GetContentItem("content_1"); err != nil {
		t.Errorf("Content item lost after sibling writes: %v", err)
	}
	if got, err := status.GetStatus("content_1"); err != nil || got.State != models.StatePending {
		t.Errorf("Status lost after sibling writes: %v %+v", err, got)
	}
	if _, err := analysis.GetAnalysis("content_1"); err != nil {
		t.Errorf("Analysis lost after sibling writes: %v", err)
	}
}
