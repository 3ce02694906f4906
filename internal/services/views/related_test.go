package views

import (
	"math"
	"testing"
	"time"

	"github.com/ternarybob/doceo/internal/models"
)

func TestFindRelatedContentRanking(t *testing.T) {
	svc, storage := newTestService(t)

	source := sampleAnalysis()
	source.Embedding = []float32{1, 0, 0}
	seedCompleted(t, storage, &models.ContentItem{ID: "content_src", Title: "Source", Subject: "Biology", ClassroomID: "class_a", UploadedAt: time.Now()}, source)

	near := sampleAnalysis()
	near.Embedding = []float32{0.9, 0.1, 0}
	seedCompleted(t, storage, &models.ContentItem{ID: "content_near", Title: "Near", Subject: "Biology", ClassroomID: "class_a", UploadedAt: time.Now()}, near)

	far := sampleAnalysis()
	far.Embedding = []float32{0.2, 0.9, 0.4}
	seedCompleted(t, storage, &models.ContentItem{ID: "content_far", Title: "Far", Subject: "Biology", ClassroomID: "class_a", UploadedAt: time.Now()}, far)

	results, err := svc.FindRelatedContent("content_src", &RelatedOptions{ClassroomID: "class_a", Limit: 5, MinSimilarity: 0.1})
	if err != nil {
		t.Fatalf("Failed to find related content: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].ContentID != "content_near" {
		t.Errorf("Expected nearest item first, got %s", results[0].ContentID)
	}
	if results[0].Similarity <= results[1].Similarity {
		t.Errorf("Expected descending similarity, got %f then %f", results[0].Similarity, results[1].Similarity)
	}
	for _, r := range results {
		if r.ContentID == "content_src" {
			t.Error("Source item must be excluded from its own related list")
		}
		if r.RelevanceReason == "" {
			t.Errorf("Expected relevance reason for %s", r.ContentID)
		}
	}
}

func TestFindRelatedContentThreshold(t *testing.T) {
	svc, storage := newTestService(t)

	source := sampleAnalysis()
	source.Embedding = []float32{1, 0, 0}
	seedCompleted(t, storage, &models.ContentItem{ID: "content_src", Title: "Source", ClassroomID: "class_a"}, source)

	orthogonal := sampleAnalysis()
	orthogonal.Embedding = []float32{0, 1, 0}
	seedCompleted(t, storage, &models.ContentItem{ID: "content_orth", Title: "Orthogonal", ClassroomID: "class_a"}, orthogonal)

	results, err := svc.FindRelatedContent("content_src", &RelatedOptions{ClassroomID: "class_a", Limit: 5, MinSimilarity: 0.5})
	if err != nil {
		t.Fatalf("Failed to find related content: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results above threshold, got %d", len(results))
	}
}

func TestFindRelatedContentNoSourceEmbedding(t *testing.T) {
	svc, storage := newTestService(t)

	source := sampleAnalysis()
	source.Embedding = nil
	seedCompleted(t, storage, &models.ContentItem{ID: "content_src", Title: "Source", ClassroomID: "class_a"}, source)

	other := sampleAnalysis()
	other.Embedding = []float32{1, 0, 0}
	seedCompleted(t, storage, &models.ContentItem{ID: "content_other", Title: "Other", ClassroomID: "class_a"}, other)

	results, err := svc.FindRelatedContent("content_src", &RelatedOptions{ClassroomID: "class_a", Limit: 5})
	if err != nil {
		t.Fatalf("Expected empty list for missing source embedding, got error %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty list, got %d results", len(results))
	}
}

func TestFindRelatedContentSkipsUnembeddedCandidates(t *testing.T) {
	svc, storage := newTestService(t)

	source := sampleAnalysis()
	source.Embedding = []float32{1, 0, 0}
	seedCompleted(t, storage, &models.ContentItem{ID: "content_src", Title: "Source", ClassroomID: "class_a"}, source)

	unembedded := sampleAnalysis()
	unembedded.Embedding = nil
	seedCompleted(t, storage, &models.ContentItem{ID: "content_none", Title: "None", ClassroomID: "class_a"}, unembedded)

	results, err := svc.FindRelatedContent("content_src", &RelatedOptions{ClassroomID: "class_a", Limit: 5})
	if err != nil {
		t.Fatalf("Failed to find related content: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected unembedded candidates to be skipped, got %d results", len(results))
	}
}

func TestFindRelatedContentLimit(t *testing.T) {
	svc, storage := newTestService(t)

	source := sampleAnalysis()
	source.Embedding = []float32{1, 0, 0}
	seedCompleted(t, storage, &models.ContentItem{ID: "content_src", Title: "Source", ClassroomID: "class_a"}, source)

	for _, id := range []string{"content_a", "content_b", "content_c"} {
		candidate := sampleAnalysis()
		candidate.Embedding = []float32{0.9, 0.1, 0}
		seedCompleted(t, storage, &models.ContentItem{ID: id, Title: id, ClassroomID: "class_a"}, candidate)
	}

	results, err := svc.FindRelatedContent("content_src", &RelatedOptions{ClassroomID: "class_a", Limit: 2, MinSimilarity: 0.1})
	if err != nil {
		t.Fatalf("Failed to find related content: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected limit of 2 results, got %d", len(results))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"mismatched lengths", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("cosineSimilarity(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}
