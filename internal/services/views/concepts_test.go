package views

import (
	"testing"
)

func TestExtractKeyConceptsVerbatim(t *testing.T) {
	svc, storage := newTestService(t)
	seedSample(t, storage, "content_1")

	concepts, err := svc.ExtractKeyConcepts("content_1")
	if err != nil {
		t.Fatalf("Failed to extract key concepts: %v", err)
	}
	if len(concepts) != 3 {
		t.Fatalf("Expected 3 concepts, got %d", len(concepts))
	}
	if concepts[0].Term != "Chlorophyll" || concepts[0].Importance != 9 {
		t.Errorf("Expected stored concepts served verbatim, got %+v", concepts[0])
	}
}
