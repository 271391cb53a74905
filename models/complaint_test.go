package models

import (
	"encoding/json"
	"testing"
)

func TestNormalizePriority(t *testing.T) {
	if got := NormalizePriority("urgent"); got != PriorityUrgent {
		t.Errorf("expected urgent, got %s", got)
	}
	if got := NormalizePriority(""); got != PriorityMedium {
		t.Errorf("empty priority should default to medium, got %s", got)
	}
	if got := NormalizePriority("catastrophic"); got != PriorityMedium {
		t.Errorf("unknown priority should default to medium, got %s", got)
	}
}

func TestImageListNeverNull(t *testing.T) {
	var c Complaint

	if got := c.ImageList(); got == nil || len(got) != 0 {
		t.Errorf("expected empty list for unset column, got %v", got)
	}

	if err := c.SetImageList(nil); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if c.Images != "[]" {
		t.Errorf("nil list must store as empty array, got %q", c.Images)
	}

	if err := c.SetImageList([]string{"/a.jpg", "/b.jpg"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got := c.ImageList()
	if len(got) != 2 || got[0] != "/a.jpg" || got[1] != "/b.jpg" {
		t.Errorf("expected order preserved, got %v", got)
	}

	// Malformed column data degrades to an empty list
	c.Images = "{broken"
	if got := c.ImageList(); len(got) != 0 {
		t.Errorf("expected empty list for malformed column, got %v", got)
	}
}

func TestComplaintJSONExposesDecodedImages(t *testing.T) {
	c := Complaint{Title: "t", Status: StatusPending}
	if err := c.SetImageList([]string{"/evidence.jpg"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	encoded, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	images, ok := decoded["images"].([]interface{})
	if !ok || len(images) != 1 || images[0] != "/evidence.jpg" {
		t.Errorf("expected decoded images list, got %v", decoded["images"])
	}
}

func TestTerminalStates(t *testing.T) {
	if StatusPending.IsTerminal() || StatusUnderReview.IsTerminal() {
		t.Error("pending and under_review must not be terminal")
	}
	if !StatusApproved.IsTerminal() || !StatusRejected.IsTerminal() {
		t.Error("approved and rejected must be terminal")
	}
}
