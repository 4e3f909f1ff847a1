package analytics

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSearchEventPayloadCompactKeys(t *testing.T) {
	t.Parallel()

	payload := SearchEventPayload{
		PracticeArea: strPtr("family"),
		State:        strPtr("NSW"),
		ResultCount:  7,
		SearchedAt:   time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	encoded := string(data)
	for _, key := range []string{`"pa"`, `"st"`, `"rc"`, `"t"`} {
		if !strings.Contains(encoded, key) {
			t.Errorf("encoded payload missing %s: %s", key, encoded)
		}
	}

	// Absent filters stay off the wire.
	for _, key := range []string{`"mx"`, `"mr"`, `"rg"`} {
		if strings.Contains(encoded, key) {
			t.Errorf("encoded payload should omit %s: %s", key, encoded)
		}
	}

	var decoded SearchEventPayload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.PracticeArea == nil || *decoded.PracticeArea != "family" {
		t.Errorf("PracticeArea = %v", decoded.PracticeArea)
	}
	if decoded.MinExperience != nil {
		t.Errorf("MinExperience = %v, want nil", decoded.MinExperience)
	}
	if decoded.ResultCount != 7 {
		t.Errorf("ResultCount = %d, want 7", decoded.ResultCount)
	}
}

func TestNewConsumerIDUnique(t *testing.T) {
	t.Parallel()

	a := NewConsumerID()
	b := NewConsumerID()
	if a == "" || a == b {
		t.Errorf("consumer IDs should be non-empty and distinct: %q, %q", a, b)
	}
}
