package analytics

import "fmt"

const maxFilterLength = 100

// ValidateSearchEventPayload validates a search event consumed from
// the stream before it is persisted.
func ValidateSearchEventPayload(payload SearchEventPayload) error {
	if payload.SearchedAt <= 0 {
		return fmt.Errorf("searched_at must be set")
	}
	if payload.ResultCount < 0 {
		return fmt.Errorf("result_count must not be negative")
	}
	if payload.PracticeArea != nil && len(*payload.PracticeArea) > maxFilterLength {
		return fmt.Errorf("practice_area too long")
	}
	if payload.State != nil && len(*payload.State) > maxFilterLength {
		return fmt.Errorf("state too long")
	}
	if payload.MinExperience != nil && *payload.MinExperience < 0 {
		return fmt.Errorf("min_experience must not be negative")
	}
	if payload.MaxRate != nil && *payload.MaxRate < 0 {
		return fmt.Errorf("max_rate must not be negative")
	}
	return nil
}
