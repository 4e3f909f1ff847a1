// Package model defines domain entities for the application.
package model

import "time"

// Common tier values. Tier is free-form text; TierMid is the default
// for new entries.
const (
	TierTop = "top"
	TierMid = "mid"
)

// Lawyer represents a catalog entry in the directory.
// Specialties is stored as a JSON-encoded text column and decoded
// by the repository into an ordered slice.
type Lawyer struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Firm               string    `json:"firm"`
	Tier               string    `json:"tier"`
	PracticeArea       string    `json:"practice_area"`
	Specialties        []string  `json:"specialties"`
	ExperienceYears    int       `json:"experience_years"`
	CaseCount          int       `json:"case_count"`
	SuccessRate        int       `json:"success_rate"`
	HourlyRateMin      float64   `json:"hourly_rate_min"`
	HourlyRateMax      float64   `json:"hourly_rate_max"`
	LocationCity       string    `json:"location_city"`
	LocationState      string    `json:"location_state"`
	Verified           bool      `json:"verified"`
	MediationCertified bool      `json:"mediation_certified"`
	ResponseGuarantee  bool      `json:"response_guarantee"`
	MaraNumber         *string   `json:"mara_number,omitempty"`
	Bio                *string   `json:"bio,omitempty"`
	AvatarColor        *string   `json:"avatar_color,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
