package dto

import (
	"time"

	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/repository"
)

// LawyerResponse represents a lawyer profile in API responses.
// Field names are camelCase to match the web client.
type LawyerResponse struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Firm               string    `json:"firm"`
	Tier               string    `json:"tier"`
	PracticeArea       string    `json:"practiceArea"`
	Specialties        []string  `json:"specialties"`
	ExperienceYears    int       `json:"experienceYears"`
	CaseCount          int       `json:"caseCount"`
	SuccessRate        int       `json:"successRate"`
	HourlyRateMin      float64   `json:"hourlyRateMin"`
	HourlyRateMax      float64   `json:"hourlyRateMax"`
	LocationCity       string    `json:"locationCity"`
	LocationState      string    `json:"locationState"`
	Verified           bool      `json:"verified"`
	MediationCertified bool      `json:"mediationCertified"`
	ResponseGuarantee  bool      `json:"responseGuarantee"`
	MaraNumber         *string   `json:"maraNumber"`
	Bio                *string   `json:"bio"`
	AvatarColor        *string   `json:"avatarColor"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CreateLawyerRequest represents the request body for creating a lawyer.
type CreateLawyerRequest struct {
	Name               string   `json:"name"`
	Firm               string   `json:"firm"`
	Tier               string   `json:"tier"`
	PracticeArea       string   `json:"practiceArea"`
	Specialties        []string `json:"specialties"`
	ExperienceYears    int      `json:"experienceYears"`
	CaseCount          int      `json:"caseCount"`
	SuccessRate        *int     `json:"successRate"`
	HourlyRateMin      float64  `json:"hourlyRateMin"`
	HourlyRateMax      float64  `json:"hourlyRateMax"`
	LocationCity       string   `json:"locationCity"`
	LocationState      string   `json:"locationState"`
	Verified           bool     `json:"verified"`
	MediationCertified bool     `json:"mediationCertified"`
	ResponseGuarantee  bool     `json:"responseGuarantee"`
	MaraNumber         *string  `json:"maraNumber"`
	Bio                *string  `json:"bio"`
	AvatarColor        *string  `json:"avatarColor"`
}

// defaultSuccessRate is applied when a create request omits the field.
const defaultSuccessRate = 75

// ToLawyer converts the request into a domain model with defaults
// applied.
func (r *CreateLawyerRequest) ToLawyer() *model.Lawyer {
	successRate := defaultSuccessRate
	if r.SuccessRate != nil {
		successRate = *r.SuccessRate
	}
	return &model.Lawyer{
		Name:               r.Name,
		Firm:               r.Firm,
		Tier:               r.Tier,
		PracticeArea:       r.PracticeArea,
		Specialties:        r.Specialties,
		ExperienceYears:    r.ExperienceYears,
		CaseCount:          r.CaseCount,
		SuccessRate:        successRate,
		HourlyRateMin:      r.HourlyRateMin,
		HourlyRateMax:      r.HourlyRateMax,
		LocationCity:       r.LocationCity,
		LocationState:      r.LocationState,
		Verified:           r.Verified,
		MediationCertified: r.MediationCertified,
		ResponseGuarantee:  r.ResponseGuarantee,
		MaraNumber:         r.MaraNumber,
		Bio:                r.Bio,
		AvatarColor:        r.AvatarColor,
	}
}

// UpdateLawyerRequest represents a partial profile update. Only fields
// present in the body are applied; unknown keys are ignored by the
// decoder.
type UpdateLawyerRequest struct {
	Name               *string   `json:"name"`
	Firm               *string   `json:"firm"`
	Tier               *string   `json:"tier"`
	PracticeArea       *string   `json:"practiceArea"`
	Specialties        *[]string `json:"specialties"`
	ExperienceYears    *int      `json:"experienceYears"`
	CaseCount          *int      `json:"caseCount"`
	SuccessRate        *int      `json:"successRate"`
	HourlyRateMin      *float64  `json:"hourlyRateMin"`
	HourlyRateMax      *float64  `json:"hourlyRateMax"`
	LocationCity       *string   `json:"locationCity"`
	LocationState      *string   `json:"locationState"`
	Verified           *bool     `json:"verified"`
	MediationCertified *bool     `json:"mediationCertified"`
	ResponseGuarantee  *bool     `json:"responseGuarantee"`
	MaraNumber         *string   `json:"maraNumber"`
	Bio                *string   `json:"bio"`
	AvatarColor        *string   `json:"avatarColor"`
}

// ToPatch converts the request into a storage patch.
func (r *UpdateLawyerRequest) ToPatch() *repository.LawyerPatch {
	return &repository.LawyerPatch{
		Name:               r.Name,
		Firm:               r.Firm,
		Tier:               r.Tier,
		PracticeArea:       r.PracticeArea,
		Specialties:        r.Specialties,
		ExperienceYears:    r.ExperienceYears,
		CaseCount:          r.CaseCount,
		SuccessRate:        r.SuccessRate,
		HourlyRateMin:      r.HourlyRateMin,
		HourlyRateMax:      r.HourlyRateMax,
		LocationCity:       r.LocationCity,
		LocationState:      r.LocationState,
		Verified:           r.Verified,
		MediationCertified: r.MediationCertified,
		ResponseGuarantee:  r.ResponseGuarantee,
		MaraNumber:         r.MaraNumber,
		Bio:                r.Bio,
		AvatarColor:        r.AvatarColor,
	}
}

// ToLawyerResponse converts a Lawyer model to its API shape.
func ToLawyerResponse(lawyer *model.Lawyer) *LawyerResponse {
	specialties := lawyer.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return &LawyerResponse{
		ID:                 lawyer.ID,
		Name:               lawyer.Name,
		Firm:               lawyer.Firm,
		Tier:               lawyer.Tier,
		PracticeArea:       lawyer.PracticeArea,
		Specialties:        specialties,
		ExperienceYears:    lawyer.ExperienceYears,
		CaseCount:          lawyer.CaseCount,
		SuccessRate:        lawyer.SuccessRate,
		HourlyRateMin:      lawyer.HourlyRateMin,
		HourlyRateMax:      lawyer.HourlyRateMax,
		LocationCity:       lawyer.LocationCity,
		LocationState:      lawyer.LocationState,
		Verified:           lawyer.Verified,
		MediationCertified: lawyer.MediationCertified,
		ResponseGuarantee:  lawyer.ResponseGuarantee,
		MaraNumber:         lawyer.MaraNumber,
		Bio:                lawyer.Bio,
		AvatarColor:        lawyer.AvatarColor,
		CreatedAt:          lawyer.CreatedAt,
	}
}

// ToLawyerResponses converts a slice of lawyers, never returning nil so
// empty lists serialize as [].
func ToLawyerResponses(lawyers []*model.Lawyer) []LawyerResponse {
	responses := make([]LawyerResponse, len(lawyers))
	for i, lawyer := range lawyers {
		responses[i] = *ToLawyerResponse(lawyer)
	}
	return responses
}
