package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/model"
)

// Default admin credential, created only when no admin exists yet.
// This is an operational bootstrap convenience for fresh installs and
// must be rotated before exposing a deployment.
const (
	DefaultAdminEmail    = "admin@legalconnect.com"
	defaultAdminName     = "Admin User"
	defaultAdminPassword = "admin123"
)

// Bootstrap seeds the catalog and the default admin account on an empty
// store. Both steps are guarded by existence checks, so the routine is
// idempotent and safe to run on every startup.
func (r *Repository) Bootstrap(ctx context.Context) error {
	if err := r.ensureDefaultAdmin(ctx); err != nil {
		return fmt.Errorf("ensure default admin: %w", err)
	}
	if err := r.seedLawyers(ctx); err != nil {
		return fmt.Errorf("seed lawyers: %w", err)
	}
	return nil
}

func (r *Repository) ensureDefaultAdmin(ctx context.Context) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		DefaultAdminEmail,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         defaultAdminName,
		Email:        DefaultAdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}

	if err := r.CreateUser(ctx, admin); err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, ErrEmailExists) {
			return nil
		}
		return err
	}
	return nil
}

func (r *Repository) seedLawyers(ctx context.Context) error {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lawyers`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, lawyer := range sampleLawyers() {
		if err := r.CreateLawyer(ctx, lawyer); err != nil {
			return err
		}
	}
	return nil
}

func strptr(s string) *string { return &s }

// sampleLawyers returns the fixed sample catalog for fresh installs.
func sampleLawyers() []*model.Lawyer {
	return []*model.Lawyer{
		{
			Name:               "Sarah Mitchell",
			Firm:               "Family Law Partners",
			Tier:               model.TierTop,
			PracticeArea:       "family",
			Specialties:        []string{"Divorce", "Child Custody", "Property Settlement"},
			ExperienceYears:    15,
			CaseCount:          450,
			SuccessRate:        92,
			HourlyRateMin:      450,
			HourlyRateMax:      800,
			LocationCity:       "Sydney",
			LocationState:      "NSW",
			Verified:           true,
			MediationCertified: true,
			ResponseGuarantee:  true,
			Bio:                strptr("Family law specialist with extensive experience in complex divorce and custody cases."),
			AvatarColor:        strptr("#8B5CF6"),
		},
		{
			Name:              "James Wilson",
			Firm:              "Conveyancing Experts",
			Tier:              model.TierMid,
			PracticeArea:      "conveyancing",
			Specialties:       []string{"Residential", "Commercial", "Off-the-Plan"},
			ExperienceYears:   10,
			CaseCount:         320,
			SuccessRate:       88,
			HourlyRateMin:     250,
			HourlyRateMax:     450,
			LocationCity:      "Melbourne",
			LocationState:     "VIC",
			Verified:          true,
			ResponseGuarantee: true,
			Bio:               strptr("Experienced conveyancer specializing in residential and commercial property transactions."),
			AvatarColor:       strptr("#10B981"),
		},
		{
			Name:              "Emma Thompson",
			Firm:              "Immigration Solutions",
			Tier:              model.TierMid,
			PracticeArea:      "immigration",
			Specialties:       []string{"Partner Visas", "Skilled Migration", "Citizenship"},
			ExperienceYears:   12,
			CaseCount:         280,
			SuccessRate:       90,
			HourlyRateMin:     300,
			HourlyRateMax:     550,
			LocationCity:      "Brisbane",
			LocationState:     "QLD",
			Verified:          true,
			ResponseGuarantee: true,
			MaraNumber:        strptr("MARN1000001"),
			Bio:               strptr("Registered migration agent with proven track record in visa applications."),
			AvatarColor:       strptr("#3B82F6"),
		},
	}
}
