package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/legalconnect/legalconnect/internal/model"
)

// Common errors for lawyer repository operations.
var (
	// ErrLawyerNotFound indicates the referenced lawyer does not exist.
	ErrLawyerNotFound = errors.New("lawyer not found")
	// ErrEmptyPatch indicates an update carried no recognized fields.
	ErrEmptyPatch = errors.New("no fields to update")
	// ErrFieldOutOfRange indicates a write was rejected by a schema
	// check constraint, such as a rate range or the success-rate bounds.
	ErrFieldOutOfRange = errors.New("field value out of range")
)

// lawyerColumnNames lists the lawyer columns in scan order.
var lawyerColumnNames = []string{
	"id", "name", "firm", "tier", "practice_area", "specialties",
	"experience_years", "case_count", "success_rate", "hourly_rate_min",
	"hourly_rate_max", "location_city", "location_state", "verified",
	"mediation_certified", "response_guarantee", "mara_number", "bio",
	"avatar_color", "created_at",
}

// lawyerColumns renders the column list, optionally table-qualified.
func lawyerColumns(alias string) string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	return prefix + strings.Join(lawyerColumnNames, ", "+prefix)
}

// lawyerSortColumns is the allow-list of sortable columns.
// Caller-supplied sort keys must never reach the query text directly.
var lawyerSortColumns = map[string]string{
	"id":               "id",
	"experience_years": "experience_years",
	"hourly_rate_min":  "hourly_rate_min",
	"success_rate":     "success_rate",
}

// buildLawyerListQuery assembles the filtered, sorted catalog query.
// All predicates combine with AND; absent predicates impose no
// constraint. Unrecognized sort keys fall back to id; order is always
// descending.
func buildLawyerListQuery(filters model.SearchFilters, sortKey string) (string, []any) {
	query := `SELECT ` + lawyerColumns("") + ` FROM lawyers WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filters.PracticeArea != nil {
		query += fmt.Sprintf(" AND practice_area = $%d", argIndex)
		args = append(args, *filters.PracticeArea)
		argIndex++
	}

	if filters.State != nil {
		query += fmt.Sprintf(" AND location_state = $%d", argIndex)
		args = append(args, *filters.State)
		argIndex++
	}

	if filters.MinExperience != nil {
		query += fmt.Sprintf(" AND experience_years >= $%d", argIndex)
		args = append(args, *filters.MinExperience)
		argIndex++
	}

	if filters.MaxRate != nil {
		query += fmt.Sprintf(" AND hourly_rate_min <= $%d", argIndex)
		args = append(args, *filters.MaxRate)
		argIndex++
	}

	if filters.ResponseGuarantee {
		query += " AND response_guarantee = TRUE"
	}

	column, ok := lawyerSortColumns[sortKey]
	if !ok {
		column = "id"
	}
	query += " ORDER BY " + column + " DESC"

	return query, args
}

// ListLawyers retrieves the catalog view matching the supplied filters.
func (r *Repository) ListLawyers(ctx context.Context, filters model.SearchFilters, sortKey string) ([]*model.Lawyer, error) {
	query, args := buildLawyerListQuery(filters, sortKey)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list lawyers: %w", err)
	}
	defer rows.Close()

	lawyers := []*model.Lawyer{}
	for rows.Next() {
		lawyer, err := scanLawyer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lawyer: %w", err)
		}
		lawyers = append(lawyers, lawyer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lawyers: %w", err)
	}

	return lawyers, nil
}

// GetLawyer retrieves a lawyer by ID.
func (r *Repository) GetLawyer(ctx context.Context, id int64) (*model.Lawyer, error) {
	query := `SELECT ` + lawyerColumns("") + ` FROM lawyers WHERE id = $1`

	lawyer, err := scanLawyer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLawyerNotFound
		}
		return nil, fmt.Errorf("failed to get lawyer: %w", err)
	}

	return lawyer, nil
}

// CreateLawyer inserts a new catalog entry and populates its ID and
// creation time.
func (r *Repository) CreateLawyer(ctx context.Context, lawyer *model.Lawyer) error {
	query := `
		INSERT INTO lawyers (
			name, firm, tier, practice_area, specialties, experience_years,
			case_count, success_rate, hourly_rate_min, hourly_rate_max,
			location_city, location_state, verified, mediation_certified,
			response_guarantee, mara_number, bio, avatar_color
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		lawyer.Name,
		lawyer.Firm,
		lawyer.Tier,
		lawyer.PracticeArea,
		encodeSpecialties(lawyer.Specialties),
		lawyer.ExperienceYears,
		lawyer.CaseCount,
		lawyer.SuccessRate,
		lawyer.HourlyRateMin,
		lawyer.HourlyRateMax,
		lawyer.LocationCity,
		lawyer.LocationState,
		lawyer.Verified,
		lawyer.MediationCertified,
		lawyer.ResponseGuarantee,
		lawyer.MaraNumber,
		lawyer.Bio,
		lawyer.AvatarColor,
	).Scan(&lawyer.ID, &lawyer.CreatedAt)

	if err != nil {
		if isCheckViolation(err) {
			return ErrFieldOutOfRange
		}
		return fmt.Errorf("failed to create lawyer: %w", err)
	}

	return nil
}

// LawyerPatch is a partial update of a catalog entry. Only non-nil
// fields are written. The explicit field set keeps the storage schema
// closed against caller-supplied keys.
type LawyerPatch struct {
	Name               *string
	Firm               *string
	Tier               *string
	PracticeArea       *string
	Specialties        *[]string
	ExperienceYears    *int
	CaseCount          *int
	SuccessRate        *int
	HourlyRateMin      *float64
	HourlyRateMax      *float64
	LocationCity       *string
	LocationState      *string
	Verified           *bool
	MediationCertified *bool
	ResponseGuarantee  *bool
	MaraNumber         *string
	Bio                *string
	AvatarColor        *string
}

// IsEmpty reports whether the patch modifies no fields.
func (p *LawyerPatch) IsEmpty() bool {
	_, args := p.setClauses(1)
	return len(args) == 0
}

// setClauses renders the patch into SET fragments and bind arguments,
// numbering placeholders from startIndex.
func (p *LawyerPatch) setClauses(startIndex int) ([]string, []any) {
	clauses := []string{}
	args := []any{}

	add := func(column string, value any) {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, startIndex+len(args)))
		args = append(args, value)
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Firm != nil {
		add("firm", *p.Firm)
	}
	if p.Tier != nil {
		add("tier", *p.Tier)
	}
	if p.PracticeArea != nil {
		add("practice_area", *p.PracticeArea)
	}
	if p.Specialties != nil {
		add("specialties", encodeSpecialties(*p.Specialties))
	}
	if p.ExperienceYears != nil {
		add("experience_years", *p.ExperienceYears)
	}
	if p.CaseCount != nil {
		add("case_count", *p.CaseCount)
	}
	if p.SuccessRate != nil {
		add("success_rate", *p.SuccessRate)
	}
	if p.HourlyRateMin != nil {
		add("hourly_rate_min", *p.HourlyRateMin)
	}
	if p.HourlyRateMax != nil {
		add("hourly_rate_max", *p.HourlyRateMax)
	}
	if p.LocationCity != nil {
		add("location_city", *p.LocationCity)
	}
	if p.LocationState != nil {
		add("location_state", *p.LocationState)
	}
	if p.Verified != nil {
		add("verified", *p.Verified)
	}
	if p.MediationCertified != nil {
		add("mediation_certified", *p.MediationCertified)
	}
	if p.ResponseGuarantee != nil {
		add("response_guarantee", *p.ResponseGuarantee)
	}
	if p.MaraNumber != nil {
		add("mara_number", *p.MaraNumber)
	}
	if p.Bio != nil {
		add("bio", *p.Bio)
	}
	if p.AvatarColor != nil {
		add("avatar_color", *p.AvatarColor)
	}

	return clauses, args
}

// UpdateLawyer applies a partial patch to a lawyer.
// Returns ErrEmptyPatch when the patch carries no fields and
// ErrLawyerNotFound when the ID does not exist.
func (r *Repository) UpdateLawyer(ctx context.Context, id int64, patch *LawyerPatch) error {
	clauses, args := patch.setClauses(2)
	if len(clauses) == 0 {
		return ErrEmptyPatch
	}

	query := "UPDATE lawyers SET "
	for i, clause := range clauses {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = $1"

	result, err := r.pool.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		if isCheckViolation(err) {
			return ErrFieldOutOfRange
		}
		return fmt.Errorf("failed to update lawyer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLawyerNotFound
	}

	return nil
}

// DeleteLawyer removes a lawyer from the catalog.
// Dependent shortlist and comparison entries cascade at the schema level.
func (r *Repository) DeleteLawyer(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM lawyers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lawyer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLawyerNotFound
	}

	return nil
}

// LawyerExists checks whether a lawyer ID is present in the catalog.
func (r *Repository) LawyerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM lawyers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lawyer existence: %w", err)
	}
	return exists, nil
}

// scanLawyer scans a single row into a Lawyer model.
// The specialties column holds a JSON-encoded ordered list.
func scanLawyer(row pgx.Row) (*model.Lawyer, error) {
	var lawyer model.Lawyer
	var specialties *string

	err := row.Scan(
		&lawyer.ID,
		&lawyer.Name,
		&lawyer.Firm,
		&lawyer.Tier,
		&lawyer.PracticeArea,
		&specialties,
		&lawyer.ExperienceYears,
		&lawyer.CaseCount,
		&lawyer.SuccessRate,
		&lawyer.HourlyRateMin,
		&lawyer.HourlyRateMax,
		&lawyer.LocationCity,
		&lawyer.LocationState,
		&lawyer.Verified,
		&lawyer.MediationCertified,
		&lawyer.ResponseGuarantee,
		&lawyer.MaraNumber,
		&lawyer.Bio,
		&lawyer.AvatarColor,
		&lawyer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lawyer.Specialties = decodeSpecialties(specialties)
	return &lawyer, nil
}

// encodeSpecialties serializes the ordered specialty list for storage.
func encodeSpecialties(specialties []string) string {
	if specialties == nil {
		specialties = []string{}
	}
	data, _ := json.Marshal(specialties)
	return string(data)
}

// decodeSpecialties deserializes the stored specialty list.
// Corrupt or NULL values decode to an empty list rather than failing
// the whole row.
func decodeSpecialties(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}
	var specialties []string
	if err := json.Unmarshal([]byte(*raw), &specialties); err != nil {
		return []string{}
	}
	return specialties
}
