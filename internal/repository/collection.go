package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalconnect/legalconnect/internal/model"
)

// Common errors for collection repository operations.
var (
	// ErrAlreadyInCollection indicates the (user, lawyer) pair already exists.
	ErrAlreadyInCollection = errors.New("lawyer already in collection")
	// ErrEntryNotFound indicates the (user, lawyer) pair is absent.
	ErrEntryNotFound = errors.New("lawyer not in collection")
	// ErrCollectionFull indicates an add would exceed the collection's capacity.
	ErrCollectionFull = errors.New("collection is full")
)

// CollectionKind selects one of the per-user saved-lawyer collections.
type CollectionKind string

const (
	// CollectionShortlist is the unbounded saved-lawyer set.
	CollectionShortlist CollectionKind = "shortlist"
	// CollectionComparison is the side-by-side set capped at
	// model.ComparisonLimit entries.
	CollectionComparison CollectionKind = "comparison"
)

// collectionLockClass namespaces the advisory locks taken by capacity-
// checked inserts.
const collectionLockClass = 7201

// table returns the backing table name. Kinds are internal constants,
// never caller input, so interpolating the name is safe.
func (k CollectionKind) table() string {
	if k == CollectionComparison {
		return "comparisons"
	}
	return "shortlists"
}

// Limit returns the kind's capacity. Zero means unbounded.
func (k CollectionKind) Limit() int {
	if k == CollectionComparison {
		return model.ComparisonLimit
	}
	return 0
}

// ListCollection returns the lawyers in a user's collection,
// most recently added first. Bounded kinds are capped at their limit
// on read as well.
func (r *Repository) ListCollection(ctx context.Context, kind CollectionKind, userID int64) ([]*model.Lawyer, error) {
	query := `
		SELECT ` + lawyerColumns("l") + `
		FROM lawyers l
		INNER JOIN ` + kind.table() + ` c ON l.id = c.lawyer_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`
	args := []any{userID}

	if limit := kind.Limit(); limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
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
		return nil, fmt.Errorf("error iterating %s: %w", kind, err)
	}

	return lawyers, nil
}

// AddCollectionEntry inserts a (user, lawyer) membership row.
//
// For bounded kinds the capacity check and the insert run inside one
// transaction under a per-user advisory lock, so concurrent adds can
// never push a user past the cap. The unique (user_id, lawyer_id)
// index backstops the duplicate check regardless of kind.
func (r *Repository) AddCollectionEntry(ctx context.Context, kind CollectionKind, userID, lawyerID int64) error {
	limit := kind.Limit()

	if limit == 0 {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO `+kind.table()+` (user_id, lawyer_id) VALUES ($1, $2)`,
			userID, lawyerID,
		)
		return mapCollectionInsertError(err, kind)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize capacity checks for this user's collection.
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock($1, hashint8($2))`,
		collectionLockClass, userID,
	); err != nil {
		return fmt.Errorf("failed to acquire collection lock: %w", err)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+kind.table()+` WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count %s entries: %w", kind, err)
	}

	if count >= limit {
		return ErrCollectionFull
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO `+kind.table()+` (user_id, lawyer_id) VALUES ($1, $2)`,
		userID, lawyerID,
	); err != nil {
		return mapCollectionInsertError(err, kind)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s insert: %w", kind, err)
	}

	return nil
}

// RemoveCollectionEntry deletes a (user, lawyer) membership row.
func (r *Repository) RemoveCollectionEntry(ctx context.Context, kind CollectionKind, userID, lawyerID int64) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM `+kind.table()+` WHERE user_id = $1 AND lawyer_id = $2`,
		userID, lawyerID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove %s entry: %w", kind, err)
	}

	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// ClearCollection unconditionally empties a user's collection.
// Succeeds even when the collection is already empty.
func (r *Repository) ClearCollection(ctx context.Context, kind CollectionKind, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM `+kind.table()+` WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", kind, err)
	}

	return nil
}

// mapCollectionInsertError translates storage violations on membership
// inserts into domain errors.
func mapCollectionInsertError(err error, kind CollectionKind) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return ErrAlreadyInCollection
	}
	if isForeignKeyViolation(err) {
		return ErrLawyerNotFound
	}
	return fmt.Errorf("failed to add %s entry: %w", kind, err)
}
