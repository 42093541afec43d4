package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/repositories"
)

// PostgresReviewRepository implements repositories.ReviewRepository
type PostgresReviewRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(config *RepositoryConfig) repositories.ReviewRepository {
	return &PostgresReviewRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const reviewColumns = `id, document_id, conflicts, gaps, irrelevant, corrections, created_at`

func scanReview(row interface{ Scan(dest ...any) error }, review *models.Review) error {
	return row.Scan(
		&review.ID,
		&review.DocumentID,
		&review.Conflicts,
		&review.Gaps,
		&review.Irrelevant,
		&review.Corrections,
		&review.CreatedAt,
	)
}

// Create inserts a new review
func (r *PostgresReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Reviews, reviewColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		review.ID,
		review.DocumentID,
		review.Conflicts,
		review.Gaps,
		review.Irrelevant,
		review.Corrections,
		review.CreatedAt,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("document %s: %w", review.DocumentID, domain.ErrNotFound)
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by ID
func (r *PostgresReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, reviewColumns, r.tables.Reviews)

	var review models.Review
	executor := GetExecutor(ctx, r.pool)
	if err := scanReview(executor.QueryRow(ctx, query, id), &review); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &review, nil
}

// GetLatestByDocument retrieves the newest review of a document
func (r *PostgresReviewRepository) GetLatestByDocument(ctx context.Context, documentID string) (*models.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE document_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, reviewColumns, r.tables.Reviews)

	var review models.Review
	executor := GetExecutor(ctx, r.pool)
	if err := scanReview(executor.QueryRow(ctx, query, documentID), &review); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("review for document %s: %w", documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get latest review: %w", err)
	}

	return &review, nil
}

// List retrieves all reviews, newest first
func (r *PostgresReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC, id`, reviewColumns, r.tables.Reviews)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		if err := scanReview(rows, &review); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// UpdateCorrections sets corrections, or clears them when corrections is nil
func (r *PostgresReviewRepository) UpdateCorrections(ctx context.Context, id string, corrections *string) error {
	query := fmt.Sprintf(`UPDATE %s SET corrections = $1 WHERE id = $2`, r.tables.Reviews)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, corrections, id)
	if err != nil {
		return fmt.Errorf("update review corrections: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
