package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/repositories"
)

// PostgresPlaybookRepository implements repositories.PlaybookRepository
type PostgresPlaybookRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPlaybookRepository creates a new playbook repository
func NewPlaybookRepository(config *RepositoryConfig) repositories.PlaybookRepository {
	return &PostgresPlaybookRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new playbook. Names are unique case-insensitively.
func (r *PostgresPlaybookRepository) Create(ctx context.Context, playbook *models.Playbook) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Playbooks)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		playbook.ID,
		playbook.Name,
		playbook.Content,
		playbook.CreatedAt,
		playbook.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflict(ctx, playbook.Name)
		}
		return fmt.Errorf("create playbook: %w", err)
	}

	return nil
}

// GetByID retrieves a playbook by ID
func (r *PostgresPlaybookRepository) GetByID(ctx context.Context, id string) (*models.Playbook, error) {
	query := fmt.Sprintf(`
		SELECT id, name, content, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Playbooks)

	var playbook models.Playbook
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&playbook.ID,
		&playbook.Name,
		&playbook.Content,
		&playbook.CreatedAt,
		&playbook.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("playbook %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get playbook: %w", err)
	}

	return &playbook, nil
}

// List retrieves all playbooks in creation order
func (r *PostgresPlaybookRepository) List(ctx context.Context) ([]models.Playbook, error) {
	query := fmt.Sprintf(`
		SELECT id, name, content, created_at, updated_at
		FROM %s
		ORDER BY created_at ASC, id
	`, r.tables.Playbooks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list playbooks: %w", err)
	}
	defer rows.Close()

	playbooks := []models.Playbook{}
	for rows.Next() {
		var playbook models.Playbook
		err := rows.Scan(
			&playbook.ID,
			&playbook.Name,
			&playbook.Content,
			&playbook.CreatedAt,
			&playbook.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan playbook: %w", err)
		}
		playbooks = append(playbooks, playbook)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playbooks: %w", err)
	}

	return playbooks, nil
}

// Update replaces a playbook's name and content
func (r *PostgresPlaybookRepository) Update(ctx context.Context, playbook *models.Playbook) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, content = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Playbooks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		playbook.Name,
		playbook.Content,
		playbook.UpdatedAt,
		playbook.ID,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflict(ctx, playbook.Name)
		}
		return fmt.Errorf("update playbook: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("playbook %s: %w", playbook.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a playbook. Documents keep their playbook_id.
func (r *PostgresPlaybookRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Playbooks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete playbook: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("playbook %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// conflict builds a ConflictError pointing at the playbook that owns name.
func (r *PostgresPlaybookRepository) conflict(ctx context.Context, name string) error {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE lower(name) = lower($1)`, r.tables.Playbooks)

	var existingID string
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, name).Scan(&existingID); err != nil {
		return fmt.Errorf("playbook '%s' already exists: %w", name, domain.ErrConflict)
	}

	return &domain.ConflictError{
		Message:      fmt.Sprintf("A playbook with the name %q already exists.", name),
		ResourceType: "playbook",
		ResourceID:   existingID,
	}
}
