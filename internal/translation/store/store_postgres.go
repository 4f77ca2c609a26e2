package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"registrar/internal/translation/models"
	"registrar/internal/translation/ports"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/platform/tx"
)

// PostgresStore persists translation rows in PostgreSQL. Schema lives in
// migrations/; there is deliberately no unique constraint on the logical key,
// so writers must delete before re-creating.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the caller's transaction when one is carried in the context,
// otherwise the pool.
func (s *PostgresStore) q(ctx context.Context) executor {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

// RunInTx runs fn within a single transaction. Store calls made with the
// context fn receives join that transaction.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = t.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, t)); err != nil {
		return err
	}
	if err := t.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateMany(ctx context.Context, rows []models.Translation) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var (
		sb   strings.Builder
		args = make([]any, 0, len(rows)*5)
	)
	sb.WriteString(`
		INSERT INTO translations (entity_type, entity_id, field, lang, value)
		VALUES `)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, row.EntityType, row.EntityID, row.Field, row.Lang, row.Value)
	}

	result, err := s.q(ctx).ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("create translations: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("create translations: %w", err)
	}
	return int(count), nil
}

func (s *PostgresStore) FindOne(ctx context.Context, entityType, entityID, field, lang string) (*models.Translation, error) {
	query := `
		SELECT entity_type, entity_id, field, lang, value, created_at, updated_at
		FROM translations
		WHERE entity_type = $1 AND entity_id = $2 AND field = $3 AND lang = $4
		LIMIT 1
	`
	row, err := scanTranslation(s.q(ctx).QueryRowContext(ctx, query, entityType, entityID, field, lang))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find translation: %w", err)
	}
	return row, nil
}

func (s *PostgresStore) FindAll(ctx context.Context, entityType, entityID string, filter ports.Filter) ([]models.Translation, error) {
	query := `
		SELECT entity_type, entity_id, field, lang, value, created_at, updated_at
		FROM translations
		WHERE entity_type = $1 AND entity_id = $2
	`
	args := []any{entityType, entityID}
	if filter.Field != "" {
		args = append(args, filter.Field)
		query += fmt.Sprintf(" AND field = $%d", len(args))
	}
	if filter.Lang != "" {
		args = append(args, filter.Lang)
		query += fmt.Sprintf(" AND lang = $%d", len(args))
	}
	query += " ORDER BY field ASC, lang ASC"

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	result := make([]models.Translation, 0)
	for rows.Next() {
		var t models.Translation
		if err := rows.Scan(&t.EntityType, &t.EntityID, &t.Field, &t.Lang, &t.Value, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) DeleteMany(ctx context.Context, entityType, entityID string) (int, error) {
	result, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM translations WHERE entity_type = $1 AND entity_id = $2`,
		entityType, entityID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete translations: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete translations: %w", err)
	}
	return int(count), nil
}

func scanTranslation(row *sql.Row) (*models.Translation, error) {
	var t models.Translation
	if err := row.Scan(&t.EntityType, &t.EntityID, &t.Field, &t.Lang, &t.Value, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
