package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLStore keeps documents as JSON in a single "documents" table.
// Works with any driver sqlx supports that accepts $n placeholders (sqlite, pgx).
type SQLStore struct {
	db *sqlx.DB
}

type documentRow struct {
	Collection string    `db:"collection"`
	ID         string    `db:"id"`
	Fields     string    `db:"fields"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}

	var rows []documentRow
	query := `SELECT * FROM documents WHERE collection = $1`

	err := s.db.SelectContext(ctx, &rows, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		fields, err := decodeFields(row.Fields)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %s/%s: %w", collection, row.ID, err)
		}
		docs = append(docs, Document{ID: row.ID, Fields: fields})
	}

	return docs, nil
}

func (s *SQLStore) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	if err := validCollection(collection); err != nil {
		return "", err
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode fields: %w", err)
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	query := `INSERT INTO documents (collection, id, fields, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err = s.db.ExecContext(ctx, query, collection, id, string(data), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}

	return id, nil
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := validCollection(collection); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw string
	err = tx.GetContext(ctx, &raw, `SELECT fields FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	current, err := decodeFields(raw)
	if err != nil {
		return fmt.Errorf("failed to decode document %s/%s: %w", collection, id, err)
	}

	data, err := json.Marshal(merge(current, fields))
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}

	query := `UPDATE documents
	          SET fields = $1, updated_at = $2
	          WHERE collection = $3 AND id = $4`

	_, err = tx.ExecContext(ctx, query, string(data), time.Now().UTC(), collection, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	if err := validCollection(collection); err != nil {
		return err
	}

	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func decodeFields(raw string) (Fields, error) {
	fields := Fields{}
	if raw == "" {
		return fields, nil
	}
	err := json.Unmarshal([]byte(raw), &fields)
	return fields, err
}
