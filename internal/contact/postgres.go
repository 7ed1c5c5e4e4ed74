package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the contacts table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS contacts (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    number       TEXT NOT NULL DEFAULT '',
    spoken_forms JSONB NOT NULL DEFAULT '[]',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name);
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database. Spoken forms
// are serialised as JSONB.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a [PostgresStore] using the given connection or
// pool. Call [PostgresStore.Migrate] to ensure the schema exists before
// issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL, creating the contacts table and index
// if they do not already exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("contact: migrate: %w", err)
	}
	return nil
}

// Add implements [Store.Add].
func (s *PostgresStore) Add(ctx context.Context, c Contact) (Contact, error) {
	if c.ID == "" {
		id, err := generateID()
		if err != nil {
			return Contact{}, fmt.Errorf("contact: generate id: %w", err)
		}
		c.ID = id
	}

	formsJSON, err := json.Marshal(emptySlice(c.SpokenForms))
	if err != nil {
		return Contact{}, fmt.Errorf("contact: marshal spoken_forms: %w", err)
	}

	const query = `
		INSERT INTO contacts (id, name, number, spoken_forms)
		VALUES ($1, $2, $3, $4)`

	if _, err := s.db.Exec(ctx, query, c.ID, c.Name, c.Number, formsJSON); err != nil {
		if isDuplicateKeyError(err) {
			return Contact{}, ErrDuplicateID
		}
		return Contact{}, fmt.Errorf("contact: add: %w", err)
	}
	return c, nil
}

// Get implements [Store.Get].
func (s *PostgresStore) Get(ctx context.Context, id string) (Contact, error) {
	const query = `
		SELECT id, name, number, spoken_forms
		FROM contacts
		WHERE id = $1`

	var c Contact
	var formsJSON []byte

	err := s.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Number, &formsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, fmt.Errorf("contact: get %q: %w", id, err)
	}
	if err := json.Unmarshal(formsJSON, &c.SpokenForms); err != nil {
		return Contact{}, fmt.Errorf("contact: unmarshal spoken_forms: %w", err)
	}
	return c, nil
}

// List implements [Store.List].
func (s *PostgresStore) List(ctx context.Context) ([]Contact, error) {
	const query = `
		SELECT id, name, number, spoken_forms
		FROM contacts
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("contact: list: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		var formsJSON []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Number, &formsJSON); err != nil {
			return nil, fmt.Errorf("contact: list scan: %w", err)
		}
		if err := json.Unmarshal(formsJSON, &c.SpokenForms); err != nil {
			return nil, fmt.Errorf("contact: unmarshal spoken_forms: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contact: list: %w", err)
	}
	return contacts, nil
}

// Remove implements [Store.Remove].
func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	const query = `DELETE FROM contacts WHERE id = $1`
	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("contact: remove %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkImport implements [Store.BulkImport].
func (s *PostgresStore) BulkImport(ctx context.Context, contacts []Contact) (int, error) {
	count := 0
	for _, c := range contacts {
		if _, err := s.Add(ctx, c); err != nil {
			return count, fmt.Errorf("contact: bulk import at index %d (name %q): %w", count, c.Name, err)
		}
		count++
	}
	return count, nil
}

// emptySlice returns s if non-nil, otherwise an empty non-nil slice so JSON
// marshalling produces "[]" instead of "null".
func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// isDuplicateKeyError checks whether a PostgreSQL error is a
// unique-violation (SQLSTATE 23505).
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
