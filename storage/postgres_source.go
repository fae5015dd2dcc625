package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"estate-explorer/models"
)

// PostgresSource serves raw transaction exports kept in PostgreSQL. It
// answers "postgres:<category>" source URIs with the stored payloads as a
// JSON array, the same shape a file export has.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresSource.
func NewPostgresSource(dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresSource{db: db}
	if err := ps.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresSource) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS raw_transactions (
			id          SERIAL PRIMARY KEY,
			category    VARCHAR(20) NOT NULL,
			payload     JSONB       NOT NULL,
			imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_raw_transactions_category ON raw_transactions(category);
	`)
	return err
}

// CategoryOf extracts the category from a "postgres:<category>" URI.
func CategoryOf(uri string) (models.Category, error) {
	cat, ok := strings.CutPrefix(uri, "postgres:")
	if !ok || cat == "" {
		return "", fmt.Errorf("postgres: malformed source %q", uri)
	}
	if _, known := models.Categories[models.Category(cat)]; !known {
		return "", fmt.Errorf("postgres: unknown category %q", cat)
	}
	return models.Category(cat), nil
}

// Fetch returns every stored payload of the URI's category, in import order.
func (ps *PostgresSource) Fetch(ctx context.Context, uri string) ([]byte, error) {
	cat, err := CategoryOf(uri)
	if err != nil {
		return nil, err
	}

	rows, err := ps.db.QueryContext(ctx, `
		SELECT payload
		FROM raw_transactions
		WHERE category = $1
		ORDER BY id
	`, string(cat))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch %s: %w", cat, err)
	}
	defer rows.Close()

	var payloads [][]byte
	for rows.Next() {
		var p []byte
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		payloads = append(payloads, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return joinArray(payloads), nil
}

func joinArray(payloads [][]byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(bytes.Join(payloads, []byte(",")))
	buf.WriteByte(']')
	return buf.Bytes()
}

// Import replaces the stored payloads of category with items.
func (ps *PostgresSource) Import(ctx context.Context, category models.Category, items []map[string]any) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM raw_transactions WHERE category = $1`, string(category)); err != nil {
		return fmt.Errorf("postgres: clear %s: %w", category, err)
	}

	const batchSize = 50
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := insertBatch(ctx, tx, category, items[i:end]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertBatch(ctx context.Context, tx *sql.Tx, category models.Category, batch []map[string]any) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*2)

	for idx, item := range batch {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("postgres: encode payload: %w", err)
		}
		base := idx * 2
		valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d)", base+1, base+2))
		valueArgs = append(valueArgs, string(category), string(payload))
	}

	query := fmt.Sprintf(`
		INSERT INTO raw_transactions (category, payload)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}
