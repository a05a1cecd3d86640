// internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"sponsornest/internal/common/errors"
	"sponsornest/internal/common/logger"
)

// serverTimestamp is the sentinel replaced with the write time.
type serverTimestamp struct{}

// ServerTimestamp marks a field to be filled with the store's clock at
// write time.
var ServerTimestamp = serverTimestamp{}

// Document is a stored record in a collection.
type Document struct {
	ID        string
	Fields    map[string]any
	CreatedAt time.Time
}

// Decode unmarshals the document fields into out via JSON round-trip.
func (d Document) Decode(out any) error {
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Writer is the write surface available inside a transaction.
type Writer interface {
	Append(collection string, fields map[string]any) (string, error)
}

// Client is a document store backed by a single Postgres table. Collections
// are slash-separated paths, e.g. "providers/<id>/sponsorshipRequests".
type Client struct {
	db      *sql.DB
	logger  logger.Logger
	timeout time.Duration
}

// New creates a store client. timeout bounds individual statements.
func New(db *sql.DB, log logger.Logger, timeout time.Duration) *Client {
	return &Client{db: db, logger: log, timeout: timeout}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS documents (
	id         UUID PRIMARY KEY,
	collection TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS documents_collection_idx ON documents (collection);
`

// EnsureSchema creates the documents table if it does not exist.
func (c *Client) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.db.ExecContext(ctx, schemaDDL); err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	return nil
}

// List returns every document in a collection, oldest first.
func (c *Client) List(ctx context.Context, collection string) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, data, created_at FROM documents WHERE collection = $1 ORDER BY created_at`,
		collection)
	if err != nil {
		return nil, errors.NewDocumentReadError(collection, err)
	}
	defer rows.Close()

	return scanDocuments(rows, collection)
}

// FindByField returns documents whose top-level field equals value.
func (c *Client) FindByField(ctx context.Context, collection, field, value string) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, data, created_at FROM documents WHERE collection = $1 AND data->>$2 = $3 ORDER BY created_at`,
		collection, field, value)
	if err != nil {
		return nil, errors.NewDocumentReadError(collection, err)
	}
	defer rows.Close()

	return scanDocuments(rows, collection)
}

// Append stores a new document and returns its generated id.
func (c *Client) Append(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	id, err := insertDocument(ctx, c.db, collection, fields)
	if err != nil {
		return "", errors.NewDocumentWriteError(collection, err)
	}
	return id, nil
}

// RunTransaction runs fn with a Writer whose appends commit atomically.
// If fn returns an error the transaction is rolled back and nothing is
// written.
func (c *Client) RunTransaction(ctx context.Context, fn func(Writer) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreUnavailableError(err)
	}

	if err := fn(&txWriter{ctx: ctx, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.WithError(rbErr).Warn("transaction rollback failed", nil)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	return nil
}

type txWriter struct {
	ctx context.Context
	tx  *sql.Tx
}

func (w *txWriter) Append(collection string, fields map[string]any) (string, error) {
	id, err := insertDocument(w.ctx, w.tx, collection, fields)
	if err != nil {
		return "", errors.NewDocumentWriteError(collection, err)
	}
	return id, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertDocument(ctx context.Context, db execer, collection string, fields map[string]any) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	data, err := json.Marshal(resolveTimestamps(fields, now))
	if err != nil {
		return "", err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, data, created_at) VALUES ($1, $2, $3, $4)`,
		id, collection, data, now)
	if err != nil {
		return "", err
	}
	return id, nil
}

// resolveTimestamps copies fields, replacing ServerTimestamp sentinels with
// now in RFC 3339 form. The input map is not modified.
func resolveTimestamps(fields map[string]any, now time.Time) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = now.Format(time.RFC3339Nano)
			continue
		}
		out[k] = v
	}
	return out
}

func scanDocuments(rows *sql.Rows, collection string) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		var (
			doc Document
			raw []byte
		)
		if err := rows.Scan(&doc.ID, &raw, &doc.CreatedAt); err != nil {
			return nil, errors.NewDocumentReadError(collection, err)
		}
		if err := json.Unmarshal(raw, &doc.Fields); err != nil {
			return nil, errors.NewDocumentReadError(collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDocumentReadError(collection, err)
	}
	return docs, nil
}
