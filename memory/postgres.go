// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresSchema creates the record table. %d is the embedding dimension.
const postgresSchema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS memory_records (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    text TEXT NOT NULL,
    embedding vector(%d),
    updated_at TIMESTAMPTZ DEFAULT NOW(),
    PRIMARY KEY (collection, id)
);
`

// PostgresStore is a VectorStore backed by Postgres and pgvector.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ VectorStore = (*PostgresStore)(nil)

// NewPostgresStore connects to the database at connStr.
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// CreateSchema creates the pgvector extension and the record table for
// embeddings of the given dimension.
func (ps *PostgresStore) CreateSchema(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("embedding dimensions must be positive, got %d", dimensions)
	}
	if _, err := ps.db.Exec(ctx, fmt.Sprintf(postgresSchema, dimensions)); err != nil {
		return fmt.Errorf("creating memory schema: %w", err)
	}
	return nil
}

// Upsert inserts or replaces rec.
func (ps *PostgresStore) Upsert(ctx context.Context, rec Record) error {
	_, err := ps.db.Exec(ctx, `
        INSERT INTO memory_records (collection, id, text, embedding)
        VALUES ($1, $2, $3, $4::vector)
        ON CONFLICT (collection, id)
        DO UPDATE SET text = EXCLUDED.text, embedding = EXCLUDED.embedding, updated_at = NOW()
        `, rec.Collection, rec.ID, rec.Text, formatVector(rec.Embedding))
	if err != nil {
		return fmt.Errorf("upserting record %s/%s: %w", rec.Collection, rec.ID, err)
	}
	return nil
}

// Nearest orders records by cosine distance to query.
func (ps *PostgresStore) Nearest(ctx context.Context, collection string, query []float32, limit int) ([]Match, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := ps.db.Query(ctx, `
        SELECT id, text, embedding::text, (embedding <=> $2::vector) AS distance
        FROM memory_records
        WHERE collection = $1
        ORDER BY embedding <=> $2::vector
        LIMIT $3
        `, collection, formatVector(query), limit)
	if err != nil {
		return nil, fmt.Errorf("querying nearest records: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			m         Match
			embedding string
			distance  *float64
		)
		if err := rows.Scan(&m.ID, &m.Text, &embedding, &distance); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		m.Collection = collection
		m.Embedding = parseVector(embedding)
		// Distance is NULL for records stored without an embedding.
		if distance != nil {
			m.Relevance = clamp01(1 - *distance)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Get returns the record with the given ID.
func (ps *PostgresStore) Get(ctx context.Context, collection, id string) (Record, bool, error) {
	rec := Record{Collection: collection, ID: id}
	var embedding string
	err := ps.db.QueryRow(ctx, `
        SELECT text, embedding::text FROM memory_records WHERE collection = $1 AND id = $2
        `, collection, id).Scan(&rec.Text, &embedding)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("reading record %s/%s: %w", collection, id, err)
	}
	rec.Embedding = parseVector(embedding)
	return rec, true, nil
}

// Close releases the connection pool.
func (ps *PostgresStore) Close() {
	ps.db.Close()
}

// formatVector renders v as a pgvector literal.
func formatVector(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// parseVector parses a pgvector text literal, skipping malformed components.
func parseVector(text string) []float32 {
	text = strings.Trim(strings.TrimSpace(text), "[]")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	vec := make([]float32, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			continue
		}
		vec = append(vec, float32(f))
	}
	return vec
}
