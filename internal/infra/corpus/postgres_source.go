package corpus

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faq-widget/internal/domain/faq"
)

// PostgresSource reads entries from a table with columns
// (position, question, answer, tags text[]).
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource constructs the source. table must be a trusted identifier.
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	if table == "" {
		table = "faq_entries"
	}
	return &PostgresSource{pool: pool, table: table}
}

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) ([]faq.Entry, error) {
	query := fmt.Sprintf(`
		SELECT question, answer, COALESCE(tags, '{}')
		FROM %s
		ORDER BY position
	`, pgx.Identifier(strings.Split(s.table, ".")).Sanitize())
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	var entries []faq.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corpus: %w", err)
	}
	return entries, nil
}

// Describe implements Source.
func (s *PostgresSource) Describe() string {
	return "postgres:" + s.table
}

// Close releases the pool.
func (s *PostgresSource) Close() {
	s.pool.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (faq.Entry, error) {
	var entry faq.Entry
	if err := row.Scan(&entry.Question, &entry.Answer, &entry.Tags); err != nil {
		return faq.Entry{}, fmt.Errorf("scan corpus row: %w", err)
	}
	return entry, nil
}

var _ Source = (*PostgresSource)(nil)
