// internal/ledger/sqlite.go
//
// SQLite-backed stats store. One row per (owner, mode) in the stats table,
// upserted on every mutation so counters survive restarts.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database handle. The stats table is created by
// the migrations in sql/.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Load(ctx context.Context, owner, mode string) (Stats, error) {
	query, args, err := sq.Select("score", "streak").
		From("stats").
		Where(sq.Eq{"owner_id": owner, "mode": mode}).
		ToSql()
	if err != nil {
		return Stats{}, fmt.Errorf("build stats query: %w", err)
	}
	var st Stats
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&st.Score, &st.Streak)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("load stats %s/%s: %w", owner, mode, err)
	}
	return st, nil
}

func (s *sqliteStore) Save(ctx context.Context, owner, mode string, st Stats) error {
	query, args, err := sq.Insert("stats").
		Columns("owner_id", "mode", "score", "streak").
		Values(owner, mode, st.Score, st.Streak).
		Suffix("ON CONFLICT(owner_id, mode) DO UPDATE SET score=excluded.score, streak=excluded.streak, updated_at=CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("build stats upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save stats %s/%s: %w", owner, mode, err)
	}
	return nil
}
