// internal/daily/store.go
//
// SQLite persistence for the daily challenge.
// Responsibilities:
//   - Append a device's guesses for the day, rejecting duplicates by species
//     id and by normalized name.
//   - Replay the day's history and completion state.
//   - Leaderboard of devices that solved today's species in the fewest
//     guesses.
//   - Reset of a single device-day, leaving every other record alone.

package daily

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ErrDuplicateGuess marks a species already guessed today by this device.
var ErrDuplicateGuess = errors.New("species already guessed today")

// Guess is one stored comparison row.
type Guess struct {
	SpeciesID int      `json:"speciesId"`
	Norm      string   `json:"-"` // normalized name for duplicate detection, not exposed
	Feedback  Feedback `json:"feedback"`
}

// State is a device's completion state for one day.
type State struct {
	Done    bool `json:"done"`
	Win     bool `json:"win"`
	Guesses int  `json:"guesses"`
}

// LBRow is one leaderboard entry: a device that solved the day's species.
type LBRow struct {
	OwnerID string `json:"ownerId"`
	Guesses int    `json:"guesses"`
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AppendGuess stores one guess for the device and day. A species id or a
// normalized name already present for that day is rejected.
func (s *Store) AppendGuess(ctx context.Context, owner, date string, g Guess) error {
	var cnt int
	q, args, err := sq.Select("COUNT(1)").
		From("daily_guesses").
		Where(sq.Eq{"owner_id": owner, "date": date}).
		Where(sq.Or{sq.Eq{"species_id": g.SpeciesID}, sq.Eq{"norm": g.Norm}}).
		ToSql()
	if err != nil {
		return err
	}
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&cnt); err != nil {
		return err
	}
	if cnt > 0 {
		return ErrDuplicateGuess
	}

	blob, err := json.Marshal(g.Feedback)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	q, args, err = sq.Insert("daily_guesses").
		Columns("owner_id", "date", "species_id", "norm", "feedback").
		Values(owner, date, g.SpeciesID, g.Norm, string(blob)).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, q, args...)
	return err
}

// History returns the day's guesses for the device in submission order.
func (s *Store) History(ctx context.Context, owner, date string) ([]Guess, error) {
	q, args, err := sq.Select("species_id", "norm", "feedback").
		From("daily_guesses").
		Where(sq.Eq{"owner_id": owner, "date": date}).
		OrderBy("created_at ASC", "rowid ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Guess
	for rows.Next() {
		var g Guess
		var blob string
		if err := rows.Scan(&g.SpeciesID, &g.Norm, &blob); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(blob), &g.Feedback); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetState returns the device's completion state for the day. A day without
// any record is simply not done.
func (s *Store) GetState(ctx context.Context, owner, date string) (State, error) {
	q, args, err := sq.Select("done", "win", "guesses").
		From("daily_state").
		Where(sq.Eq{"owner_id": owner, "date": date}).
		ToSql()
	if err != nil {
		return State{}, err
	}
	var st State
	err = s.db.QueryRowContext(ctx, q, args...).Scan(&st.Done, &st.Win, &st.Guesses)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, nil
	}
	return st, err
}

// SetState records the device's completion state. A finished winning day is
// locked: later writes cannot demote it.
func (s *Store) SetState(ctx context.Context, owner, date string, st State) error {
	cur, err := s.GetState(ctx, owner, date)
	if err != nil {
		return err
	}
	if cur.Done && cur.Win {
		return nil
	}
	q, args, err := sq.Insert("daily_state").
		Columns("owner_id", "date", "done", "win", "guesses").
		Values(owner, date, st.Done, st.Win, st.Guesses).
		Suffix("ON CONFLICT(owner_id, date) DO UPDATE SET done=excluded.done, win=excluded.win, guesses=excluded.guesses").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, q, args...)
	return err
}

// ResetDay wipes the device's guesses and state for one day. Other days and
// other devices are untouched.
func (s *Store) ResetDay(ctx context.Context, owner, date string) error {
	for _, table := range []string{"daily_guesses", "daily_state"} {
		q, args, err := sq.Delete(table).
			Where(sq.Eq{"owner_id": owner, "date": date}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

// Leaderboard lists the devices that solved the day's species, fewest
// guesses first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	q, args, err := sq.Select("owner_id", "guesses").
		From("daily_state").
		Where(sq.Eq{"date": date, "done": true, "win": true}).
		OrderBy("guesses ASC", "rowid ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Guesses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
