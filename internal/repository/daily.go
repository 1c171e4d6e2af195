package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chimwopara/logic/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
)

type dayChallenge struct {
	Date            string    `db:"date"`
	ChallengeSerial string    `db:"challenge_serial"`
	Challenge       []byte    `db:"challenge"`
	StartTime       time.Time `db:"start_time"`
	EndTime         time.Time `db:"end_time"`
}

type leaderboardEntry struct {
	DayDate     string    `db:"day_date"`
	Seq         int       `db:"seq"`
	UserID      string    `db:"user_id"`
	Username    string    `db:"username"`
	Time        string    `db:"time"`
	Seconds     int       `db:"seconds"`
	Lines       int       `db:"lines"`
	Efficiency  int       `db:"efficiency"`
	SubmittedAt time.Time `db:"submitted_at"`
}

func (e *leaderboardEntry) toModel() model.LeaderboardEntry {
	return model.LeaderboardEntry{
		UserID:      e.UserID,
		Username:    e.Username,
		Time:        e.Time,
		Seconds:     e.Seconds,
		Lines:       e.Lines,
		Efficiency:  e.Efficiency,
		Seq:         e.Seq,
		SubmittedAt: e.SubmittedAt,
	}
}

func (r *Repository) CreateDayChallenge(ctx context.Context, dc *model.DayChallenge) error {
	snapshot, err := json.Marshal(dc.Challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge snapshot: %w", err)
	}

	query, args, err := squirrel.
		Insert("day_challenges").
		SetMap(map[string]interface{}{
			"date":             dc.Date,
			"challenge_serial": dc.ChallengeSerial,
			"challenge":        snapshot,
			"start_time":       dc.StartTime,
			"end_time":         dc.EndTime,
		}).
		Suffix("ON CONFLICT (date) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// GetDayChallenge loads the day row plus its ordered leaderboard. Entries
// come back sorted by (seconds, seq) so ranks can be read off positionally.
func (r *Repository) GetDayChallenge(ctx context.Context, date string) (*model.DayChallenge, error) {
	query, args, err := squirrel.
		Select("*").
		From("day_challenges").
		Where(squirrel.Eq{"date": date}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row dayChallenge
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var challenge model.Challenge
	if err := json.Unmarshal(row.Challenge, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge snapshot: %w", err)
	}

	entriesQuery, entriesArgs, err := squirrel.
		Select("*").
		From("day_leaderboard").
		Where(squirrel.Eq{"day_date": date}).
		OrderBy("seconds ASC", "seq ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var entryRows []leaderboardEntry
	err = r.db.SelectContext(ctx, &entryRows, entriesQuery, entriesArgs...)
	if err != nil {
		return nil, err
	}

	dc := &model.DayChallenge{
		Date:            row.Date,
		ChallengeSerial: row.ChallengeSerial,
		Challenge:       &challenge,
		Participants:    make([]string, len(entryRows)),
		Leaderboard:     make([]model.LeaderboardEntry, len(entryRows)),
		StartTime:       row.StartTime,
		EndTime:         row.EndTime,
	}
	for i := range entryRows {
		dc.Participants[i] = entryRows[i].UserID
		dc.Leaderboard[i] = entryRows[i].toModel()
	}

	return dc, nil
}

// AppendLeaderboardEntry assigns the entry's submission sequence number and
// inserts it, together with the shared completion record that feeds the
// friends leaderboard, in one transaction. The UNIQUE (day_date, user_id)
// constraint backstops the service-level duplicate check.
func (r *Repository) AppendLeaderboardEntry(ctx context.Context, date, challengeSerial string, entry *model.LeaderboardEntry) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		seqQuery, seqArgs, err := squirrel.
			Select("COALESCE(MAX(seq), 0) + 1").
			From("day_leaderboard").
			Where(squirrel.Eq{"day_date": date}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &entry.Seq, seqQuery, seqArgs...); err != nil {
			return err
		}

		query, args, err := squirrel.
			Insert("day_leaderboard").
			SetMap(map[string]interface{}{
				"day_date":     date,
				"seq":          entry.Seq,
				"user_id":      entry.UserID,
				"username":     entry.Username,
				"time":         entry.Time,
				"seconds":      entry.Seconds,
				"lines":        entry.Lines,
				"efficiency":   entry.Efficiency,
				"submitted_at": entry.SubmittedAt,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		return insertChallengeCompletion(ctx, tx, challengeSerial, &model.ChallengeCompletion{
			UserID:      entry.UserID,
			Time:        entry.Time,
			Seconds:     entry.Seconds,
			Lines:       entry.Lines,
			CompletedAt: entry.SubmittedAt,
		})
	})
}

// GetLeaderboard returns the first limit entries of the day's board.
func (r *Repository) GetLeaderboard(ctx context.Context, date string, limit int) ([]model.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select("*").
		From("day_leaderboard").
		Where(squirrel.Eq{"day_date": date}).
		OrderBy("seconds ASC", "seq ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []leaderboardEntry
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].toModel()
	}

	return entries, nil
}
