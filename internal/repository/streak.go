package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/chimwopara/logic/internal/model"

	"github.com/Masterminds/squirrel"
)

type streakRecord struct {
	UserID     string  `db:"user_id"`
	Count      int     `db:"count"`
	LastDate   *string `db:"last_date"`
	BestStreak int     `db:"best_streak"`
}

func (r *Repository) GetStreak(ctx context.Context, userID string) (*model.StreakRecord, error) {
	query, args, err := squirrel.
		Select("user_id", "count", "last_date", "best_streak").
		From("streaks").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row streakRecord
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rec := &model.StreakRecord{
		UserID:     row.UserID,
		Count:      row.Count,
		BestStreak: row.BestStreak,
	}
	if row.LastDate != nil {
		rec.LastDate = *row.LastDate
	}

	return rec, nil
}

func (r *Repository) UpsertStreak(ctx context.Context, rec *model.StreakRecord) error {
	query, args, err := squirrel.
		Insert("streaks").
		SetMap(map[string]interface{}{
			"user_id":     rec.UserID,
			"count":       rec.Count,
			"last_date":   rec.LastDate,
			"best_streak": rec.BestStreak,
		}).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET count = EXCLUDED.count, last_date = EXCLUDED.last_date, best_streak = EXCLUDED.best_streak").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
