package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chimwopara/logic/internal/model"

	"github.com/Masterminds/squirrel"
)

type sharedChallenge struct {
	Serial     string    `db:"serial"`
	Title      string    `db:"title"`
	Question   string    `db:"question"`
	Language   string    `db:"language"`
	Difficulty string    `db:"difficulty"`
	Steps      int       `db:"steps"`
	Rating     *float64  `db:"rating"`
	Content    []byte    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
}

func (c *sharedChallenge) toModel() *model.Challenge {
	return &model.Challenge{
		Serial:     c.Serial,
		Title:      c.Title,
		Question:   c.Question,
		Language:   c.Language,
		Difficulty: c.Difficulty,
		Steps:      c.Steps,
		Rating:     c.Rating,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

func (r *Repository) SaveSharedChallenge(ctx context.Context, c *model.Challenge) error {
	query, args, err := squirrel.
		Insert("shared_challenges").
		SetMap(map[string]interface{}{
			"serial":     c.Serial,
			"title":      c.Title,
			"question":   c.Question,
			"language":   c.Language,
			"difficulty": c.Difficulty,
			"steps":      c.Steps,
			"rating":     c.Rating,
			"content":    c.Content,
			"created_at": c.CreatedAt,
		}).
		Suffix("ON CONFLICT (serial) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) GetSharedChallenge(ctx context.Context, serial string) (*model.Challenge, error) {
	query, args, err := squirrel.
		Select("*").
		From("shared_challenges").
		Where(squirrel.Eq{"serial": serial}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c sharedChallenge
	err = r.db.GetContext(ctx, &c, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c.toModel(), nil
}

func (r *Repository) ListSharedChallenges(ctx context.Context) ([]*model.Challenge, error) {
	query, args, err := squirrel.
		Select("*").
		From("shared_challenges").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []sharedChallenge
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	challenges := make([]*model.Challenge, len(rows))
	for i := range rows {
		challenges[i] = rows[i].toModel()
	}

	return challenges, nil
}
