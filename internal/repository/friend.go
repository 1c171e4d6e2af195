package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chimwopara/logic/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type friendRow struct {
	OwnerID    string    `db:"owner_id"`
	FriendID   string    `db:"friend_id"`
	FriendName string    `db:"friend_name"`
	AddedAt    time.Time `db:"added_at"`
}

type friendChallengeRow struct {
	ID              string     `db:"id"`
	FromUserID      string     `db:"from_user_id"`
	ToUserID        string     `db:"to_user_id"`
	ChallengeSerial string     `db:"challenge_serial"`
	WagerLines      int        `db:"wager_lines"`
	Status          string     `db:"status"`
	SentAt          time.Time  `db:"sent_at"`
	AcceptedAt      *time.Time `db:"accepted_at"`
	Winner          *string    `db:"winner"`
	Loser           *string    `db:"loser"`
}

type completionRow struct {
	UserID      string    `db:"user_id"`
	Time        string    `db:"time"`
	Seconds     int       `db:"seconds"`
	Lines       int       `db:"lines"`
	CompletedAt time.Time `db:"completed_at"`
}

// AddFriend inserts the relationship, reporting false when it already
// existed.
func (r *Repository) AddFriend(ctx context.Context, ownerID string, friend *model.Friend) (bool, error) {
	query, args, err := squirrel.
		Insert("friends").
		SetMap(map[string]interface{}{
			"owner_id":    ownerID,
			"friend_id":   friend.UserID,
			"friend_name": friend.Username,
			"added_at":    friend.AddedAt,
		}).
		Suffix("ON CONFLICT (owner_id, friend_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *Repository) RemoveFriend(ctx context.Context, ownerID, friendID string) error {
	query, args, err := squirrel.
		Delete("friends").
		Where(squirrel.Eq{"owner_id": ownerID, "friend_id": friendID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) ListFriends(ctx context.Context, ownerID string) ([]*model.Friend, error) {
	query, args, err := squirrel.
		Select("*").
		From("friends").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("added_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []friendRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	friends := make([]*model.Friend, len(rows))
	for i, row := range rows {
		friends[i] = &model.Friend{
			UserID:   row.FriendID,
			Username: row.FriendName,
			AddedAt:  row.AddedAt,
		}
	}

	return friends, nil
}

func (r *Repository) CreateFriendChallenge(ctx context.Context, fc *model.FriendChallenge) error {
	query, args, err := squirrel.
		Insert("friend_challenges").
		SetMap(map[string]interface{}{
			"id":               fc.ID,
			"from_user_id":     fc.FromUserID,
			"to_user_id":       fc.ToUserID,
			"challenge_serial": fc.ChallengeSerial,
			"wager_lines":      fc.WagerLines,
			"status":           string(fc.Status),
			"sent_at":          fc.SentAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) GetFriendChallenge(ctx context.Context, id string) (*model.FriendChallenge, error) {
	query, args, err := squirrel.
		Select("*").
		From("friend_challenges").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row friendChallengeRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fc := row.toModel()

	completionsQuery, completionsArgs, err := squirrel.
		Select("user_id", "time", "seconds", "lines", "completed_at").
		From("friend_challenge_completions").
		Where(squirrel.Eq{"challenge_id": id}).
		OrderBy("completed_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var completions []completionRow
	err = r.db.SelectContext(ctx, &completions, completionsQuery, completionsArgs...)
	if err != nil {
		return nil, err
	}

	fc.Completions = make([]model.ChallengeCompletion, len(completions))
	for i, c := range completions {
		fc.Completions[i] = model.ChallengeCompletion{
			UserID:      c.UserID,
			Time:        c.Time,
			Seconds:     c.Seconds,
			Lines:       c.Lines,
			CompletedAt: c.CompletedAt,
		}
	}

	return fc, nil
}

func (row *friendChallengeRow) toModel() *model.FriendChallenge {
	return &model.FriendChallenge{
		ID:              row.ID,
		FromUserID:      row.FromUserID,
		ToUserID:        row.ToUserID,
		ChallengeSerial: row.ChallengeSerial,
		WagerLines:      row.WagerLines,
		Status:          model.FriendChallengeStatus(row.Status),
		SentAt:          row.SentAt,
		AcceptedAt:      row.AcceptedAt,
		Winner:          row.Winner,
		Loser:           row.Loser,
	}
}

func (r *Repository) SetFriendChallengeStatus(ctx context.Context, id string, status model.FriendChallengeStatus, acceptedAt *time.Time) error {
	builder := squirrel.
		Update("friend_challenges").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id})
	if acceptedAt != nil {
		builder = builder.Set("accepted_at", acceptedAt)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// RecordFriendCompletion stores one party's run, mirrored into the shared
// per-challenge completion log the friends leaderboard reads.
func (r *Repository) RecordFriendCompletion(ctx context.Context, id, challengeSerial string, comp *model.ChallengeCompletion) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("friend_challenge_completions").
			SetMap(map[string]interface{}{
				"challenge_id": id,
				"user_id":      comp.UserID,
				"time":         comp.Time,
				"seconds":      comp.Seconds,
				"lines":        comp.Lines,
				"completed_at": comp.CompletedAt,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		return insertChallengeCompletion(ctx, tx, challengeSerial, comp)
	})
}

// ResolveFriendChallenge marks the challenge completed and moves the wager
// from loser to winner in the same transaction, so resolution and the
// transfer land together exactly once.
func (r *Repository) ResolveFriendChallenge(ctx context.Context, fc *model.FriendChallenge, winner, loser string) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Update("friend_challenges").
			SetMap(map[string]interface{}{
				"status": string(model.FriendChallengeCompleted),
				"winner": winner,
				"loser":  loser,
			}).
			Where(squirrel.Eq{
				"id": fc.ID,
				"status": []string{
					string(model.FriendChallengePending),
					string(model.FriendChallengeAccepted),
				},
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		winMeta := map[string]string{"challenge_id": fc.ID, "opponent": loser}
		if err := adjustBalanceTx(ctx, tx, winner, fc.WagerLines, model.ReasonFriendChallengeWin, winMeta); err != nil {
			return err
		}

		lossMeta := map[string]string{"challenge_id": fc.ID, "opponent": winner}
		return adjustBalanceTx(ctx, tx, loser, -fc.WagerLines, model.ReasonFriendChallengeLoss, lossMeta)
	})
}

func (r *Repository) ListPendingFriendChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error) {
	return r.listFriendChallenges(ctx, squirrel.Eq{
		"to_user_id": userID,
		"status":     string(model.FriendChallengePending),
	})
}

func (r *Repository) ListActiveFriendChallenges(ctx context.Context, userID string) ([]*model.FriendChallenge, error) {
	return r.listFriendChallenges(ctx, squirrel.And{
		squirrel.Or{
			squirrel.Eq{"from_user_id": userID},
			squirrel.Eq{"to_user_id": userID},
		},
		squirrel.Eq{"status": string(model.FriendChallengeAccepted)},
	})
}

func (r *Repository) listFriendChallenges(ctx context.Context, where squirrel.Sqlizer) ([]*model.FriendChallenge, error) {
	query, args, err := squirrel.
		Select("*").
		From("friend_challenges").
		Where(where).
		OrderBy("sent_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []friendChallengeRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	challenges := make([]*model.FriendChallenge, len(rows))
	for i := range rows {
		challenges[i] = rows[i].toModel()
	}

	return challenges, nil
}

// ListChallengeCompletions returns every recorded run of the challenge by
// the given users, fastest first.
func (r *Repository) ListChallengeCompletions(ctx context.Context, challengeSerial string, userIDs []string) ([]*model.ChallengeCompletion, error) {
	query, args, err := squirrel.
		Select("user_id", "time", "seconds", "lines", "completed_at").
		From("challenge_completions").
		Where(squirrel.And{
			squirrel.Eq{"challenge_serial": challengeSerial},
			squirrel.Expr("user_id = ANY(?)", pq.Array(userIDs)),
		}).
		OrderBy("seconds ASC", "completed_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []completionRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	completions := make([]*model.ChallengeCompletion, len(rows))
	for i, row := range rows {
		completions[i] = &model.ChallengeCompletion{
			UserID:      row.UserID,
			Time:        row.Time,
			Seconds:     row.Seconds,
			Lines:       row.Lines,
			CompletedAt: row.CompletedAt,
		}
	}

	return completions, nil
}

func insertChallengeCompletion(ctx context.Context, tx *sqlx.Tx, challengeSerial string, comp *model.ChallengeCompletion) error {
	query, args, err := squirrel.
		Insert("challenge_completions").
		SetMap(map[string]interface{}{
			"challenge_serial": challengeSerial,
			"user_id":          comp.UserID,
			"time":             comp.Time,
			"seconds":          comp.Seconds,
			"lines":            comp.Lines,
			"completed_at":     comp.CompletedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
