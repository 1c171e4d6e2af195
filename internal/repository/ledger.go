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
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type walletRow struct {
	UserID         string    `db:"user_id"`
	Balance        int       `db:"balance"`
	Tier           string    `db:"tier"`
	LastGrantMonth string    `db:"last_grant_month"`
	CreatedAt      time.Time `db:"created_at"`
}

func (w *walletRow) toModel() *model.Wallet {
	return &model.Wallet{
		UserID:         w.UserID,
		Balance:        w.Balance,
		Tier:           model.MembershipTier(w.Tier),
		LastGrantMonth: w.LastGrantMonth,
		CreatedAt:      w.CreatedAt,
	}
}

type lineTransaction struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Reason    string    `db:"reason"`
	Amount    int       `db:"amount"`
	Metadata  []byte    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}

// GetWallet returns the user's wallet, creating an empty free-tier wallet on
// first sight of the user.
func (r *Repository) GetWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	insert, insertArgs, err := squirrel.
		Insert("wallets").
		SetMap(map[string]interface{}{
			"user_id": userID,
		}).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, insert, insertArgs...); err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("*").
		From("wallets").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row walletRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel(), nil
}

// AdjustBalance applies a signed balance change and appends the matching
// line transaction atomically. Negative balances are allowed: a lost wager
// is owed, not rejected.
func (r *Repository) AdjustBalance(ctx context.Context, userID string, amount int, reason model.TransactionReason, metadata map[string]string) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		return adjustBalanceTx(ctx, tx, userID, amount, reason, metadata)
	})
}

func adjustBalanceTx(ctx context.Context, tx *sqlx.Tx, userID string, amount int, reason model.TransactionReason, metadata map[string]string) error {
	insert, insertArgs, err := squirrel.
		Insert("wallets").
		SetMap(map[string]interface{}{
			"user_id": userID,
		}).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, insert, insertArgs...); err != nil {
		return err
	}

	update, updateArgs, err := squirrel.
		Update("wallets").
		Set("balance", squirrel.Expr("balance + ?", amount)).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, update, updateArgs...); err != nil {
		return err
	}

	return insertLineTransactionTx(ctx, tx, userID, amount, reason, metadata)
}

func insertLineTransactionTx(ctx context.Context, tx *sqlx.Tx, userID string, amount int, reason model.TransactionReason, metadata map[string]string) error {
	var meta []byte
	if len(metadata) > 0 {
		var err error
		meta, err = json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction metadata: %w", err)
		}
	}

	query, args, err := squirrel.
		Insert("line_transactions").
		SetMap(map[string]interface{}{
			"id":         uuid.NewString(),
			"user_id":    userID,
			"reason":     string(reason),
			"amount":     amount,
			"metadata":   meta,
			"created_at": time.Now().UTC(),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// GrantMonthlyAllocation tops the wallet up with the tier allocation once
// per calendar month. Returns the granted amount, 0 when the month was
// already credited. The row lock keeps concurrent grants single-writer.
func (r *Repository) GrantMonthlyAllocation(ctx context.Context, userID, monthKey string) (int, error) {
	granted := 0

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		insert, insertArgs, err := squirrel.
			Insert("wallets").
			SetMap(map[string]interface{}{
				"user_id": userID,
			}).
			Suffix("ON CONFLICT (user_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, insert, insertArgs...); err != nil {
			return err
		}

		query, args, err := squirrel.
			Select("*").
			From("wallets").
			Where(squirrel.Eq{"user_id": userID}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var row walletRow
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return err
		}

		if row.LastGrantMonth == monthKey {
			return nil
		}

		allocation := model.MembershipTier(row.Tier).MonthlyAllocation()

		update, updateArgs, err := squirrel.
			Update("wallets").
			Set("balance", squirrel.Expr("balance + ?", allocation)).
			Set("last_grant_month", monthKey).
			Where(squirrel.Eq{"user_id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, update, updateArgs...); err != nil {
			return err
		}

		if err := insertLineTransactionTx(ctx, tx, userID, allocation, model.ReasonMonthlyAllocation, map[string]string{"month": monthKey}); err != nil {
			return err
		}

		granted = allocation
		return nil
	})

	return granted, err
}

func (r *Repository) ListLineTransactions(ctx context.Context, userID string, limit int) ([]*model.LineTransaction, error) {
	query, args, err := squirrel.
		Select("*").
		From("line_transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []lineTransaction
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	txs := make([]*model.LineTransaction, len(rows))
	for i, row := range rows {
		t := &model.LineTransaction{
			ID:        row.ID,
			UserID:    row.UserID,
			Reason:    model.TransactionReason(row.Reason),
			Amount:    row.Amount,
			CreatedAt: row.CreatedAt,
		}
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &t.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}
		txs[i] = t
	}

	return txs, nil
}
