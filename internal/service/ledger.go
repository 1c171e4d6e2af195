package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/pkg/daykey"
)

type LedgerService struct {
	repo  LedgerRepository
	clock *daykey.Clock
}

func NewLedgerService(repo LedgerRepository, clock *daykey.Clock) *LedgerService {
	return &LedgerService{
		repo:  repo,
		clock: clock,
	}
}

// Award credits lines to a user and records the transaction.
func (s *LedgerService) Award(ctx context.Context, userID string, amount int, reason model.TransactionReason, metadata map[string]string) error {
	if err := s.repo.AdjustBalance(ctx, userID, amount, reason, metadata); err != nil {
		return fmt.Errorf("failed to credit lines: %w", err)
	}
	return nil
}

// GetWallet returns the user's wallet, applying any outstanding monthly
// allocation first so the balance the caller sees is current.
func (s *LedgerService) GetWallet(ctx context.Context, userID string, now time.Time) (*model.Wallet, error) {
	if _, err := s.repo.GrantMonthlyAllocation(ctx, userID, s.clock.MonthKey(now)); err != nil {
		return nil, fmt.Errorf("failed to apply monthly allocation: %w", err)
	}

	wallet, err := s.repo.GetWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, nil
}

func (s *LedgerService) GetHistory(ctx context.Context, userID string, limit int) ([]*model.LineTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	txs, err := s.repo.ListLineTransactions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list line transactions: %w", err)
	}
	return txs, nil
}
