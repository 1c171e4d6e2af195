package service

import (
	"context"
	"testing"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/service/mocks"
	"github.com/chimwopara/logic/pkg/daykey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLedgerService_GetWallet(t *testing.T) {
	clock, err := daykey.New("")
	assert.NoError(t, err)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mockRepo := &mocks.MockLedgerRepository{}
	mockRepo.On("GrantMonthlyAllocation", mock.Anything, "u1", "2026-03").
		Return(1000, nil)
	mockRepo.On("GetWallet", mock.Anything, "u1").Return(&model.Wallet{
		UserID:         "u1",
		Balance:        1510,
		Tier:           model.TierFree,
		LastGrantMonth: "2026-03",
	}, nil)

	svc := NewLedgerService(mockRepo, clock)
	wallet, err := svc.GetWallet(context.Background(), "u1", now)
	assert.NoError(t, err)
	assert.Equal(t, 1510, wallet.Balance)
	mockRepo.AssertExpectations(t)
}

func TestLedgerService_GetHistory(t *testing.T) {
	clock, err := daykey.New("")
	assert.NoError(t, err)

	mockRepo := &mocks.MockLedgerRepository{}
	mockRepo.On("ListLineTransactions", mock.Anything, "u1", 50).
		Return([]*model.LineTransaction{{ID: "t1"}}, nil)

	svc := NewLedgerService(mockRepo, clock)

	// Zero limit falls back to the default page size.
	txs, err := svc.GetHistory(context.Background(), "u1", 0)
	assert.NoError(t, err)
	assert.Len(t, txs, 1)
	mockRepo.AssertExpectations(t)
}

func TestMembershipTierAllocations(t *testing.T) {
	assert.Equal(t, 1000, model.TierFree.MonthlyAllocation())
	assert.Equal(t, 5000, model.TierBoost.MonthlyAllocation())
	assert.Equal(t, 25000, model.TierCommunity.MonthlyAllocation())
	assert.Equal(t, 50000, model.TierSuper.MonthlyAllocation())
	assert.Equal(t, 1000, model.MembershipTier("unknown").MonthlyAllocation())
}
