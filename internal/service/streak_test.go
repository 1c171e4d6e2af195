package service

import (
	"context"
	"testing"
	"time"

	"github.com/chimwopara/logic/internal/model"
	"github.com/chimwopara/logic/internal/repository"
	"github.com/chimwopara/logic/internal/service/mocks"
	"github.com/chimwopara/logic/pkg/daykey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStreakService_Update(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock, err := daykey.New("")
	assert.NoError(t, err)

	tests := []struct {
		name      string
		userID    string
		mockSetup func(*mocks.MockStreakRepository)
		expected  *model.StreakRecord
		noUpsert  bool
	}{
		{
			name:   "First ever submission starts a streak",
			userID: "u1",
			mockSetup: func(m *mocks.MockStreakRepository) {
				m.On("GetStreak", mock.Anything, "u1").
					Return(nil, repository.ErrNotFound)
				m.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)
			},
			expected: &model.StreakRecord{
				UserID:     "u1",
				Count:      1,
				LastDate:   "2026-03-10",
				BestStreak: 1,
			},
		},
		{
			name:   "Consecutive day extends the streak",
			userID: "u2",
			mockSetup: func(m *mocks.MockStreakRepository) {
				m.On("GetStreak", mock.Anything, "u2").
					Return(&model.StreakRecord{
						UserID:     "u2",
						Count:      4,
						LastDate:   "2026-03-09",
						BestStreak: 6,
					}, nil)
				m.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)
			},
			expected: &model.StreakRecord{
				UserID:     "u2",
				Count:      5,
				LastDate:   "2026-03-10",
				BestStreak: 6,
			},
		},
		{
			name:   "Missed day resets to one",
			userID: "u3",
			mockSetup: func(m *mocks.MockStreakRepository) {
				m.On("GetStreak", mock.Anything, "u3").
					Return(&model.StreakRecord{
						UserID:     "u3",
						Count:      8,
						LastDate:   "2026-03-07",
						BestStreak: 8,
					}, nil)
				m.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)
			},
			expected: &model.StreakRecord{
				UserID:     "u3",
				Count:      1,
				LastDate:   "2026-03-10",
				BestStreak: 8,
			},
		},
		{
			name:   "Extending past the best updates the best",
			userID: "u4",
			mockSetup: func(m *mocks.MockStreakRepository) {
				m.On("GetStreak", mock.Anything, "u4").
					Return(&model.StreakRecord{
						UserID:     "u4",
						Count:      6,
						LastDate:   "2026-03-09",
						BestStreak: 6,
					}, nil)
				m.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)
			},
			expected: &model.StreakRecord{
				UserID:     "u4",
				Count:      7,
				LastDate:   "2026-03-10",
				BestStreak: 7,
			},
		},
		{
			name:   "Same day is a no-op",
			userID: "u5",
			mockSetup: func(m *mocks.MockStreakRepository) {
				m.On("GetStreak", mock.Anything, "u5").
					Return(&model.StreakRecord{
						UserID:     "u5",
						Count:      3,
						LastDate:   "2026-03-10",
						BestStreak: 3,
					}, nil)
			},
			expected: &model.StreakRecord{
				UserID:     "u5",
				Count:      3,
				LastDate:   "2026-03-10",
				BestStreak: 3,
			},
			noUpsert: true,
		},
		{
			name:   "Zero count with a stale date still starts at one",
			userID: "u6",
			mockSetup: func(m *mocks.MockStreakRepository) {
				m.On("GetStreak", mock.Anything, "u6").
					Return(&model.StreakRecord{
						UserID:   "u6",
						Count:    0,
						LastDate: "2026-02-01",
					}, nil)
				m.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)
			},
			expected: &model.StreakRecord{
				UserID:     "u6",
				Count:      1,
				LastDate:   "2026-03-10",
				BestStreak: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockStreakRepository{}
			tt.mockSetup(mockRepo)
			svc := NewStreakService(mockRepo, clock)

			rec, err := svc.Update(context.Background(), tt.userID, now)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, rec)

			if tt.noUpsert {
				mockRepo.AssertNotCalled(t, "UpsertStreak", mock.Anything, mock.Anything)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStreakService_Get(t *testing.T) {
	clock, err := daykey.New("")
	assert.NoError(t, err)

	mockRepo := &mocks.MockStreakRepository{}
	mockRepo.On("GetStreak", mock.Anything, "ghost").
		Return(nil, repository.ErrNotFound)

	svc := NewStreakService(mockRepo, clock)
	rec, err := svc.Get(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Equal(t, &model.StreakRecord{UserID: "ghost"}, rec)
}
