package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	aimocks "go_5_vocab_kids/internal/ai/mocks"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWordService_GenerateSentence(t *testing.T) {
	ctx := context.Background()

	freeUser := &model.User{UserID: uuid.New(), Email: "free@example.com", Tier: model.TierFree}
	paidUser := &model.User{UserID: uuid.New(), Email: "paid@example.com", Tier: model.TierPaid}

	t.Run("正常系: 生成された例文が保存されて返る", func(t *testing.T) {
		db := newTestDB(t)
		wordRepo := mocks.NewWordRepository(t)
		generator := aimocks.NewSentenceGenerator(t)
		svc := NewWordService(db, wordRepo, generator, newTestConfig())

		wordRepo.On("CountByUserInRange", mock.Anything, mock.Anything, freeUser.UserID, mock.Anything, mock.Anything).
			Return(int64(0), nil).Once()
		generator.On("Generate", mock.Anything, "rainbow").
			Return("The rainbow has seven colors.", nil).Once()
		wordRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Word")).
			Return(nil).Once()

		word, err := svc.GenerateSentence(ctx, freeUser, "rainbow")
		require.NoError(t, err)
		assert.Equal(t, "rainbow", word.Term)
		assert.Equal(t, "The rainbow has seven colors.", word.Sentence)
		assert.Equal(t, freeUser.UserID, word.UserID)
	})

	t.Run("異常系: 無料プランは日次上限に達すると403相当のエラー", func(t *testing.T) {
		db := newTestDB(t)
		wordRepo := mocks.NewWordRepository(t)
		generator := aimocks.NewSentenceGenerator(t)
		cfg := newTestConfig()
		svc := NewWordService(db, wordRepo, generator, cfg)

		wordRepo.On("CountByUserInRange", mock.Anything, mock.Anything, freeUser.UserID, mock.Anything, mock.Anything).
			Return(int64(cfg.App.DailyWordLimit), nil).Once()

		_, err := svc.GenerateSentence(ctx, freeUser, "rainbow")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrForbidden))

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "DAILY_LIMIT_REACHED", appErr.Detail.Code)
		// 上限に達したら生成も保存もしない
		generator.AssertNotCalled(t, "Generate")
		wordRepo.AssertNotCalled(t, "Create")
	})

	t.Run("正常系: 有料プランはクォータを確認しない", func(t *testing.T) {
		db := newTestDB(t)
		wordRepo := mocks.NewWordRepository(t)
		generator := aimocks.NewSentenceGenerator(t)
		svc := NewWordService(db, wordRepo, generator, newTestConfig())

		generator.On("Generate", mock.Anything, "rocket").
			Return("The rocket flies to the moon.", nil).Once()
		wordRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Word")).
			Return(nil).Once()

		_, err := svc.GenerateSentence(ctx, paidUser, "rocket")
		require.NoError(t, err)
		wordRepo.AssertNotCalled(t, "CountByUserInRange")
	})

	t.Run("正常系: 生成モデルの失敗は定型例文にフォールバックして保存する", func(t *testing.T) {
		db := newTestDB(t)
		wordRepo := mocks.NewWordRepository(t)
		generator := aimocks.NewSentenceGenerator(t)
		svc := NewWordService(db, wordRepo, generator, newTestConfig())

		generator.On("Generate", mock.Anything, "turtle").
			Return("", fmt.Errorf("model unavailable")).Once()

		var saved *model.Word
		wordRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Word")).
			Run(func(args mock.Arguments) {
				saved = args.Get(2).(*model.Word)
			}).
			Return(nil).Once()

		word, err := svc.GenerateSentence(ctx, paidUser, "turtle")
		require.NoError(t, err)
		// フォールバック文にも対象の単語が含まれる (クイズの穴埋め用)
		assert.Contains(t, word.Sentence, "turtle")
		require.NotNil(t, saved)
		assert.Equal(t, word.Sentence, saved.Sentence)
	})
}
