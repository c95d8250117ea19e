package service

import (
	"context"
	"errors"
	"testing"

	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestProgressService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 初回送信は新しい行を作成する", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProgressService(db, repository.NewGormProgressRepository())
		user := &model.User{UserID: uuid.New(), Tier: model.TierFree}

		progress, err := svc.Submit(ctx, user, &model.SubmitProgressRequest{
			WordsLearned: intp(3),
			QuizScore:    floatp(80),
		})
		require.NoError(t, err)
		assert.Equal(t, user.UserID, progress.UserID)
		assert.Equal(t, 3, progress.WordsLearned)
		assert.Equal(t, float64(80), progress.QuizScore)
	})

	t.Run("正常系: 同一日の再送信は加算と平均でマージされ行は1つのまま", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewGormProgressRepository()
		svc := NewProgressService(db, repo)
		user := &model.User{UserID: uuid.New(), Tier: model.TierFree}

		_, err := svc.Submit(ctx, user, &model.SubmitProgressRequest{
			WordsLearned: intp(3),
			QuizScore:    floatp(80),
		})
		require.NoError(t, err)

		merged, err := svc.Submit(ctx, user, &model.SubmitProgressRequest{
			WordsLearned: intp(2),
			QuizScore:    floatp(60),
		})
		require.NoError(t, err)

		// words_learned は加算、quiz_score は既存値と送信値の平均
		assert.Equal(t, 5, merged.WordsLearned)
		assert.Equal(t, float64(70), merged.QuizScore)

		rows, err := repo.FindByUser(ctx, db, user.UserID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestProgressService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 本人は自分の実績を閲覧できる", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProgressService(db, repository.NewGormProgressRepository())
		user := &model.User{UserID: uuid.New(), Tier: model.TierFree}

		_, err := svc.Submit(ctx, user, &model.SubmitProgressRequest{
			WordsLearned: intp(1),
			QuizScore:    floatp(100),
		})
		require.NoError(t, err)

		rows, err := svc.List(ctx, user, user.UserID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("異常系: 無料プランは他人の実績を閲覧できない", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProgressService(db, repository.NewGormProgressRepository())
		requester := &model.User{UserID: uuid.New(), Tier: model.TierFree}

		_, err := svc.List(ctx, requester, uuid.New())
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrForbidden))
	})

	t.Run("正常系: 有料プランは他人の実績を閲覧できる", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProgressService(db, repository.NewGormProgressRepository())
		requester := &model.User{UserID: uuid.New(), Tier: model.TierPaid}
		target := &model.User{UserID: uuid.New(), Tier: model.TierFree}

		_, err := svc.Submit(ctx, target, &model.SubmitProgressRequest{
			WordsLearned: intp(4),
			QuizScore:    floatp(90),
		})
		require.NoError(t, err)

		rows, err := svc.List(ctx, requester, target.UserID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, target.UserID, rows[0].UserID)
	})
}
