// internal/service/progress_service.go
package service

import (
	"context"
	"time"

	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService は日次の学習実績を担当します
type ProgressService interface {
	// Submit は当日(UTC)分の実績を登録またはマージします
	Submit(ctx context.Context, user *model.User, req *model.SubmitProgressRequest) (*model.Progress, error)
	// List は対象ユーザーの実績一覧を返します。
	// 本人、または有料プランのユーザーのみ閲覧できます。
	List(ctx context.Context, requester *model.User, targetID uuid.UUID) ([]*model.Progress, error)
}

type progressService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		db:       db,
		progRepo: progRepo,
	}
}

func (s *progressService) Submit(ctx context.Context, user *model.User, req *model.SubmitProgressRequest) (*model.Progress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", user.UserID.String())
	today := model.ProgressDay(time.Now())

	var merged *model.Progress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &model.Progress{
			ProgressID:   uuid.New(),
			UserID:       user.UserID,
			Date:         today,
			WordsLearned: *req.WordsLearned,
			QuizScore:    *req.QuizScore,
		}
		if err := s.progRepo.Upsert(ctx, tx, row); err != nil {
			logger.Error("Error upserting progress in transaction", "error", err)
			return model.ErrInternalServer
		}

		// UPSERT後のマージ結果を読み直して返す
		result, err := s.progRepo.FindByUserAndDate(ctx, tx, user.UserID, today)
		if err != nil {
			logger.Error("Error fetching merged progress in transaction", "error", err)
			return model.ErrInternalServer
		}
		merged = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Progress submitted",
		"date", today.Format("2006-01-02"),
		"words_learned", merged.WordsLearned,
		"quiz_score", merged.QuizScore,
	)
	return merged, nil
}

func (s *progressService) List(ctx context.Context, requester *model.User, targetID uuid.UUID) ([]*model.Progress, error) {
	logger := middleware.GetLogger(ctx).With("requester_id", requester.UserID.String(), "target_id", targetID.String())

	if requester.UserID != targetID && requester.Tier != model.TierPaid {
		logger.Warn("Cross-user progress access denied")
		return nil, model.NewAppError("FORBIDDEN", "この学習実績を閲覧する権限がありません。", "", model.ErrForbidden)
	}

	rows, err := s.progRepo.FindByUser(ctx, s.db, targetID)
	if err != nil {
		logger.Error("Error listing progress", "error", err)
		return nil, model.ErrInternalServer
	}
	return rows, nil
}
