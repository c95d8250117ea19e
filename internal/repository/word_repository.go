//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WordRepository インターフェース
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Word, error)
	// CountByUserInRange は created_at が [from, to) に入る行数を数えます (日次クォータ用)
	CountByUserInRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"user_id", word.UserID.String(),
			"term", word.Term,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByUser: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) CountByUserInRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Word{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting words in range in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return 0, fmt.Errorf("gormWordRepository.CountByUserInRange: %w", result.Error)
	}
	return count, nil
}
