//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository インターフェース
type ProgressRepository interface {
	// Upsert は (user_id, date) ごとに1行を保証する単一のアトミックな文で
	// 実績をマージします: words_learned は加算、quiz_score は既存値と
	// 送信値の単純平均。チェックしてから挿入する方式ではないため、
	// 同時送信でも行が重複したり更新が失われたりしません。
	Upsert(ctx context.Context, tx *gorm.DB, progress *model.Progress) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Progress, error)
	FindByUserAndDate(ctx context.Context, db *gorm.DB, userID uuid.UUID, date time.Time) (*model.Progress, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, progress *model.Progress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"words_learned": gorm.Expr("words_learned + excluded.words_learned"),
			"quiz_score":    gorm.Expr("(quiz_score + excluded.quiz_score) / 2"),
			"updated_at":    gorm.Expr("excluded.updated_at"),
		}),
	}).Create(progress)
	if result.Error != nil {
		logger.Error("Error upserting progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"date", progress.Date.Format("2006-01-02"),
		)
		return fmt.Errorf("gormProgressRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Progress, error) {
	logger := middleware.GetLogger(ctx)
	var rows []*model.Progress
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("date ASC").Find(&rows)
	if result.Error != nil {
		logger.Error("Error finding progress by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUser: %w", result.Error)
	}
	return rows, nil
}

func (r *gormProgressRepository) FindByUserAndDate(ctx context.Context, db *gorm.DB, userID uuid.UUID, date time.Time) (*model.Progress, error) {
	var row model.Progress
	result := db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndDate: %w", result.Error)
	}
	return &row, nil
}
