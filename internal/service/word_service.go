// internal/service/word_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_vocab_kids/internal/ai"
	"go_5_vocab_kids/internal/config"
	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WordService は例文生成とその履歴 (Wordテーブル) を担当します
type WordService interface {
	GenerateSentence(ctx context.Context, user *model.User, word string) (*model.Word, error)
	GetWords(ctx context.Context, userID uuid.UUID) ([]*model.Word, error)
}

type wordService struct {
	db        *gorm.DB // トランザクション用にDB接続を持つ
	wordRepo  repository.WordRepository
	generator ai.SentenceGenerator
	cfg       *config.Config
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, generator ai.SentenceGenerator, cfg *config.Config) WordService {
	return &wordService{
		db:        db,
		wordRepo:  wordRepo,
		generator: generator,
		cfg:       cfg,
	}
}

// GenerateSentence は単語の例文を生成して保存します。
// 無料プランはUTCの暦日単位で生成回数が制限されます。クォータの判定と
// INSERTを同一トランザクション内で行い、チェック後に別リクエストが
// 先にコミットして上限を超える余地を狭めています。
// 外部モデルの失敗は定型文へのフォールバックで吸収し、呼び出し元には
// エラーとして返しません。
func (s *wordService) GenerateSentence(ctx context.Context, user *model.User, word string) (*model.Word, error) {
	logger := middleware.GetLogger(ctx).With("user_id", user.UserID.String(), "word", word)

	var created *model.Word
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 無料プランのみ日次クォータを確認
		if user.Tier != model.TierPaid {
			dayStart := model.ProgressDay(time.Now())
			count, err := s.wordRepo.CountByUserInRange(ctx, tx, user.UserID, dayStart, dayStart.AddDate(0, 0, 1))
			if err != nil {
				logger.Error("Error counting words for quota", "error", err)
				return model.ErrInternalServer
			}
			if count >= int64(s.cfg.App.DailyWordLimit) {
				logger.Warn("Daily word limit reached", "count", count, "limit", s.cfg.App.DailyWordLimit)
				return model.NewAppError("DAILY_LIMIT_REACHED", "無料プランの1日あたりの生成回数上限に達しました。", "", model.ErrForbidden)
			}
		}

		// 2. 例文を生成 (失敗時は定型文にフォールバック)
		sentence, err := s.generator.Generate(ctx, word)
		if err != nil {
			logger.Warn("Sentence model unavailable, using fallback sentence", "error", err)
			sentence = fallbackSentence(word)
		}

		// 3. 単語+例文を保存
		w := &model.Word{
			WordID:   uuid.New(),
			UserID:   user.UserID,
			Term:     word,
			Sentence: sentence,
		}
		if err := s.wordRepo.Create(ctx, tx, w); err != nil {
			logger.Error("Error creating word in transaction", "error", err)
			return model.ErrInternalServer
		}
		created = w
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) || errors.Is(err, model.ErrInternalServer) {
			return nil, err
		}
		logger.Error("Transaction failed for GenerateSentence", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Sentence generated", "word_id", created.WordID.String())
	return created, nil
}

func (s *wordService) GetWords(ctx context.Context, userID uuid.UUID) ([]*model.Word, error) {
	words, err := s.wordRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	return words, nil
}

// fallbackSentence は外部モデルが使えないときの定型例文です。
// クイズの穴埋めが機能するよう、単語そのものを必ず含めます。
func fallbackSentence(word string) string {
	return fmt.Sprintf("I am happy when I use the word %s.", word)
}
