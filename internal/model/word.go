// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Word は生成済みの単語と例文のペアを表します。
// 文の生成に成功するたびに1行追加され、以後は不変です。
// CreatedAt は無料プランの1日あたりの生成回数カウントに使われます。
type Word struct {
	WordID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"word_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Term      string    `gorm:"not null" json:"word"`     // 単語
	Sentence  string    `gorm:"not null" json:"sentence"` // 生成された例文
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Word) TableName() string {
	return "words"
}

// GenerateSentenceRequest は例文生成リクエストのDTO
type GenerateSentenceRequest struct {
	Word string `json:"word" validate:"required,min=1,max=64"`
}

// GenerateSentenceResponse は例文生成レスポンスのDTO
type GenerateSentenceResponse struct {
	WordID   uuid.UUID `json:"word_id"`
	Word     string    `json:"word"`
	Sentence string    `json:"sentence"`
}
