// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Progress はユーザー・日付ごとの学習実績の集計行を表します。
// (user_id, date) の複合ユニークインデックスにより1日1行が保証され、
// 同一日の再送信はリポジトリのアトミックなUPSERTでマージされます:
// words_learned は加算、quiz_score は既存値と送信値の単純平均に置き換え。
type Progress struct {
	ProgressID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_date,unique" json:"user_id"`
	Date         time.Time `gorm:"not null;index:idx_user_date,unique" json:"date"`
	WordsLearned int       `gorm:"not null" json:"words_learned"`
	QuizScore    float64   `gorm:"not null" json:"quiz_score"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (Progress) TableName() string {
	return "progress"
}

// SubmitProgressRequest は学習実績送信リクエストのDTO
type SubmitProgressRequest struct {
	WordsLearned *int     `json:"words_learned" validate:"required,min=0"`
	QuizScore    *float64 `json:"quiz_score" validate:"required,min=0,max=100"`
}

// ProgressDay は時刻tをUTCの日付(その日の0時)に正規化します。
// 日次クォータの集計窓と Progress.Date のキーはこの値で揃えます。
func ProgressDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
