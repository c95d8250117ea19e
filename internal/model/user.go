package model

import (
	"time"

	"github.com/google/uuid"
)

// Tier はサブスクリプション階層を表します
type Tier string

const (
	TierFree Tier = "free" // 無料プラン (1日あたりの生成回数に上限あり)
	TierPaid Tier = "paid" // 有料プラン (上限なし)
)

// User はアプリケーションの利用者を表します
type User struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Tier         Tier      `gorm:"type:varchar(10);not null;default:free" json:"tier"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// GORM用のリレーション (JSONには含めない)
	Words    []Word     `gorm:"foreignKey:UserID" json:"-"`
	Progress []Progress `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	// UserKey は認証ミドルウェアが解決した *model.User をコンテキストに格納するキー
	UserKey ContextKey = "authenticatedUser"
)

// RegisterRequest は新規登録APIのリクエストボディの構造体 (DTO)
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserResponse はクライアントに返すユーザー情報の構造体
type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Tier      Tier      `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse は User からレスポンスDTOを組み立てます
func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		Tier:      u.Tier,
		CreatedAt: u.CreatedAt,
	}
}
