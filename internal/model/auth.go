package model

// LoginRequest はトークン発行APIへの入力 (フォームの username/password を詰め替えたもの)
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse はトークン発行成功時のレスポンス
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // 常に "bearer"
}
