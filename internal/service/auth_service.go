package service

import (
	"context"
	"errors"
	"time"

	"go_5_vocab_kids/internal/config"
	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService はユーザー登録・認証・トークン発行を担当します
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	// Authenticate はJWTのsubject(メールアドレス)を既存ユーザーに解決します (ミドルウェア用)
	Authenticate(ctx context.Context, email string) (*model.User, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register は新しいユーザーを登録します。Tierは常に free で開始します。
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var newUser *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Emailでの重複チェック
		_, err := s.userRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already exists", "email", req.Email)
			return model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}

		// パスワードのハッシュ化
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "パスワードの処理中にエラーが発生しました。", "", err)
		}

		user := &model.User{
			UserID:       uuid.New(),
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
			Tier:         model.TierFree,
		}

		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			// Create内で重複エラーが検知された場合 (チェックとINSERTの間のレースコンディション対策)
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during user creation (race condition)", "email", req.Email)
				return model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)
			}
			logger.Error("Failed to create user in DB", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザーの作成に失敗しました。", "", err)
		}
		newUser = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", "user_id", newUser.UserID, "email", newUser.Email)
	return newUser, nil
}

// Login はユーザーを認証し、JWTを返します。
// subjectにはメールアドレスを入れます。有効期限は設定値 (デフォルト30分)。
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	user, err := s.userRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, model.NewAppError("AUTHENTICATION_FAILED", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrUnauthenticated)
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "user_id", user.UserID)
		return nil, model.NewAppError("AUTHENTICATION_FAILED", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrUnauthenticated)
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    s.cfg.App.Name,
		Subject:   user.Email,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "user_id", user.UserID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	logger.Info("Login successful", "user_id", user.UserID)
	return &model.TokenResponse{AccessToken: signedToken, TokenType: "bearer"}, nil
}

// Authenticate はメールアドレスからユーザーを取得します
func (s *authService) Authenticate(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrUnauthenticated)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return user, nil
}
