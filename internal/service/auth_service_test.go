package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 新規ユーザーはfreeプランで登録される", func(t *testing.T) {
		db := newTestDB(t)
		userRepo := mocks.NewUserRepository(t)
		svc := NewAuthService(db, userRepo, newTestConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "kid@example.com").
			Return(nil, model.ErrNotFound).Once()
		userRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.User")).
			Return(nil).Once()

		user, err := svc.Register(ctx, &model.RegisterRequest{
			Email:    "kid@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, "kid@example.com", user.Email)
		assert.Equal(t, model.TierFree, user.Tier)
		assert.NotEqual(t, uuid.Nil, user.UserID)
		// パスワードは平文で保存されない
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	})

	t.Run("異常系: メールアドレス重複は409相当のエラー", func(t *testing.T) {
		db := newTestDB(t)
		userRepo := mocks.NewUserRepository(t)
		svc := NewAuthService(db, userRepo, newTestConfig())

		existing := &model.User{UserID: uuid.New(), Email: "kid@example.com"}
		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "kid@example.com").
			Return(existing, nil).Once()

		_, err := svc.Register(ctx, &model.RegisterRequest{
			Email:    "kid@example.com",
			Password: "password123",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrConflict))
		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "DUPLICATE_EMAIL", appErr.Detail.Code)
	})

	t.Run("異常系: チェック後のINSERTで重複が検知されてもConflictになる", func(t *testing.T) {
		db := newTestDB(t)
		userRepo := mocks.NewUserRepository(t)
		svc := NewAuthService(db, userRepo, newTestConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "kid@example.com").
			Return(nil, model.ErrNotFound).Once()
		userRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.User")).
			Return(model.ErrConflict).Once()

		_, err := svc.Register(ctx, &model.RegisterRequest{
			Email:    "kid@example.com",
			Password: "password123",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &model.User{
		UserID:       uuid.New(),
		Email:        "kid@example.com",
		PasswordHash: string(hashed),
		Tier:         model.TierFree,
	}

	t.Run("正常系: トークンのsubjectはメールアドレス・期限は設定値どおり", func(t *testing.T) {
		db := newTestDB(t)
		userRepo := mocks.NewUserRepository(t)
		svc := NewAuthService(db, userRepo, cfg)

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "kid@example.com").
			Return(user, nil).Once()

		before := time.Now()
		resp, err := svc.Login(ctx, &model.LoginRequest{Email: "kid@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)

		token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.SecretKey), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		subject, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "kid@example.com", subject)

		exp, err := token.Claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, before.Add(cfg.JWT.AccessTokenTTL), exp.Time, 5*time.Second)
	})

	t.Run("異常系: パスワード不一致は401相当のエラー", func(t *testing.T) {
		db := newTestDB(t)
		userRepo := mocks.NewUserRepository(t)
		svc := NewAuthService(db, userRepo, cfg)

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "kid@example.com").
			Return(user, nil).Once()

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "kid@example.com", Password: "wrong-password"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrUnauthenticated))
	})

	t.Run("異常系: 存在しないユーザーもパスワード不一致と同じエラー", func(t *testing.T) {
		db := newTestDB(t)
		userRepo := mocks.NewUserRepository(t)
		svc := NewAuthService(db, userRepo, cfg)

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "nobody@example.com").
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrUnauthenticated))

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		// ユーザーの存在有無を漏らさない
		assert.Equal(t, "AUTHENTICATION_FAILED", appErr.Detail.Code)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("異常系: 解決できないメールアドレスは401相当のエラー", func(t *testing.T) {
		db := newTestDB(t)
		userRepo := mocks.NewUserRepository(t)
		svc := NewAuthService(db, userRepo, newTestConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "ghost@example.com").
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.Authenticate(ctx, "ghost@example.com")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrUnauthenticated))
	})
}
