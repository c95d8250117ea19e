package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go_5_vocab_kids/internal/config"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// UserResolver はJWTのsubject(メールアドレス)からユーザーを解決します。
// service パッケージへの依存を避けるため、必要なメソッドだけをここで定義する。
type UserResolver interface {
	Authenticate(ctx context.Context, email string) (*model.User, error)
}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証するミドルウェア。
// 署名・有効期限・subjectの検証に加えて、subjectのメールアドレスが既存ユーザーに
// 解決できることまで確認し、*model.User をコンテキストに格納します。
func JWTAuthMiddleware(cfg *config.Config, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			// 1. Authorization ヘッダーからトークンを取得
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}
			tokenString := headerParts[1]

			// 2. JWTをパースし、署名と有効期限を検証
			// jwt.Parse は署名と有効期限(exp)の両方を検証してくれる
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// 署名アルゴリズムが期待通り(HS256)かチェック
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効か、有効期限が切れています。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// 3. ペイロードから subject (メールアドレス) を取得
			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンにユーザー情報が含まれていません。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// 4. subject を既存ユーザーに解決
			user, err := resolver.Authenticate(r.Context(), subject)
			if err != nil {
				logger.Warn("JWT auth failed: Subject not resolvable to a user", "subject", subject, "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンのユーザーが存在しません。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext は認証ミドルウェアが格納したユーザーを取り出します。
func GetUserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(model.UserKey).(*model.User)
	if !ok || user == nil {
		// ミドルウェアが正しく適用されていない等の内部エラー
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrInternalServer)
	}
	return user, nil
}
