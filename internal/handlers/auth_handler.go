package handlers

import (
	"net/http"

	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/service"
	"go_5_vocab_kids/internal/webutil"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token は POST /token のハンドラです。
// OAuth2のパスワードフローに合わせ、ボディは application/x-www-form-urlencoded の
// username / password を受け取ります (usernameにはメールアドレスを入れる)。
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "Token")

	if err := r.ParseForm(); err != nil {
		logger.Warn("Failed to parse form body", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "フォームの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}

	req := model.LoginRequest{
		Email:    r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if err := webutil.Validator.Struct(req); err != nil {
		logger.Warn("Validation failed", "error", err)
		webutil.HandleError(w, logger, newValidationError(err))
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, token, logger)
}
