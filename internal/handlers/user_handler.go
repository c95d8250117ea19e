package handlers

import (
	"net/http"

	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/service"
	"go_5_vocab_kids/internal/webutil"
)

type UserHandler struct {
	authService service.AuthService
}

func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Register は POST /users/ のハンドラです。
// 成功時は 201 でパスワードを含まないユーザー情報を返します。
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "Register")

	var req model.RegisterRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		logger.Warn("Validation failed", "error", err)
		webutil.HandleError(w, logger, newValidationError(err))
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, model.NewUserResponse(user), logger)
}

// Me は GET /users/me/ のハンドラです。認証済みユーザー自身の情報を返します。
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "Me")

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.NewUserResponse(user), logger)
}
