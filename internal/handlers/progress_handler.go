package handlers

import (
	"net/http"

	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/service"
	"go_5_vocab_kids/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Submit は POST /progress/ のハンドラです。当日(UTC)分の実績を登録し、
// 同じ日の行が既にあればマージした結果を返します。
func (h *ProgressHandler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "SubmitProgress")

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SubmitProgressRequest
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

	progress, err := h.progressService.Submit(r.Context(), user, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, progress, logger)
}

// List は GET /progress/ のハンドラです。自分自身の実績一覧を返します。
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "ListProgress")

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	rows, err := h.progressService.List(r.Context(), user, user.UserID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, rows, logger)
}

// ListByID は GET /progress/{user_id} のハンドラです。
// 本人または有料プランのユーザーのみ他ユーザーの実績を閲覧できます。
func (h *ProgressHandler) ListByID(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "ListProgressByID")

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		logger.Warn("Invalid user_id in path", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_USER_ID", "ユーザーIDの形式が正しくありません。", "user_id", model.ErrInvalidInput))
		return
	}

	rows, err := h.progressService.List(r.Context(), user, targetID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, rows, logger)
}
