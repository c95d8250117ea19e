package handlers

import (
	"net/http"

	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/service"
	"go_5_vocab_kids/internal/webutil"
)

// GenerateHandler は例文・クイズ・イラストの生成系APIをまとめたハンドラです。
// 例文生成のみ認証必須 (日次クォータがユーザーに紐づくため)。
type GenerateHandler struct {
	wordService  service.WordService
	quizService  service.QuizService
	imageService service.ImageService
}

func NewGenerateHandler(wordService service.WordService, quizService service.QuizService, imageService service.ImageService) *GenerateHandler {
	return &GenerateHandler{
		wordService:  wordService,
		quizService:  quizService,
		imageService: imageService,
	}
}

// GenerateSentence は POST /generate_sentence のハンドラです (要認証)。
func (h *GenerateHandler) GenerateSentence(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GenerateSentence")

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.GenerateSentenceRequest
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

	word, err := h.wordService.GenerateSentence(r.Context(), user, req.Word)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := model.GenerateSentenceResponse{
		WordID:   word.WordID,
		Word:     word.Term,
		Sentence: word.Sentence,
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GenerateQuiz は POST /generate_quiz のハンドラです (認証不要)。
func (h *GenerateHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GenerateQuiz")

	var req model.GenerateQuizRequest
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

	quiz, err := h.quizService.BuildQuiz(r.Context(), req.Word, req.Sentence)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, quiz, logger)
}

// GenerateImage は POST /generate_image のハンドラです (認証不要)。
func (h *GenerateHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "GenerateImage")

	var req model.GenerateImageRequest
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

	image, err := h.imageService.GetImage(r.Context(), req.Word)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, image, logger)
}
