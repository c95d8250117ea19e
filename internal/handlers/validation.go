package handlers

import (
	"errors"

	"go_5_vocab_kids/internal/model"
	"go_5_vocab_kids/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// newValidationError はバリデーションエラーを日本語メッセージ付きの
// AppError に変換します。複数のエラーがある場合は最初の1件を返します。
func newValidationError(err error) *model.AppError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return model.NewAppError(
			"VALIDATION_ERROR",
			fe.Translate(webutil.Trans),
			fe.Field(),
			model.ErrInvalidInput,
		)
	}
	return model.NewAppError("VALIDATION_ERROR", "入力内容に誤りがあります。", "", model.ErrInvalidInput)
}
