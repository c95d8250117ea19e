// internal/model/quiz.go
package model

// GenerateQuizRequest は穴埋めクイズ生成リクエストのDTO
type GenerateQuizRequest struct {
	Word     string `json:"word" validate:"required,min=1,max=64"`
	Sentence string `json:"sentence" validate:"required,min=1"`
}

// Quiz は穴埋めクイズのレスポンスDTO。
// Options は正解1つ+ダミー2つをシャッフルした3択です。
type Quiz struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// GenerateImageRequest はイラスト取得リクエストのDTO
type GenerateImageRequest struct {
	Word string `json:"word" validate:"required,min=1,max=64"`
}

// ImageResponse はイラスト取得レスポンスのDTO
type ImageResponse struct {
	ImageURL string `json:"image_url"`
}
