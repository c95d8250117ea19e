// internal/service/image_service.go
package service

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go_5_vocab_kids/internal/ai"
	"go_5_vocab_kids/internal/config"
	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
)

// ImageService は単語のイラストURLを返します
type ImageService interface {
	GetImage(ctx context.Context, word string) (*model.ImageResponse, error)
}

type imageService struct {
	searcher ai.ImageSearcher
	cfg      *config.Config
}

func NewImageService(searcher ai.ImageSearcher, cfg *config.Config) ImageService {
	return &imageService{
		searcher: searcher,
		cfg:      cfg,
	}
}

// GetImage は "cartoon <word>" で外部APIを検索し、取得できた画像を
// ローカルの画像ディレクトリに保存して /images/ 配下のURLを返します。
// 検索に失敗した場合は固定のフォールバックURL、保存に失敗した場合は
// リモートURLをそのまま返します。呼び出し元にエラーは返しません。
func (s *imageService) GetImage(ctx context.Context, word string) (*model.ImageResponse, error) {
	logger := middleware.GetLogger(ctx).With("word", word)

	remoteURL, err := s.searcher.Search(ctx, "cartoon "+word)
	if err != nil {
		logger.Warn("Image search unavailable, using fallback image", "error", err)
		return &model.ImageResponse{ImageURL: s.cfg.Image.FallbackURL}, nil
	}

	localURL, err := s.persistImage(ctx, word, remoteURL)
	if err != nil {
		logger.Warn("Failed to persist image locally, returning remote URL", "error", err)
		return &model.ImageResponse{ImageURL: remoteURL}, nil
	}
	return &model.ImageResponse{ImageURL: localURL}, nil
}

// persistImage は画像をダウンロードして画像ディレクトリに保存し、
// 静的配信用のパス (/images/<file>) を返します。
func (s *imageService) persistImage(ctx context.Context, word, remoteURL string) (string, error) {
	data, err := s.searcher.Download(ctx, remoteURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.cfg.Image.Dir, 0o755); err != nil {
		return "", err
	}

	ext := path.Ext(strings.Split(remoteURL, "?")[0])
	if ext == "" {
		ext = ".jpg"
	}
	fileName := safeFileName(word) + ext

	if err := os.WriteFile(filepath.Join(s.cfg.Image.Dir, fileName), data, 0o644); err != nil {
		return "", err
	}
	return "/images/" + fileName, nil
}

// safeFileName は単語をファイル名として安全な形に変換します
func safeFileName(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}
