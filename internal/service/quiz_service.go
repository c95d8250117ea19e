// internal/service/quiz_service.go
package service

import (
	"context"
	"math/rand"
	"strings"

	"go_5_vocab_kids/internal/ai"
	"go_5_vocab_kids/internal/middleware"
	"go_5_vocab_kids/internal/model"
)

const quizBlank = "______"

// fallbackDistractors はランダム単語サービスが使えないときの固定リストです。
// 対象の単語と衝突しても2つ選べるだけの数を持たせてあります。
var fallbackDistractors = []string{"apple", "house", "car", "dog", "school"}

// QuizService は例文から穴埋めクイズを組み立てます
type QuizService interface {
	BuildQuiz(ctx context.Context, word, sentence string) (*model.Quiz, error)
}

type quizService struct {
	words ai.DistractorSource
}

func NewQuizService(words ai.DistractorSource) QuizService {
	return &quizService{words: words}
}

// BuildQuiz は対象の単語を空欄にし、正解1つ+ダミー2つの3択を
// シャッフルして返します。選択肢はすべて互いに異なります。
func (s *quizService) BuildQuiz(ctx context.Context, word, sentence string) (*model.Quiz, error) {
	question := strings.ReplaceAll(sentence, word, quizBlank)

	options := make([]string, 0, 3)
	options = append(options, word)
	options = append(options, s.pickDistractors(ctx, word)...)

	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &model.Quiz{
		Question: question,
		Options:  options,
		Answer:   word,
	}, nil
}

// pickDistractors は対象の単語と重複しないダミー選択肢を2つ返します。
// 外部サービスの失敗や不正な応答は固定リストで補います。
func (s *quizService) pickDistractors(ctx context.Context, word string) []string {
	logger := middleware.GetLogger(ctx)

	picked := make([]string, 0, 2)
	seen := map[string]bool{strings.ToLower(word): true}

	remote, err := s.words.Random(ctx, 2)
	if err != nil {
		logger.Warn("Random word service unavailable, using fallback distractors", "error", err)
	} else {
		for _, d := range remote {
			d = strings.ToLower(strings.TrimSpace(d))
			if d == "" || seen[d] {
				continue
			}
			seen[d] = true
			picked = append(picked, d)
			if len(picked) == 2 {
				break
			}
		}
	}

	for _, d := range fallbackDistractors {
		if len(picked) == 2 {
			break
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		picked = append(picked, d)
	}

	return picked
}
