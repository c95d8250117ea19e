package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	aimocks "go_5_vocab_kids/internal/ai/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQuizService_BuildQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 単語が空欄になり正解を含む3択が返る", func(t *testing.T) {
		words := aimocks.NewDistractorSource(t)
		words.On("Random", mock.Anything, 2).Return([]string{"banana", "guitar"}, nil).Once()
		svc := NewQuizService(words)

		quiz, err := svc.BuildQuiz(ctx, "rainbow", "The rainbow has seven colors.")
		require.NoError(t, err)

		assert.Equal(t, "The ______ has seven colors.", quiz.Question)
		assert.NotContains(t, quiz.Question, "rainbow")
		assert.Equal(t, "rainbow", quiz.Answer)
		assert.Len(t, quiz.Options, 3)
		assert.Contains(t, quiz.Options, "rainbow")

		// 選択肢はすべて互いに異なる
		seen := map[string]bool{}
		for _, o := range quiz.Options {
			assert.False(t, seen[o], "duplicate option: %s", o)
			seen[o] = true
		}
	})

	t.Run("正常系: 単語が複数回出現してもすべて空欄になる", func(t *testing.T) {
		words := aimocks.NewDistractorSource(t)
		words.On("Random", mock.Anything, 2).Return([]string{"banana", "guitar"}, nil).Once()
		svc := NewQuizService(words)

		quiz, err := svc.BuildQuiz(ctx, "dog", "My dog is a good dog.")
		require.NoError(t, err)
		assert.Equal(t, "My ______ is a good ______.", quiz.Question)
	})

	t.Run("正常系: ランダム単語サービスの失敗は固定リストで補う", func(t *testing.T) {
		words := aimocks.NewDistractorSource(t)
		words.On("Random", mock.Anything, 2).Return(nil, fmt.Errorf("service down")).Once()
		svc := NewQuizService(words)

		quiz, err := svc.BuildQuiz(ctx, "rainbow", "The rainbow has seven colors.")
		require.NoError(t, err)
		assert.Len(t, quiz.Options, 3)
		assert.Contains(t, quiz.Options, "rainbow")
	})

	t.Run("正常系: ダミーが正解と重複する場合は別の候補で補う", func(t *testing.T) {
		words := aimocks.NewDistractorSource(t)
		// 正解と同じ単語・重複・空白だけが返るケース
		words.On("Random", mock.Anything, 2).Return([]string{"Apple", "apple"}, nil).Once()
		svc := NewQuizService(words)

		quiz, err := svc.BuildQuiz(ctx, "apple", "An apple a day.")
		require.NoError(t, err)
		assert.Len(t, quiz.Options, 3)

		lower := make([]string, 0, 3)
		for _, o := range quiz.Options {
			lower = append(lower, strings.ToLower(o))
		}
		count := 0
		for _, o := range lower {
			if o == "apple" {
				count++
			}
		}
		assert.Equal(t, 1, count, "answer must appear exactly once in options")
	})
}
