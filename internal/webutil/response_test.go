package webutil

import (
	"fmt"
	"net/http"
	"testing"

	"go_5_vocab_kids/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFoundは404", model.ErrNotFound, http.StatusNotFound},
		{"InvalidInputは400", model.ErrInvalidInput, http.StatusBadRequest},
		{"Conflictは409", model.ErrConflict, http.StatusConflict},
		{"Unauthenticatedは401", model.ErrUnauthenticated, http.StatusUnauthorized},
		{"Forbiddenは403", model.ErrForbidden, http.StatusForbidden},
		{"未知のエラーは500", fmt.Errorf("something broke"), http.StatusInternalServerError},
		{
			"AppErrorはラップされたエラーで判定する",
			model.NewAppError("DUPLICATE_EMAIL", "重複しています。", "email", model.ErrConflict),
			http.StatusConflict,
		},
		{
			"さらにラップされていても判定できる",
			fmt.Errorf("outer: %w", model.NewAppError("FORBIDDEN", "権限がありません。", "", model.ErrForbidden)),
			http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}
