package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"unauthorized", Unauthorizedf("bad token"), http.StatusUnauthorized},
		{"not found", NotFoundf("item %s", "x"), http.StatusNotFound},
		{"unknown audit item", ErrUnknownItem, http.StatusNotFound},
		{"conflict", Conflictf("duplicate"), http.StatusConflict},
		{"paused session", ErrSessionPaused, http.StatusConflict},
		{"finished session", ErrSessionFinished, http.StatusConflict},
		{"validation", Validationf("bad field"), http.StatusBadRequest},
		{"insufficient stock", ErrInsufficientStock, http.StatusBadRequest},
		{"persistence", Persistence(errors.New("disk full")), http.StatusInternalServerError},
		{"plain error", errors.New("what"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestConstructorsWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, Validationf("qty %d", -1), ErrValidation)
	assert.ErrorIs(t, NotFoundf("gone"), ErrNotFound)
	assert.ErrorIs(t, Conflictf("taken"), ErrConflict)
	assert.ErrorIs(t, Unauthorizedf("nope"), ErrUnauthorized)

	err := Validationf("qty %d is negative", -1)
	assert.Contains(t, err.Error(), "qty -1 is negative", "detail survives wrapping")
}

func TestPersistenceKeepsCause(t *testing.T) {
	assert.NoError(t, Persistence(nil))

	wrapped := Persistence(gorm.ErrRecordNotFound)
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrPersistence)
	assert.ErrorIs(t, wrapped, gorm.ErrRecordNotFound, "the cause stays inspectable")

	double := Persistence(wrapped)
	assert.ErrorIs(t, double, ErrPersistence)
	assert.ErrorIs(t, double, gorm.ErrRecordNotFound)
}
