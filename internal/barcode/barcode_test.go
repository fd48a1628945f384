package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/testutil"
)

func TestNextCodeSequence(t *testing.T) {
	db := testutil.OpenDB(t)

	first, err := NextCode(db)
	require.NoError(t, err)
	assert.Equal(t, "1000000", first, "counter starts at the seven digit floor")

	second, err := NextCode(db)
	require.NoError(t, err)
	assert.Equal(t, "1000001", second)

	third, err := NextCode(db)
	require.NoError(t, err)
	assert.Equal(t, "1000002", third)
}

func TestNextCodeSurvivesRollback(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := NextCode(db)
	require.NoError(t, err)

	// A rolled back allocation returns its number to the pool.
	tx := db.Begin()
	code, err := NextCode(tx)
	require.NoError(t, err)
	assert.Equal(t, "1000001", code)
	tx.Rollback()

	again, err := NextCode(db)
	require.NoError(t, err)
	assert.Equal(t, "1000001", again)
}

func TestCheckDigit(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{"590123412345", 7},
		{"400638133393", 1},
		{"000000000000", 0},
		{"1000000", 9},
	}
	for _, tc := range cases {
		got, err := CheckDigit(tc.code)
		require.NoError(t, err, "code %s", tc.code)
		assert.Equal(t, tc.want, got, "code %s", tc.code)
	}
}

func TestCheckDigitRejectsBadInput(t *testing.T) {
	_, err := CheckDigit("")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = CheckDigit("12a4")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
