package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/logger"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/testutil"
)

func newAuthService(t *testing.T) AuthService {
	db := testutil.OpenDB(t)
	auth := NewAuthService(repository.NewOperatorRepo(db), logger.Nop())
	require.NoError(t, auth.EnsureDefaultOperator())
	return auth
}

func TestEnsureDefaultOperatorIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := repository.NewOperatorRepo(db)
	auth := NewAuthService(repo, logger.Nop())

	require.NoError(t, auth.EnsureDefaultOperator())
	require.NoError(t, auth.EnsureDefaultOperator())

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "seeding twice must not duplicate the operator")

	op, err := repo.FindByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", op.Role)
	assert.True(t, op.CheckPIN("0000"))
}

func TestLogin(t *testing.T) {
	auth := newAuthService(t)

	resp, err := auth.Login(&LoginRequest{Username: "admin", PIN: "0000"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Operator.Username)

	// The token round-trips back to the same operator.
	op, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Operator.ID, op.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Login(&LoginRequest{Username: "admin", PIN: "9999"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// Unknown usernames fail with the same error as wrong PINs.
	_, err = auth.Login(&LoginRequest{Username: "ghost", PIN: "0000"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(&LoginRequest{Username: "", PIN: "0000"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = auth.ValidateToken("")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestChangePIN(t *testing.T) {
	auth := newAuthService(t)

	resp, err := auth.Login(&LoginRequest{Username: "admin", PIN: "0000"})
	require.NoError(t, err)
	id := resp.Operator.ID

	err = auth.ChangePIN(id, &ChangePINRequest{CurrentPIN: "1111", NewPIN: "4242"})
	assert.ErrorIs(t, err, ErrWrongPIN)

	err = auth.ChangePIN(id, &ChangePINRequest{CurrentPIN: "0000", NewPIN: "12"})
	assert.ErrorIs(t, err, apperror.ErrValidation, "a two-digit PIN is too short")

	require.NoError(t, auth.ChangePIN(id, &ChangePINRequest{CurrentPIN: "0000", NewPIN: "4242"}))

	_, err = auth.Login(&LoginRequest{Username: "admin", PIN: "0000"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "the old PIN stops working")

	_, err = auth.Login(&LoginRequest{Username: "admin", PIN: "4242"})
	assert.NoError(t, err)
}
