package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

func TestVerifyToken_ValidTokenReissued(t *testing.T) {
	repo := newMockUserRepo(registeredUser(t, "12345", nil))
	uc := NewVerifyTokenUseCase(repo, &stubTokenService{}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), VerifyTokenCommand{Token: "tok:12345:REGULAR"})

	require.NoError(t, err)
	assert.Equal(t, "tok:12345:REGULAR", result.Token)
}

func TestVerifyToken_ExpiredRenewedWithTelegramID(t *testing.T) {
	repo := newMockUserRepo(registeredUser(t, "12345", nil))
	uc := NewVerifyTokenUseCase(repo, &stubTokenService{verifyErr: ErrTokenExpired}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), VerifyTokenCommand{
		Token:      "tok:12345:REGULAR",
		TelegramID: "12345",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok:12345:REGULAR", result.Token)
}

func TestVerifyToken_ExpiredWithoutTelegramID(t *testing.T) {
	repo := newMockUserRepo(registeredUser(t, "12345", nil))
	uc := NewVerifyTokenUseCase(repo, &stubTokenService{verifyErr: ErrTokenExpired}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), VerifyTokenCommand{Token: "tok:12345:REGULAR"})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestVerifyToken_InvalidToken(t *testing.T) {
	repo := newMockUserRepo(registeredUser(t, "12345", nil))
	uc := NewVerifyTokenUseCase(repo, &stubTokenService{verifyErr: ErrTokenInvalid}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), VerifyTokenCommand{
		Token:      "garbage",
		TelegramID: "12345",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestVerifyToken_MismatchedTelegramID(t *testing.T) {
	repo := newMockUserRepo(
		registeredUser(t, "12345", nil),
		registeredUser(t, "67890", nil),
	)
	uc := NewVerifyTokenUseCase(repo, &stubTokenService{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), VerifyTokenCommand{
		Token:      "tok:12345:REGULAR",
		TelegramID: "67890",
	})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "Authentication Failed", appErr.Message)
}

func TestVerifyToken_UnregisteredUser(t *testing.T) {
	uc := NewVerifyTokenUseCase(newMockUserRepo(), &stubTokenService{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), VerifyTokenCommand{Token: "tok:ghost:REGULAR"})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}
