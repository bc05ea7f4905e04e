package utils

import (
	"strings"
	"testing"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3nha-forte")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3nha-forte", hash))
	assert.False(t, CheckPasswordHash("outra", hash))
	assert.False(t, CheckPasswordHash("s3nha-forte", ""))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
