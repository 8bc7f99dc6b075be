package auth

import (
	"testing"

	"patisserie/config"
	domainerrors "patisserie/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.JWT = "test-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(&config.Config{})

	require.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	token, err := svc.Generate("claire@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, svc.Validate(token))

	subject, err := svc.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "claire@example.com", subject)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	assert.False(t, svc.Validate("not-a-token"))

	subject, err := svc.ExtractSubject("not-a-token")
	require.Error(t, err)
	assert.Empty(t, subject)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.JWT = "another-secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.Generate("claire@example.com")
	require.NoError(t, err)

	assert.False(t, svc.Validate(token))
}
