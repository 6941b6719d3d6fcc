package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := GenerateToken("1", "admin@example.org", KindAccess, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, KindAccess, secret)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "admin@example.org", claims.Email)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("1", "a@b.c", KindAccess, secret, -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, KindAccess, secret)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseToken_WrongKind(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("1", "a@b.c", KindRefresh, secret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, KindAccess, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_WrongSecretAndGarbage(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("1", "a@b.c", KindAccess, []byte("one"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, KindAccess, []byte("two"))
	require.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = ParseToken("not-a-token", KindAccess, []byte("two"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Kind: KindAccess})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(s, KindAccess, []byte("k"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
