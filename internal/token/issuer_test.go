package token_test

import (
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/token"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *token.JWTIssuer {
	return token.NewJWTIssuer("test-secret", "test-issuer", "test-audience", 15*time.Minute)
}

// 発行したJWTが検証できてclaimsが入っている
func TestJWTIssuer_IssueAccessToken(t *testing.T) {
	issuer := newTestIssuer()
	user := &model.User{ID: 42, Email: "a@x.com"}

	signed, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	//同じsecretで検証
	parsed, err := jwt.Parse(signed, func(tk *jwt.Token) (interface{}, error) {
		assert.Equal(t, jwt.SigningMethodHS256, tk.Method)
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "a@x.com", claims["email"])
	assert.Equal(t, "test-issuer", claims["iss"])
	assert.Equal(t, "test-audience", claims["aud"])

	//exp ≒ now + 15分
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	want := time.Now().Add(15 * time.Minute).Unix()
	assert.InDelta(t, want, int64(exp), 5)
}

// 違うsecretだと検証に失敗する
func TestJWTIssuer_IssueAccessToken_BadSecret(t *testing.T) {
	issuer := newTestIssuer()

	signed, err := issuer.IssueAccessToken(&model.User{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}

// リフレッシュトークン値は64バイト分の長さがあって毎回違う
func TestJWTIssuer_NewRefreshTokenValue(t *testing.T) {
	issuer := newTestIssuer()

	v1, err := issuer.NewRefreshTokenValue()
	require.NoError(t, err)
	v2, err := issuer.NewRefreshTokenValue()
	require.NoError(t, err)

	//64バイトのbase64（パディングなし）は86文字
	assert.Len(t, v1, 86)
	assert.NotEqual(t, v1, v2)
}
