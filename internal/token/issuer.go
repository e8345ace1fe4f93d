package token

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

// リフレッシュトークンの乱数バイト数
const refreshTokenBytes = 64

// JWTIssuerはアクセストークン（署名付きJWT）とリフレッシュトークン値
// （構造を持たないランダム文字列）を発行する。
type JWTIssuer struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
}

// DI
func NewJWTIssuer(secret string, issuer string, audience string, accessTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:    []byte(secret),
		issuer:    issuer,
		audience:  audience,
		accessTTL: accessTTL,
	}
}

// IssueAccessTokenはユーザーのIDとemailをclaimsに入れたHS256署名のJWTを発行する。
// 有効期限は now + accessTTL。発行後の失効はできない。
func (i *JWTIssuer) IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"iss":   i.issuer,
		"aud":   i.audience,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// NewRefreshTokenValueは64バイトの暗号論的乱数をbase64にした文字列を返す。
// 中身に意味はなく、DBのレコードに紐付いて初めて意味を持つ。
func (i *JWTIssuer) NewRefreshTokenValue() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
