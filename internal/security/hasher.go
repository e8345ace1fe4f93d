package security

import (
	"crypto/sha256"
	"encoding/base64"
)

// Sha256PasswordHasherは平文パスワードをSHA-256でハッシュ化する。
// 同じ入力からは常に同じ出力が出るので、照合は再ハッシュして文字列比較するだけ。
type Sha256PasswordHasher struct{}

// DI
func NewSha256PasswordHasher() *Sha256PasswordHasher {
	return &Sha256PasswordHasher{}
}

// Hashは平文をハッシュ化してbase64文字列で返す。
// どんな入力（空文字含む）でも失敗しない。
func (h *Sha256PasswordHasher) Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.StdEncoding.EncodeToString(sum[:])
}
