package model

import "time"

// RefreshTokenは1回だけ使えるローテーション用クレデンシャル。
// Tokenは発行時の生の値をそのまま保存し、完全一致で検索する。
// Revokedはfalse→trueの一方向のみ。使用済み・失効済みの行も消さずに残す
// （期限切れ行の掃除はこの層の外の仕事）。
type RefreshToken struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Token     string    `json:"-" gorm:"not null;uniqueIndex"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	CreatedAt time.Time
}
