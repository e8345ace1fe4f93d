package model

import "time"

// Userは認証対象のアカウント。
// emailの一意性はDBのunique制約で保証する（同時登録の競合もここで弾く）。
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
