package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// emailがすでに使われている（unique制約違反）
var ErrEmailTaken = errors.New("email already taken")

// ユーザーの保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成。IDは保存時に採番される。
	// emailが既存ユーザーと衝突したらErrEmailTakenを返す。
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからなければ(nil, nil)。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// メールからユーザーを1件取得する。見つからなければ(nil, nil)。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
