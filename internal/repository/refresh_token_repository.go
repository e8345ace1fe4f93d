package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
	"time"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの保存・検索・失効
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	// トークン値の完全一致で未失効の1件を検索する。所有ユーザーも一緒に読む。
	// 失効済み・存在しないはどちらもErrRefreshTokenNotFound。
	FindActiveByToken(ctx context.Context, tokenValue string) (*model.RefreshToken, error)
	// revoked=trueにする。実装は「未失効のときだけ更新」の条件付きUPDATEであること。
	// 同じトークンで同時にRefreshが来ても、成功するのは更新できた1人だけになる。
	// 0件更新はErrRefreshTokenNotFound。
	Revoke(ctx context.Context, tokenID string) error
	// 期限切れの行を削除して件数を返す（定期掃除用）。
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
