package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Users() UserRepository
	RefreshTokens() RefreshTokenRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// リフレッシュのローテーション（旧トークン失効＋新トークン保存）を
// 1つのトランザクションにまとめるために使う。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
