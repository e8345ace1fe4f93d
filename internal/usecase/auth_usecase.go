package usecase

import (
	"app/internal/domain/model"
	"app/internal/repository"

	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	//400 emailが使用済み
	ErrEmailAlreadyInUse = errors.New("email already in use")
	//401 認証失敗（ユーザー不在とパスワード違いは区別しない）
	ErrInvalidCredentials = errors.New("invalid credentials")
	//401 リフレッシュトークンが無効か期限切れ
	ErrInvalidOrExpiredToken = errors.New("invalid or expired refresh token")
)

// refreshtokenの有効期限
const refreshTokenTTL = 7 * 24 * time.Hour

// 平文パスワードからハッシュへ。照合は再ハッシュして比較する。
type PasswordHasher interface {
	Hash(plain string) string
}

// アクセストークンとリフレッシュトークン値を発行する約束
type TokenIssuer interface {
	IssueAccessToken(user *model.User) (string, error)
	NewRefreshTokenValue() (string, error)
}

// 認証成功時に返す値。永続化はしない。
type AuthResult struct {
	Email        string `json:"email"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// 認証ユーザーの情報（/me用）
type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// AuthUsecaseは登録・ログイン・リフレッシュの判断をぜんぶ持つ。
// 自分では状態を持たず、永続化はrepositoryに任せる。
type AuthUsecase struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
	txm    repository.TransactionManager
	hasher PasswordHasher
	issuer TokenIssuer
}

func NewAuthUsecase(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	txm repository.TransactionManager,
	hasher PasswordHasher,
	issuer TokenIssuer,
) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		txm:    txm,
		hasher: hasher,
		issuer: issuer,
	}
}

// Registerは新規ユーザーを作ってトークン一式を返す。
func (u *AuthUsecase) Register(ctx context.Context, email string, password string) (*AuthResult, error) {
	//email重複チェック
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash := u.hasher.Hash(password)

	user := &model.User{
		Email:        email,
		PasswordHash: pwHash,
	}

	//保存。同時登録の競合はDBのunique制約が弾くのでここで拾う。
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailAlreadyInUse
		}
		return nil, err
	}

	return u.issueTokens(ctx, u.tokens, user)
}

// Loginは認証してトークン一式を返す。
// 「ユーザーがいない」と「パスワードが違う」は同じエラーにする
// （アカウントの存在を漏らさないため）。
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	//パスワード照合（再ハッシュして文字列比較）
	if u.hasher.Hash(password) != user.PasswordHash {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, u.tokens, user)
}

// Refreshはリフレッシュトークンを1回だけ引き換えて、新しいトークン一式を返す。
// 古いトークンは必ず新しいのを発行する前に失効させる。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshTokenValue string) (*AuthResult, error) {
	//未失効のものだけ検索。失効済みは「存在しない」と同じ扱い。
	rt, err := u.tokens.FindActiveByToken(ctx, refreshTokenValue)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, err
	}

	//期限切れ（exp <= now）
	if !time.Now().Before(rt.ExpiresAt) {
		return nil, ErrInvalidOrExpiredToken
	}

	//失効と新トークン保存は同じトランザクションで行う。
	//失効は条件付きUPDATEなので、同時に同じトークンが来ても勝つのは1人だけ。
	var result *AuthResult
	err = u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.RefreshTokens().Revoke(ctx, rt.ID); err != nil {
			return err
		}

		res, err := u.issueTokens(ctx, r.RefreshTokens(), &rt.User)
		if err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			//競合に負けた＝他の誰かがもう使った
			return nil, ErrInvalidOrExpiredToken
		}
		return nil, err
	}

	return result, nil
}

// Logoutは提示されたリフレッシュトークンを失効させる。
func (u *AuthUsecase) Logout(ctx context.Context, refreshTokenValue string) error {
	rt, err := u.tokens.FindActiveByToken(ctx, refreshTokenValue)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	if err := u.tokens.Revoke(ctx, rt.ID); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	return nil
}

// Meは検証済みアクセストークンのユーザー情報を返す。
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserDTO, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	return &UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}, nil
}

// issueTokensはアクセストークンと新しいリフレッシュトークンを発行する
// （Register/Login/Refresh共通）。storeはRefreshの場合だけtx付きになる。
func (u *AuthUsecase) issueTokens(ctx context.Context, store repository.RefreshTokenRepository, user *model.User) (*AuthResult, error) {
	accessToken, err := u.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.createRefreshToken(ctx, store, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// createRefreshTokenは新しいリフレッシュトークンを作ってDBに保存し、
// 生のトークン値を返す。
func (u *AuthUsecase) createRefreshToken(ctx context.Context, store repository.RefreshTokenRepository, user *model.User) (string, error) {
	value, err := u.issuer.NewRefreshTokenValue()
	if err != nil {
		return "", err
	}

	rt := &model.RefreshToken{
		ID:        uuid.NewString(),
		Token:     value,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
		Revoked:   false,
	}

	if err := store.Create(ctx, rt); err != nil {
		return "", err
	}

	return value, nil
}
