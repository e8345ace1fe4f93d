package main

import (
	"context"
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/repository"
	"app/internal/security"
	"app/internal/server"
	"app/internal/token"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

// 期限切れリフレッシュトークンの掃除間隔
const cleanupInterval = time.Hour

func main() {
	//.envがあれば読む（なければ環境変数をそのまま使う）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	hasher := security.NewSha256PasswordHasher()
	issuer := token.NewJWTIssuer(
		cfg.JWTSecret,
		cfg.JWTIssuer,
		cfg.JWTAudience,
		time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute,
	)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, rtRepo, txm, hasher, issuer)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)

	//期限切れトークンの定期掃除（coreの外の家事）
	go cleanupExpiredTokens(rtRepo)

	//Server起動
	e := server.New(cfg, authH)
	if err := e.Start(":" + cfg.Port); err != nil {
		panic(err)
	}
}

// 期限切れのリフレッシュトークン行を定期的に消す。
func cleanupExpiredTokens(rtRepo repository.RefreshTokenRepository) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		n, err := rtRepo.DeleteExpired(context.Background(), time.Now())
		if err != nil {
			log.Printf("refresh token cleanup failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("refresh token cleanup: deleted %d rows", n)
		}
	}
}
