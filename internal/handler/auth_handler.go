package handler

import (
	"errors"
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// /api/auth の認証API
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// 認証ルートを登録。/meだけJWT必須。
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me, authMW)
}

// /api/auth/register と /api/auth/login のリクエストボディ。
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /api/auth/refresh と /api/auth/logout のリクエストボディ。
type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterはPOST /api/auth/registerのハンドラ
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	result, err := h.uc.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// LoginはPOST /api/auth/loginのハンドラ
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	result, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// RefreshはPOST /api/auth/refreshのハンドラ
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	result, err := h.uc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// LogoutはPOST /api/auth/logoutのハンドラ。
// 提示されたリフレッシュトークンを失効させる。
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	if err := h.uc.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logout success"})
}

// MeはGET /api/auth/meのハンドラ。JWTミドルウェア通過後に呼ばれる。
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	user, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// usecaseのエラーをHTTPステータスと固定メッセージに変換する。
// 想定外のエラーは詳細を出さずに500。
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyInUse):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email already in use."})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials."})
	case errors.Is(err, usecase.ErrInvalidOrExpiredToken):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired refresh token."})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
