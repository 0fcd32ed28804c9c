// Package auth provides the account endpoints and the middleware that
// authenticates requests from the bearer header or the session cookie.
package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/requestid"
	"news-portal/internal/handler/http/respond"
	authservice "news-portal/internal/service/auth"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name string
	TTL  time.Duration
	// Secure is set in production.
	Secure bool
}

// UserDTO is the public view of an account.
type UserDTO struct {
	ID        string    `json:"id" example:"665f1c2e9b1d4a0012345678"`
	Name      string    `json:"name" example:"Jane Doe"`
	Email     string    `json:"email" example:"jane@example.com"`
	Role      string    `json:"role" example:"admin"`
	CreatedAt time.Time `json:"createdAt,omitzero" example:"2025-10-26T12:00:00Z"`
}

func toUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type sessionResponse struct {
	Success bool    `json:"success" example:"true"`
	User    UserDTO `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name" example:"Jane Doe"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"your_password"`
	Role     string `json:"role,omitempty" example:"user"`
}

type loginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"your_password"`
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", entity.ErrInvalidInput)
	}
	return nil
}

// setSession writes the cookie and the session body.
func setSession(w http.ResponseWriter, cookie CookieConfig, sess *authservice.Session, code int) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    sess.Token,
		Path:     "/",
		Expires:  time.Now().Add(cookie.TTL),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	respond.JSON(w, code, sessionResponse{Success: true, User: toUserDTO(sess.User)})
}

type RegisterHandler struct {
	Svc    *authservice.Service
	Cookie CookieConfig
}

// ServeHTTP アカウント登録
// @Summary      アカウント登録
// @Description  アカウントを作成し、セッション Cookie を発行します。本番環境では role は常に user になります
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "登録情報"
// @Success      200 {object} sessionResponse
// @Failure      400 {object} respond.ErrorBody "入力エラー / メールアドレス重複"
// @Router       /auth/register [post]
func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { RecordAuthDuration("register", time.Since(start).Seconds()) }()

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.FromError(w, err)
		return
	}
	sess, err := h.Svc.Register(r.Context(), authservice.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	setSession(w, h.Cookie, sess, http.StatusOK)
}

type LoginHandler struct {
	Svc    *authservice.Service
	Cookie CookieConfig
}

// ServeHTTP ログイン
// @Summary      ログイン
// @Description  メールアドレスとパスワードで認証し、セッション Cookie を発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "ログイン情報"
// @Success      200 {object} sessionResponse
// @Failure      400 {object} respond.ErrorBody "リクエストが不正"
// @Failure      401 {object} respond.ErrorBody "認証失敗"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Router       /auth/login [post]
func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { RecordAuthDuration("login", time.Since(start).Seconds()) }()

	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.FromError(w, err)
		return
	}
	sess, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("authentication failed", slog.String("error", respond.SanitizeError(err)))
		respond.FromError(w, err)
		return
	}
	logger.Info("authentication successful",
		slog.String("user_id", sess.User.ID.String()),
		slog.String("role", string(sess.User.Role)))
	setSession(w, h.Cookie, sess, http.StatusOK)
}

type MeHandler struct{ Svc *authservice.Service }

// ServeHTTP ログイン中のユーザー
// @Summary      ログイン中のユーザー
// @Tags         auth
// @Security     CookieAuth
// @Produce      json
// @Success      200 {object} respond.Envelope{data=UserDTO}
// @Failure      401 {object} respond.ErrorBody
// @Router       /auth/me [get]
func (h MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	user, err := h.Svc.Me(r.Context(), p)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, toUserDTO(user))
}

type LogoutHandler struct{ Cookie CookieConfig }

// ServeHTTP ログアウト
// @Summary      ログアウト
// @Description  セッション Cookie を 10 秒で失効する値で上書きします
// @Tags         auth
// @Produce      json
// @Success      200 {object} respond.Envelope
// @Router       /auth/logout [get]
func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	respond.Message(w, http.StatusOK, "logged out successfully", nil)
}

// Register registers the account endpoints under /api/auth.
// limit wraps register and login; pass nil to disable rate limiting.
func Register(mux *http.ServeMux, svc *authservice.Service, authn Authenticator, cookie CookieConfig, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(h http.Handler) http.Handler { return h }
	}
	mux.Handle("POST /api/auth/register", limit(RegisterHandler{Svc: svc, Cookie: cookie}))
	mux.Handle("POST /api/auth/login", limit(LoginHandler{Svc: svc, Cookie: cookie}))
	mux.Handle("GET /api/auth/me", Protect(authn, cookie.Name)(MeHandler{Svc: svc}))
	mux.Handle("GET /api/auth/logout", LogoutHandler{Cookie: cookie})
}
