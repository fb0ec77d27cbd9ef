package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobboard/internal/access"
	"jobboard/internal/domain"
	"jobboard/internal/service"
	"jobboard/internal/transport/http/ez"
	resp "jobboard/internal/transport/http/response"
)

// CookieOpts 会话 cookie 属性，始终 HttpOnly
type CookieOpts struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// ParseSameSite lax | strict | none，其余按 lax
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

type UserHandler struct {
	svc    *service.AccountService
	cookie CookieOpts
}

func NewUserHandler(svc *service.AccountService, cookie CookieOpts) *UserHandler {
	return &UserHandler{svc: svc, cookie: cookie}
}

func (h *UserHandler) Priority() int { return 10 }

func (h *UserHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *UserHandler) Mount(e ez.EZ) {
	g := e.Group("/users")

	ez.RegisterAction(g, ez.Action[service.RegisterInput, resp.Message]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *access.Principal, in *service.RegisterInput) (resp.Message, error) {
			prof, err := h.svc.Register(c.Request.Context(), *in)
			if err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: "Registration successful", User: prof}, nil
		},
	})

	ez.RegisterAction(g, ez.Action[service.LoginInput, resp.Message]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, _ *access.Principal, in *service.LoginInput) (resp.Message, error) {
			res, err := h.svc.Authenticate(c.Request.Context(), *in)
			if err != nil {
				return resp.Message{}, err
			}
			h.setCookie(c, res.Token, int(time.Until(res.ExpiresAt).Seconds()))
			return resp.Message{Message: "Login successful", User: &res.User}, nil
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, resp.Message]{
		Method: http.MethodGet,
		Path:   "/logout",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) (resp.Message, error) {
			if err := h.svc.Logout(c.Request.Context(), p); err != nil {
				return resp.Message{}, err
			}
			h.setCookie(c, "", -1)
			return resp.Msg("Logout successful"), nil
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, *domain.PublicProfile]{
		Method: http.MethodGet,
		Path:   "/current",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) (*domain.PublicProfile, error) {
			return h.svc.Current(c.Request.Context(), p)
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, *domain.PublicProfile]{
		Method: http.MethodGet,
		Path:   "/profile",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) (*domain.PublicProfile, error) {
			return h.svc.Profile(c.Request.Context(), p)
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, []domain.PublicProfile]{
		Method: http.MethodGet,
		Path:   "/list",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) ([]domain.PublicProfile, error) {
			return h.svc.ListAccounts(c.Request.Context(), p)
		},
	})
}
