package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/access"
	"jobboard/internal/domain"
	"jobboard/internal/service"
	"jobboard/internal/transport/http/ez"
	resp "jobboard/internal/transport/http/response"
)

type applicationStatusIn struct {
	Status domain.ApplicationStatus `json:"status"`
}

type ApplicationHandler struct{ svc *service.ApplicationService }

func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Priority() int { return 30 }

func (h *ApplicationHandler) Mount(e ez.EZ) {
	g := e.Group("/applications")

	ez.RegisterAction(g, ez.Action[service.SubmitInput, *domain.Application]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, p *access.Principal, in *service.SubmitInput) (*domain.Application, error) {
			return h.svc.Submit(c.Request.Context(), p, *in)
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, []domain.ReceivedApplication]{
		Method: http.MethodGet,
		Path:   "/received",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) ([]domain.ReceivedApplication, error) {
			return h.svc.ListReceived(c.Request.Context(), p)
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, []domain.SentApplication]{
		Method: http.MethodGet,
		Path:   "/sent",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) ([]domain.SentApplication, error) {
			return h.svc.ListSent(c.Request.Context(), p)
		},
	})

	ez.RegisterAction(g, ez.Action[applicationStatusIn, *domain.Application]{
		Method: http.MethodPatch,
		Path:   "/:id/status",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, in *applicationStatusIn) (*domain.Application, error) {
			return h.svc.SetStatus(c.Request.Context(), p, c.Param("id"), in.Status)
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) (resp.Message, error) {
			if err := h.svc.Withdraw(c.Request.Context(), p, c.Param("id")); err != nil {
				return resp.Message{}, err
			}
			return resp.Msg("Application withdrawn successfully"), nil
		},
	})
}
