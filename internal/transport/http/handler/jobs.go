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

type jobStatusIn struct {
	Status domain.JobStatus `json:"status"`
}

type JobHandler struct{ svc *service.JobService }

func NewJobHandler(svc *service.JobService) *JobHandler { return &JobHandler{svc: svc} }

func (h *JobHandler) Priority() int { return 20 }

func (h *JobHandler) Mount(e ez.EZ) {
	g := e.Group("/jobs")

	// 会话可选：招聘方看自己的，其余只看 active
	ez.RegisterAction(g, ez.Action[ez.Empty, []domain.JobView]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) ([]domain.JobView, error) {
			return h.svc.List(c.Request.Context(), p)
		},
	})

	ez.RegisterAction(g, ez.Action[service.JobInput, *domain.Job]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, p *access.Principal, in *service.JobInput) (*domain.Job, error) {
			return h.svc.Create(c.Request.Context(), p, *in)
		},
	})

	ez.RegisterAction(g, ez.Action[service.JobInput, *domain.Job]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, in *service.JobInput) (*domain.Job, error) {
			return h.svc.Update(c.Request.Context(), p, c.Param("id"), *in)
		},
	})

	ez.RegisterAction(g, ez.Action[jobStatusIn, *domain.Job]{
		Method: http.MethodPatch,
		Path:   "/:id/status",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, in *jobStatusIn) (*domain.Job, error) {
			return h.svc.SetStatus(c.Request.Context(), p, c.Param("id"), in.Status)
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) (resp.Message, error) {
			if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
				return resp.Message{}, err
			}
			return resp.Msg("Successfully deleted"), nil
		},
	})
}
