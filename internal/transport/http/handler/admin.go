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

// AdminHandler /admin/*：只校验 admin 角色
type AdminHandler struct{ svc *service.AdminService }

func NewAdminHandler(svc *service.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

func (h *AdminHandler) Priority() int { return 90 }

func (h *AdminHandler) Mount(e ez.EZ) {
	g := e.Group("/admin")

	ez.RegisterAction(g, ez.Action[ez.Empty, []domain.JobView]{
		Method: http.MethodGet,
		Path:   "/jobs",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) ([]domain.JobView, error) {
			return h.svc.ListJobs(c.Request.Context(), p)
		},
	})

	ez.RegisterAction(g, ez.Action[jobStatusIn, *domain.Job]{
		Method: http.MethodPatch,
		Path:   "/jobs/:id/status",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, in *jobStatusIn) (*domain.Job, error) {
			return h.svc.SetJobStatus(c.Request.Context(), p, c.Param("id"), in.Status)
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, resp.Message]{
		Method: http.MethodDelete,
		Path:   "/jobs/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) (resp.Message, error) {
			if err := h.svc.DeleteJob(c.Request.Context(), p, c.Param("id")); err != nil {
				return resp.Message{}, err
			}
			return resp.Msg("Successfully deleted"), nil
		},
	})

	ez.RegisterAction(g, ez.Action[ez.Empty, []domain.AdminApplication]{
		Method: http.MethodGet,
		Path:   "/applications",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, p *access.Principal, _ *ez.Empty) ([]domain.AdminApplication, error) {
			return h.svc.ListApplications(c.Request.Context(), p)
		},
	})
}
