package repo

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"jobboard/internal/domain"
)

type ApplicationRepo struct{ db *gorm.DB }

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	return wrapWrite(r.db.WithContext(ctx).Create(a).Error, "create application")
}

func (r *ApplicationRepo) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	return first[domain.Application](r.db.WithContext(ctx), "find application",
		"job_id = ? AND applicant_id = ?", jobID, applicantID)
}

func (r *ApplicationRepo) FindForRecruiter(ctx context.Context, id, recruiterID string) (*domain.Application, error) {
	return first[domain.Application](r.db.WithContext(ctx), "find received application",
		"id = ? AND recruiter_id = ?", id, recruiterID)
}

// FindPendingForApplicant 只有本人且仍为 pending 才能查到
func (r *ApplicationRepo) FindPendingForApplicant(ctx context.Context, id, applicantID string) (*domain.Application, error) {
	return first[domain.Application](r.db.WithContext(ctx), "find withdrawable application",
		"id = ? AND applicant_id = ? AND status = ?", id, applicantID, domain.ApplicationPending)
}

func (r *ApplicationRepo) list(ctx context.Context, op string, query string, args ...any) ([]domain.Application, error) {
	var out []domain.Application
	q := r.db.WithContext(ctx).Model(&domain.Application{})
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, op)
	}
	return out, nil
}

func (r *ApplicationRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Application, error) {
	return r.list(ctx, "list received applications", "recruiter_id = ?", recruiterID)
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	return r.list(ctx, "list sent applications", "applicant_id = ?", applicantID)
}

func (r *ApplicationRepo) ListAll(ctx context.Context) ([]domain.Application, error) {
	return r.list(ctx, "list applications", "")
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, a *domain.Application, status domain.ApplicationStatus) error {
	if err := r.db.WithContext(ctx).Model(a).Update("status", status).Error; err != nil {
		return errors.Wrap(err, "update application status")
	}
	a.Status = status
	return nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	return errors.Wrap(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Application{}).Error, "delete application")
}
