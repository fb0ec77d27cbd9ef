package repo

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"jobboard/internal/domain"
)

type JobRepo struct{ db *gorm.DB }

func NewJobRepo(db *gorm.DB) *JobRepo { return &JobRepo{db: db} }

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	return wrapWrite(r.db.WithContext(ctx).Create(j).Error, "create job")
}

func (r *JobRepo) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	return first[domain.Job](r.db.WithContext(ctx), "find job", "id = ?", id)
}

func (r *JobRepo) FindOwned(ctx context.Context, id, recruiterID string) (*domain.Job, error) {
	return first[domain.Job](r.db.WithContext(ctx), "find owned job", "id = ? AND recruiter_id = ?", id, recruiterID)
}

func (r *JobRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.Job
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "find jobs")
	}
	return out, nil
}

func (r *JobRepo) list(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]domain.Job, error) {
	var out []domain.Job
	q := r.db.WithContext(ctx).Model(&domain.Job{})
	if scope != nil {
		q = scope(q)
	}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, op)
	}
	return out, nil
}

func (r *JobRepo) ListActive(ctx context.Context) ([]domain.Job, error) {
	return r.list(ctx, "list active jobs", func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", domain.JobActive)
	})
}

func (r *JobRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Job, error) {
	return r.list(ctx, "list recruiter jobs", func(q *gorm.DB) *gorm.DB {
		return q.Where("recruiter_id = ?", recruiterID)
	})
}

func (r *JobRepo) ListAll(ctx context.Context) ([]domain.Job, error) {
	return r.list(ctx, "list jobs", nil)
}

// Save 全字段覆盖（含零值），id/recruiter/created_at 不可改
func (r *JobRepo) Save(ctx context.Context, j *domain.Job) error {
	err := r.db.WithContext(ctx).Model(j).
		Select("*").Omit("id", "recruiter_id", "created_at").
		Updates(j).Error
	return wrapWrite(err, "save job")
}

func (r *JobRepo) UpdateStatus(ctx context.Context, j *domain.Job, status domain.JobStatus) error {
	if err := r.db.WithContext(ctx).Model(j).Update("status", status).Error; err != nil {
		return errors.Wrap(err, "update job status")
	}
	j.Status = status
	return nil
}

// DeleteCascade 同一事务内删除职位与其全部投递
func (r *JobRepo) DeleteCascade(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&domain.Job{}).Error; err != nil {
			return err
		}
		res := tx.Where("job_id = ?", id).Delete(&domain.Application{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, errors.Wrap(err, "delete job cascade")
	}
	return removed, nil
}
