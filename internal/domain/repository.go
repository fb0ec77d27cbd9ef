package domain

import "context"

// 查不到时返回 (nil, nil)，由 service 决定是否为 NotFound

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByIDs(ctx context.Context, ids []string) ([]Account, error)
	List(ctx context.Context) ([]Account, error)
}

type JobRepository interface {
	Create(ctx context.Context, j *Job) error
	FindByID(ctx context.Context, id string) (*Job, error)
	// FindOwned 按 id + 归属查询；不存在与无权限不做区分
	FindOwned(ctx context.Context, id, recruiterID string) (*Job, error)
	FindByIDs(ctx context.Context, ids []string) ([]Job, error)
	ListActive(ctx context.Context) ([]Job, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]Job, error)
	ListAll(ctx context.Context) ([]Job, error)
	Save(ctx context.Context, j *Job) error
	UpdateStatus(ctx context.Context, j *Job, status JobStatus) error
	// DeleteCascade 删除职位及其全部投递，返回被级联删除的投递数
	DeleteCascade(ctx context.Context, id string) (int64, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) error
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*Application, error)
	FindForRecruiter(ctx context.Context, id, recruiterID string) (*Application, error)
	FindPendingForApplicant(ctx context.Context, id, applicantID string) (*Application, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	UpdateStatus(ctx context.Context, a *Application, status ApplicationStatus) error
	Delete(ctx context.Context, id string) error
}
