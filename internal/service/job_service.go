package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"jobboard/internal/access"
	"jobboard/internal/domain"
	"jobboard/pkg/utils"
)

const msgRecruiterOnly = "Only recruiters can perform this operation"

type SalaryInput struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// JobInput 指针字段区分“未提供”与零值
type JobInput struct {
	Title        *string          `json:"title"`
	Company      *string          `json:"company"`
	Location     *string          `json:"location"`
	Salary       *SalaryInput     `json:"salary"`
	Description  *string          `json:"description"`
	Requirements []string         `json:"requirements"`
	Status       domain.JobStatus `json:"status"`
}

// apply 把提供了的字段覆盖到 j 上
func (in *JobInput) apply(j *domain.Job) {
	if in.Title != nil {
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.Company != nil {
		j.Company = strings.TrimSpace(*in.Company)
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.Salary != nil {
		if in.Salary.Min != nil {
			j.Salary.Min = *in.Salary.Min
		}
		if in.Salary.Max != nil {
			j.Salary.Max = *in.Salary.Max
		}
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.Requirements != nil {
		j.Requirements = in.Requirements
	}
	if in.Status != "" {
		j.Status = in.Status
	}
}

func requireJobFields(j *domain.Job) error {
	var missing []string
	if j.Title == "" {
		missing = append(missing, "title")
	}
	if j.Company == "" {
		missing = append(missing, "company")
	}
	if j.Location == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(j.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return domain.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

type JobService struct {
	jobs     domain.JobRepository
	profiles *Profiles
	log      *zap.Logger
}

func NewJobService(jobs domain.JobRepository, profiles *Profiles, log *zap.Logger) *JobService {
	return &JobService{jobs: jobs, profiles: profiles, log: log}
}

// List 招聘方只看自己的职位，其余（含匿名）只看 active
func (s *JobService) List(ctx context.Context, p *access.Principal) ([]domain.JobView, error) {
	var (
		jobs []domain.Job
		err  error
	)
	if access.HasRole(p, domain.RoleRecruiter) {
		jobs, err = s.jobs.ListByRecruiter(ctx, p.AccountID)
	} else {
		jobs, err = s.jobs.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}
	return jobViews(ctx, s.profiles, jobs)
}

func (s *JobService) Create(ctx context.Context, p *access.Principal, in JobInput) (*domain.Job, error) {
	if err := access.Require(p, domain.RoleRecruiter, msgRecruiterOnly); err != nil {
		return nil, err
	}
	if in.Salary == nil || in.Salary.Min == nil || in.Salary.Max == nil {
		return nil, domain.Validation("Missing required fields: salary.min, salary.max")
	}
	j := &domain.Job{
		ID:           utils.NewID(),
		Status:       domain.JobActive,
		Requirements: []string{},
		RecruiterID:  p.AccountID,
	}
	in.apply(j)
	if err := requireJobFields(j); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	s.log.Info("job created", zap.String("id", j.ID), zap.String("recruiter", j.RecruiterID))
	return j, nil
}

// owned 不存在与无权限统一为 NotFound
func (s *JobService) owned(ctx context.Context, p *access.Principal, id, notFoundMsg string) (*domain.Job, error) {
	if err := access.Require(p, domain.RoleRecruiter, msgRecruiterOnly); err != nil {
		return nil, err
	}
	j, err := s.jobs.FindOwned(ctx, id, p.AccountID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.NotFound(notFoundMsg)
	}
	return j, nil
}

func (s *JobService) Update(ctx context.Context, p *access.Principal, id string, in JobInput) (*domain.Job, error) {
	j, err := s.owned(ctx, p, id, "Job not found or no permission to modify")
	if err != nil {
		return nil, err
	}
	in.apply(j)
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	if err := requireJobFields(j); err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) SetStatus(ctx context.Context, p *access.Principal, id string, status domain.JobStatus) (*domain.Job, error) {
	if err := access.Require(p, domain.RoleRecruiter, msgRecruiterOnly); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Validation("Invalid status value")
	}
	j, err := s.owned(ctx, p, id, "Job not found or no permission to modify")
	if err != nil {
		return nil, err
	}
	return setJobStatus(ctx, s.jobs, j, status)
}

// Delete 级联删除该职位下的全部投递
func (s *JobService) Delete(ctx context.Context, p *access.Principal, id string) error {
	j, err := s.owned(ctx, p, id, "Job not found or no permission to delete")
	if err != nil {
		return err
	}
	n, err := s.jobs.DeleteCascade(ctx, j.ID)
	if err != nil {
		return err
	}
	s.log.Info("job deleted", zap.String("id", j.ID), zap.Int64("applications", n))
	return nil
}

// setJobStatus 状态未变时不写库
func setJobStatus(ctx context.Context, jobs domain.JobRepository, j *domain.Job, status domain.JobStatus) (*domain.Job, error) {
	if j.Status == status {
		return j, nil
	}
	if err := jobs.UpdateStatus(ctx, j, status); err != nil {
		return nil, err
	}
	return j, nil
}
