package service

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"jobboard/internal/access"
	"jobboard/internal/domain"
	"jobboard/pkg/utils"
)

const msgAlreadyApplied = "You have already applied for this position"

type SubmitInput struct {
	JobID       string `json:"jobId"`
	CoverLetter string `json:"coverLetter"`
}

type ApplicationService struct {
	apps     domain.ApplicationRepository
	jobs     domain.JobRepository
	profiles *Profiles
	log      *zap.Logger
}

func NewApplicationService(apps domain.ApplicationRepository, jobs domain.JobRepository, profiles *Profiles, log *zap.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, profiles: profiles, log: log}
}

// Submit 职位状态不做检查；recruiter 取投递时职位的归属并固定下来
func (s *ApplicationService) Submit(ctx context.Context, p *access.Principal, in SubmitInput) (*domain.Application, error) {
	if err := access.Require(p, domain.RoleJobseeker, "Only job seekers can submit applications"); err != nil {
		return nil, err
	}
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return nil, domain.Validation("jobId is required")
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.NotFound("Job not found")
	}
	existing, err := s.apps.FindByJobAndApplicant(ctx, jobID, p.AccountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict(msgAlreadyApplied)
	}

	a := &domain.Application{
		ID:          utils.NewID(),
		JobID:       jobID,
		ApplicantID: p.AccountID,
		RecruiterID: job.RecruiterID,
		CoverLetter: in.CoverLetter,
		Status:      domain.ApplicationPending,
	}
	if err := s.apps.Create(ctx, a); err != nil {
		// 并发重复投递由唯一索引兜底
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict(msgAlreadyApplied)
		}
		return nil, err
	}
	s.log.Info("application submitted", zap.String("id", a.ID), zap.String("job", jobID))
	return a, nil
}

func (s *ApplicationService) ListReceived(ctx context.Context, p *access.Principal) ([]domain.ReceivedApplication, error) {
	if err := access.Require(p, domain.RoleRecruiter, "Only recruiters can view received applications"); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByRecruiter(ctx, p.AccountID)
	if err != nil {
		return nil, err
	}
	jobs, people, err := s.expand(ctx, apps, func(a *domain.Application) string { return a.ApplicantID })
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReceivedApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, domain.ReceivedApplication{
			Application: a,
			Job:         jobs[a.JobID],
			Applicant:   profilePtr(people, a.ApplicantID),
		})
	}
	return out, nil
}

func (s *ApplicationService) ListSent(ctx context.Context, p *access.Principal) ([]domain.SentApplication, error) {
	if err := access.Require(p, domain.RoleJobseeker, "Only job seekers can view sent applications"); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListByApplicant(ctx, p.AccountID)
	if err != nil {
		return nil, err
	}
	jobs, people, err := s.expand(ctx, apps, func(a *domain.Application) string { return a.RecruiterID })
	if err != nil {
		return nil, err
	}
	out := make([]domain.SentApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, domain.SentApplication{
			Application: a,
			Job:         jobs[a.JobID],
			Recruiter:   profilePtr(people, a.RecruiterID),
		})
	}
	return out, nil
}

// expand 批量取职位 + 指定一侧的账号资料
func (s *ApplicationService) expand(
	ctx context.Context,
	apps []domain.Application,
	person func(*domain.Application) string,
) (map[string]*domain.Job, map[string]domain.PublicProfile, error) {
	jobIDs := make([]string, 0, len(apps))
	personIDs := make([]string, 0, len(apps))
	for i := range apps {
		jobIDs = append(jobIDs, apps[i].JobID)
		personIDs = append(personIDs, person(&apps[i]))
	}
	jobs, err := s.jobs.FindByIDs(ctx, uniq(jobIDs))
	if err != nil {
		return nil, nil, err
	}
	people, err := s.profiles.Resolve(ctx, personIDs)
	if err != nil {
		return nil, nil, err
	}
	return jobIndex(jobs), people, nil
}

func (s *ApplicationService) SetStatus(ctx context.Context, p *access.Principal, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	if err := access.Require(p, domain.RoleRecruiter, "Only recruiters can update application status"); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Validation("Invalid status value")
	}
	a, err := s.apps.FindForRecruiter(ctx, id, p.AccountID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("Application not found or no permission to modify")
	}
	if err := s.apps.UpdateStatus(ctx, a, status); err != nil {
		return nil, err
	}
	return a, nil
}

// Withdraw 仅本人、仅 pending；任一条件不满足都是 NotFound
func (s *ApplicationService) Withdraw(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, domain.RoleJobseeker, "Only job seekers can withdraw applications"); err != nil {
		return err
	}
	a, err := s.apps.FindPendingForApplicant(ctx, id, p.AccountID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.NotFound("Application not found or cannot be deleted")
	}
	return s.apps.Delete(ctx, a.ID)
}
