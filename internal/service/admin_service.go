package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"jobboard/internal/access"
	"jobboard/internal/domain"
)

const msgAdminOnly = "Admin privileges required"

// AdminService 管理端：只看角色，不看归属
type AdminService struct {
	jobs     domain.JobRepository
	apps     domain.ApplicationRepository
	profiles *Profiles
	log      *zap.Logger
	orphans  rate.Sometimes
}

func NewAdminService(jobs domain.JobRepository, apps domain.ApplicationRepository, profiles *Profiles, log *zap.Logger) *AdminService {
	return &AdminService{
		jobs:     jobs,
		apps:     apps,
		profiles: profiles,
		log:      log,
		orphans:  rate.Sometimes{Interval: time.Minute},
	}
}

func (s *AdminService) ListJobs(ctx context.Context, p *access.Principal) ([]domain.JobView, error) {
	if err := access.Require(p, domain.RoleAdmin, msgAdminOnly); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return jobViews(ctx, s.profiles, jobs)
}

// ListApplications 引用缺失时替换为占位值，不报错
func (s *AdminService) ListApplications(ctx context.Context, p *access.Principal) ([]domain.AdminApplication, error) {
	if err := access.Require(p, domain.RoleAdmin, msgAdminOnly); err != nil {
		return nil, err
	}
	apps, err := s.apps.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	jobIDs := make([]string, 0, len(apps))
	people := make([]string, 0, 2*len(apps))
	for i := range apps {
		jobIDs = append(jobIDs, apps[i].JobID)
		people = append(people, apps[i].ApplicantID, apps[i].RecruiterID)
	}
	jobs, err := s.jobs.FindByIDs(ctx, uniq(jobIDs))
	if err != nil {
		return nil, err
	}
	byID := jobIndex(jobs)
	profiles, err := s.profiles.Resolve(ctx, people)
	if err != nil {
		return nil, err
	}

	orphaned := 0
	out := make([]domain.AdminApplication, 0, len(apps))
	for _, a := range apps {
		row := domain.AdminApplication{
			Application: a,
			Job:         domain.PlaceholderJob,
			Applicant:   domain.PlaceholderApplicant,
			Recruiter:   domain.PlaceholderRecruiter,
		}
		missing := false
		if j, ok := byID[a.JobID]; ok {
			row.Job = domain.JobSummary{ID: j.ID, Title: j.Title, Company: j.Company}
		} else {
			missing = true
		}
		if v, ok := profiles[a.ApplicantID]; ok {
			row.Applicant = v
		} else {
			missing = true
		}
		if v, ok := profiles[a.RecruiterID]; ok {
			row.Recruiter = v
		} else {
			missing = true
		}
		if missing {
			orphaned++
		}
		out = append(out, row)
	}
	if orphaned > 0 {
		s.orphans.Do(func() {
			s.log.Warn("applications reference missing records", zap.Int("count", orphaned))
		})
	}
	return out, nil
}

func (s *AdminService) SetJobStatus(ctx context.Context, p *access.Principal, id string, status domain.JobStatus) (*domain.Job, error) {
	if err := access.Require(p, domain.RoleAdmin, msgAdminOnly); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Validation("Invalid status value")
	}
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.NotFound("Job not found")
	}
	return setJobStatus(ctx, s.jobs, j, status)
}

func (s *AdminService) DeleteJob(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, domain.RoleAdmin, msgAdminOnly); err != nil {
		return err
	}
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if j == nil {
		return domain.NotFound("Job not found")
	}
	n, err := s.jobs.DeleteCascade(ctx, j.ID)
	if err != nil {
		return err
	}
	s.log.Info("job deleted by admin", zap.String("id", j.ID), zap.String("by", p.AccountID), zap.Int64("applications", n))
	return nil
}
