package service

import (
	"context"
	"time"

	"jobboard/internal/core/cache"
	"jobboard/internal/domain"
)

// Profiles 把账号 id 展开成公开资料（populate）。配置了 redis 时逐个走缓存，否则批量回源
type Profiles struct {
	accounts domain.AccountRepository
	cache    *cache.Cache
	ttl      time.Duration
}

func NewProfiles(accounts domain.AccountRepository, c *cache.Cache, ttl time.Duration) *Profiles {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Profiles{accounts: accounts, cache: c, ttl: ttl}
}

func profileOf(a *domain.Account) domain.PublicProfile {
	return domain.PublicProfile{ID: a.ID, Username: a.Username, Email: a.Email}
}

// Resolve 缺失的 id 不出现在结果里
func (p *Profiles) Resolve(ctx context.Context, ids []string) (map[string]domain.PublicProfile, error) {
	ids = uniq(ids)
	out := make(map[string]domain.PublicProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if p.cache == nil {
		list, err := p.accounts.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range list {
			out[list[i].ID] = profileOf(&list[i])
		}
		return out, nil
	}
	for _, id := range ids {
		prof, err := cache.GetOrLoadJSON(p.cache, ctx, "profile:"+id, p.ttl,
			func(ctx context.Context) (*domain.PublicProfile, error) {
				a, err := p.accounts.FindByID(ctx, id)
				if err != nil || a == nil {
					return nil, err
				}
				v := profileOf(a)
				return &v, nil
			})
		if err != nil {
			return nil, err
		}
		if prof != nil {
			out[id] = *prof
		}
	}
	return out, nil
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// profilePtr 查不到时返回 nil（JSON 输出 null）
func profilePtr(m map[string]domain.PublicProfile, id string) *domain.PublicProfile {
	if v, ok := m[id]; ok {
		return &v
	}
	return nil
}

func jobIndex(jobs []domain.Job) map[string]*domain.Job {
	out := make(map[string]*domain.Job, len(jobs))
	for i := range jobs {
		out[jobs[i].ID] = &jobs[i]
	}
	return out
}

// jobViews 职位列表附带发布者资料
func jobViews(ctx context.Context, profiles *Profiles, jobs []domain.Job) ([]domain.JobView, error) {
	ids := make([]string, 0, len(jobs))
	for i := range jobs {
		ids = append(ids, jobs[i].RecruiterID)
	}
	m, err := profiles.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.JobView, 0, len(jobs))
	for i := range jobs {
		out = append(out, domain.JobView{Job: jobs[i], Recruiter: profilePtr(m, jobs[i].RecruiterID)})
	}
	return out, nil
}
