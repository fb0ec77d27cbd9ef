package domain

// Role 账号角色，创建后不可变
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleJobseeker Role = "jobseeker"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleRecruiter, RoleJobseeker, RoleAdmin:
		return true
	}
	return false
}

// UnmarshalText 在反序列化边界拒绝未知角色；空串保留为零值（“未提供”）
func (r *Role) UnmarshalText(b []byte) error {
	v := Role(b)
	if v != "" && !v.Valid() {
		return Validation("Invalid role type")
	}
	*r = v
	return nil
}

// JobStatus 职位状态
type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool { return s == JobActive || s == JobClosed }

func (s *JobStatus) UnmarshalText(b []byte) error {
	v := JobStatus(b)
	if v != "" && !v.Valid() {
		return Validation("Invalid status value")
	}
	*s = v
	return nil
}

// ApplicationStatus 投递状态
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

func (s *ApplicationStatus) UnmarshalText(b []byte) error {
	v := ApplicationStatus(b)
	if v != "" && !v.Valid() {
		return Validation("Invalid status value")
	}
	*s = v
	return nil
}
