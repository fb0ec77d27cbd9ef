package domain

import "time"

// Application 投递记录；RecruiterID 是投递时职位归属的快照，之后不再重算
type Application struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	JobID       string            `gorm:"size:36;not null;uniqueIndex:idx_applications_job_applicant" json:"jobId"`
	ApplicantID string            `gorm:"size:36;not null;uniqueIndex:idx_applications_job_applicant;index" json:"applicantId"`
	RecruiterID string            `gorm:"size:36;not null;index" json:"recruiterId"`
	CoverLetter string            `gorm:"type:text" json:"coverLetter"`
	Status      ApplicationStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt   time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (Application) TableName() string { return "applications" }

// ReceivedApplication 招聘方视角：附带职位与投递人
type ReceivedApplication struct {
	Application
	Job       *Job           `json:"job"`
	Applicant *PublicProfile `json:"applicant"`
}

// SentApplication 求职者视角：附带职位与招聘方
type SentApplication struct {
	Application
	Job       *Job           `json:"job"`
	Recruiter *PublicProfile `json:"recruiter"`
}

// AdminApplication 管理端视角：引用缺失时用占位值替换
type AdminApplication struct {
	Application
	Job       JobSummary    `json:"job"`
	Applicant PublicProfile `json:"applicant"`
	Recruiter PublicProfile `json:"recruiter"`
}

var (
	PlaceholderJob       = JobSummary{Title: "Job Deleted", Company: "Company Unavailable"}
	PlaceholderApplicant = PublicProfile{Username: "Unknown User", Email: "Email Unavailable"}
	PlaceholderRecruiter = PublicProfile{Username: "Unknown Recruiter", Email: "Email Unavailable"}
)
