package domain

import "time"

type Salary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Job struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Company      string    `gorm:"size:255;not null" json:"company"`
	Location     string    `gorm:"size:255;not null" json:"location"`
	Salary       Salary    `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Requirements []string  `gorm:"type:text;serializer:json" json:"requirements"`
	Status       JobStatus `gorm:"size:16;not null;index" json:"status"`
	RecruiterID  string    `gorm:"size:36;not null;index" json:"recruiterId"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Job) TableName() string { return "jobs" }

// JobView 职位 + 发布者公开信息（招聘者记录缺失时为 nil）
type JobView struct {
	Job
	Recruiter *PublicProfile `json:"recruiter"`
}

// JobSummary 管理端投递列表里使用的职位摘要
type JobSummary struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Company string `json:"company"`
}
