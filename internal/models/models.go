package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account row. AuthID is the external identity-provider id the API
// receives; everything else keys on the internal ID.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	AuthID string `gorm:"uniqueIndex;not null" json:"auth_id"`
	Email  string `json:"email"`
}

// RepoPreference is one persisted preference row. The composite unique index
// is the natural key the reconciler's upsert targets.
type RepoPreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID          uint   `gorm:"uniqueIndex:idx_user_pref;not null" json:"user_id"`
	PreferenceType  string `gorm:"uniqueIndex:idx_user_pref;size:50;not null" json:"preference_type"`
	PreferenceValue string `gorm:"uniqueIndex:idx_user_pref;not null" json:"preference_value"`
	ValidationType  string `gorm:"size:20;default:'soft'" json:"validation_type"`
	RawText         string `gorm:"type:text" json:"raw_text"`
}

// TableName keeps the table name the frontend queries directly.
func (RepoPreference) TableName() string { return "user_repo_preferences" }

// Job is a structured job listing. The classifier overwrites the
// classification and editorial columns; list fields are stored as JSON.
type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	SourceURL   string `gorm:"uniqueIndex" json:"source_url"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// Classification
	EmploymentType string `gorm:"size:50" json:"employment_type"`
	IsFractional   bool   `json:"is_fractional"`
	DaysPerWeek    string `gorm:"size:50" json:"days_per_week"`
	Country        string `json:"country"`
	City           string `json:"city"`
	IsRemote       bool   `json:"is_remote"`
	Vertical       string `json:"vertical"`
	SeniorityLevel string `gorm:"size:50" json:"seniority_level"`
	RoleCategory   string `gorm:"size:50" json:"role_category"`

	// Compensation
	SalaryMin      *int   `json:"salary_min"`
	SalaryMax      *int   `json:"salary_max"`
	SalaryCurrency string `gorm:"size:10" json:"salary_currency"`
	SalaryType     string `gorm:"size:20" json:"salary_type"`

	// Editorial content
	Summary          string   `gorm:"type:text" json:"summary"`
	FullDescription  string   `gorm:"type:text" json:"full_description"`
	Responsibilities []string `gorm:"serializer:json" json:"responsibilities"`
	Requirements     []string `gorm:"serializer:json" json:"requirements"`
	Benefits         []string `gorm:"serializer:json" json:"benefits"`
	SkillsRequired   []string `gorm:"serializer:json" json:"skills_required"`
	AboutCompany     string   `gorm:"type:text" json:"about_company"`
}

// RawJob processing statuses.
const (
	RawJobPending   = "pending"
	RawJobProcessed = "processed"
	RawJobError     = "error"
)

// RawJob is a staging row holding a scraped posting exactly as received. The
// classifier reads pending rows and marks them processed or error; the raw
// payload is never mutated.
type RawJob struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReceivedAt time.Time `gorm:"autoCreateTime" json:"received_at"`

	Source           string     `gorm:"size:50;index" json:"source"`
	SourceID         string     `gorm:"size:255" json:"source_id"`
	RawData          string     `gorm:"type:jsonb" json:"raw_data"`
	JobID            *uint      `json:"job_id"`
	ProcessingStatus string     `gorm:"size:20;default:'pending';index" json:"processing_status"`
	ProcessingError  string     `gorm:"type:text" json:"processing_error"`
	ProcessedAt      *time.Time `json:"processed_at"`
}
