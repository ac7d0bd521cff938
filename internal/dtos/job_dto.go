package dtos

// StructuredJob is the shape the model must return when classifying a raw
// posting: classification fields plus the editorial rewrite. Field names match
// the JSON keys in the extraction prompt.
type StructuredJob struct {
	EmploymentType string `json:"employment_type"`
	IsFractional   bool   `json:"is_fractional"`
	DaysPerWeek    string `json:"days_per_week"`

	Country  string `json:"country"`
	City     string `json:"city"`
	IsRemote bool   `json:"is_remote"`

	Vertical       string `json:"vertical"`
	SeniorityLevel string `json:"seniority_level"`
	RoleCategory   string `json:"role_category"`

	SalaryMin      *int   `json:"salary_min"`
	SalaryMax      *int   `json:"salary_max"`
	SalaryCurrency string `json:"salary_currency"`
	SalaryType     string `json:"salary_type"`

	Summary string `json:"summary"`
	// OpportunityDescription carries 0-4 markdown links into the dedicated
	// page set; the links engine rejects it if any page repeats.
	OpportunityDescription string   `json:"opportunity_description"`
	Responsibilities       []string `json:"responsibilities"`
	Requirements           []string `json:"requirements"`
	Benefits               []string `json:"benefits"`
	SkillsRequired         []string `json:"skills_required"`
	AboutCompany           string   `json:"about_company"`
}
