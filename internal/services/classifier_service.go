package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/fractionalquest/repo-agent/internal/dtos"
	"github.com/fractionalquest/repo-agent/internal/links"
	"github.com/fractionalquest/repo-agent/internal/models"
)

// JobClassifier is the external capability that turns a raw posting into a
// StructuredJob.
type JobClassifier interface {
	ClassifyJob(ctx context.Context, jobContext string) (*dtos.StructuredJob, error)
}

// ClassifierService runs the batch ETL over raw_jobs: classify with the model,
// gate on link uniqueness, persist, mark processed, mirror to the graph.
// Records are independent; partial failure is expected and tracked per row.
type ClassifierService struct {
	DB         *gorm.DB
	Classifier JobClassifier
	Graph      *GraphService
}

// NewClassifierService creates the batch service.
func NewClassifierService(db *gorm.DB, classifier JobClassifier, graph *GraphService) *ClassifierService {
	return &ClassifierService{DB: db, Classifier: classifier, Graph: graph}
}

// ProcessOptions selects what one batch run covers.
type ProcessOptions struct {
	Limit  int
	Source string        // optional source filter, e.g. "linkedin"
	Delay  time.Duration // fixed pause between records for provider rate limits
}

// Tally summarizes one batch run.
type Tally struct {
	Processed int
	Errors    int
}

// ProcessPending classifies pending raw jobs one at a time, newest first.
// A record's failure marks its row 'error' and the loop continues.
func (s *ClassifierService) ProcessPending(ctx context.Context, opts ProcessOptions) (Tally, error) {
	var tally Tally

	query := s.DB.WithContext(ctx).
		Where("processing_status = ?", models.RawJobPending).
		Order("received_at DESC").
		Limit(opts.Limit)
	if opts.Source != "" {
		query = query.Where("source = ?", opts.Source)
	}

	var pending []models.RawJob
	if err := query.Find(&pending).Error; err != nil {
		return tally, fmt.Errorf("fetch pending raw jobs: %w", err)
	}

	log.Printf("[classify] Found %d pending job(s)", len(pending))

	for i, raw := range pending {
		log.Printf("[classify] [%d/%d] raw job %d (source %s)", i+1, len(pending), raw.ID, raw.Source)

		if err := s.processOne(ctx, raw); err != nil {
			log.Printf("[classify]     Error: %v", err)
			s.markRawJob(ctx, raw.ID, models.RawJobError, err.Error())
			tally.Errors++
		} else {
			tally.Processed++
		}

		if opts.Delay > 0 && i < len(pending)-1 {
			select {
			case <-time.After(opts.Delay):
			case <-ctx.Done():
				return tally, ctx.Err()
			}
		}
	}

	return tally, nil
}

func (s *ClassifierService) processOne(ctx context.Context, raw models.RawJob) error {
	jobContext, title := buildJobContext(raw)

	// The extraction call is retried with backoff; everything after it is
	// local and deterministic.
	var structured *dtos.StructuredJob
	err := retry(3, time.Second, func() error {
		var e error
		structured, e = s.Classifier.ClassifyJob(ctx, jobContext)
		return e
	})
	if err != nil {
		return err
	}

	// Uniqueness gate: content repeating a destination page is rejected, the
	// row stays flagged for a later retry, and nothing is persisted.
	if err := links.Verify(structured.OpportunityDescription); err != nil {
		return fmt.Errorf("%w (targets: %v)", err, links.Scan(structured.OpportunityDescription))
	}

	if raw.JobID != nil {
		if err := s.updateJob(ctx, *raw.JobID, structured); err != nil {
			return err
		}

		if s.Graph.SyncJob(ctx, *raw.JobID) {
			log.Printf("[classify]     Synced job %d to graph", *raw.JobID)
		}
	}

	s.markRawJob(ctx, raw.ID, models.RawJobProcessed, "")
	log.Printf("[classify]     Done: %q -> %s / %s / %s",
		title, structured.EmploymentType, structured.SeniorityLevel, structured.Vertical)
	return nil
}

func (s *ClassifierService) updateJob(ctx context.Context, jobID uint, structured *dtos.StructuredJob) error {
	updates := map[string]any{
		"employment_type":  structured.EmploymentType,
		"is_fractional":    structured.IsFractional,
		"days_per_week":    structured.DaysPerWeek,
		"country":          structured.Country,
		"city":             structured.City,
		"is_remote":        structured.IsRemote,
		"vertical":         structured.Vertical,
		"seniority_level":  structured.SeniorityLevel,
		"role_category":    structured.RoleCategory,
		"salary_min":       structured.SalaryMin,
		"salary_max":       structured.SalaryMax,
		"salary_currency":  structured.SalaryCurrency,
		"salary_type":      structured.SalaryType,
		"summary":          structured.Summary,
		"full_description": structured.OpportunityDescription,
		"about_company":    structured.AboutCompany,
	}
	err := s.DB.WithContext(ctx).Model(&models.Job{}).Where("id = ?", jobID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("update job %d: %w", jobID, err)
	}

	// List columns go through the JSON serializer, so update via the struct.
	err = s.DB.WithContext(ctx).Model(&models.Job{ID: jobID}).
		Select("responsibilities", "requirements", "benefits", "skills_required").
		Updates(models.Job{
		Responsibilities: structured.Responsibilities,
		Requirements:     structured.Requirements,
		Benefits:         structured.Benefits,
		SkillsRequired:   structured.SkillsRequired,
	}).Error
	if err != nil {
		return fmt.Errorf("update job %d lists: %w", jobID, err)
	}
	return nil
}

func (s *ClassifierService) markRawJob(ctx context.Context, rawID uint, status, procErr string) {
	now := time.Now()
	err := s.DB.WithContext(ctx).Model(&models.RawJob{}).Where("id = ?", rawID).Updates(map[string]any{
		"processing_status": status,
		"processing_error":  procErr,
		"processed_at":      &now,
	}).Error
	if err != nil {
		log.Printf("[classify] Failed to mark raw job %d %s: %v", rawID, status, err)
	}
}

// FixLinks rewrites legacy query-parameter link URLs in active job
// descriptions to the dedicated page URLs. Returns (jobs fixed, URLs
// converted). With dryRun nothing is persisted.
func (s *ClassifierService) FixLinks(ctx context.Context, limit int, dryRun bool) (int, int, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Select("id", "title", "full_description").
		Where("is_active = ? AND full_description LIKE ?", true, "%/fractional-jobs?role=%").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return 0, 0, fmt.Errorf("fetch jobs with legacy links: %w", err)
	}

	log.Printf("[fix-links] Found %d job(s) with query-parameter URLs", len(jobs))

	fixed, converted := 0, 0
	for i, job := range jobs {
		repaired, n := links.Repair(job.FullDescription)
		if n == 0 {
			continue
		}
		log.Printf("[fix-links] [%d/%d] %q: %d URL(s) converted", i+1, len(jobs), job.Title, n)

		if !dryRun {
			err := s.DB.WithContext(ctx).Model(&models.Job{}).
				Where("id = ?", job.ID).
				Update("full_description", repaired).Error
			if err != nil {
				log.Printf("[fix-links]     Update error for job %d: %v", job.ID, err)
				continue
			}
		}
		fixed++
		converted += n
	}

	return fixed, converted, nil
}

// buildJobContext flattens a raw job row into the prompt context the model
// sees. Returns the context plus a short title for logging.
func buildJobContext(raw models.RawJob) (string, string) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw.RawData), &payload); err != nil {
		payload = map[string]any{}
	}

	str := func(key string) string {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
		return "Unknown"
	}
	title := str("job_title")

	ctx := fmt.Sprintf(`## Job Details

**Title:** %s
**Company:** %s
**Location:** %s
**Employment Type:** %s
**Seniority:** %s
**Compensation:** %s

## Full Job Description

%s

## Additional Context

- Source: %s
`,
		title, str("company_name"), str("location"), str("employment_type"),
		str("seniority_level"), str("salary_range"), str("job_description"), raw.Source)

	return ctx, title
}

// retry executes f with exponential backoff. Adapted from the mailbox
// watcher's API retry loop.
func retry(attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i < attempts-1 {
			log.Printf("[retry] Error: %v. Retrying in %v...", err, sleep)
			time.Sleep(sleep)
			sleep *= 2
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
