package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/fractionalquest/repo-agent/internal/dtos"
	"github.com/fractionalquest/repo-agent/internal/models"
	"github.com/fractionalquest/repo-agent/internal/preference"
)

// ErrUserNotFound means the external user id resolves to no account. Write
// paths surface it; read paths degrade to an empty repo instead.
var ErrUserNotFound = errors.New("user not found")

// RepoService reconciles confirmed preferences into the store and rebuilds
// user repos from the persisted rows on read.
type RepoService struct {
	DB *gorm.DB
}

// NewRepoService creates the service.
func NewRepoService(db *gorm.DB) *RepoService {
	return &RepoService{DB: db}
}

// upsertPreferenceSQL targets the (user_id, preference_type, preference_value)
// natural key. validation_type is monotonic: a row that reached 'validated'
// stays there no matter what is written afterwards; raw_text is only replaced
// by a non-null incoming value.
const upsertPreferenceSQL = `
INSERT INTO user_repo_preferences (user_id, preference_type, preference_value, validation_type, raw_text, created_at)
VALUES (?, ?, ?, ?, ?, NOW())
ON CONFLICT (user_id, preference_type, preference_value)
DO UPDATE SET
    validation_type = CASE
        WHEN user_repo_preferences.validation_type = 'validated' THEN 'validated'
        ELSE EXCLUDED.validation_type
    END,
    raw_text = COALESCE(EXCLUDED.raw_text, user_repo_preferences.raw_text)
RETURNING id, preference_value AS value, validation_type`

// SavePreferences upserts one preference row per value. A failing value is
// logged and skipped - one bad value must not abort the batch. The returned
// slice is the subset that persisted.
func (s *RepoService) SavePreferences(ctx context.Context, req dtos.SavePreferenceRequest) ([]dtos.SavedPreference, error) {
	kind, err := preference.ParseKind(req.PreferenceType)
	if err != nil {
		return nil, err
	}
	vtype, err := preference.ParseValidationType(req.ValidationType)
	if err != nil {
		return nil, err
	}

	internalID, err := s.resolveUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// NULL rather than empty string, so COALESCE preserves existing text.
	var rawText *string
	if req.RawText != "" {
		rawText = &req.RawText
	}

	saved := make([]dtos.SavedPreference, 0, len(req.Values))
	for _, value := range req.Values {
		var row dtos.SavedPreference
		err := s.DB.WithContext(ctx).
			Raw(upsertPreferenceSQL, internalID, string(kind), value, string(vtype), rawText).
			Scan(&row).Error
		if err != nil {
			log.Printf("[repo] Error saving %s=%q for user %s: %v", kind, value, req.UserID, err)
			continue
		}
		saved = append(saved, row)
	}
	return saved, nil
}

// GetUserRepo rebuilds the full repo from preference rows. An unknown user
// yields an empty repo - "no repo yet" is not an error.
func (s *RepoService) GetUserRepo(ctx context.Context, userID string) (*dtos.UserRepo, error) {
	repo := dtos.NewUserRepo(userID)

	internalID, err := s.resolveUser(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return repo, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []models.RepoPreference
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", internalID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	for _, row := range rows {
		switch preference.Kind(row.PreferenceType) {
		case preference.KindRole:
			repo.Roles = append(repo.Roles, row.PreferenceValue)
		case preference.KindIndustry:
			repo.Industries = append(repo.Industries, row.PreferenceValue)
		case preference.KindLocation:
			repo.Locations = append(repo.Locations, row.PreferenceValue)
		case preference.KindAvailability:
			repo.Availability = row.PreferenceValue
		case preference.KindSkill:
			repo.Skills = append(repo.Skills, row.PreferenceValue)
		case preference.KindDayRate:
			min, max, ok := parseDayRateBounds(row.PreferenceValue)
			if ok {
				mergeDayRate(repo, min, max)
			}
		}

		vtype, err := preference.ParseValidationType(row.ValidationType)
		if err != nil {
			vtype = preference.ValidationSoft
		}
		repo.ValidationStatus[row.PreferenceType+":"+row.PreferenceValue] = vtype
	}

	return repo, nil
}

func (s *RepoService) resolveUser(ctx context.Context, authID string) (uint, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("auth_id = ?", authID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolve user %s: %w", authID, err)
	}
	return user.ID, nil
}

// dayRateNumber matches the numeric components of a stored day-rate value,
// e.g. "£1200+/day" or "£800-£1,000 per day".
var dayRateNumber = regexp.MustCompile(`\d[\d,]*`)

// parseDayRateBounds extracts (min, max) from a stored day-rate value.
// "£1200+/day" and "at least £1200" read as a minimum with no maximum;
// "£800-£1000" reads as both bounds; a single plain figure is both.
func parseDayRateBounds(value string) (min, max *int, ok bool) {
	nums := dayRateNumber.FindAllString(value, -1)
	if len(nums) == 0 {
		return nil, nil, false
	}

	parsed := make([]int, 0, len(nums))
	for _, n := range nums {
		v, err := strconv.Atoi(strings.ReplaceAll(n, ",", ""))
		if err != nil {
			continue
		}
		parsed = append(parsed, v)
	}
	if len(parsed) == 0 {
		return nil, nil, false
	}

	lo := parsed[0]
	hi := parsed[len(parsed)-1]
	if hi < lo {
		lo, hi = hi, lo
	}

	if strings.Contains(value, "+") || (len(parsed) == 1 && containsMinimumCue(value)) {
		return &lo, nil, true
	}
	return &lo, &hi, true
}

func containsMinimumCue(value string) bool {
	lower := strings.ToLower(value)
	return strings.Contains(lower, "at least") || strings.Contains(lower, "minimum")
}

// mergeDayRate widens the repo's day-rate band to cover another stored row.
func mergeDayRate(repo *dtos.UserRepo, min, max *int) {
	if min != nil && (repo.DayRateMin == nil || *min < *repo.DayRateMin) {
		repo.DayRateMin = min
	}
	if max != nil && (repo.DayRateMax == nil || *max > *repo.DayRateMax) {
		repo.DayRateMax = max
	}
}
