package dtos

import "github.com/fractionalquest/repo-agent/internal/preference"

// ExtractionRequest asks the agent to pull preferences from a transcript.
type ExtractionRequest struct {
	Transcript string   `json:"transcript"`
	UserID     string   `json:"user_id" binding:"required"`
	Context    []string `json:"context"`
}

// ExtractionResponse carries the extracted preferences plus one validation
// request each. ShouldConfirm is true when any request is HARD.
type ExtractionResponse struct {
	Preferences        []preference.Extracted         `json:"preferences"`
	ValidationRequests []preference.ValidationRequest `json:"validation_requests"`
	ShouldConfirm      bool                           `json:"should_confirm"`
}

// EmptyExtractionResponse is what conversational flows receive when there is
// nothing to extract or the extraction capability failed.
func EmptyExtractionResponse() ExtractionResponse {
	return ExtractionResponse{
		Preferences:        []preference.Extracted{},
		ValidationRequests: []preference.ValidationRequest{},
		ShouldConfirm:      false,
	}
}

// SavePreferenceRequest persists one confirmed (or soft) preference batch.
type SavePreferenceRequest struct {
	UserID         string   `json:"user_id" binding:"required"`
	PreferenceType string   `json:"preference_type" binding:"required"`
	Values         []string `json:"values" binding:"required"`
	ValidationType string   `json:"validation_type" binding:"required"`
	RawText        string   `json:"raw_text"`
}

// SavedPreference is one successfully upserted row.
type SavedPreference struct {
	ID             uint   `json:"id"`
	Value          string `json:"value"`
	ValidationType string `json:"validation_type"`
}

// SavePreferenceResponse reports the subset of values that persisted.
type SavePreferenceResponse struct {
	Success bool              `json:"success"`
	Saved   []SavedPreference `json:"saved"`
	UserID  string            `json:"user_id"`
}

// UserRepo is a user's full career repository, rebuilt from preference rows
// on every read.
type UserRepo struct {
	UserID           string                               `json:"user_id"`
	Roles            []string                             `json:"roles"`
	Industries       []string                             `json:"industries"`
	Locations        []string                             `json:"locations"`
	Availability     string                               `json:"availability,omitempty"`
	DayRateMin       *int                                 `json:"day_rate_min,omitempty"`
	DayRateMax       *int                                 `json:"day_rate_max,omitempty"`
	Skills           []string                             `json:"skills"`
	ValidationStatus map[string]preference.ValidationType `json:"validation_status"`
}

// NewUserRepo returns an empty repo for the given external user id. "No repo
// yet" is not an error.
func NewUserRepo(userID string) *UserRepo {
	return &UserRepo{
		UserID:           userID,
		Roles:            []string{},
		Industries:       []string{},
		Locations:        []string{},
		Skills:           []string{},
		ValidationStatus: map[string]preference.ValidationType{},
	}
}
