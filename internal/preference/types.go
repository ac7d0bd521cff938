// Package preference defines the career preference vocabulary and the
// validation-state lattice used by the extraction and reconciliation flows.
//
// Validation states:
//
//	SOFT ──────► VALIDATED
//	HARD ──────► VALIDATED
//
// VALIDATED is absorbing: once a stored preference reaches it, later writes
// never move it back (see Merge).
package preference

import (
	"fmt"
	"time"
)

// Kind identifies what a preference is about.
type Kind string

const (
	KindRole         Kind = "role"
	KindIndustry     Kind = "industry"
	KindLocation     Kind = "location"
	KindAvailability Kind = "availability"
	KindDayRate      Kind = "day_rate"
	KindSkill        Kind = "skill"
)

// ParseKind converts a raw string to a Kind, returning an error for unknown
// values.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	switch k {
	case KindRole, KindIndustry, KindLocation, KindAvailability, KindDayRate, KindSkill:
		return k, nil
	}
	return "", fmt.Errorf("unknown preference kind %q", s)
}

// ValidationType values mirror the validation_type column in PostgreSQL.
type ValidationType string

const (
	// ValidationSoft may be saved without confirmation after an advisory delay.
	ValidationSoft ValidationType = "soft"
	// ValidationHard must not be saved without an explicit user confirmation.
	ValidationHard ValidationType = "hard"
	// ValidationValidated means the user confirmed. Terminal.
	ValidationValidated ValidationType = "validated"
)

// ParseValidationType converts a raw string to a ValidationType.
func ParseValidationType(s string) (ValidationType, error) {
	v := ValidationType(s)
	switch v {
	case ValidationSoft, ValidationHard, ValidationValidated:
		return v, nil
	}
	return "", fmt.Errorf("unknown validation type %q", s)
}

// Merge returns the validation type a stored row should carry after an upsert.
// VALIDATED is absorbing; any other existing state is overwritten by the
// incoming one. This is the single authority for reconciler monotonicity.
func Merge(existing, incoming ValidationType) ValidationType {
	if existing == ValidationValidated {
		return ValidationValidated
	}
	return incoming
}

// Extracted is one preference pulled out of a conversation transcript by the
// extraction capability. Immutable once created.
type Extracted struct {
	Kind                   Kind     `json:"type"`
	Values                 []string `json:"values"`
	Confidence             float64  `json:"confidence"`
	RawText                string   `json:"raw_text"`
	RequiresHardValidation bool     `json:"requires_hard_validation"`
	Reason                 string   `json:"reason,omitempty"`
}

// NewExtracted validates structural invariants at construction: a known kind,
// at least one non-empty value, and confidence within [0,1].
func NewExtracted(kind string, values []string, confidence float64, rawText string, hard bool, reason string) (Extracted, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Extracted{}, err
	}
	if len(values) == 0 {
		return Extracted{}, fmt.Errorf("preference %s has no values", k)
	}
	for _, v := range values {
		if v == "" {
			return Extracted{}, fmt.Errorf("preference %s has an empty value", k)
		}
	}
	if confidence < 0 || confidence > 1 {
		return Extracted{}, fmt.Errorf("confidence %.2f out of range [0,1]", confidence)
	}
	return Extracted{
		Kind:                   k,
		Values:                 values,
		Confidence:             confidence,
		RawText:                rawText,
		RequiresHardValidation: hard,
		Reason:                 reason,
	}, nil
}

// ValidationRequest is what the confirmation UI receives for one extracted
// preference. Created transiently per extraction call, never persisted.
type ValidationRequest struct {
	ID             string         `json:"id"`
	Preference     Extracted      `json:"preference"`
	ValidationType ValidationType `json:"validation_type"`
	Prompt         string         `json:"prompt"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
}
