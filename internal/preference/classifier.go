package preference

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Advisory TTLs for the confirmation UI. Not enforced here.
const (
	softTTL = 30 * time.Second
	hardTTL = 120 * time.Second
)

// Classify builds the ValidationRequest for one extracted preference.
//
// The HARD/SOFT decision is owned by the extractor (it saw the actual
// phrasing); Classify trusts requires_hard_validation and only selects the
// presentation and TTL policy. HARD prompts are yes/no questions the user must
// answer before the preference is saved; SOFT prompts are informative
// statements requiring no reply.
func Classify(p Extracted) ValidationRequest {
	vtype := ValidationSoft
	ttl := softTTL
	if p.RequiresHardValidation {
		vtype = ValidationHard
		ttl = hardTTL
	}

	values := strings.Join(p.Values, ", ")
	var prompt string
	if vtype == ValidationHard {
		switch p.Kind {
		case KindRole:
			prompt = fmt.Sprintf("Just to confirm - you only want %s roles?", values)
		case KindDayRate:
			prompt = fmt.Sprintf("Confirming your rate requirement: %s?", values)
		case KindLocation:
			prompt = fmt.Sprintf("You want to work in %s only?", values)
		default:
			prompt = fmt.Sprintf("Confirming: %s - %s?", p.Kind, values)
		}
	} else {
		prompt = fmt.Sprintf("Adding to your Repo: %s - %s", p.Kind, values)
	}

	expires := time.Now().Add(ttl)
	return ValidationRequest{
		ID:             uuid.NewString(),
		Preference:     p,
		ValidationType: vtype,
		Prompt:         prompt,
		ExpiresAt:      &expires,
	}
}

// ShouldConfirm reports whether any request in the batch needs an explicit
// user confirmation before its preference may be saved.
func ShouldConfirm(reqs []ValidationRequest) bool {
	for _, r := range reqs {
		if r.ValidationType == ValidationHard {
			return true
		}
	}
	return false
}
