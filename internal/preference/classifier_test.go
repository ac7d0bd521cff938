package preference_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractionalquest/repo-agent/internal/preference"
)

func extracted(t *testing.T, kind string, values []string, hard bool) preference.Extracted {
	t.Helper()
	p, err := preference.NewExtracted(kind, values, 0.9, strings.Join(values, " "), hard, "")
	require.NoError(t, err)
	return p
}

func TestClassify_HardIffFlagged(t *testing.T) {
	hard := preference.Classify(extracted(t, "role", []string{"CMO"}, true))
	assert.Equal(t, preference.ValidationHard, hard.ValidationType)

	soft := preference.Classify(extracted(t, "role", []string{"CMO"}, false))
	assert.Equal(t, preference.ValidationSoft, soft.ValidationType)
}

func TestClassify_HardPrompts(t *testing.T) {
	cases := []struct {
		kind   string
		values []string
		want   string
	}{
		{"role", []string{"CMO"}, "Just to confirm - you only want CMO roles?"},
		{"day_rate", []string{"£1200+/day"}, "Confirming your rate requirement: £1200+/day?"},
		{"location", []string{"London", "Remote"}, "You want to work in London, Remote only?"},
		{"industry", []string{"Technology"}, "Confirming: industry - Technology?"},
	}
	for _, c := range cases {
		req := preference.Classify(extracted(t, c.kind, c.values, true))
		assert.Equal(t, c.want, req.Prompt)
	}
}

func TestClassify_SoftPromptIsInformative(t *testing.T) {
	req := preference.Classify(extracted(t, "availability", []string{"2-3 days/week"}, false))
	assert.Equal(t, "Adding to your Repo: availability - 2-3 days/week", req.Prompt)
	assert.False(t, strings.HasSuffix(req.Prompt, "?"), "soft prompt must not be a question")
}

func TestClassify_AdvisoryTTLs(t *testing.T) {
	now := time.Now()

	soft := preference.Classify(extracted(t, "skill", []string{"M&A"}, false))
	require.NotNil(t, soft.ExpiresAt)
	assert.InDelta(t, 30, soft.ExpiresAt.Sub(now).Seconds(), 2)

	hard := preference.Classify(extracted(t, "skill", []string{"M&A"}, true))
	require.NotNil(t, hard.ExpiresAt)
	assert.InDelta(t, 120, hard.ExpiresAt.Sub(now).Seconds(), 2)
}

func TestClassify_AssignsUniqueIDs(t *testing.T) {
	p := extracted(t, "skill", []string{"Board Reporting"}, false)
	a := preference.Classify(p)
	b := preference.Classify(p)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestShouldConfirm(t *testing.T) {
	hard := preference.Classify(extracted(t, "role", []string{"CMO"}, true))
	soft := preference.Classify(extracted(t, "skill", []string{"SEO"}, false))

	assert.False(t, preference.ShouldConfirm(nil))
	assert.False(t, preference.ShouldConfirm([]preference.ValidationRequest{soft}))
	assert.True(t, preference.ShouldConfirm([]preference.ValidationRequest{soft, hard}))
}
