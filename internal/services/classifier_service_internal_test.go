package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractionalquest/repo-agent/internal/models"
)

func TestBuildJobContext(t *testing.T) {
	raw := models.RawJob{
		Source: "linkedin",
		RawData: `{"job_title":"Fractional CFO","company_name":"Acme Ltd",` +
			`"location":"London","job_description":"Lead the finance function."}`,
	}

	ctx, title := buildJobContext(raw)

	assert.Equal(t, "Fractional CFO", title)
	assert.Contains(t, ctx, "**Title:** Fractional CFO")
	assert.Contains(t, ctx, "**Company:** Acme Ltd")
	assert.Contains(t, ctx, "Lead the finance function.")
	assert.Contains(t, ctx, "- Source: linkedin")
}

func TestBuildJobContext_MalformedPayload(t *testing.T) {
	ctx, title := buildJobContext(models.RawJob{Source: "greenhouse", RawData: "not json"})

	assert.Equal(t, "Unknown", title)
	assert.Contains(t, ctx, "**Title:** Unknown")
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := retry(3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_GivesUp(t *testing.T) {
	attempts := 0
	err := retry(2, time.Millisecond, func() error {
		attempts++
		return errors.New("always")
	})
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
	assert.ErrorContains(t, err, "failed after 2 attempts")
}
