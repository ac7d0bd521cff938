package links_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractionalquest/repo-agent/internal/links"
)

const fourDistinctPages = `This [fractional CFO](/fractional-cfo-jobs-uk) role suits leaders ` +
	`exploring [portfolio careers](/fractional-jobs). Peers in ` +
	`[marketing](/fractional-cmo-jobs-uk) and [technology](/fractional-cto-jobs-uk) agree.`

func TestScan_OrderAndDuplicates(t *testing.T) {
	text := `See [fractional jobs](/fractional-jobs) and [more roles](/fractional-jobs).`
	assert.Equal(t, []string{"/fractional-jobs", "/fractional-jobs"}, links.Scan(text))

	assert.Nil(t, links.Scan("no links here"))
	assert.Nil(t, links.Scan("an [external link](https://example.com) only"))
}

func TestHasDuplicates(t *testing.T) {
	// Two links to the generic page with different anchor text: violation.
	dup := `Explore [fractional opportunities](/fractional-jobs) and build a [portfolio career](/fractional-jobs).`
	assert.True(t, links.HasDuplicates(dup))

	// One link each to four distinct role pages: fine.
	assert.False(t, links.HasDuplicates(fourDistinctPages))
	assert.False(t, links.HasDuplicates(""))
}

func TestVerify(t *testing.T) {
	require.NoError(t, links.Verify(fourDistinctPages))

	dup := `[a](/fractional-cfo-jobs-uk) then [b](/fractional-cfo-jobs-uk)`
	assert.ErrorIs(t, links.Verify(dup), links.ErrDuplicateLinks)
}

func TestUniqueTargets(t *testing.T) {
	text := `[a](/fractional-jobs) [b](/fractional-cfo-jobs-uk) [c](/fractional-jobs)`
	assert.Equal(t, []string{"/fractional-jobs", "/fractional-cfo-jobs-uk"}, links.UniqueTargets(text))
}

func TestRepair_RewritesLegacyURLs(t *testing.T) {
	text := `A [fractional CFO](/fractional-jobs?role=CFO) and a [CTO](/fractional-jobs?role=CTO) walk into a boardroom.`
	repaired, n := links.Repair(text)
	assert.Equal(t, 2, n)
	assert.Contains(t, repaired, "(/fractional-cfo-jobs-uk)")
	assert.Contains(t, repaired, "(/fractional-cto-jobs-uk)")
	assert.NotContains(t, repaired, "?role=")
}

func TestRepair_Idempotent(t *testing.T) {
	text := `Links: [x](/fractional-jobs?role=CMO), [y](/fractional-jobs?role=COO), [z](/fractional-jobs).`
	once, n1 := links.Repair(text)
	twice, n2 := links.Repair(once)
	assert.Equal(t, 2, n1)
	assert.Equal(t, 0, n2)
	assert.Equal(t, once, twice)
}

func TestRepair_LeavesCleanTextAlone(t *testing.T) {
	repaired, n := links.Repair(fourDistinctPages)
	assert.Equal(t, 0, n)
	assert.Equal(t, fourDistinctPages, repaired)

	empty, n := links.Repair("")
	assert.Equal(t, 0, n)
	assert.Equal(t, "", empty)
}
