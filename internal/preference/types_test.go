package preference_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractionalquest/repo-agent/internal/preference"
)

func TestParseKind(t *testing.T) {
	valid := []string{"role", "industry", "location", "availability", "day_rate", "skill"}
	for _, s := range valid {
		k, err := preference.ParseKind(s)
		require.NoError(t, err, "ParseKind(%q)", s)
		assert.Equal(t, s, string(k))
	}

	_, err := preference.ParseKind("salary")
	assert.Error(t, err)
	_, err = preference.ParseKind("")
	assert.Error(t, err)
}

func TestParseValidationType(t *testing.T) {
	for _, s := range []string{"soft", "hard", "validated"} {
		v, err := preference.ParseValidationType(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(v))
	}

	_, err := preference.ParseValidationType("SOFT")
	assert.Error(t, err)
}

func TestMerge_ValidatedIsAbsorbing(t *testing.T) {
	cases := []struct {
		existing, incoming, want preference.ValidationType
	}{
		{preference.ValidationValidated, preference.ValidationSoft, preference.ValidationValidated},
		{preference.ValidationValidated, preference.ValidationHard, preference.ValidationValidated},
		{preference.ValidationValidated, preference.ValidationValidated, preference.ValidationValidated},
		{preference.ValidationSoft, preference.ValidationHard, preference.ValidationHard},
		{preference.ValidationHard, preference.ValidationSoft, preference.ValidationSoft},
		{preference.ValidationSoft, preference.ValidationValidated, preference.ValidationValidated},
		{preference.ValidationHard, preference.ValidationValidated, preference.ValidationValidated},
		{preference.ValidationSoft, preference.ValidationSoft, preference.ValidationSoft},
	}
	for _, c := range cases {
		got := preference.Merge(c.existing, c.incoming)
		assert.Equal(t, c.want, got, "Merge(%s, %s)", c.existing, c.incoming)
	}
}

func TestNewExtracted_Valid(t *testing.T) {
	p, err := preference.NewExtracted("role", []string{"CMO"}, 0.95, "I only want CMO roles", true, "Explicit constraint")
	require.NoError(t, err)
	assert.Equal(t, preference.KindRole, p.Kind)
	assert.Equal(t, []string{"CMO"}, p.Values)
	assert.True(t, p.RequiresHardValidation)
}

func TestNewExtracted_Invalid(t *testing.T) {
	cases := []struct {
		name       string
		kind       string
		values     []string
		confidence float64
	}{
		{"unknown kind", "vibe", []string{"x"}, 0.5},
		{"no values", "role", nil, 0.5},
		{"empty value", "role", []string{""}, 0.5},
		{"confidence below range", "role", []string{"CFO"}, -0.1},
		{"confidence above range", "role", []string{"CFO"}, 1.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := preference.NewExtracted(c.kind, c.values, c.confidence, "", false, "")
			assert.Error(t, err)
		})
	}

	// Boundary confidences are legal.
	for _, conf := range []float64{0, 1} {
		_, err := preference.NewExtracted("skill", []string{"M&A"}, conf, "", false, "")
		assert.NoError(t, err)
	}
}
