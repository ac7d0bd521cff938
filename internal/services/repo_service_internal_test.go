package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractionalquest/repo-agent/internal/dtos"
)

func TestParseDayRateBounds(t *testing.T) {
	intp := func(v int) *int { return &v }

	cases := []struct {
		value    string
		wantMin  *int
		wantMax  *int
		wantOK   bool
	}{
		{"£1200+/day", intp(1200), nil, true},
		{"at least £1200", intp(1200), nil, true},
		{"Minimum of 950", intp(950), nil, true},
		{"£800-£1000", intp(800), intp(1000), true},
		{"£1,200 - £1,500 per day", intp(1200), intp(1500), true},
		{"£900/day", intp(900), intp(900), true},
		{"competitive", nil, nil, false},
		{"", nil, nil, false},
	}
	for _, c := range cases {
		t.Run(c.value, func(t *testing.T) {
			min, max, ok := parseDayRateBounds(c.value)
			require.Equal(t, c.wantOK, ok)
			assert.Equal(t, c.wantMin, min)
			assert.Equal(t, c.wantMax, max)
		})
	}
}

func TestMergeDayRate_WidensBand(t *testing.T) {
	intp := func(v int) *int { return &v }
	repo := dtos.NewUserRepo("u1")

	mergeDayRate(repo, intp(1000), intp(1200))
	require.Equal(t, 1000, *repo.DayRateMin)
	require.Equal(t, 1200, *repo.DayRateMax)

	// A narrower row does not shrink the band.
	mergeDayRate(repo, intp(1100), intp(1150))
	assert.Equal(t, 1000, *repo.DayRateMin)
	assert.Equal(t, 1200, *repo.DayRateMax)

	// A wider row extends it.
	mergeDayRate(repo, intp(800), nil)
	assert.Equal(t, 800, *repo.DayRateMin)
	assert.Equal(t, 1200, *repo.DayRateMax)
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`[{"type":"role"}]`, `[{"type":"role"}]`},
		{"```json\n[{\"type\":\"role\"}]\n```", `[{"type":"role"}]`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, stripFences(c.in))
	}
}
