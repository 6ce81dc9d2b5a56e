package queryparse_test

import (
	"testing"

	"github.com/fwojciec/relgraph/queryparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CompositeQuery(t *testing.T) {
	t.Parallel()

	parsed := queryparse.Parse("senior engineers at Google in SF with 5+ years")

	require.NotNil(t, parsed.Filters.Company)
	assert.Equal(t, "Google", *parsed.Filters.Company)

	require.NotNil(t, parsed.Filters.Location)
	assert.Equal(t, "SF", *parsed.Filters.Location)

	require.NotNil(t, parsed.Filters.Role)
	assert.Equal(t, "senior", *parsed.Filters.Role)

	require.NotNil(t, parsed.Filters.Years)
	require.NotNil(t, parsed.Filters.Years.Min)
	assert.Equal(t, 5, *parsed.Filters.Years.Min)
	assert.Nil(t, parsed.Filters.Years.Max)

	assert.Contains(t, parsed.FreeText, "engineers")
	for _, token := range []string{"senior", "Google", "SF", "5+", "years"} {
		assert.NotContains(t, parsed.FreeText, token)
	}
}

func TestParse_DegreeQuery(t *testing.T) {
	t.Parallel()

	parsed := queryparse.Parse("2nd degree connections at Google")

	require.NotNil(t, parsed.Filters.Company)
	assert.Equal(t, "Google", *parsed.Filters.Company)
	assert.Equal(t, []int{2}, parsed.Filters.Degrees)
	assert.Equal(t, "", parsed.FreeText)
}

func TestParse_Company(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"at prefix", "designers at Figma", "Figma"},
		{"from prefix", "people from Amazon", "Amazon"},
		{"works at prefix", "anyone who works at Stripe", "Stripe"},
		{"working at prefix", "folks working at Netflix", "Netflix"},
		{"stops at boundary keyword", "engineers at Google in London", "Google"},
		{"stops at comma", "engineers at Google, preferably senior", "Google"},
		{"multi-word company", "analysts at Goldman Sachs", "Goldman Sachs"},
		{"recapitalizes known entity", "engineers at google", "Google"},
		{"title-cases unknown company", "engineers at initech", "Initech"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parsed := queryparse.Parse(tt.query)
			require.NotNil(t, parsed.Filters.Company, "query %q", tt.query)
			assert.Equal(t, tt.want, *parsed.Filters.Company)
		})
	}

	t.Run("no company", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("machine learning engineers")
		assert.Nil(t, parsed.Filters.Company)
	})
}

func TestParse_Location(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"in prefix", "engineers in Berlin", "Berlin"},
		{"based in prefix", "engineers based in London", "London"},
		{"located in prefix", "engineers located in new york", "New York"},
		{"known abbreviation", "engineers in nyc", "NYC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parsed := queryparse.Parse(tt.query)
			require.NotNil(t, parsed.Filters.Location)
			assert.Equal(t, tt.want, *parsed.Filters.Location)
		})
	}
}

func TestParse_Years(t *testing.T) {
	t.Parallel()

	t.Run("minimum only", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("developers with 10+ years")
		require.NotNil(t, parsed.Filters.Years)
		require.NotNil(t, parsed.Filters.Years.Min)
		assert.Equal(t, 10, *parsed.Filters.Years.Min)
		assert.Nil(t, parsed.Filters.Years.Max)
	})

	t.Run("dash range", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("developers with 3-5 years")
		require.NotNil(t, parsed.Filters.Years)
		assert.Equal(t, 3, *parsed.Filters.Years.Min)
		assert.Equal(t, 5, *parsed.Filters.Years.Max)
	})

	t.Run("to range", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("developers with 3 to 5 years")
		require.NotNil(t, parsed.Filters.Years)
		assert.Equal(t, 3, *parsed.Filters.Years.Min)
		assert.Equal(t, 5, *parsed.Filters.Years.Max)
	})

	t.Run("exact", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("developers with 7 years")
		require.NotNil(t, parsed.Filters.Years)
		assert.Equal(t, 7, *parsed.Filters.Years.Min)
		assert.Equal(t, 7, *parsed.Filters.Years.Max)
	})
}

func TestParse_Degrees(t *testing.T) {
	t.Parallel()

	t.Run("direct connections", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("my direct connections")
		assert.Equal(t, []int{1}, parsed.Filters.Degrees)
	})

	t.Run("ordinal word", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("second degree connections")
		assert.Equal(t, []int{2}, parsed.Filters.Degrees)
	})

	t.Run("multiple degrees accumulate", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("1st degree and 2nd degree connections")
		assert.Equal(t, []int{1, 2}, parsed.Filters.Degrees)
	})

	t.Run("third degree", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("3rd degree connections")
		assert.Equal(t, []int{3}, parsed.Filters.Degrees)
	})
}

func TestParse_Role(t *testing.T) {
	t.Parallel()

	t.Run("priority order picks the first vocabulary hit", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("senior manager of platform")
		require.NotNil(t, parsed.Filters.Role)
		assert.Equal(t, "senior", *parsed.Filters.Role)
	})

	t.Run("multi-word role", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("head of engineering")
		require.NotNil(t, parsed.Filters.Role)
		assert.Equal(t, "head of", *parsed.Filters.Role)
	})

	t.Run("matches at word boundaries only", func(t *testing.T) {
		t.Parallel()
		parsed := queryparse.Parse("seniority survey takers")
		assert.Nil(t, parsed.Filters.Role)
	})
}

func TestParse_FreeTextOnly(t *testing.T) {
	t.Parallel()

	parsed := queryparse.Parse("machine learning kubernetes")
	assert.Equal(t, "machine learning kubernetes", parsed.FreeText)
	assert.True(t, parsed.Filters.Empty())
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	parsed := queryparse.Parse("")
	assert.Equal(t, "", parsed.FreeText)
	assert.True(t, parsed.Filters.Empty())
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Google", queryparse.Capitalize("google"))
	assert.Equal(t, "San Francisco", queryparse.Capitalize("san francisco"))
	assert.Equal(t, "Acme Corp", queryparse.Capitalize("acme corp"))
	assert.Equal(t, "New York", queryparse.Capitalize("NEW YORK"))
}
