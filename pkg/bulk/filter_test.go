package bulk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterRepositories(t *testing.T) {
	repos := []Repository{
		{Name: "a1"},
		{Name: "a2"},
		{Name: "b1"},
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name: "no_filters_keeps_everything",
			want: []string{"a1", "a2", "b1"},
		},
		{
			name:    "include_narrows_by_substring",
			include: []string{"a"},
			want:    []string{"a1", "a2"},
		},
		{
			name:    "exclude_removes_from_narrowed_set",
			include: []string{"a"},
			exclude: []string{"a2"},
			want:    []string{"a1"},
		},
		{
			name:    "exclude_alone",
			exclude: []string{"b"},
			want:    []string{"a1", "a2"},
		},
		{
			name:    "glob_include",
			include: []string{"a*"},
			want:    []string{"a1", "a2"},
		},
		{
			name:    "glob_matches_whole_name",
			include: []string{"?1"},
			want:    []string{"a1", "b1"},
		},
		{
			name:    "include_without_match_drops_all",
			include: []string{"zzz"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterRepositories(repos, tt.include, tt.exclude)
			names := make([]string, 0, len(got))
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestMatchName(t *testing.T) {
	// Plain patterns match by containment, glob patterns by doublestar.
	assert.True(t, matchName("core", "platform-core-api"))
	assert.False(t, matchName("core", "platform-api"))
	assert.True(t, matchName("platform-*", "platform-core-api"))
	assert.False(t, matchName("platform-*", "api-platform"))
}
