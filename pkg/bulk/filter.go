// Copyright 2025 Steve Anthony
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bulk

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchName matches a repository name against one pattern. Patterns with
// glob meta characters use doublestar semantics; plain patterns match by
// substring containment.
func matchName(pattern, name string) bool {
	if strings.ContainsAny(pattern, "*?[{") {
		ok, err := doublestar.Match(pattern, name)
		return err == nil && ok
	}
	return strings.Contains(name, pattern)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if matchName(p, name) {
			return true
		}
	}
	return false
}

// filterRepositories keeps repos whose name matches any include pattern
// (when include patterns are given), then drops repos matching any exclude
// pattern. Include narrows first; exclude removes from the narrowed set.
// Source order is preserved.
func filterRepositories(repos []Repository, include, exclude []string) []Repository {
	out := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if len(include) > 0 && !matchAny(include, repo.Name) {
			continue
		}
		if matchAny(exclude, repo.Name) {
			continue
		}
		out = append(out, repo)
	}
	return out
}
