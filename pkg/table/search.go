// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package table

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// noMatch is returned by fuzzyScore when nothing can be compared.
const noMatch = 1.0

// fuzzyScore scores how well query matches value, from 0 (contains the
// query) to 1 (nothing in common). Both arguments must already be folded.
//
// The score is the smallest edit distance between the query and any window
// of value whose length is within one rune of the query, divided by the
// query length. The position of the match inside value does not matter.
func fuzzyScore(value, query string) float64 {
	if query == "" {
		return 0
	}
	if value == "" {
		return noMatch
	}
	if strings.Contains(value, query) {
		return 0
	}

	v := []rune(value)
	n := len([]rune(query))

	best := -1
	for size := n - 1; size <= n+1; size++ {
		if size < 1 {
			continue
		}
		if size > len(v) {
			break
		}
		for start := 0; start+size <= len(v); start++ {
			d := levenshtein.ComputeDistance(string(v[start:start+size]), query)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	if best < 0 {
		// value is shorter than every window size
		best = levenshtein.ComputeDistance(value, query)
	}

	score := float64(best) / float64(n)
	if score > noMatch {
		return noMatch
	}
	return score
}

// bestScore returns the lowest score of query over values.
func bestScore(values []string, query string) float64 {
	best := noMatch
	for _, v := range values {
		s := fuzzyScore(v, query)
		if s < best {
			best = s
		}
		if best == 0 {
			break
		}
	}
	return best
}
