// Copyright (c) 2026 Daggen Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adjacency is a test graph backed by an adjacency list.
type adjacency [][]int

func (g adjacency) Order() int            { return len(g) }
func (g adjacency) EdgesFrom(u int) []int { return g[u] }

func TestIsAcyclic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		g       adjacency
		acyclic bool
	}{
		{"empty", adjacency{}, true},
		{"single node", adjacency{{}}, true},
		{"self loop", adjacency{{0}}, false},
		{"chain", adjacency{{1}, {2}, {}}, true},
		{"two-cycle", adjacency{{1}, {0}}, false},
		{"diamond", adjacency{{1, 2}, {3}, {3}, {}}, true},
		{"cycle off the root", adjacency{{1}, {2}, {3}, {1}}, false},
		{"disconnected cycle", adjacency{{}, {2}, {1}}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			ok, cycle := IsAcyclic(tt.g)
			assert.Equal(t, tt.acyclic, ok)
			if tt.acyclic {
				assert.Nil(t, cycle)
			} else {
				assert.NotEmpty(t, cycle)
			}
		})
	}
}

func TestIsAcyclicReportsClosedPath(t *testing.T) {
	t.Parallel()

	g := adjacency{{1}, {2}, {3}, {1}}
	ok, cycle := IsAcyclic(g)
	require.False(t, ok)

	require.GreaterOrEqual(t, len(cycle), 2)
	assert.Equal(t, cycle[0], cycle[len(cycle)-1], "cycle path must close on itself")
	for i := 0; i < len(cycle)-1; i++ {
		assert.Contains(t, g[cycle[i]], cycle[i+1], "consecutive entries must share an edge")
	}
}
