/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSSEIdentityBeforeTraining(t *testing.T) {
	s := NewSSE(6, 6)

	for _, p := range []int{0, 1, 512, 2048, 3583, 4095} {
		got := s.Get(p, 0)
		require.InDelta(t, p, got, 40, "untrained SSE should roughly reproduce its input")
	}
}

func TestSSEOutputInRange(t *testing.T) {
	s := NewSSE(8, 5)

	for p := 0; p <= 4095; p += 7 {
		got := s.Get(p, int32(p))
		require.GreaterOrEqual(t, got, 0)
		require.LessOrEqual(t, got, 4095)
	}
}

func TestSSETrainsTowardObservedBit(t *testing.T) {
	s := NewSSE(4, 5)

	for i := 0; i < 500; i++ {
		s.Get(2048, 3)
		s.Update(1)
	}

	require.Greater(t, s.Get(2048, 3), 3500)
}

func TestSSEContextsAreIndependent(t *testing.T) {
	s := NewSSE(4, 5)

	for i := 0; i < 500; i++ {
		s.Get(2048, 1)
		s.Update(1)
	}

	untouched := s.Get(2048, 2)
	require.InDelta(t, 2048, untouched, 40)
}
