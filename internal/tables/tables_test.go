/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tables

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSquashStretchRoundTrip(t *testing.T) {
	for p := 0; p <= 4095; p++ {
		require.Equal(t, p, Squash(Stretch(p)), "p=%d", p)
	}
}

func TestStretchMonotonic(t *testing.T) {
	prev := Stretch(0)

	for p := 1; p <= 4095; p++ {
		cur := Stretch(p)
		require.GreaterOrEqual(t, cur, prev, "p=%d", p)
		prev = cur
	}
}

func TestStretchZeroAtHalf(t *testing.T) {
	require.Equal(t, 0, Stretch(2048))
}

func TestSquashClampedToDomain(t *testing.T) {
	require.GreaterOrEqual(t, Squash(-4096), 0)
	require.LessOrEqual(t, Squash(4096), 4096)
}
