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

func TestMixerOutputInRange(t *testing.T) {
	m := NewMixer(4)
	acts := []int32{300, -300, 0, 1500}

	p := m.Mix(acts)
	require.GreaterOrEqual(t, p, 0)
	require.LessOrEqual(t, p, 4095)
}

func TestMixerZeroActivationSkipsWeightUpdate(t *testing.T) {
	m := NewMixer(3)
	before := m.weights[1]

	m.Mix([]int32{400, 0, -400})
	m.Update(1)

	require.Equal(t, before, m.weights[1], "an activation of zero must never move its weight")
}

func TestMixerWeightsStayBounded(t *testing.T) {
	m := NewMixer(2)
	acts := []int32{2000, -2000}

	for i := 0; i < 5000; i++ {
		m.Mix(acts)
		m.Update(i % 2)
	}

	for _, w := range m.weights {
		require.GreaterOrEqual(t, w, weightMin)
		require.LessOrEqual(t, w, weightMax)
	}
}

func TestMixerLearnRateDecaysTowardFloor(t *testing.T) {
	m := NewMixer(1)

	for i := 0; i < 100000; i++ {
		m.Mix([]int32{500})
		m.Update(1)
	}

	require.Equal(t, endLearnRate, m.learnRate)
}
