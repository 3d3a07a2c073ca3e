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

package model

import "github.com/aldenreyes/gypsy/internal/tables"

const (
	beginLearnRate = int32(60 << 7)
	endLearnRate   = int32(11 << 7)

	// weightInit is the neutral starting weight: with every weight equal
	// and every input the same order of magnitude, the initial mix is an
	// unweighted average.
	weightInit = int32(1 << 15)

	// weightMin and weightMax bound every weight to a signed range wide
	// enough to let one feature dominate the mix, but never so wide that
	// a long run of one-sided training can overflow a single weight or a
	// single weight*activation product; Mix sums those products in int64.
	weightMin = -(int32(1) << 20)
	weightMax = int32(1) << 20
)

// Mixer is the adaptive bit predictor (the "neuron" of component B): it
// holds one weight per context feature and combines the stretched-domain
// activations those features supply into a single squashed probability.
// Update clips every weight to [weightMin, weightMax] after moving it, so
// no training sequence can overflow it; an activation of zero leaves its
// weight untouched rather than treating a zero-gradient input as a sink.
type Mixer struct {
	inputs    []int32 // stretched-domain feature activations from the last Mix call
	weights   []int32 // one weight per feature, clipped to [weightMin, weightMax] (+-2^20, wider than 16 bits)
	skew      int32   // bias term, trained like a weight with a constant input of 1
	pr        int     // last squashed prediction, for Update
	learnRate int32
}

// NewMixer creates a Mixer with n inputs, all weights at their neutral
// starting value.
func NewMixer(n int) *Mixer {
	m := &Mixer{
		inputs:    make([]int32, n),
		weights:   make([]int32, n),
		learnRate: beginLearnRate,
	}

	for i := range m.weights {
		m.weights[i] = weightInit
	}

	m.pr = 2048
	return m
}

// Mix combines the given stretched-domain feature activations into a
// probability in [0..4095]. The activation slice is borrowed for the
// duration of this call only: Mix copies what it needs into m.inputs and
// Update never retains a pointer into the caller's slice.
func (m *Mixer) Mix(activations []int32) int {
	copy(m.inputs, activations)
	dot := int64(m.skew) + 65536

	for i, x := range m.inputs {
		dot += int64(m.weights[i]) * int64(x)
	}

	m.pr = tables.Squash(int(dot >> 17))
	return m.pr
}

// Update adjusts every weight to reduce the coding cost of the prediction
// just produced by Mix, given the bit that was actually observed.
func (m *Mixer) Update(bit int) {
	err := (int32((bit<<12)-m.pr) * m.learnRate) >> 10

	if err == 0 {
		return
	}

	// The learning rate decays from beginLearnRate to endLearnRate and
	// then holds: once learnRate == endLearnRate, endLearnRate-learnRate
	// is 0 and the shift-by-31 sign trick below is a no-op.
	m.learnRate += (endLearnRate - m.learnRate) >> 31
	m.skew += err

	for i, x := range m.inputs {
		if x == 0 {
			continue
		}

		w := m.weights[i] + (x*err)>>12

		if w < weightMin {
			w = weightMin
		} else if w > weightMax {
			w = weightMax
		}

		m.weights[i] = w
	}
}
