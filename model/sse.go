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

// SSE is the secondary symbol estimator (component D): a 2-D table of bit
// probabilities indexed by (context, quantised stretched probability),
// trained online and interpolated between its 33 quantisation cells. It
// corrects the mixer's output against the calibration error actually
// observed for each context - a different error mode than the mixer's
// conditional-probability estimate.
type SSE struct {
	cells []uint16 // 33 cells per context, logistic-domain quantisation
	rate  uint
	mask  int32
	index int32 // low cell touched by the most recent Get, for Update
}

const sseCellsPerContext = 33

// NewSSE builds an SSE table with 1<<bits contexts, each one initialised
// to the identity mapping (so an untrained cell reproduces its input
// probability unchanged), trained with the given shift.
func NewSSE(bits, rate uint) *SSE {
	s := &SSE{
		cells: make([]uint16, (uint(1)<<bits)*sseCellsPerContext),
		rate:  rate,
		mask:  int32(uint(1)<<bits) - 1,
	}

	identity := make([]uint16, sseCellsPerContext)

	for j := 0; j < sseCellsPerContext; j++ {
		identity[j] = uint16(tables.Squash((j-16)<<7) << 4)
	}

	for ctx := 0; ctx < (1 << bits); ctx++ {
		copy(s.cells[ctx*sseCellsPerContext:], identity)
	}

	return s
}

// Get refines p (the mixer's output, in [0..4095]) using the calibration
// history recorded for ctx, and returns the corrected probability. Get
// reduces ctx modulo the table's context count itself, so callers may
// pass an unreduced context id.
func (s *SSE) Get(p int, ctx int32) int {
	st := int32(tables.Stretch(p))
	cell := (st+2048)>>7 + (ctx&s.mask)*sseCellsPerContext
	s.index = cell
	w := st & 127
	lo := int32(s.cells[cell])
	hi := int32(s.cells[cell+1])
	return int((hi*w + lo*(128-w)) >> 11)
}

// Update trains the two cells straddled by the most recent Get call
// toward the bit that was actually observed.
func (s *SSE) Update(bit byte) {
	target := 0

	if bit == 1 {
		target = 65528 + (1 << s.rate)
	}

	s.cells[s.index] += uint16((target - int(s.cells[s.index])) >> s.rate)
	s.cells[s.index+1] += uint16((target - int(s.cells[s.index+1])) >> s.rate)
}
