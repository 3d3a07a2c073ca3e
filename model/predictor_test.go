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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// stepByte feeds one full byte through p exactly the way archive.Compress
// does, returning the sequence of probabilities produced (one per bit,
// computed from the bit before it - the value the driver would hand to
// the coder for that bit).
func stepByte(p *Predictor, word *int32, b byte) []int {
	var part int32 = 1
	var out []int

	for j := 7; j >= 0; j-- {
		bit := (b >> uint(j)) & 1
		byteFinished := j == 0

		if byteFinished {
			*word = (*word << 8) | int32(b)
			part = 1
		} else {
			part = (part << 1) | int32(bit)
		}

		out = append(out, p.Step(*word, part, byte(bit), byteFinished))
	}

	return out
}

func TestPredictorDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	data := make([]byte, 512)
	rng.Read(data)

	run := func() []int {
		p := NewPredictor(5)
		var word int32
		var out []int

		for _, b := range data {
			out = append(out, stepByte(p, &word, b)...)
		}

		return out
	}

	require.Equal(t, run(), run())
}

func TestPredictorOutputAlwaysInRange(t *testing.T) {
	p := NewPredictor(9)
	var word int32

	for i := 0; i < 2000; i++ {
		for _, out := range stepByte(p, &word, byte(i)) {
			require.GreaterOrEqual(t, out, 0)
			require.LessOrEqual(t, out, 4095)
		}
	}
}

func TestPredictorEveryLevelConstructs(t *testing.T) {
	for lvl := 0; lvl <= 9; lvl++ {
		p := NewPredictor(lvl)
		var word int32
		require.NotPanics(t, func() { stepByte(p, &word, 0x5A) })
	}
}
