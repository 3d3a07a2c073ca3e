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

// Package model implements the context-mixing predictor: a bank of
// context-indexed bit-history counters (component C) combined by an
// adaptive mixer (component B) and post-corrected by a secondary symbol
// estimator (component D). Log/stretch tables (component A) live in the
// sibling internal/tables package.
package model

// Predictor is MODEL+SMOOTH from spec 4.C/4.D: one call per bit trains
// the context model and SSE on the bit that was just observed, then
// produces the calibrated probability for the next bit. Its trained
// state (context tables, mixer weights, SSE cells) is a deterministic
// function of the bits fed to it so far, so an encoder and a decoder
// built from NewPredictor with the same level stay in lockstep as long as
// they are fed the same bit sequence.
type Predictor struct {
	cm  *ContextModel
	sse *SSE
}

// NewPredictor builds a Predictor sized for the given compression level
// (0-9; out-of-range values clamp to DefaultLevel).
func NewPredictor(level int) *Predictor {
	cfg := levelFor(level)

	return &Predictor{
		cm:  NewContextModel(level),
		sse: NewSSE(cfg.sseBits, cfg.sseRate),
	}
}

// Step trains on the bit just observed and returns the probability (in
// [0..4095]) that the next bit is 1, given the completed-byte window word
// and the partial byte part after incorporating bit. byteFinished must be
// true exactly on the call following the eighth bit of a byte.
func (p *Predictor) Step(word, part int32, bit byte, byteFinished bool) int {
	p.cm.Update(bit)
	mixed := p.cm.Predict(word, part, byteFinished)

	p.sse.Update(bit)
	cx := (word & 0xFF) | (part << 8)
	return p.sse.Get(mixed, cx)
}
