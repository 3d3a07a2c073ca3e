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

const contextHash = int32(0x7FEB352D)

// hash combines two 32-bit values the way TPAQ-derived models do: a
// multiplicative mix followed by a handful of cheap shift/xor rounds.
// Collisions between two contexts that land in the same bucket are
// accepted as ordinary compression loss, never as an error.
func hash(x, y int32) int32 {
	h := x*contextHash ^ y*contextHash
	return h>>1 ^ h>>9 ^ x>>2 ^ y>>3 ^ contextHash
}

// contextSlot owns one hash table of bit-history state bytes for one
// context order. It tracks, between a Predict/Update pair, the table
// index the last bit's partial-byte context (c0) mapped to, so Update can
// advance that one state byte along the observed-bit transition.
type contextSlot struct {
	kind  contextKind
	table []uint8
	mask  int32
	base  int32 // context id derived from (word, part) at the last byte boundary
	index int32 // table index used by the most recent Predict call
}

func newContextSlot(kind contextKind, bits uint) *contextSlot {
	return &contextSlot{
		kind:  kind,
		table: make([]uint8, uint(1)<<bits),
		mask:  int32(uint(1)<<bits) - 1,
	}
}

// rebase recomputes this slot's context id from the sliding window of
// completed bytes (word) once a byte boundary is crossed. part is always
// 1 at a byte boundary (spec 3: "part initialised to 1... leading 1
// distinguishes 0 bits seen from 00 bits seen").
func (c *contextSlot) rebase(word int32) {
	switch c.kind {
	case order0:
		c.base = 0
	case order1:
		// Spec 4.C.1: order-1 context is "last byte XOR part" - the byte
		// is folded in directly at predict-time, not hashed in here.
		c.base = word & 0xFF
	case order2:
		c.base = hash(2, word&0xFFFF)
	case order4:
		c.base = hash(4, word)
	case sparse:
		// Bytes -1 and -3 of the completed-byte window, skipping -2: a
		// gapped context that catches repetition patterns an order-2 or
		// order-4 context (contiguous bytes) would miss entirely.
		b1 := word & 0xFF
		b3 := (word >> 16) & 0xFF
		c.base = hash(contextHash, b1|(b3<<8))
	}
}

// predict returns the stretched-domain activation for the current
// partial byte part (the spec's leading-1 "part", here used directly as
// the table offset) and remembers the index so Update can train it.
func (c *contextSlot) predict(part int32) int32 {
	if c.kind == order1 {
		c.index = (c.base ^ part) & c.mask
	} else {
		c.index = (c.base + part) & c.mask
	}

	return tables.StateMap[c.table[c.index]]
}

// update advances the state byte this slot predicted from along the
// observed-bit transition.
func (c *contextSlot) update(bit byte) {
	c.table[c.index] = tables.StateTransitions[bit][c.table[c.index]]
}

// ContextModel is component C: it derives a small, fixed bank of context
// ids from (word, part), looks up one bit-history feature per context,
// and mixes them with its own Mixer (component B) into a single
// probability. The set of contexts and their table sizes are fixed by the
// compression level at construction (spec 4.C.5) and never change
// afterwards.
type ContextModel struct {
	slots []*contextSlot
	mixer *Mixer
	acts  []int32 // scratch buffer reused every Predict call
}

// NewContextModel builds a ContextModel sized for the given level
// (clamped to [0..9] if out of range).
func NewContextModel(level int) *ContextModel {
	cfg := levelFor(level)
	cm := &ContextModel{
		slots: make([]*contextSlot, len(cfg.contexts)),
		mixer: NewMixer(len(cfg.contexts)),
		acts:  make([]int32, len(cfg.contexts)),
	}

	for i, kind := range cfg.contexts {
		cm.slots[i] = newContextSlot(kind, cfg.tableBits)
	}

	return cm
}

// Predict derives this step's context ids (on a byte boundary) and
// returns the mixed probability in [0..4095] for the next bit, given the
// sliding window of completed bytes (word) and the current partial byte
// (part). byteFinished is true exactly when part has just been reset to 1
// by the driver (spec 3: bit boundary convention).
func (cm *ContextModel) Predict(word, part int32, byteFinished bool) int {
	if byteFinished {
		for _, s := range cm.slots {
			s.rebase(word)
		}
	}

	for i, s := range cm.slots {
		cm.acts[i] = s.predict(part)
	}

	return cm.mixer.Mix(cm.acts)
}

// Update trains every active context's state byte and the mixer's
// weights on the bit that was actually observed. Must be called once per
// bit, after the corresponding Predict, with the coder's accepted bit.
func (cm *ContextModel) Update(bit byte) {
	for _, s := range cm.slots {
		s.update(bit)
	}

	cm.mixer.Update(int(bit))
}
