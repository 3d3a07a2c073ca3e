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

// MemMax bounds the total size, in bytes, of every context table a
// Predictor allocates at a given level. No allocation happens after
// construction; levels are chosen so their total never exceeds this.
const MemMax = 1 << 25 // 32 MiB

// contextKind names one of the fixed context orders a ContextModel can
// mix in. The source's level table is not exhaustively specified; this is
// this implementation's documented mapping (see spec note "Level
// semantics" in DESIGN.md).
type contextKind int

const (
	order0 contextKind = iota // part only
	order1                    // last byte XOR part
	order2                    // last two bytes + part
	order4                    // hash of last four bytes (word) + part
	sparse                    // gapped: bytes -1 and -3, skipping -2
)

// levelConfig describes the memory budget and feature set a Predictor
// uses at one compression level.
type levelConfig struct {
	contexts []contextKind
	tableBits uint // log2 of each context table's entry count
	sseBits   uint // log2 of the number of SSE contexts
	sseRate   uint // SSE training shift (4-7, see spec component D)
}

// levelTable maps level 0..9 to (contexts enabled, log2 table size, SSE
// depth). Level 0 collapses to the order-0 context alone, as the spec
// allows; level 9 activates every context at the largest table size that
// still respects MemMax. The per-context table grows 16x at level 1, 4x
// at each of levels 2-4, stays put at level 5 (which adds the
// sparse/gapped context instead) and doubles at each of levels 6-9; the
// SSE table widens at levels 2, 4 and each of 6-9 - more memory for a
// longer, better-calibrated history.
var levelTable = [10]levelConfig{
	{contexts: []contextKind{order0}, tableBits: 8, sseBits: 6, sseRate: 7},
	{contexts: []contextKind{order0, order1}, tableBits: 12, sseBits: 6, sseRate: 7},
	{contexts: []contextKind{order0, order1, order2}, tableBits: 14, sseBits: 7, sseRate: 7},
	{contexts: []contextKind{order0, order1, order2, order4}, tableBits: 16, sseBits: 7, sseRate: 6},
	{contexts: []contextKind{order0, order1, order2, order4}, tableBits: 18, sseBits: 8, sseRate: 6},
	{contexts: []contextKind{order0, order1, order2, order4, sparse}, tableBits: 18, sseBits: 8, sseRate: 6},
	{contexts: []contextKind{order0, order1, order2, order4, sparse}, tableBits: 19, sseBits: 10, sseRate: 5},
	{contexts: []contextKind{order0, order1, order2, order4, sparse}, tableBits: 20, sseBits: 12, sseRate: 5},
	{contexts: []contextKind{order0, order1, order2, order4, sparse}, tableBits: 21, sseBits: 14, sseRate: 4},
	{contexts: []contextKind{order0, order1, order2, order4, sparse}, tableBits: 22, sseBits: 16, sseRate: 4},
}

// levelFor clamps an out-of-range level to the default (matching the
// archive header's clamp-on-decode rule) and returns its configuration.
func levelFor(level int) levelConfig {
	if level < 0 || level > 9 {
		level = DefaultLevel
	}

	return levelTable[level]
}

// DefaultLevel is used when a requested or stored level falls outside
// [0..9].
const DefaultLevel = 5
