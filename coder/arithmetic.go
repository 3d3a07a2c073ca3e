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

// Package coder implements the binary arithmetic coder (component E): a
// 32-bit range coder that narrows [low, high) by a caller-supplied
// probability on every bit and renormalises by emitting or consuming
// whole bytes once low and high agree on their top byte.
package coder

import (
	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

const (
	topMask  = uint32(0xFF000000)
	probBits = 12
	probMax  = uint32(1) << probBits // 4096, matching the model's p domain

	// minRange is the floor on high-low immediately after renormalisation:
	// below this, multiplying by a 12-bit p could underflow mid to low or
	// high, violating the coder's core invariant (spec 4.E invariant 2).
	minRange = uint32(1) << probBits
)

// ErrInvariant reports a broken coder-interval invariant: high <= low, or
// high-low fell below minRange after renormalisation. Renormalisation
// keeps high-low at or above minRange, so it only ever surfaces when the
// model feeds the coder a prediction outside [0,4096], which is a
// programming error, not a data error.
var ErrInvariant = errors.New("coder: interval invariant violated")

// Encoder narrows [low, high) one bit at a time and writes renormalised
// bytes to the underlying stream as they become fixed.
type Encoder struct {
	bw        *bitio.Writer
	low, high uint32
}

// NewEncoder wraps w for arithmetic-coded output. The returned Encoder
// owns no buffering beyond bitio's; callers must call Flush when the
// byte sequence is exhausted.
func NewEncoder(w *bitio.Writer) *Encoder {
	return &Encoder{bw: w, low: 0, high: 0xFFFFFFFF}
}

// mid splits [low, high) at the point p/4096 of the way across, so that
// the 1-branch gets the lower p/4096 share of the interval - matching the
// model's convention that p is the probability the next bit is 1.
func mid(low, high uint32, p int) uint32 {
	return low + uint32((uint64(high-low)>>probBits))*uint32(p)
}

// EncodeBit narrows the interval according to p (the predicted
// probability, scaled to [0,4096], that bit is 1) and the bit actually
// observed, then renormalises, writing out any bytes that are now fixed.
func (e *Encoder) EncodeBit(p int, bit byte) error {
	if e.high <= e.low || e.high-e.low < minRange {
		return ErrInvariant
	}

	m := mid(e.low, e.high, p)

	if bit == 1 {
		e.high = m
	} else {
		e.low = m + 1
	}

	// When the interval has shrunk below minRange while still straddling
	// a top-byte boundary, its upper part is dropped so that low and high
	// share a top byte that can be shifted out.
	for (e.low^e.high)&topMask == 0 || e.high-e.low < minRange {
		if (e.low^e.high)&topMask != 0 {
			e.high = e.low | ^topMask
		}

		if err := e.bw.WriteByte(byte(e.high >> 24)); err != nil {
			return errors.Wrap(err, "coder: write renormalised byte")
		}

		e.low <<= 8
		e.high = e.high<<8 | 0xFF
	}

	return nil
}

// Flush emits the bytes needed to disambiguate the final interval. The
// top byte of low, followed by the 0xFF bytes the Decoder substitutes at
// end of input, always lies inside [low, high) (spec 4.E); no
// additional trailing bytes are required for this coder's fixed-length
// payload convention (see DESIGN.md, "Open question - flush length").
func (e *Encoder) Flush() error {
	if err := e.bw.WriteByte(byte(e.low >> 24)); err != nil {
		return errors.Wrap(err, "coder: flush")
	}

	return nil
}

// Decoder mirrors Encoder: it tracks the same [low, high) interval plus a
// value register loaded from the compressed stream, and recovers the bit
// sequence that produced it.
type Decoder struct {
	br               *bitio.Reader
	low, high, value uint32
}

// NewDecoder wraps r for arithmetic-coded input and primes value with the
// first four bytes of the stream, as required before the first DecodeBit
// call. Short input (fewer than four bytes available) is padded with
// 0xFF bytes on EOF, so that the single byte Encoder.Flush writes (the
// top byte of low) reads back as a value inside the final interval.
func NewDecoder(r *bitio.Reader) (*Decoder, error) {
	d := &Decoder{br: r, low: 0, high: 0xFFFFFFFF}

	for i := 0; i < 4; i++ {
		b, err := d.br.ReadByte()
		if err != nil {
			b = 0xFF
		}

		d.value = d.value<<8 | uint32(b)
	}

	return d, nil
}

// DecodeBit computes the same split EncodeBit would for p, decides which
// side of it value falls on, and renormalises identically to the
// encoder, pulling a fresh byte from the stream whenever renormalisation
// needs one. Pulling directly from an io.Reader (via bitio) replaces the
// source's try_add_byte/ungetc push-back convention with Go's ordinary
// pull-based Reader - there is no surplus byte to push back.
func (d *Decoder) DecodeBit(p int) (byte, error) {
	if d.high <= d.low || d.high-d.low < minRange {
		return 0, ErrInvariant
	}

	m := mid(d.low, d.high, p)

	var bit byte

	if d.value <= m {
		bit = 1
		d.high = m
	} else {
		bit = 0
		d.low = m + 1
	}

	for (d.low^d.high)&topMask == 0 || d.high-d.low < minRange {
		if (d.low^d.high)&topMask != 0 {
			d.high = d.low | ^topMask
		}

		b, err := d.br.ReadByte()
		if err != nil {
			b = 0xFF
		}

		d.low <<= 8
		d.high = d.high<<8 | 0xFF
		d.value = d.value<<8 | uint32(b)
	}

	return bit, nil
}
