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

package archive

import (
	"bufio"
	"io"
	"time"

	"github.com/icza/bitio"
	"github.com/pkg/errors"

	"github.com/aldenreyes/gypsy"
	"github.com/aldenreyes/gypsy/coder"
	"github.com/aldenreyes/gypsy/model"
)

// initialP is the uniform prior fed to the coder for the very first bit
// of a stream, before the model has seen anything.
const initialP = 2048

// notify delivers evt to l if l is non-nil; every call site in this
// package routes through it so a nil Listener never needs a guard of
// its own.
func notify(l gypsy.Listener, evt *gypsy.Event) {
	if l != nil {
		l.ProcessEvent(evt)
	}
}

// Compress reads every byte of src, entropy-codes it at the given level
// (an out-of-range level is modelled at model.DefaultLevel by the model
// package, though the header records it as given) and writes a complete archive
// -- header followed by coded payload -- to dst. size must be the exact
// number of bytes Compress will read from src; it is written into the
// header verbatim.
func Compress(dst io.Writer, src io.Reader, level int, size int64, l gypsy.Listener) error {
	notify(l, gypsy.NewEventFromString(gypsy.EVT_COMPRESSION_START, "", time.Now()))

	bw := bufio.NewWriter(dst)

	if err := WriteHeader(bw, Header{Name: Name, Level: level, Size: size}); err != nil {
		return err
	}

	enc := coder.NewEncoder(bitio.NewWriter(bw))
	pred := model.NewPredictor(level)

	var word, part int32
	p := initialP

	br := bufio.NewReader(src)

	for i := int64(0); i < size; i++ {
		b, err := br.ReadByte()
		if err != nil {
			return errors.Wrap(err, "archive: short read during compress")
		}

		part = 1

		for j := 7; j >= 0; j-- {
			bit := byte((b >> uint(j)) & 1)

			if err := enc.EncodeBit(p, bit); err != nil {
				return errors.Wrap(err, "archive: encode bit")
			}

			byteFinished := j == 0

			if byteFinished {
				word = (word << 8) | int32(b)
				part = 1
			} else {
				part = (part << 1) | int32(bit)
			}

			p = pred.Step(word, part, bit, byteFinished)
		}

		notify(l, gypsy.NewEvent(gypsy.EVT_PROGRESS, i+1, time.Now()))
	}

	// An empty input never codes a bit, so the coder's interval is still
	// its untouched initial state; flushing it would write a spurious
	// disambiguating byte that has nothing to disambiguate. The archive
	// for size==0 is the header alone.
	if size > 0 {
		if err := enc.Flush(); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return err
	}

	notify(l, gypsy.NewEvent(gypsy.EVT_COMPRESSION_END, size, time.Now()))
	return nil
}

// Decompress reads a header from src, then reconstructs exactly as many
// bytes as the header records, writing them to dst. The level used is
// the one stored in the header (clamped to the default if out of
// range), never a caller-supplied value, per the header-parsing design
// note.
func Decompress(dst io.Writer, src io.Reader, l gypsy.Listener) (Header, error) {
	notify(l, gypsy.NewEventFromString(gypsy.EVT_DECOMPRESSION_START, "", time.Now()))

	br := bufio.NewReader(src)

	h, err := ReadHeader(br)
	if err != nil {
		return Header{}, err
	}

	notify(l, gypsy.NewEvent(gypsy.EVT_AFTER_HEADER_DECODING, h.Size, time.Now()))

	level := h.Level
	if level < 0 || level > 9 {
		level = model.DefaultLevel
	}

	dec, err := coder.NewDecoder(bitio.NewReader(br))
	if err != nil {
		return Header{}, err
	}

	pred := model.NewPredictor(level)
	bw := bufio.NewWriter(dst)

	var word, part int32
	p := initialP

	for i := int64(0); i < h.Size; i++ {
		var b byte

		part = 1

		for j := 7; j >= 0; j-- {
			bit, err := dec.DecodeBit(p)
			if err != nil {
				return Header{}, errors.Wrap(err, "archive: decode bit")
			}

			b = (b << 1) | bit

			byteFinished := j == 0

			if byteFinished {
				word = (word << 8) | int32(b)
				part = 1
			} else {
				part = (part << 1) | int32(bit)
			}

			p = pred.Step(word, part, bit, byteFinished)
		}

		if err := bw.WriteByte(b); err != nil {
			return Header{}, errors.Wrap(err, "archive: write decoded byte")
		}

		notify(l, gypsy.NewEvent(gypsy.EVT_PROGRESS, i+1, time.Now()))
	}

	if err := bw.Flush(); err != nil {
		return Header{}, err
	}

	notify(l, gypsy.NewEvent(gypsy.EVT_DECOMPRESSION_END, h.Size, time.Now()))
	return h, nil
}
