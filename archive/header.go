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

// Package archive implements the driver (component F): it owns the
// per-bit loop that ties the model (package model) to the coder
// (package coder), and the self-describing header that brackets the
// coded payload.
package archive

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Name is the program identifier written into and checked against every
// header. A header whose name does not match this is rejected as
// format-mismatch.
const Name = "gypsy"

// headerSuffix terminates the header line; 0x1A (SUB) is not a valid
// byte inside the decimal fields that precede it, so scanning for it is
// unambiguous.
const headerSuffix = "\r\n\x1A"

// ErrFormatMismatch reports a header whose program identifier does not
// match Name.
var ErrFormatMismatch = errors.New("archive: not a " + Name + " file")

// Header is the parsed form of an archive's leading line:
// "<name>:<level>:<plaintext-size>\r\n\x1A".
type Header struct {
	Name  string
	Level int
	Size  int64
}

// WriteHeader writes h in wire format to w. h.Name is not re-validated;
// callers constructing a Header for encoding should use Name.
func WriteHeader(w io.Writer, h Header) error {
	_, err := fmt.Fprintf(w, "%s:%d:%d%s", h.Name, h.Level, h.Size, headerSuffix)
	if err != nil {
		return errors.Wrap(err, "archive: write header")
	}

	return nil
}

// ReadHeader reads a header line from r, stopping at the 0x1A
// terminator. Unlike the source's fscanf-based scan, this reads into a
// buffer first and then splits on ':', so a truncated or malformed
// header is reported as an error instead of left as undefined behaviour.
//
// An out-of-range level clamps to model.DefaultLevel by the caller, not
// here: Header preserves exactly what was on the wire.
func ReadHeader(r *bufio.Reader) (Header, error) {
	raw, err := r.ReadString(0x1A)
	if err != nil {
		return Header{}, errors.Wrap(err, "archive: read header")
	}

	line := strings.TrimSuffix(raw, headerSuffix)
	if line == raw {
		return Header{}, errors.New("archive: header missing terminator")
	}

	fields := strings.SplitN(line, ":", 3)
	if len(fields) != 3 {
		return Header{}, errors.New("archive: malformed header")
	}

	if fields[0] != Name {
		return Header{}, ErrFormatMismatch
	}

	level, err := strconv.Atoi(fields[1])
	if err != nil {
		return Header{}, errors.Wrap(err, "archive: malformed level field")
	}

	size, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Header{}, errors.Wrap(err, "archive: malformed size field")
	}

	return Header{Name: fields[0], Level: level, Size: size}, nil
}
