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
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, s []byte, level int) []byte {
	t.Helper()

	var archive bytes.Buffer
	require.NoError(t, Compress(&archive, bytes.NewReader(s), level, int64(len(s)), nil))

	var out bytes.Buffer
	h, err := Decompress(&out, bytes.NewReader(archive.Bytes()), nil)
	require.NoError(t, err)
	require.Equal(t, level, h.Level)
	require.Equal(t, int64(len(s)), h.Size)

	return out.Bytes()
}

func TestRoundTripEmptyFile(t *testing.T) {
	var archiveBuf bytes.Buffer
	require.NoError(t, Compress(&archiveBuf, bytes.NewReader(nil), 0, 0, nil))

	h, err := ReadHeader(bufio.NewReader(bytes.NewReader(archiveBuf.Bytes())))
	require.NoError(t, err)
	require.Equal(t, int64(0), h.Size)

	var hdr bytes.Buffer
	require.NoError(t, WriteHeader(&hdr, Header{Name: Name, Level: 0, Size: 0}))
	require.Equal(t, hdr.Len(), archiveBuf.Len(), "empty input must produce zero payload bytes")

	out := roundTrip(t, nil, 0)
	require.Empty(t, out)
}

func TestRoundTripSingleByte(t *testing.T) {
	s := []byte{0x41}

	var archiveBuf bytes.Buffer
	require.NoError(t, Compress(&archiveBuf, bytes.NewReader(s), 5, int64(len(s)), nil))
	require.Greater(t, archiveBuf.Len(), 0)

	got := roundTrip(t, s, 5)
	require.Equal(t, s, got)
}

func TestRoundTripRuns(t *testing.T) {
	s := bytes.Repeat([]byte{0x00}, 1024)

	for level := 0; level <= 9; level++ {
		var archiveBuf bytes.Buffer
		require.NoError(t, Compress(&archiveBuf, bytes.NewReader(s), level, int64(len(s)), nil))
		require.LessOrEqual(t, archiveBuf.Len(), 100+len(Name)+16, "level %d", level)

		got := roundTrip(t, s, level)
		require.Equal(t, s, got)
	}
}

func TestRoundTripRandomBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := make([]byte, 4096)
	rng.Read(s)

	var archiveBuf bytes.Buffer
	require.NoError(t, Compress(&archiveBuf, bytes.NewReader(s), 5, int64(len(s)), nil))

	var hdr bytes.Buffer
	require.NoError(t, WriteHeader(&hdr, Header{Name: Name, Level: 5, Size: int64(len(s))}))
	payload := archiveBuf.Len() - hdr.Len()
	require.InEpsilon(t, 4096, payload, 0.05)

	got := roundTrip(t, s, 5)
	require.Equal(t, s, got)
}

func TestRoundTripText(t *testing.T) {
	s := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 100))

	var archiveBuf bytes.Buffer
	require.NoError(t, Compress(&archiveBuf, bytes.NewReader(s), 9, int64(len(s)), nil))
	require.Less(t, archiveBuf.Len(), len(s)/10)

	got := roundTrip(t, s, 9)
	require.Equal(t, s, got)
}

func TestWrongMagicRejectedAtDecompress(t *testing.T) {
	raw := "other:0:0\r\n\x1A"

	_, err := Decompress(&bytes.Buffer{}, strings.NewReader(raw), nil)
	require.ErrorIs(t, err, ErrFormatMismatch)
}

func TestDeterministicCompression(t *testing.T) {
	s := []byte("repeatable input, repeatable output")

	var a, b bytes.Buffer
	require.NoError(t, Compress(&a, bytes.NewReader(s), 5, int64(len(s)), nil))
	require.NoError(t, Compress(&b, bytes.NewReader(s), 5, int64(len(s)), nil))
	require.Equal(t, a.Bytes(), b.Bytes())
}
