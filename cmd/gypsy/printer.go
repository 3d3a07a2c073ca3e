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

package main

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/aldenreyes/gypsy"
)

// printer is a concurrency-safe, best-effort line writer, the same
// shape as the teacher CLI's Printer: a single buffered writer behind a
// mutex, flushed after every line.
type printer struct {
	mu sync.Mutex
	os *bufio.Writer
}

var log = printer{os: bufio.NewWriter(os.Stdout)}

func (p *printer) Println(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, _ := p.os.Write([]byte(msg + "\n")); w > 0 {
		_ = p.os.Flush()
	}
}

// progressPrinter drives the gypsy.Event stream down to an occasional
// percentage line, the way InfoPrinter throttles per-block events to a
// handful of printed lines instead of one per block. total is learned
// either at construction (Compress already knows the source size) or
// from EVT_AFTER_HEADER_DECODING (Decompress only learns it once the
// header is parsed).
type progressPrinter struct {
	verbose bool
	total   int64
	lastPct int
}

func newProgressPrinter(verbose bool, total int64) *progressPrinter {
	return &progressPrinter{verbose: verbose, total: total, lastPct: -1}
}

// ProcessEvent implements gypsy.Listener.
func (p *progressPrinter) ProcessEvent(evt *gypsy.Event) {
	if !p.verbose {
		return
	}

	switch evt.Type() {
	case gypsy.EVT_COMPRESSION_START, gypsy.EVT_DECOMPRESSION_START,
		gypsy.EVT_COMPRESSION_END, gypsy.EVT_DECOMPRESSION_END:
		return

	case gypsy.EVT_AFTER_HEADER_DECODING:
		p.total = evt.Size()

	case gypsy.EVT_PROGRESS:
		if p.total <= 0 {
			return
		}

		pct := int(evt.Size() * 100 / p.total)

		if pct == p.lastPct {
			return
		}

		p.lastPct = pct

		if pct%10 == 0 {
			log.Println(fmt.Sprintf("%d%%", pct))
		}
	}
}
