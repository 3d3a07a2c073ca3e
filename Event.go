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

package gypsy

import (
	"fmt"
	"time"
)

const (
	EVT_COMPRESSION_START     = 0 // Compression starts
	EVT_DECOMPRESSION_START   = 1 // Decompression starts
	EVT_AFTER_HEADER_DECODING = 2 // Header parsed, level/size known
	EVT_PROGRESS              = 3 // A source byte has been coded
	EVT_COMPRESSION_END       = 4 // Compression ends
	EVT_DECOMPRESSION_END     = 5 // Decompression ends
)

// Event is a compression/decompression progress notification. There is
// no transform stage and no checksum in this engine, so Event carries
// only what the driver loop (archive.Compress/Decompress) actually
// knows: a type, a byte count, and a timestamp.
type Event struct {
	eventType int
	size      int64
	eventTime time.Time
	msg       string
}

// NewEventFromString creates an Event that wraps a message, for the
// start/end notifications that have nothing to count.
func NewEventFromString(evtType int, msg string, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, msg: msg, eventTime: evtTime}
}

// NewEvent creates an Event carrying a byte count, for EVT_PROGRESS.
func NewEvent(evtType int, size int64, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, size: size, eventTime: evtTime}
}

// Type returns the event type.
func (e *Event) Type() int {
	return e.eventType
}

// Time returns when the event was created.
func (e *Event) Time() time.Time {
	return e.eventTime
}

// Size returns the byte count carried by an EVT_PROGRESS event.
func (e *Event) Size() int64 {
	return e.size
}

// String returns a human-readable representation of this event. If the
// event wraps a message, the message is returned unchanged; otherwise a
// line is built from the fields.
func (e *Event) String() string {
	if len(e.msg) > 0 {
		return e.msg
	}

	t := ""

	switch e.eventType {
	case EVT_COMPRESSION_START:
		t = "COMPRESSION_START"

	case EVT_DECOMPRESSION_START:
		t = "DECOMPRESSION_START"

	case EVT_AFTER_HEADER_DECODING:
		t = "AFTER_HEADER_DECODING"

	case EVT_PROGRESS:
		t = "PROGRESS"

	case EVT_COMPRESSION_END:
		t = "COMPRESSION_END"

	case EVT_DECOMPRESSION_END:
		t = "DECOMPRESSION_END"
	}

	return fmt.Sprintf("{ \"type\":\"%s\", \"size\":%d, \"time\":%d }", t, e.size,
		e.eventTime.UnixNano()/1000000)
}

// Listener is implemented by event processors interested in compression
// or decompression progress.
type Listener interface {
	ProcessEvent(evt *Event)
}
