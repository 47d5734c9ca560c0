// Package render composes the typed output of a turn and renders rooms.
package render

import (
	"strings"

	"github.com/nathoo/roomcore/types"
)

// Output collects the segments produced during one step. At most one exits
// segment exists and it is always last.
type Output struct {
	segments []types.Segment
	exits    *types.Segment
}

// Title adds a heading segment.
func (o *Output) Title(text string) { o.add(types.SegTitle, text) }

// Say adds a narrative text segment.
func (o *Output) Say(text string) { o.add(types.SegText, text) }

// Event adds a highlighted event segment (attacks, global conditions).
func (o *Output) Event(text string) { o.add(types.SegEvent, text) }

// SetExits replaces the exits segment.
func (o *Output) SetExits(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	o.exits = &types.Segment{Kind: types.SegExits, Text: text}
}

// Empty reports whether nothing has been written yet.
func (o *Output) Empty() bool {
	return len(o.segments) == 0 && o.exits == nil
}

// Segments returns the collected segments, exits last.
func (o *Output) Segments() []types.Segment {
	out := make([]types.Segment, 0, len(o.segments)+1)
	out = append(out, o.segments...)
	if o.exits != nil {
		out = append(out, *o.exits)
	}
	return out
}

func (o *Output) add(kind types.SegmentKind, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	o.segments = append(o.segments, types.Segment{Kind: kind, Text: text})
}
