// Package replay implements deterministic playback of recorded capture sessions. Its core is Cursor, a
// bidirectional, loopable frame cursor over the timestamp-ordered frames of a session.Session, used to replay
// a captured session in place of a live sensor feed.
package replay

import (
	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"

	"github.com/arcap-io/replay-go/session"
	"github.com/arcap-io/replay-go/util/callback"
)

var log = elog.Get("/arcap/replay")

// Cursor is a bidirectional frame cursor over the frames of a recorded session. It steps through a playback
// window [StartFrame, EndFrame] one frame at a time and optionally ping-pongs at the window boundaries
// indefinitely. Across direction reversals the effective timestamp (see Timestamp) keeps increasing by the
// raw inter-frame deltas: an internal offset absorbs the discontinuity of moving backward in storage order,
// so consumers never observe a backward timestamp jump.
//
// A cursor starts one position before the playback window ("not yet started"): there is no current frame
// until the first successful step. Per-frame accessors return well-defined sentinels in that state.
//
// Cursors are not safe for concurrent use; they are meant to be driven by a single playback loop per session.
type Cursor struct {
	ds     *session.Session
	loader session.ImageLoader

	startFrame int  // first frame of the playback window, inclusive
	endFrame   int  // last frame of the playback window, inclusive
	current    int  // index of the current frame; startFrame-1 before the first step
	loop       bool // ping-pong at window boundaries instead of finishing

	goingForward bool    // current logical playback direction
	tsOffset     float64 // accumulated timestamp offset, adjusted on backward storage-order steps
	finished     bool    // set when a step past a boundary fails with looping disabled

	lastLoadedIndex int    // frame index of the cached image payload, -1 if none
	lastLoadedImage []byte // the cached image payload

	onFrameChanged *callback.Registry[int]
}

// NewCursor creates a cursor over all frames of the given session. The cursor starts one position before the
// playback window; the first AdvanceToNextFrame moves it to the start frame. Use WithLoop and WithWindow to
// configure looping and a sub-range of the session.
//
// The loader is used by CurrentImage to materialize image payloads; it may be nil for consumers that only
// replay poses and timestamps.
func NewCursor(ds *session.Session, loader session.ImageLoader) (*Cursor, error) {
	if ds == nil {
		return nil, errors.E("replay.NewCursor", errors.K.Invalid, "reason", "nil session")
	}
	c := &Cursor{
		ds:              ds,
		loader:          loader,
		startFrame:      0,
		endFrame:        ds.FrameCount() - 1,
		lastLoadedIndex: -1,
		onFrameChanged:  callback.NewRegistry[int](),
	}
	c.Reset()
	return c, nil
}

// WithLoop enables or disables infinite ping-pong looping and returns the cursor for call chaining.
func (c *Cursor) WithLoop(loop bool) *Cursor {
	c.loop = loop
	return c
}

// WithWindow restricts playback to the inclusive frame range [start, end] and returns the cursor for call
// chaining. Invalid bounds are recovered, not fatal: a start outside [0, FrameCount-1] is clamped to 0 and an
// end outside (start, FrameCount-1] is clamped to FrameCount-1, each with a diagnostic warning. The cursor is
// reset to the pre-start position of the new window.
func (c *Cursor) WithWindow(start, end int) *Cursor {
	last := c.ds.FrameCount() - 1
	if start < 0 || start > last {
		log.Warn("invalid start frame, clamping to 0", "start", start, "frame_count", c.ds.FrameCount())
		start = 0
	}
	if end <= start || end > last {
		log.Warn("invalid end frame, clamping to last frame", "end", end, "start", start, "frame_count", c.ds.FrameCount())
		end = last
	}
	c.startFrame = start
	c.endFrame = end
	c.Reset()
	return c
}

// Reset returns the cursor to its pristine pre-start state: one position before the start frame, playing
// forward, zero timestamp offset, not finished. Bounds and loop configuration are retained.
func (c *Cursor) Reset() {
	c.current = c.startFrame - 1
	c.tsOffset = 0
	c.goingForward = true
	c.finished = false
}

// StepForward moves the cursor one frame forward in storage order. Returns false without changing state if the
// cursor is at (or past) the end frame.
func (c *Cursor) StepForward() bool {
	if c.current >= c.endFrame {
		return false
	}
	c.current++
	c.onFrameChanged.Notify(c.current)
	return true
}

// StepBackward moves the cursor one frame backward in storage order. Returns false without changing state if
// the cursor is at (or before) the start frame.
//
// Even though the cursor moves backward in storage order, the effective timestamp keeps advancing: the
// timestamp offset is recomputed so that the new effective timestamp equals the one being left plus the raw
// time gap between the two adjacent frames.
func (c *Cursor) StepBackward() bool {
	if c.current <= c.startFrame {
		return false
	}

	prevRaw := c.rawTimestamp(c.current)
	prevTotal := prevRaw + c.tsOffset

	c.current--

	currRaw := c.rawTimestamp(c.current)
	delta := prevRaw - currRaw
	c.tsOffset = prevTotal + delta - currRaw

	c.onFrameChanged.Notify(c.current)
	return true
}

// AdvanceToNextFrame moves the cursor one frame in the logical forward direction. At a window boundary with
// looping enabled, the logical direction flips and the cursor immediately steps in the new direction, so a
// boundary hit never stalls a tick. Without looping, a boundary hit marks the cursor finished and returns
// false.
func (c *Cursor) AdvanceToNextFrame() bool {
	return c.advance(true)
}

// RetreatToPreviousFrame moves the cursor one frame against the logical forward direction, with the same
// loop-flip and finish semantics as AdvanceToNextFrame.
func (c *Cursor) RetreatToPreviousFrame() bool {
	return c.advance(false)
}

// advance performs one logical step. The storage-order direction is the logical direction when forward is
// true, its opposite otherwise. A second step after a direction flip is only attempted for windows with more
// than one frame; a single-frame window would flip forever without ever stepping.
func (c *Cursor) advance(forward bool) bool {
	if c.step(forward == c.goingForward) {
		return true
	}
	if c.loop && c.startFrame < c.endFrame {
		c.goingForward = !c.goingForward
		if c.step(forward == c.goingForward) {
			return true
		}
	}
	c.finished = true
	return false
}

func (c *Cursor) step(forward bool) bool {
	if forward {
		return c.StepForward()
	}
	return c.StepBackward()
}

// PeekNextIndex returns the frame index the next AdvanceToNextFrame call would land on, without mutating any
// state. At a window boundary the returned index is the reflected one when looping is enabled, and the
// boundary itself (clamped, not wrapped) when looping is disabled.
func (c *Cursor) PeekNextIndex() int {
	next := c.current + 1
	if !c.goingForward {
		next = c.current - 1
	}
	if next > c.endFrame {
		if c.loop && c.startFrame < c.endFrame {
			return c.endFrame - 1
		}
		return c.endFrame
	}
	if next < c.startFrame {
		if c.loop && c.startFrame < c.endFrame {
			return c.startFrame + 1
		}
		return c.startFrame
	}
	return next
}

// Finished reports whether playback has completed: a step failed at a window boundary with looping disabled.
// Reset clears the flag.
func (c *Cursor) Finished() bool {
	return c.finished
}

// rawTimestamp returns the raw stored timestamp of the frame at the given index, which must be within the
// session.
func (c *Cursor) rawTimestamp(index int) float64 {
	f, err := c.ds.Frame(index)
	if err != nil {
		return 0
	}
	return f.Timestamp
}
