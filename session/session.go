// Package session provides the data model of a recorded capture session: the ordered list of frame records
// produced by the capture device, the session-level metadata, and the loaders used to materialize frame
// payloads from storage.
package session

import (
	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"github.com/eluv-io/utc-go"
	"github.com/google/uuid"
)

var log = elog.Get("/arcap/session")

// Metadata is the immutable session-level metadata of a recorded capture session.
type Metadata struct {
	ID               uuid.UUID `json:"id"`                // unique session identifier
	Path             string    `json:"-"`                 // session directory, set by Load
	RecordedAt       utc.UTC   `json:"recorded_at"`       // wall clock time the recording started
	ImageWidth       int       `json:"image_width"`       // camera image width in pixels
	ImageHeight      int       `json:"image_height"`      // camera image height in pixels
	DepthWidth       int       `json:"depth_width"`       // depth map width in pixels, 0 if no depth was captured
	DepthHeight      int       `json:"depth_height"`      // depth map height in pixels, 0 if no depth was captured
	Framerate        float64   `json:"framerate"`         // capture framerate in frames per second
	Autofocus        bool      `json:"autofocus"`         // autofocus was enabled during capture
	LocationServices bool      `json:"location_services"` // location services were available during capture
	Compass          bool      `json:"compass"`           // compass heading was available during capture
	LiDAR            bool      `json:"lidar"`             // depth was captured with a LiDAR sensor
}

// Session is an immutable, timestamp-ordered recording of sensor frames. Sessions are created once via Load or
// NewSession and never mutated; all navigation state lives in replay.Cursor.
type Session struct {
	md     *Metadata
	frames []*FrameRecord
}

// NewSession creates a session from the given metadata and frame records. The frame list must be non-empty and
// its timestamps strictly increasing in storage order.
func NewSession(md *Metadata, frames []*FrameRecord) (*Session, error) {
	e := errors.Template("session.NewSession", errors.K.Invalid)
	if md == nil {
		return nil, e("reason", "nil metadata")
	}
	if len(frames) == 0 {
		return nil, e("reason", "empty frame list")
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].Timestamp <= frames[i-1].Timestamp {
			return nil, e("reason", "non-monotonic frame timestamps",
				"index", i,
				"timestamp", frames[i].Timestamp,
				"previous", frames[i-1].Timestamp)
		}
	}
	return &Session{md: md, frames: frames}, nil
}

// Metadata returns the session-level metadata.
func (s *Session) Metadata() *Metadata {
	return s.md
}

// FrameCount returns the number of frames in the session.
func (s *Session) FrameCount() int {
	return len(s.frames)
}

// Frame returns the frame record at the given 0-based index. Returns an error if the index is outside
// [0, FrameCount()-1].
func (s *Session) Frame(index int) (*FrameRecord, error) {
	if index < 0 || index >= len(s.frames) {
		return nil, errors.E("session.Frame", errors.K.Invalid,
			"reason", "frame index out of range",
			"index", index,
			"frame_count", len(s.frames))
	}
	return s.frames[index], nil
}

// Frames returns the ordered frame records. The returned slice is owned by the session and must not be
// modified.
func (s *Session) Frames() []*FrameRecord {
	return s.frames
}
