package replay

import (
	"github.com/eluv-io/errors-go"

	"github.com/arcap-io/replay-go/session"
	"github.com/arcap-io/replay-go/spatial"
	"github.com/arcap-io/replay-go/util/callback"
)

// Session returns the session the cursor replays.
func (c *Cursor) Session() *session.Session {
	return c.ds
}

// StartFrame returns the first frame index of the playback window.
func (c *Cursor) StartFrame() int {
	return c.startFrame
}

// EndFrame returns the last frame index of the playback window.
func (c *Cursor) EndFrame() int {
	return c.endFrame
}

// Looping reports whether infinite ping-pong looping is enabled.
func (c *Cursor) Looping() bool {
	return c.loop
}

// GoingForward reports the current logical playback direction.
func (c *Cursor) GoingForward() bool {
	return c.goingForward
}

// CurrentIndex returns the index of the current frame. An index outside the playback window means there is no
// current frame (pre-start, or finished before a Reset).
func (c *Cursor) CurrentIndex() int {
	return c.current
}

// CurrentFrame returns the current frame record, or nil if there is no current frame.
func (c *Cursor) CurrentFrame() *session.FrameRecord {
	if c.current < c.startFrame || c.current > c.endFrame {
		return nil
	}
	f, err := c.ds.Frame(c.current)
	if err != nil {
		return nil
	}
	return f
}

// Frame returns the frame record at the given absolute session index, independent of the cursor position.
// Returns an error if the index is outside [0, FrameCount-1]. Does not mutate any cursor state.
func (c *Cursor) Frame(index int) (*session.FrameRecord, error) {
	f, err := c.ds.Frame(index)
	if err != nil {
		return nil, errors.E("Cursor.Frame", err)
	}
	return f, nil
}

// Timestamp returns the effective timestamp of the current frame: its raw stored timestamp plus the
// accumulated loop offset. Returns 0 if there is no current frame.
func (c *Cursor) Timestamp() float64 {
	f := c.CurrentFrame()
	if f == nil {
		return 0
	}
	return f.Timestamp + c.tsOffset
}

// Pose returns the camera pose of the current frame, or the invalid-matrix sentinel if there is no current
// frame.
func (c *Cursor) Pose() spatial.Matrix4 {
	if f := c.CurrentFrame(); f != nil {
		return f.Pose
	}
	return spatial.Invalid()
}

// Projection returns the projection matrix of the current frame, or the invalid-matrix sentinel if there is
// no current frame.
func (c *Cursor) Projection() spatial.Matrix4 {
	if f := c.CurrentFrame(); f != nil {
		return f.Projection
	}
	return spatial.Invalid()
}

// Intrinsics returns the camera intrinsics of the current frame, or zero intrinsics if there is no current
// frame.
func (c *Cursor) Intrinsics() spatial.Intrinsics {
	if f := c.CurrentFrame(); f != nil {
		return f.Intrinsics
	}
	return spatial.Intrinsics{}
}

// TrackingState returns the tracking state of the current frame, or TrackingNone if there is no current
// frame.
func (c *Cursor) TrackingState() session.TrackingState {
	if f := c.CurrentFrame(); f != nil {
		return f.Tracking
	}
	return session.TrackingNone
}

// ImagePath returns the image payload path of the current frame, or "" if there is no current frame.
func (c *Cursor) ImagePath() string {
	if f := c.CurrentFrame(); f != nil {
		return f.ImagePath
	}
	return ""
}

// DepthPath returns the depth payload path of the current frame, or "" if there is no current frame.
func (c *Cursor) DepthPath() string {
	if f := c.CurrentFrame(); f != nil {
		return f.DepthPath
	}
	return ""
}

// DepthConfidencePath returns the depth confidence payload path of the current frame, or "" if there is no
// current frame.
func (c *Cursor) DepthConfidencePath() string {
	if f := c.CurrentFrame(); f != nil {
		return f.DepthConfidencePath
	}
	return ""
}

// ImageResolution returns the camera image resolution of the session.
func (c *Cursor) ImageResolution() (width, height int) {
	md := c.ds.Metadata()
	return md.ImageWidth, md.ImageHeight
}

// DepthResolution returns the depth map resolution of the session, 0x0 if no depth was captured.
func (c *Cursor) DepthResolution() (width, height int) {
	md := c.ds.Metadata()
	return md.DepthWidth, md.DepthHeight
}

// Framerate returns the capture framerate of the session.
func (c *Cursor) Framerate() float64 {
	return c.ds.Metadata().Framerate
}

// HasAutofocus reports whether autofocus was enabled during capture.
func (c *Cursor) HasAutofocus() bool {
	return c.ds.Metadata().Autofocus
}

// HasLocationServices reports whether location services were available during capture.
func (c *Cursor) HasLocationServices() bool {
	return c.ds.Metadata().LocationServices
}

// HasCompass reports whether compass heading was available during capture.
func (c *Cursor) HasCompass() bool {
	return c.ds.Metadata().Compass
}

// HasLiDAR reports whether depth was captured with a LiDAR sensor.
func (c *Cursor) HasLiDAR() bool {
	return c.ds.Metadata().LiDAR
}

// CurrentImage returns the image payload of the current frame. Returns nil (and no error) if there is no
// current frame.
//
// The cursor keeps a single-slot cache: as long as the cursor stays on the same frame, repeated calls return
// the cached buffer without touching storage. Moving to any other frame evicts the previous buffer entirely.
// This bounds memory to one image payload at a time, trading re-read cost for simplicity since playback is
// expected to proceed frame by frame.
func (c *Cursor) CurrentImage() ([]byte, error) {
	f := c.CurrentFrame()
	if f == nil {
		return nil, nil
	}
	if c.lastLoadedIndex == c.current {
		return c.lastLoadedImage, nil
	}

	e := errors.Template("Cursor.CurrentImage", errors.K.IO, "index", c.current, "path", f.ImagePath)
	if c.loader == nil {
		return nil, e(errors.K.Invalid, "reason", "no image loader configured")
	}
	bts, err := c.loader.ReadBytes(f.ImagePath)
	if err != nil {
		return nil, e(err)
	}

	c.lastLoadedIndex = c.current
	c.lastLoadedImage = bts
	return bts, nil
}

// OnFrameChanged registers a callback invoked with the new frame index after each successful step, inline
// before the step call returns. The returned handle unregisters the callback via RemoveFrameChanged.
func (c *Cursor) OnFrameChanged(fn func(index int)) callback.Handle {
	return c.onFrameChanged.Register(fn)
}

// RemoveFrameChanged unregisters a callback previously registered with OnFrameChanged.
func (c *Cursor) RemoveFrameChanged(handle callback.Handle) {
	c.onFrameChanged.Unregister(handle)
}
