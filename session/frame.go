package session

import (
	"encoding/json"

	"github.com/eluv-io/errors-go"

	"github.com/arcap-io/replay-go/spatial"
)

// TrackingState describes the quality of the world tracking at the time a frame was captured.
type TrackingState int

const (
	// TrackingNone is the sentinel state reported when no frame is available.
	TrackingNone TrackingState = iota
	// TrackingNotAvailable means tracking had not been established yet.
	TrackingNotAvailable
	// TrackingLimited means tracking was running with degraded accuracy.
	TrackingLimited
	// TrackingNormal means tracking was fully established.
	TrackingNormal
)

var trackingStateNames = map[TrackingState]string{
	TrackingNone:         "none",
	TrackingNotAvailable: "notAvailable",
	TrackingLimited:      "limited",
	TrackingNormal:       "normal",
}

func (s TrackingState) String() string {
	if name, ok := trackingStateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s TrackingState) MarshalJSON() ([]byte, error) {
	name, ok := trackingStateNames[s]
	if !ok {
		return nil, errors.E("TrackingState.MarshalJSON", errors.K.Invalid, "state", int(s))
	}
	return json.Marshal(name)
}

func (s *TrackingState) UnmarshalJSON(bts []byte) error {
	e := errors.Template("TrackingState.UnmarshalJSON", errors.K.Invalid)
	var name string
	if err := json.Unmarshal(bts, &name); err != nil {
		return e(err)
	}
	for state, n := range trackingStateNames {
		if n == name {
			*s = state
			return nil
		}
	}
	return e("reason", "unknown tracking state", "state", name)
}

// FrameRecord is the metadata of one captured sensor sample: the camera pose and projection at capture time,
// the camera intrinsics, the tracking state and the paths of the image/depth payloads. Payload paths are
// stored relative to the session directory and resolved to absolute paths by Load.
type FrameRecord struct {
	Sequence            int                `json:"sequence"`                   // capture sequence number
	Timestamp           float64            `json:"timestamp"`                  // capture time in seconds, strictly increasing in storage order
	Pose                spatial.Matrix4    `json:"pose"`                       // camera-to-world transform
	Projection          spatial.Matrix4    `json:"projection"`                 // projection matrix at capture time
	Intrinsics          spatial.Intrinsics `json:"intrinsics"`                 // pinhole camera parameters
	Tracking            TrackingState      `json:"tracking"`                   // tracking quality at capture time
	ImagePath           string             `json:"image"`                      // path of the camera image payload
	DepthPath           string             `json:"depth,omitempty"`            // path of the depth map payload, if captured
	DepthConfidencePath string             `json:"depth_confidence,omitempty"` // path of the depth confidence map, if captured
}
