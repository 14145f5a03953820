package session_test

import (
	"path/filepath"
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arcap-io/replay-go/session"
)

const testMetadata = `{
  "id": "7d2c9a9e-5f6a-4c59-9e7c-2f6f2a1a9b77",
  "recorded_at": "2026-03-14T10:21:30.000Z",
  "image_width": 1920,
  "image_height": 1080,
  "depth_width": 256,
  "depth_height": 192,
  "framerate": 60,
  "autofocus": true,
  "location_services": false,
  "compass": true,
  "lidar": true
}`

const testFrames = `[
  {
    "sequence": 0,
    "timestamp": 0.0,
    "pose": [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1],
    "projection": [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1],
    "intrinsics": {"fx": 1000, "fy": 1000, "ox": 960, "oy": 540},
    "tracking": "normal",
    "image": "frames/000000.jpg",
    "depth": "depth/000000.bin"
  },
  {
    "sequence": 1,
    "timestamp": 0.0166,
    "pose": [1,0,0,0.5, 0,1,0,0, 0,0,1,0, 0,0,0,1],
    "projection": [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1],
    "intrinsics": {"fx": 1000, "fy": 1000, "ox": 960, "oy": 540},
    "tracking": "limited",
    "image": "frames/000001.jpg",
    "depth": "depth/000001.bin",
    "depth_confidence": "confidence/000001.bin"
  }
]`

func writeTestSession(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, session.MetadataFile), []byte(testMetadata), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, session.FramesFile), []byte(testFrames), 0o644))
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/captures/office-scan"
	writeTestSession(t, fs, dir)

	s, err := session.Load(fs, dir)
	require.NoError(t, err)

	md := s.Metadata()
	require.Equal(t, "7d2c9a9e-5f6a-4c59-9e7c-2f6f2a1a9b77", md.ID.String())
	require.Equal(t, dir, md.Path)
	require.Equal(t, 1920, md.ImageWidth)
	require.Equal(t, 1080, md.ImageHeight)
	require.Equal(t, 256, md.DepthWidth)
	require.Equal(t, 192, md.DepthHeight)
	require.Equal(t, 60.0, md.Framerate)
	require.True(t, md.Autofocus)
	require.False(t, md.LocationServices)
	require.True(t, md.Compass)
	require.True(t, md.LiDAR)

	require.Equal(t, 2, s.FrameCount())

	f, err := s.Frame(0)
	require.NoError(t, err)
	require.Equal(t, 0, f.Sequence)
	require.Equal(t, session.TrackingNormal, f.Tracking)
	require.Equal(t, filepath.Join(dir, "frames/000000.jpg"), f.ImagePath)
	require.Equal(t, filepath.Join(dir, "depth/000000.bin"), f.DepthPath)
	require.Equal(t, "", f.DepthConfidencePath)
	require.True(t, f.Pose.IsValid())
	require.Equal(t, 1000.0, f.Intrinsics.Fx)

	f, err = s.Frame(1)
	require.NoError(t, err)
	require.Equal(t, session.TrackingLimited, f.Tracking)
	require.Equal(t, filepath.Join(dir, "confidence/000001.bin"), f.DepthConfidencePath)
	x, _, _ := f.Pose.Translation()
	require.Equal(t, 0.5, x)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		_, err := session.Load(fs, "/nope")
		require.Error(t, err)
	})

	t.Run("bad metadata json", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		dir := "/captures/bad"
		writeTestSession(t, fs, dir)
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, session.MetadataFile), []byte("{"), 0o644))
		_, err := session.Load(fs, dir)
		require.Error(t, err)
		require.True(t, errors.IsKind(errors.K.Invalid, err))
	})

	t.Run("bad frames json", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		dir := "/captures/bad"
		writeTestSession(t, fs, dir)
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, session.FramesFile), []byte("[{"), 0o644))
		_, err := session.Load(fs, dir)
		require.Error(t, err)
		require.True(t, errors.IsKind(errors.K.Invalid, err))
	})

	t.Run("empty frame list", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		dir := "/captures/empty"
		writeTestSession(t, fs, dir)
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, session.FramesFile), []byte("[]"), 0o644))
		_, err := session.Load(fs, dir)
		require.Error(t, err)
	})

	t.Run("unknown tracking state", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		dir := "/captures/tracking"
		writeTestSession(t, fs, dir)
		frames := `[{"sequence":0,"timestamp":0,"tracking":"wobbly","image":"a.jpg"}]`
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, session.FramesFile), []byte(frames), 0o644))
		_, err := session.Load(fs, dir)
		require.Error(t, err)
	})
}
