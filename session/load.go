package session

import (
	"encoding/json"
	"path/filepath"

	"github.com/eluv-io/errors-go"
	"github.com/spf13/afero"
)

const (
	// MetadataFile is the name of the session metadata file within a session directory.
	MetadataFile = "metadata.json"
	// FramesFile is the name of the frame index file within a session directory.
	FramesFile = "frames.json"
)

// Load reads a recorded session from the given directory. The directory must contain a metadata.json file with
// the session metadata and a frames.json file with the ordered frame records. Frame payload paths are resolved
// relative to the session directory.
func Load(fs afero.Fs, dir string) (*Session, error) {
	e := errors.Template("session.Load", errors.K.IO, "dir", dir)

	bts, err := afero.ReadFile(fs, filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, e(err, "reason", "failed to read session metadata")
	}
	md := &Metadata{}
	err = json.Unmarshal(bts, md)
	if err != nil {
		return nil, e(errors.K.Invalid, err, "reason", "failed to parse session metadata")
	}
	md.Path = dir

	bts, err = afero.ReadFile(fs, filepath.Join(dir, FramesFile))
	if err != nil {
		return nil, e(err, "reason", "failed to read frame index")
	}
	var frames []*FrameRecord
	err = json.Unmarshal(bts, &frames)
	if err != nil {
		return nil, e(errors.K.Invalid, err, "reason", "failed to parse frame index")
	}

	for _, f := range frames {
		f.ImagePath = resolve(dir, f.ImagePath)
		f.DepthPath = resolve(dir, f.DepthPath)
		f.DepthConfidencePath = resolve(dir, f.DepthConfidencePath)
	}

	s, err := NewSession(md, frames)
	if err != nil {
		return nil, e(err)
	}

	log.Debug("session loaded", "dir", dir, "id", md.ID, "frames", len(frames))
	return s, nil
}

// resolve joins a payload path with the session directory unless the path is empty or already absolute.
func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
