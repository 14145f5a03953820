package session

import (
	"os"

	"github.com/eluv-io/errors-go"
	"github.com/spf13/afero"

	"github.com/arcap-io/replay-go/util/lru"
)

// ImageLoader loads the raw bytes of a frame payload from its path. Implementations do not cache; callers
// layer their own caching on top (see CachedLoader and the single-slot cache in replay.Cursor).
type ImageLoader interface {
	// ReadBytes returns the raw bytes of the payload at the given path. Fails if the file does not exist.
	ReadBytes(path string) ([]byte, error)
}

// NewFsLoader creates an ImageLoader that reads payloads from the given filesystem.
func NewFsLoader(fs afero.Fs) *FsLoader {
	return &FsLoader{fs: fs}
}

// FsLoader is an ImageLoader backed by an afero filesystem.
type FsLoader struct {
	fs afero.Fs
}

func (l *FsLoader) ReadBytes(path string) ([]byte, error) {
	e := errors.Template("FsLoader.ReadBytes", errors.K.IO, "path", path)
	if path == "" {
		return nil, e(errors.K.Invalid, "reason", "empty path")
	}
	bts, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, e(errors.K.NotExist, err)
		}
		return nil, e(err)
	}
	return bts, nil
}

// NewCachedLoader wraps the given loader with an LRU cache of the given size, keyed by payload path. Intended
// for consumers that random-access frames; sequential playback is already served by the cursor's single-slot
// cache.
func NewCachedLoader(inner ImageLoader, size int) *CachedLoader {
	return &CachedLoader{
		inner: inner,
		cache: lru.New[string, []byte](size),
	}
}

// CachedLoader is an ImageLoader that caches payloads of the wrapped loader in an LRU cache.
type CachedLoader struct {
	inner ImageLoader
	cache *lru.Cache[string, []byte]
}

func (l *CachedLoader) ReadBytes(path string) ([]byte, error) {
	bts, _, err := l.cache.GetOrCreate(path, func() ([]byte, error) {
		return l.inner.ReadBytes(path)
	})
	return bts, err
}

// Len returns the number of cached payloads.
func (l *CachedLoader) Len() int {
	return l.cache.Len()
}
