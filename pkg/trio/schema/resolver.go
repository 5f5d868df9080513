package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/BrandonKowalski/trio/pkg/trio/constants"
)

// Resolver turns an entry's declared locator into a usable one. It returns a
// path locator, an explicit NoLocator, or an error wrapping ErrLocatorNotFound.
type Resolver interface {
	Resolve(e Entry) (Locator, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(e Entry) (Locator, error)

func (f ResolverFunc) Resolve(e Entry) (Locator, error) { return f(e) }

// KeepResolver returns every declared locator unchanged.
var KeepResolver Resolver = ResolverFunc(func(e Entry) (Locator, error) {
	return e.Resource, nil
})

// FSResolver resolves locators against a file system.
//
// An explicit path must exist. An absent locator falls back to the
// conventional "<name><ext>" file when present and to NoLocator otherwise.
type FSResolver struct {
	FS   fs.FS
	Root string // Directory FS was opened on; empty for non-disk file systems
	Ext  string // Conventional suffix, defaults to constants.DefaultResourceExt
}

// DirResolver returns an FSResolver rooted at a directory on disk.
func DirResolver(root, ext string) *FSResolver {
	return &FSResolver{FS: os.DirFS(root), Root: root, Ext: ext}
}

func (r *FSResolver) Resolve(e Entry) (Locator, error) {
	switch e.Resource.State() {
	case LocatorNone:
		return NoLocator(), nil
	case LocatorPath:
		p, _ := e.Resource.Path()
		ok, err := r.exists(p)
		if err != nil {
			return Locator{}, err
		}
		if !ok {
			return Locator{}, fmt.Errorf("%w: %s", ErrLocatorNotFound, p)
		}
		return PathLocator(p), nil
	default:
		ext := r.Ext
		if ext == "" {
			ext = constants.DefaultResourceExt
		}
		p := e.Name + ext
		ok, err := r.exists(p)
		if err != nil {
			return Locator{}, err
		}
		if !ok {
			return NoLocator(), nil
		}
		return PathLocator(p), nil
	}
}

func (r *FSResolver) exists(p string) (bool, error) {
	p = path.Clean(p)
	if !fs.ValidPath(p) {
		return false, fmt.Errorf("%w: invalid path %q", ErrLocatorNotFound, p)
	}
	info, err := fs.Stat(r.FS, p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
