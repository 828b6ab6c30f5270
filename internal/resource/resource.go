package resource

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

const (
	// ClasspathPrefix marks a location relative to the classpath root.
	ClasspathPrefix = "classpath:"
	// FilePrefix marks a location on the OS file system.
	FilePrefix = "file:"
	// OptionalPrefix marks a location that may be missing without failing the load.
	OptionalPrefix = "optional:"
)

// Resource is a named, readable piece of configuration content.
type Resource interface {
	// Description identifies the resource in logs, errors and property origins.
	Description() string
	Exists() bool
	Open() (io.ReadCloser, error)
}

// ReadAll reads the entire resource into memory.
func ReadAll(res Resource) ([]byte, error) {
	rc, err := res.Open()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, res.Description())
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrRead, res.Description(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrRead, res.Description(), err)
	}
	return data, nil
}

type fsResource struct {
	fsys fs.FS
	name string
	desc string
}

// FromFS returns a resource for name inside fsys, described as desc.
func FromFS(fsys fs.FS, name, desc string) Resource {
	return &fsResource{fsys: fsys, name: name, desc: desc}
}

func (r *fsResource) Description() string {
	return r.desc
}

func (r *fsResource) Exists() bool {
	if !fs.ValidPath(r.name) {
		return false
	}
	info, err := fs.Stat(r.fsys, r.name)
	return err == nil && !info.IsDir()
}

func (r *fsResource) Open() (io.ReadCloser, error) {
	if !fs.ValidPath(r.name) {
		return nil, &fs.PathError{Op: "open", Path: r.name, Err: fs.ErrInvalid}
	}
	return r.fsys.Open(r.name)
}

type fileResource struct {
	path string
}

// FromFile returns a resource backed by a path on the OS file system.
func FromFile(p string) Resource {
	return &fileResource{path: p}
}

func (r *fileResource) Description() string {
	return FilePrefix + r.path
}

func (r *fileResource) Exists() bool {
	info, err := os.Stat(r.path)
	return err == nil && !info.IsDir()
}

func (r *fileResource) Open() (io.ReadCloser, error) {
	return os.Open(r.path)
}

// Resolver turns location strings into resources.
type Resolver struct {
	classpath fs.FS
}

// NewResolver creates a Resolver whose classpath: locations resolve inside classpath.
func NewResolver(classpath fs.FS) *Resolver {
	return &Resolver{classpath: classpath}
}

// Resolve returns the resource for a file location. Locations prefixed with
// classpath: are looked up in the classpath root, everything else (with or
// without a file: prefix) on the OS file system.
func (r *Resolver) Resolve(location string) Resource {
	if rest, ok := strings.CutPrefix(location, ClasspathPrefix); ok {
		name := path.Clean(strings.TrimPrefix(rest, "/"))
		return FromFS(r.classpath, name, ClasspathPrefix+"/"+name)
	}
	return FromFile(strings.TrimPrefix(location, FilePrefix))
}

// Location is a parsed configuration location.
type Location struct {
	// Value is the location without the optional: prefix.
	Value    string
	Optional bool
}

// ParseLocation splits the optional: marker off a location string.
func ParseLocation(raw string) Location {
	raw = strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(raw, OptionalPrefix); ok {
		return Location{Value: rest, Optional: true}
	}
	return Location{Value: raw}
}

// IsDirectory reports whether the location names a directory to search.
func (l Location) IsDirectory() bool {
	return strings.HasSuffix(l.Value, "/")
}

// Child returns the location of file name inside a directory location.
func (l Location) Child(name string) string {
	return l.Value + name
}

// Extension returns the lower-cased file extension without the dot.
func (l Location) Extension() string {
	ext := path.Ext(l.Value)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
