package fatnav

import (
	"errors"
	"strings"

	"github.com/aligator/fatnav/checkpoint"
)

// Dir points at a directory of a volume. FirstCluster alone decides which
// directory it is, the names and paths are kept so that ".." can restore
// them.
//
// The root directory has the names "/" and empty parent paths.
type Dir struct {
	LongName        string
	LongParentPath  string
	ShortName       string
	ShortParentPath string
	FirstCluster    uint32
}

// RootDir returns a Dir pointing at the root directory.
func (v *Volume) RootDir() Dir {
	return Dir{
		LongName:        "/",
		LongParentPath:  "",
		ShortName:       "/",
		ShortParentPath: "",
		FirstCluster:    v.bpb.RootCluster,
	}
}

// IsRoot reports whether d is the root directory.
func (d *Dir) IsRoot() bool {
	return d.LongParentPath == "" && d.LongName == "/"
}

// LongPath returns the full path of d built from long names.
func (d *Dir) LongPath() string {
	return join(d.LongParentPath, d.LongName)
}

// ShortPath returns the full path of d built from short names.
func (d *Dir) ShortPath() string {
	return join(d.ShortParentPath, d.ShortName)
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	if strings.HasSuffix(parent, "/") {
		return parent + name
	}
	return parent + "/" + name
}

// split is the inverse of join for a full path.
func split(path string) (parent, name string) {
	if path == "" || path == "/" {
		return "", "/"
	}
	i := strings.LastIndex(path, "/")
	parent, name = path[:i], path[i+1:]
	if parent == "" {
		parent = "/"
	}
	return parent, name
}

// child returns the Dir of the directory entry e found in d.
func (v *Volume) child(d *Dir, e *Entry) Dir {
	cluster := e.FirstCluster()
	if cluster == 0 {
		cluster = v.bpb.RootCluster
	}
	return Dir{
		LongName:        e.LongName,
		LongParentPath:  d.LongPath(),
		ShortName:       e.ShortName,
		ShortParentPath: d.ShortPath(),
		FirstCluster:    cluster,
	}
}

// lookup returns the first entry of d accepted by match.
// If there is none, ErrEndOfDirectory is returned.
func (v *Volume) lookup(d *Dir, match func(e *Entry) bool) (*Entry, error) {
	e := &Entry{}
	e.Init(d)
	for {
		if err := v.Next(e); err != nil {
			return nil, err
		}
		if match(e) {
			return e, nil
		}
	}
}

// validName reports whether name can be looked up in a single directory.
func (v *Volume) validName(name string) bool {
	return name != "" && len(name) <= v.maxNameLen && !strings.Contains(name, "/")
}

// SetDirectory moves d to its child directory name, or to its parent if name
// is "..". Moving to ".." from the root and moving to "." do nothing.
// The long name of each entry is compared before its short name, both case
// sensitive.
//
// d is only changed on success.
// May return ErrInvalidDirName, ErrDirNotFound, ErrFailedReadSector or
// ErrCorruptFatEntry.
func (v *Volume) SetDirectory(d *Dir, name string) error {
	switch name {
	case ".":
		return nil
	case "..":
		return v.parent(d)
	}

	e, err := v.findDir(d, name)
	if err != nil {
		return err
	}

	*d = v.child(d, e)
	return nil
}

// findDir returns the directory entry name of d.
func (v *Volume) findDir(d *Dir, name string) (*Entry, error) {
	if !v.validName(name) {
		return nil, checkpoint.From(ErrInvalidDirName)
	}

	e, err := v.lookup(d, func(e *Entry) bool {
		return e.IsDir() && e.matches(name)
	})
	if errors.Is(err, ErrEndOfDirectory) {
		return nil, checkpoint.From(ErrDirNotFound)
	}
	return e, err
}

// Walk applies SetDirectory for each name in order.
// On error d points at the last directory that could be reached.
func (v *Volume) Walk(d *Dir, names ...string) error {
	for _, name := range names {
		if err := v.SetDirectory(d, name); err != nil {
			return err
		}
	}
	return nil
}

// parent moves d one level up. The names come from the parent paths, the
// cluster from the ".." entry of d.
func (v *Volume) parent(d *Dir) error {
	if d.IsRoot() {
		return nil
	}

	p := Dir{}
	p.LongParentPath, p.LongName = split(d.LongParentPath)
	p.ShortParentPath, p.ShortName = split(d.ShortParentPath)

	if p.IsRoot() {
		p.FirstCluster = v.bpb.RootCluster
		*d = p
		return nil
	}

	dotDot, err := v.lookup(d, func(e *Entry) bool {
		return e.IsDir() && e.ShortName == ".."
	})
	switch {
	case err == nil:
		p.FirstCluster = dotDot.FirstCluster()
		if p.FirstCluster == 0 {
			p.FirstCluster = v.bpb.RootCluster
		}
	case errors.Is(err, ErrEndOfDirectory):
		v.log.WithField("path", d.ShortPath()).Debug("no \"..\" entry, walking from the root")
		cluster, err := v.resolveShortPath(p.ShortPath())
		if err != nil {
			return err
		}
		p.FirstCluster = cluster
	default:
		return err
	}

	*d = p
	return nil
}

// resolveShortPath walks from the root along the short names of path.
func (v *Volume) resolveShortPath(path string) (uint32, error) {
	d := v.RootDir()
	for _, name := range strings.Split(path, "/") {
		if name == "" {
			continue
		}

		e, err := v.lookup(&d, func(e *Entry) bool {
			return e.IsDir() && e.ShortName == name
		})
		if errors.Is(err, ErrEndOfDirectory) {
			return 0, checkpoint.From(ErrDirNotFound)
		}
		if err != nil {
			return 0, err
		}
		d = v.child(&d, e)
	}
	return d.FirstCluster, nil
}
