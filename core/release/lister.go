package release

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"timingcfg/core/storage"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

// Lister returns the bare file names in a release location that belong to
// source and end in ext. The result is sorted.
type Lister interface {
	List(ctx context.Context, location, source, ext string) ([]string, error)
}

// Pattern returns the glob "source*ext" with glob metacharacters in source
// and ext escaped. Pulsar names such as "J1713+0747" contain none, but
// arbitrary sources may.
func Pattern(source, ext string) string {
	return escape(source) + "*" + escape(ext)
}

func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func match(pattern, name string) (bool, error) {
	ok, err := doublestar.Match(pattern, name)
	if err != nil {
		return false, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	return ok, nil
}

// FSLister lists releases on a filesystem.
type FSLister struct {
	Fs afero.Fs
}

// NewFSLister creates a lister over fs.
func NewFSLister(fs afero.Fs) *FSLister {
	return &FSLister{Fs: fs}
}

// List implements Lister.
func (l *FSLister) List(_ context.Context, location, source, ext string) ([]string, error) {
	infos, err := afero.ReadDir(l.Fs, location)
	if err != nil {
		return nil, fmt.Errorf("failed to list release %s: %w", location, err)
	}

	pattern := Pattern(source, ext)
	names := make([]string, 0)
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		ok, err := match(pattern, fi.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ObjectLister lists releases stored under an s3://bucket/prefix/ location.
type ObjectLister struct {
	Client storage.Client
}

// NewObjectLister creates a lister over client.
func NewObjectLister(client storage.Client) *ObjectLister {
	return &ObjectLister{Client: client}
}

// List implements Lister.
func (l *ObjectLister) List(ctx context.Context, location, source, ext string) ([]string, error) {
	bucket, prefix, ok := storage.ParseLocation(location)
	if !ok {
		return nil, fmt.Errorf("invalid object store location %q", location)
	}

	exists, err := l.Client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pattern := Pattern(source, ext)
	names := make([]string, 0)
	for obj := range l.Client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix + source}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list release %s: %w", location, obj.Err)
		}
		// Non-recursive listings report sub-prefixes as keys ending in "/".
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		name := path.Base(obj.Key)
		ok, err := match(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Router sends s3:// locations to Objects and everything else to Files.
type Router struct {
	Files   Lister
	Objects Lister
}

// List implements Lister.
func (r *Router) List(ctx context.Context, location, source, ext string) ([]string, error) {
	if strings.HasPrefix(location, storage.Scheme) {
		if r.Objects == nil {
			return nil, fmt.Errorf("no object store configured for %s", location)
		}
		return r.Objects.List(ctx, location, source, ext)
	}
	return r.Files.List(ctx, location, source, ext)
}
