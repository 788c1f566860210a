package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"microarchive/internal/archive"
)

// DirStore is an ObjectStore over a local directory. Object keys are
// slash-separated paths relative to the root.
type DirStore struct {
	root   string
	images ImageURLs
}

// NewDirStore returns a DirStore rooted at root, creating it if needed.
func NewDirStore(root, imageServerURL string) (*DirStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store root %s: %w", abs, err)
	}
	return &DirStore{root: abs, images: ImageURLs{ServerURL: imageServerURL}}, nil
}

// ListItems walks the directory holding prefix and returns every file whose
// key starts with prefix, ordered by key.
func (s *DirStore) ListItems(ctx context.Context, prefix string) ([]archive.Item, error) {
	base := ""
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		base = prefix[:i]
	}
	dir, err := s.resolve(base)
	if err != nil {
		return nil, err
	}

	var keys []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == dir {
				return filepath.SkipAll
			}
			return fmt.Errorf("failed to access path %s: %w", p, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if p != dir && d.Name() == thumbDir {
				return filepath.SkipDir
			}
			// Published sites live next to the images
			if _, err := os.Stat(filepath.Join(p, MetaFile)); err == nil {
				return filepath.SkipDir
			}
			return nil
		}
		// Hidden files hold site metadata, not images
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", p, err)
		}
		if key := filepath.ToSlash(rel); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(keys)
	items := make([]archive.Item, 0, len(keys))
	for _, key := range keys {
		if item, ok := s.images.itemFromKey(key, prefix); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *DirStore) Upload(ctx context.Context, name, origin string, files SiteFiles, meta map[string]any) error {
	dir, err := s.resolve(originPath(origin))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create site directory: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetaFile), data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", MetaFile, err)
	}

	for _, obj := range files.objects(name) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, obj.name), []byte(obj.body), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", obj.name, err)
		}
	}
	return nil
}

func (s *DirStore) GetMetadata(_ context.Context, origin string) (map[string]any, error) {
	p, err := s.resolve(path.Join(originPath(origin), MetaFile))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}

	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return meta, nil
}

func (s *DirStore) Exists(_ context.Context, origin, name string) (bool, error) {
	p, err := s.resolve(path.Join(originPath(origin), name))
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Ping checks that the root directory is still there.
func (s *DirStore) Ping(context.Context) error {
	_, err := os.Stat(s.root)
	return err
}

// resolve maps a key to a path inside the root.
func (s *DirStore) resolve(key string) (string, error) {
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid key %q", key)
		}
	}
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+key))), nil
}
