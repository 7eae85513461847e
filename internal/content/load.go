package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var sourceExtensions = map[string]bool{".md": true, ".mdx": true}

// Load reads every collection under dir. A collection without a directory is
// empty. All file errors are reported together.
func Load(dir string, names []string) (map[string][]*Article, error) {
	collections := make(map[string][]*Article, len(names))
	var errs []error

	for _, name := range names {
		articles, err := loadCollection(filepath.Join(dir, name), name)
		if err != nil {
			errs = append(errs, err)
		}
		collections[name] = articles
	}

	return collections, errors.Join(errs...)
}

func loadCollection(root, name string) ([]*Article, error) {
	articles := make([]*Article, 0)
	var errs []error

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		a, err := loadFile(root, name, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		articles = append(articles, a)
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("walk collection %s: %w", name, err))
	}

	SortNewestFirst(articles)
	return articles, errors.Join(errs...)
}

func loadFile(root, collection, path string) (*Article, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, err
	}

	a, err := ParseArticle(collection, slugFromPath(rel), src)
	if err != nil {
		return nil, err
	}
	a.Path = path
	return a, nil
}

// slugFromPath turns "Deep Dive/My Post.md" into "deep-dive/my-post"; an
// index file takes the name of its directory, and the collection's own
// index.md gets the empty slug.
func slugFromPath(rel string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
	if rel == "index" {
		return ""
	}
	rel = strings.TrimSuffix(rel, "/index")

	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		segments[i] = strings.ToLower(strings.Join(strings.Fields(seg), "-"))
	}
	return strings.Join(segments, "/")
}
