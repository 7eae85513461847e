package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chixitown/site/internal/content"
	"github.com/chixitown/site/internal/feed"
	"github.com/otiai10/copy"
	"github.com/urfave/cli/v2"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the static site and its feeds to a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "./dist", Usage: "output directory"},
		},
		Action: export,
	}
}

func export(c *cli.Context) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	out := c.String("out")
	start := time.Now()

	store := content.NewStore(e.cfg.ContentDir, e.site.Collections)
	if err := store.Reload(); err != nil {
		return err
	}

	if dirExists(e.cfg.StaticDir) {
		if err := copy.Copy(e.cfg.StaticDir, out); err != nil {
			return fmt.Errorf("copy %s: %w", e.cfg.StaticDir, err)
		}
	}

	files := map[string]func() ([]byte, error){
		"rss.xml": func() ([]byte, error) { return feed.RSS(e.site, store.Published()) },
		"atom.xml": func() ([]byte, error) {
			return feed.Atom(e.site, e.site.Title, "/atom.xml", store.Published())
		},
	}
	for _, name := range store.Names() {
		files[filepath.Join(name, "atom.xml")] = func() ([]byte, error) {
			return feed.Atom(e.site, feed.CollectionTitle(e.site, name), "/"+name+"/atom.xml", store.Collection(name))
		}
	}

	for rel, render := range files {
		data, err := render()
		if err != nil {
			return fmt.Errorf("render %s: %w", rel, err)
		}
		path := filepath.Join(out, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
	}

	stats := store.Stats()
	e.logger.ContentLogger("export", stats.Articles, stats.Drafts, time.Since(start))
	fmt.Fprintf(c.App.Writer, "exported %d feeds to %s\n", len(files), out)
	return nil
}
