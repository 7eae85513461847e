package feed

import (
	"log/slog"
	"time"

	"github.com/chixitown/site/internal/config"
	"github.com/chixitown/site/internal/content"
	atom "github.com/thomas11/atomgenerator"
)

// Atom renders an Atom feed titled title at the site-relative relURL
func Atom(site config.Site, title, relURL string, articles []*content.Article) ([]byte, error) {
	items := published(articles)

	updated := time.Now().UTC()
	if len(items) > 0 {
		updated = items[0].PubDate()
	}

	feed := atom.Feed{
		Title:   title,
		Link:    site.Link(relURL),
		PubDate: updated,
	}
	feed.AddAuthor(atom.Author{
		Name: site.Author,
		Uri:  site.Link("/"),
	})

	for _, a := range items {
		feed.AddEntry(entryForArticle(site, a))
	}

	if errs := feed.Validate(); len(errs) > 0 {
		for _, e := range errs {
			slog.Warn("Atom feed is not valid", "feed", title, "error", e)
		}
		return nil, errs[0]
	}

	return feed.GenXml()
}

// CollectionTitle is the Atom title used for a single collection
func CollectionTitle(site config.Site, collection string) string {
	return site.Title + " · " + collection
}

func entryForArticle(site config.Site, a *content.Article) *atom.Entry {
	e := &atom.Entry{
		Title:       a.Title,
		Description: a.Description,
		Link:        site.Link(a.Link()),
		PubDate:     a.PubDate(),
		Content:     a.HTML,
	}

	for _, tag := range a.Tags {
		e.AddCategory(atom.Category{Term: tag})
	}
	for _, cat := range a.Categories {
		e.AddCategory(atom.Category{Term: cat})
	}

	return e
}
