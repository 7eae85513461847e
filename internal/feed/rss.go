package feed

import (
	"fmt"

	"github.com/chixitown/site/internal/config"
	"github.com/chixitown/site/internal/content"
	"github.com/gorilla/feeds"
)

// RSS renders an RSS 2.0 document of the published articles, newest first
func RSS(site config.Site, articles []*content.Article) ([]byte, error) {
	items := published(articles)

	f := &feeds.Feed{
		Title:       site.Title,
		Description: site.Description,
		Link:        &feeds.Link{Href: site.Link("/")},
		Items:       make([]*feeds.Item, 0, len(items)),
	}
	if len(items) > 0 {
		f.Updated = items[0].PubDate()
	}

	for _, a := range items {
		link := site.Link(a.Link())
		f.Items = append(f.Items, &feeds.Item{
			Title:       a.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			Description: a.Description,
			Created:     a.PubDate(),
		})
	}

	doc := (&feeds.Rss{Feed: f}).RssFeed()
	for i, item := range doc.Items {
		item.Category = primaryCategory(items[i])
	}

	out, err := feeds.ToXML(doc)
	if err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	return []byte(out), nil
}

// primaryCategory is the first category, else the first tag
func primaryCategory(a *content.Article) string {
	if len(a.Categories) > 0 {
		return a.Categories[0]
	}
	if len(a.Tags) > 0 {
		return a.Tags[0]
	}
	return ""
}

// published drops drafts and sorts a copy newest first
func published(articles []*content.Article) []*content.Article {
	out := make([]*content.Article, 0, len(articles))
	for _, a := range articles {
		if !a.Draft {
			out = append(out, a)
		}
	}
	content.SortNewestFirst(out)
	return out
}
