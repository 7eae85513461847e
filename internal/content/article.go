package content

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Article is one Markdown entry of a collection. Front matter fields carry
// yaml tags; the rest is derived while loading.
type Article struct {
	Title        string     `yaml:"title" json:"title" validate:"required"`
	Description  string     `yaml:"description" json:"description,omitempty"`
	Date         *time.Time `yaml:"date" json:"date" validate:"required"`
	Updated      *time.Time `yaml:"updated" json:"updated,omitempty"`
	Draft        bool       `yaml:"draft" json:"draft"`
	Tags         []string   `yaml:"tags" json:"tags"`
	Categories   []string   `yaml:"categories" json:"categories"`
	Image        string     `yaml:"image" json:"image,omitempty"`
	Featured     bool       `yaml:"featured" json:"featured"`
	SlugOverride string     `yaml:"slug" json:"-"`

	Collection string `yaml:"-" json:"collection"`
	Slug       string `yaml:"-" json:"slug"`
	Path       string `yaml:"-" json:"-"`
	Body       string `yaml:"-" json:"-"`
	HTML       string `yaml:"-" json:"-"`
}

// Link returns the site-relative URL of the article
func (a *Article) Link() string {
	if a.Slug == "" {
		return "/" + a.Collection + "/"
	}
	return "/" + a.Collection + "/" + a.Slug + "/"
}

// PubDate is the publication date; zero if the article was never validated
func (a *Article) PubDate() time.Time {
	if a.Date == nil {
		return time.Time{}
	}
	return *a.Date
}

var validate = validator.New()

var frontMatterDelim = []byte("---")

// splitFrontMatter separates the leading YAML block from the Markdown body
func splitFrontMatter(src []byte) (meta, body []byte, err error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(src, append(frontMatterDelim, '\n')) {
		return nil, nil, fmt.Errorf("missing front matter")
	}
	rest := src[len(frontMatterDelim)+1:]

	// the closing delimiter may be the first line of rest (empty front matter)
	if bytes.HasPrefix(rest, frontMatterDelim) {
		return nil, trimDelimLine(rest), nil
	}
	end := bytes.Index(rest, []byte("\n---"))
	if end == -1 {
		return nil, nil, fmt.Errorf("unterminated front matter")
	}
	return rest[:end], trimDelimLine(rest[end+1:]), nil
}

func trimDelimLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i != -1 {
		return b[i+1:]
	}
	return nil
}

// ParseArticle decodes front matter, applies schema defaults, validates and
// renders the body of one source file.
func ParseArticle(collection, slug string, src []byte) (*Article, error) {
	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}

	a := &Article{}
	if err := yaml.Unmarshal(meta, a); err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	if err := validate.Struct(a); err != nil {
		return nil, describeValidation(err)
	}

	if a.Tags == nil {
		a.Tags = []string{}
	}
	if a.Categories == nil {
		a.Categories = []string{}
	}

	a.Collection = collection
	a.Slug = slug
	if a.SlugOverride != "" {
		a.Slug = strings.Trim(a.SlugOverride, "/")
	}
	a.Body = string(body)
	a.HTML = renderMarkdown(body)
	return a, nil
}

func describeValidation(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" is "+fe.Tag())
	}
	return fmt.Errorf("invalid front matter: %s", strings.Join(fields, ", "))
}

// SortNewestFirst orders articles by date, newest first; ties keep collection/slug order
func SortNewestFirst(articles []*Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		di, dj := articles[i].PubDate(), articles[j].PubDate()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		if articles[i].Collection != articles[j].Collection {
			return articles[i].Collection < articles[j].Collection
		}
		return articles[i].Slug < articles[j].Slug
	})
}
