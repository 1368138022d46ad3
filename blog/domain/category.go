package domain

import "strings"

type Category string

const (
	CategoryArticle   Category = "article"
	CategoryNews      Category = "news"
	CategoryTutorial  Category = "tutorial"
	CategoryInterview Category = "interview"
)

// Categories lists every supported category in display order.
var Categories = []Category{
	CategoryArticle,
	CategoryNews,
	CategoryTutorial,
	CategoryInterview,
}

var categoryLabels = map[Category]string{
	CategoryArticle:   "Article",
	CategoryNews:      "News",
	CategoryTutorial:  "Tutorial",
	CategoryInterview: "Interview",
}

// legacyCategories maps the category values written by older clients to their current names.
var legacyCategories = map[string]Category{
	"artigo":     CategoryArticle,
	"noticia":    CategoryNews,
	"notícia":    CategoryNews,
	"tutorial":   CategoryTutorial,
	"entrevista": CategoryInterview,
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name of the category, or the raw value when it is unknown.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// NormalizeCategory lowercases a stored category value and translates legacy names.
// Unknown values are kept lowercased rather than dropped.
func NormalizeCategory(raw string) Category {
	v := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := legacyCategories[v]; ok {
		return c
	}
	return Category(v)
}
