// Package query composes search request URLs and recovers the search term
// from them.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pders01/hnstories/internal/config"
)

type Builder struct {
	Base       string
	Path       string
	QueryParam string
	PageParam  string
}

func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		Base:       strings.TrimRight(cfg.API.BaseURL, "/"),
		Path:       cfg.API.SearchPath,
		QueryParam: cfg.API.QueryParam,
		PageParam:  cfg.API.PageParam,
	}
}

// BuildURL returns the request URL for the first page of term. An empty term
// still yields a URL; deciding not to request it is up to the caller.
func (b *Builder) BuildURL(term string) string {
	return b.Base + b.Path + "?" + b.QueryParam + "=" + url.QueryEscape(term)
}

// BuildPageURL returns the request URL for a specific page of term.
func (b *Builder) BuildPageURL(term string, page int) string {
	return b.BuildURL(term) + "&" + b.PageParam + "=" + strconv.Itoa(page)
}

// ExtractTerm is the left inverse of BuildURL and BuildPageURL. Unparseable
// URLs and URLs without the query parameter yield "".
func (b *Builder) ExtractTerm(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(b.QueryParam)
}

// ExtractPage returns the page parameter of rawURL, or 0 when it is absent
// or malformed.
func (b *Builder) ExtractPage(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	page, err := strconv.Atoi(u.Query().Get(b.PageParam))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
