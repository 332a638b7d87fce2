package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/hnstories/internal/config"
)

func TestBuildURL(t *testing.T) {
	b := NewBuilder(config.TestConfig())

	assert.Equal(t, "https://hn.algolia.com/api/v1/search?query=react", b.BuildURL("react"))
	assert.Equal(t, "https://hn.algolia.com/api/v1/search?query=", b.BuildURL(""))
	assert.Equal(t, "https://hn.algolia.com/api/v1/search?query=go+generics", b.BuildURL("go generics"))
	assert.Equal(t, "https://hn.algolia.com/api/v1/search?query=react&page=3", b.BuildPageURL("react", 3))
}

func TestNewBuilder_TrimsTrailingSlash(t *testing.T) {
	cfg := config.TestConfig()
	cfg.API.BaseURL = "http://127.0.0.1:8080/"

	b := NewBuilder(cfg)
	assert.Equal(t, "http://127.0.0.1:8080/search?query=x", b.BuildURL("x"))
}

func TestExtractTerm_RoundTrip(t *testing.T) {
	b := NewBuilder(config.TestConfig())

	terms := []string{
		"react",
		"React",
		"",
		"go generics",
		"c++",
		"rust & go",
		"a=b",
		"100%",
		"ünïcödé",
		"page=2",
	}

	for _, term := range terms {
		t.Run(term, func(t *testing.T) {
			assert.Equal(t, term, b.ExtractTerm(b.BuildURL(term)))
			assert.Equal(t, term, b.ExtractTerm(b.BuildPageURL(term, 4)))
		})
	}
}

func TestExtractTerm_Malformed(t *testing.T) {
	b := NewBuilder(config.TestConfig())

	assert.Equal(t, "", b.ExtractTerm("https://hn.algolia.com/api/v1/search"))
	assert.Equal(t, "", b.ExtractTerm("://bad url"))
	assert.Equal(t, "", b.ExtractTerm("https://hn.algolia.com/api/v1/search?tags=story"))
}

func TestExtractPage(t *testing.T) {
	b := NewBuilder(config.TestConfig())

	assert.Equal(t, 0, b.ExtractPage(b.BuildURL("react")))
	assert.Equal(t, 7, b.ExtractPage(b.BuildPageURL("react", 7)))
	assert.Equal(t, 0, b.ExtractPage("https://hn.algolia.com/api/v1/search?query=x&page=abc"))
	assert.Equal(t, 0, b.ExtractPage("https://hn.algolia.com/api/v1/search?query=x&page=-2"))
}
