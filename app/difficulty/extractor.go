package difficulty

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// ErrNoArticle is returned when the page has no announcement article.
var ErrNoArticle = errors.New("no article on the page")

// Extractor extracts the announcement text from a quiz page.
type Extractor interface {
	Extract(rd io.Reader) (string, error)
}

// NestedArticle takes the text of the article nested into the page's
// first article, text nodes are joined with new lines.
type NestedArticle struct{}

// Extract extracts the announcement text.
func (NestedArticle) Extract(rd io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(rd)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	article := doc.Find("article").First().Find("article").First()
	if article.Length() == 0 {
		return "", ErrNoArticle
	}

	var texts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			texts = append(texts, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(article.Nodes[0])

	return strings.Join(texts, "\n"), nil
}

// Readability extracts the main text of the page with readability,
// for pages without the nested article markup.
type Readability struct{}

var spaces = regexp.MustCompile(`\s+`)

// Extract extracts the announcement text.
func (Readability) Extract(rd io.Reader) (string, error) {
	doc, err := readability.FromReader(rd, nil)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	// nbsp
	s := strings.ReplaceAll(doc.TextContent, "\u00a0", " ")
	s = strings.TrimSpace(spaces.ReplaceAllString(s, " "))
	if s == "" {
		return "", ErrNoArticle
	}

	return s, nil
}
