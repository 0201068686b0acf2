// Package announce fetches the announcement page and extracts
// quiz tournaments from it.
package announce

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/Semior001/quizpoll/app/store"
	"golang.org/x/net/html"
)

// DefaultYear is the year assigned to every parsed date,
// announcement headings carry only a day and a month.
const DefaultYear = 2024

// ErrNoContent is returned when the page lacks the announcement container.
var ErrNoContent = errors.New("no announcement content on the page")

var months = map[string]time.Month{
	"январь": time.January, "января": time.January,
	"февраль": time.February, "февраля": time.February,
	"март": time.March, "марта": time.March,
	"апрель": time.April, "апреля": time.April,
	"май": time.May, "мая": time.May,
	"июнь": time.June, "июня": time.June,
	"июль": time.July, "июля": time.July,
	"август": time.August, "августа": time.August,
	"сентябрь": time.September, "сентября": time.September,
	"октябрь": time.October, "октября": time.October,
	"ноябрь": time.November, "ноября": time.November,
	"декабрь": time.December, "декабря": time.December,
}

// Parser extracts quizzes from the announcement markup.
type Parser struct {
	Year int
}

// Parse walks the announcement paragraph: a bold heading opens a date
// group, links inside the group are quizzes, two line breaks in a row
// close the group. Any other node between breaks, a whitespace text
// included, keeps the group open.
func (p Parser) Parse(rd io.Reader) ([]store.Quiz, error) {
	doc, err := goquery.NewDocumentFromReader(rd)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	body := doc.Find("div.entry-content").First().
		Find("div.entry-body").First().
		Find("p").First()
	if body.Length() == 0 {
		return nil, ErrNoContent
	}

	var (
		quizzes []store.Quiz
		date    string // current date heading, empty if no group is open
		prevBr  bool
	)

	for node := body.Nodes[0].FirstChild; node != nil; node = node.NextSibling {
		switch {
		case isElement(node, "br"):
			if prevBr {
				date = ""
			}
			prevBr = true
			continue
		case isElement(node, "b", "strong"):
			date = strings.TrimSpace(goquery.NewDocumentFromNode(node).Text())
		case isElement(node, "a") && date != "":
			sel := goquery.NewDocumentFromNode(node).Selection
			href, _ := sel.Attr("href")

			when, err := p.parseDate(date)
			if err != nil {
				return nil, fmt.Errorf("parse date of %q: %w", href, err)
			}

			quizzes = append(quizzes, store.Quiz{
				Title: date + " " + strings.TrimSpace(sel.Text()),
				URL:   href,
				Date:  when,
			})
		}
		prevBr = false
	}

	return quizzes, nil
}

// parseDate parses headings like "1 июня пятница", the weekday is dropped.
func (p Parser) parseDate(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("expected day, month and weekday in %q", s)
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day: %w", err)
	}

	month, ok := months[strings.ToLower(fields[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q", fields[1])
	}

	year := p.Year
	if year == 0 {
		year = DefaultYear
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, fmt.Errorf("day %d is out of range for %s", day, month)
	}

	return t, nil
}

func isElement(n *html.Node, tags ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, tag := range tags {
		if n.Data == tag {
			return true
		}
	}
	return false
}
