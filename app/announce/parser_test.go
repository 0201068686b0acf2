package announce

import (
	"bytes"
	_ "embed"
	"strings"
	"testing"
	"time"

	"github.com/Semior001/quizpoll/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed data/test/announce.html
var announceHTML []byte

func june(d int) time.Time { return time.Date(DefaultYear, time.June, d, 0, 0, 0, 0, time.UTC) }

func page(body string) string {
	return `<html><body><div class="entry-content"><div class="entry-body"><p>` +
		body + `</p></div></div></body></html>`
}

func TestParser_Parse(t *testing.T) {
	quizzes, err := Parser{}.Parse(bytes.NewReader(announceHTML))
	require.NoError(t, err)

	assert.Equal(t, []store.Quiz{
		{Title: "3 июня понедельник Кубок Невы", URL: "https://example.com/quiz/1", Date: june(3)},
		{Title: "3 июня понедельник Синхрон «Белые ночи»", URL: "https://example.com/quiz/2", Date: june(3)},
		{Title: "5 июня среда Лига вузов", URL: "https://example.com/quiz/3", Date: june(5)},
		{Title: "8 Июня суббота Открытый кубок", URL: "https://example.com/quiz/4", Date: june(8)},
	}, quizzes)
}

func TestParser_ParseScenario(t *testing.T) {
	html := page(`<b>1 июня пятница</b><a href="u1">Игра А</a><br><br><b>2 июня субботы</b><a href="u2">Игра Б</a>`)

	quizzes, err := Parser{}.Parse(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, []store.Quiz{
		{Title: "1 июня пятница Игра А", URL: "u1", Date: june(1)},
		{Title: "2 июня субботы Игра Б", URL: "u2", Date: june(2)},
	}, quizzes)
}

func TestParser_ParseGroups(t *testing.T) {
	tbl := []struct {
		name   string
		body   string
		titles []string
	}{
		{
			name:   "double break closes the group",
			body:   `<b>1 июня пятница</b><a href="u1">А</a><br><br><a href="u2">Б</a>`,
			titles: []string{"1 июня пятница А"},
		},
		{
			name:   "single break keeps the group",
			body:   `<b>1 июня пятница</b><br><a href="u1">А</a><br><a href="u2">Б</a>`,
			titles: []string{"1 июня пятница А", "1 июня пятница Б"},
		},
		{
			name:   "whitespace between breaks keeps the group",
			body:   "<b>1 июня пятница</b><a href=\"u1\">А</a><br>\n<br><a href=\"u2\">Б</a>",
			titles: []string{"1 июня пятница А", "1 июня пятница Б"},
		},
		{
			name:   "triple break closes the group",
			body:   `<b>1 июня пятница</b><a href="u1">А</a><br><br><br><a href="u2">Б</a>`,
			titles: []string{"1 июня пятница А"},
		},
		{
			name:   "text between breaks splits them",
			body:   `<b>1 июня пятница</b><a href="u1">А</a><br>и<br><a href="u2">Б</a>`,
			titles: []string{"1 июня пятница А", "1 июня пятница Б"},
		},
		{
			name:   "new heading replaces the date",
			body:   `<b>1 июня пятница</b><a href="u1">А</a><strong>2 июня суббота</strong><a href="u2">Б</a>`,
			titles: []string{"1 июня пятница А", "2 июня суббота Б"},
		},
		{
			name:   "links before any heading are skipped",
			body:   `<a href="u0">Реклама</a><b>1 июня пятница</b><a href="u1">А</a>`,
			titles: []string{"1 июня пятница А"},
		},
		{
			name:   "other elements are ignored",
			body:   `<b>1 июня пятница</b><i>важно</i><a href="u1">А</a><img src="x.png"><a href="u2">Б</a>`,
			titles: []string{"1 июня пятница А", "1 июня пятница Б"},
		},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			quizzes, err := Parser{}.Parse(strings.NewReader(page(tt.body)))
			require.NoError(t, err)

			titles := make([]string, 0, len(quizzes))
			for _, q := range quizzes {
				titles = append(titles, q.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestParser_ParseEmpty(t *testing.T) {
	quizzes, err := Parser{}.Parse(strings.NewReader(page(`Игр на этой неделе нет.<br><br><b>1 июня пятница</b>`)))
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}

func TestParser_ParseNoContent(t *testing.T) {
	for _, html := range []string{
		`<html><body><p>nothing</p></body></html>`,
		`<html><body><div class="entry-content"><p>no body</p></div></body></html>`,
		`<html><body><div class="entry-content"><div class="entry-body">no paragraph</div></div></body></html>`,
	} {
		_, err := Parser{}.Parse(strings.NewReader(html))
		assert.ErrorIs(t, err, ErrNoContent, html)
	}
}

func TestParser_ParseBadDate(t *testing.T) {
	_, err := Parser{}.Parse(strings.NewReader(page(`<b>Внимание</b><a href="u1">А</a>`)))
	assert.Error(t, err)
}

func TestParser_parseDate(t *testing.T) {
	tbl := []struct {
		in      string
		year    int
		want    time.Time
		wantErr bool
	}{
		{in: "1 июня пятница", want: june(1)},
		{in: "  15   Января   среда ", want: time.Date(DefaultYear, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{in: "31 декабрь вторник", year: 2025, want: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{in: "29 февраля четверг", want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{in: "29 февраля суббота", year: 2025, wantErr: true},
		{in: "31 июня понедельник", wantErr: true},
		{in: "0 мая понедельник", wantErr: true},
		{in: "1 июня", wantErr: true},
		{in: "1 июня 2024 пятница", wantErr: true},
		{in: "первое июня пятница", wantErr: true},
		{in: "1 june friday", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parser{Year: tt.year}.parseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
