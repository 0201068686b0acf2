package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *Registry {
	diff := 5.5
	r := NewRegistry()

	st := r.GetOrCreate(-100123)
	st.RecordNewQuizzes([]Quiz{
		{Title: "1 июня пятница Игра А", URL: "https://example.com/a", Date: day(1), Difficulty: &diff},
		{Title: "2 июня суббота Игра <Б> & co", URL: "https://example.com/b", Date: day(2)},
	})
	_, _ = st.RegisterQuiz(st.Known[1].ID)

	r.GetOrCreate(7)
	return r
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	r := sampleRegistry()

	data, err := Encode(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"-100123"`)
	assert.Contains(t, string(data), `Игра <Б> & co`, "non-ascii and html must be written as is")
	assert.Contains(t, string(data), `"date":"2024-06-01T00:00:00"`)

	res, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, r, res.Registry)
}

func TestDecode_Original(t *testing.T) {
	data := []byte(`{
		"123": {
			"poll_quizzes": [
				{"poll_text": "1 июня пятница Игра А", "url": "u1", "difficulty": 3.5,
				 "date": "2024-06-01T00:00:00", "id": "abc"},
				{"poll_text": "2 июня суббота Игра Б", "url": null, "difficulty": null,
				 "date": null, "id": null},
				"junk",
				{"url": "no title"},
				{"poll_text": "bad date", "date": "yesterday"}
			],
			"registered_quizzes": [
				{"poll_text": "1 июня пятница Игра А", "url": "u1", "difficulty": 3.5,
				 "date": "2024-06-01T00:00:00.123456", "id": "abc"}
			]
		},
		"not-a-number": {"poll_quizzes": [], "registered_quizzes": []},
		"456": "broken",
		"789": null,
		"1": {}
	}`)

	res, err := Decode(data)
	require.NoError(t, err)
	assert.Len(t, res.Dropped, 6)

	require.Len(t, res.Registry.Chats, 2)
	require.Contains(t, res.Registry.Chats, int64(123))
	require.Contains(t, res.Registry.Chats, int64(1))

	st := res.Registry.Chats[123]
	diff := 3.5
	assert.Equal(t, []Quiz{
		{Title: "1 июня пятница Игра А", URL: "u1", Difficulty: &diff, Date: day(1), ID: "abc"},
		{Title: "2 июня суббота Игра Б"},
	}, st.Known)

	require.Len(t, st.Registered, 1)
	assert.Equal(t, "abc", st.Registered[0].ID)
	assert.Equal(t, 1, st.Registered[0].Date.Day())

	assert.Empty(t, res.Registry.Chats[1].Known)
	assert.Empty(t, res.Registry.Chats[1].Registered)
}

func TestDecode_RFC3339(t *testing.T) {
	res, err := Decode([]byte(`{"1": {"poll_quizzes": [{"poll_text": "a", "date": "2024-06-01T03:00:00+03:00"}]}}`))
	require.NoError(t, err)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, day(1), res.Registry.Chats[1].Known[0].Date)
}

func TestDecode_Malformed(t *testing.T) {
	for _, data := range []string{``, `[]`, `{"1": `, `"string"`} {
		_, err := Decode([]byte(data))
		assert.Error(t, err, data)
	}
}
