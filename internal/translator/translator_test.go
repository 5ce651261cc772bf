package translator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libretranslate/internal/language"
)

type fakeHTTP struct {
	body []byte
	err  error

	calls    int
	lastURL  string
	lastBody []byte
}

func (f *fakeHTTP) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	f.calls++
	f.lastURL = url
	f.lastBody = body
	return f.body, f.err
}

func (f *fakeHTTP) Get(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	f.lastURL = url
	return f.body, f.err
}

func TestTranslate_PortugueseToEnglish(t *testing.T) {
	fake := &fakeHTTP{body: []byte(`{"translatedText":"Hello world!"}`)}
	client := NewClient(fake)

	got, err := client.Translate(context.Background(), language.Portuguese, language.English, "Olá Mundo!")
	require.NoError(t, err)

	assert.Equal(t, &Translator{
		Source: language.Portuguese,
		Target: language.English,
		Input:  "Olá Mundo!",
		Output: "Hello world!",
	}, got)

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, DefaultEndpoint, fake.lastURL)
	assert.JSONEq(t, `{"q":"Olá Mundo!","source":"pt","target":"en"}`, string(fake.lastBody))
}

func TestTranslate_EmptyInput(t *testing.T) {
	fake := &fakeHTTP{body: []byte(`{"translatedText":""}`)}
	client := NewClient(fake)

	got, err := client.Translate(context.Background(), language.English, language.French, "")
	require.NoError(t, err)
	assert.Equal(t, "", got.Output)
	assert.Equal(t, "", got.Input)
	assert.JSONEq(t, `{"q":"","source":"en","target":"fr"}`, string(fake.lastBody))
}

func TestTranslate_RequestBody(t *testing.T) {
	fake := &fakeHTTP{body: []byte(`{"translatedText":"x"}`)}
	client := NewClient(fake, WithEndpoint("http://localhost:5000/translate"), WithFormat("text"))

	_, err := client.Translate(context.Background(), language.English, language.Russian, "hi")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/translate", fake.lastURL)
	assert.JSONEq(t, `{"q":"hi","source":"en","target":"rs","format":"text"}`, string(fake.lastBody))
}

func TestTranslate_IgnoresExtraFields(t *testing.T) {
	fake := &fakeHTTP{body: []byte(`{"translatedText":"Hola","detectedLanguage":{"language":"en"}}`)}

	got, err := NewClient(fake).Translate(context.Background(), language.English, language.Spanish, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hola", got.Output)
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     []byte
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 127.0.0.1:5000: connect: connection refused"),
			wantKind: KindTransport,
			wantMsg:  "HTTP Request Error: dial tcp 127.0.0.1:5000: connect: connection refused",
		},
		{
			name:     "http status",
			err:      errors.New("500 Internal Server Error: boom"),
			wantKind: KindTransport,
		},
		{
			name:     "not json",
			body:     []byte("<html>Bad Gateway</html>"),
			wantKind: KindParse,
		},
		{
			name:     "trailing text",
			body:     []byte(`{"translatedText":"hi"} not json`),
			wantKind: KindParse,
			wantMsg:  "JSON Parsing Error: response body is not valid JSON",
		},
		{
			name:     "two documents",
			body:     []byte(`{"translatedText":"a"}{"x":1}`),
			wantKind: KindParse,
			wantMsg:  "JSON Parsing Error: response body is not valid JSON",
		},
		{
			name:     "empty body",
			body:     []byte{},
			wantKind: KindParse,
		},
		{
			name:     "invalid utf-8",
			body:     []byte{'{', '"', 0xff, 0xfe, '"', '}'},
			wantKind: KindParse,
			wantMsg:  "JSON Parsing Error: response body is not valid UTF-8",
		},
		{
			name:     "missing field",
			body:     []byte(`{"error":"Invalid request"}`),
			wantKind: KindParse,
			wantMsg:  "JSON Parsing Error: translatedText missing or wrong type",
		},
		{
			name:     "wrong type",
			body:     []byte(`{"translatedText":42}`),
			wantKind: KindParse,
			wantMsg:  "JSON Parsing Error: translatedText missing or wrong type",
		},
		{
			name:     "null field",
			body:     []byte(`{"translatedText":null}`),
			wantKind: KindParse,
		},
		{
			name:     "array body",
			body:     []byte(`["translatedText"]`),
			wantKind: KindParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeHTTP{body: tt.body, err: tt.err}

			got, err := NewClient(fake).Translate(context.Background(), language.German, language.Italian, "Hallo")
			assert.Nil(t, got)
			require.Error(t, err)

			var te *TranslateError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.wantKind, te.Kind)
			assert.Equal(t, tt.wantKind, KindOf(err))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}

			assert.Equal(t, tt.wantKind == KindTransport, IsTransport(err))
			assert.Equal(t, tt.wantKind == KindParse, IsParse(err))
			assert.Equal(t, 1, fake.calls)
		})
	}
}

func TestTranslate_TransportErrorUnwraps(t *testing.T) {
	cause := context.DeadlineExceeded
	fake := &fakeHTTP{err: cause}

	_, err := NewClient(fake).Translate(context.Background(), language.English, language.Arabic, "hi")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestTranslate_InvalidLanguageNeverSends(t *testing.T) {
	fake := &fakeHTTP{body: []byte(`{"translatedText":"x"}`)}
	client := NewClient(fake)

	_, err := client.Translate(context.Background(), language.Language(99), language.English, "hi")
	assert.True(t, IsTransport(err))

	_, err = client.Translate(context.Background(), language.English, language.Language(-3), "hi")
	assert.True(t, IsTransport(err))

	assert.Equal(t, 0, fake.calls)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "unknown", Kind(0).String())
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}
