package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	simplejson "github.com/bitly/go-simplejson"

	"libretranslate/internal/language"
)

// DefaultEndpoint is the public LibreTranslate instance.
const DefaultEndpoint = "https://libretranslate.com/translate"

const msgMissingText = "translatedText missing or wrong type"

// HTTPClient performs the network I/O for a Client. Any returned error is
// treated as a transport failure; a nil error means body holds a 2xx response.
type HTTPClient interface {
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
	Get(ctx context.Context, url string) ([]byte, error)
}

// Translator holds one completed translation.
type Translator struct {
	Source language.Language `json:"source"`
	Target language.Language `json:"target"`
	Input  string            `json:"input"`
	Output string            `json:"output"`
}

type Client struct {
	http     HTTPClient
	endpoint string
	format   string
}

type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithFormat sets the optional "format" field ("text" or "html").
func WithFormat(format string) Option {
	return func(c *Client) {
		c.format = format
	}
}

func NewClient(http HTTPClient, opts ...Option) *Client {
	c := &Client{
		http:     http,
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL translation requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format,omitempty"`
}

// Translate translates input from source to target with a single POST.
// Errors are always *TranslateError.
func (c *Client) Translate(ctx context.Context, source, target language.Language, input string) (*Translator, error) {
	if !source.Valid() {
		return nil, transportError(fmt.Errorf("cannot build request: invalid source %s", source))
	}
	if !target.Valid() {
		return nil, transportError(fmt.Errorf("cannot build request: invalid target %s", target))
	}

	reqBody := translateRequest{
		Q:      input,
		Source: source.Code(),
		Target: target.Code(),
		Format: c.format,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to marshal request: %w", err))
	}

	body, err := c.http.Post(ctx, c.endpoint, jsonBody)
	if err != nil {
		return nil, transportError(err)
	}

	output, err := decodeTranslatedText(body)
	if err != nil {
		return nil, err
	}

	return &Translator{
		Source: source,
		Target: target,
		Input:  input,
		Output: output,
	}, nil
}

func decodeTranslatedText(body []byte) (string, error) {
	if !utf8.Valid(body) {
		return "", parseError(errors.New("response body is not valid UTF-8"))
	}
	// simplejson stops after the first value; the whole body must be one document.
	if !json.Valid(body) {
		return "", parseError(errors.New("response body is not valid JSON"))
	}

	js, err := simplejson.NewJson(body)
	if err != nil {
		return "", parseError(err)
	}

	field, ok := js.CheckGet("translatedText")
	if !ok {
		return "", parseError(errors.New(msgMissingText))
	}
	text, err := field.String()
	if err != nil {
		return "", parseError(errors.New(msgMissingText))
	}
	return text, nil
}
