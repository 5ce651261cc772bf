package transport

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

const maxErrorBody = 500

// Client is the default HTTP capability for translator.Client.
type Client struct {
	http *resty.Client
}

func New(timeout time.Duration) *Client {
	c := resty.New().SetTimeout(timeout)
	return &Client{http: c}
}

// Post sends body as JSON. Responses outside 2xx are returned as errors.
func (c *Client) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	r, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		return nil, err
	}
	if !r.IsSuccess() {
		return nil, statusError(r)
	}
	return r.Body(), nil
}

func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	r, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, err
	}
	if !r.IsSuccess() {
		return nil, statusError(r)
	}
	return r.Body(), nil
}

func statusError(r *resty.Response) error {
	body := r.String()
	if len(body) > maxErrorBody {
		// cut on a rune boundary
		n := maxErrorBody
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n] + "..."
	}
	return fmt.Errorf("libretranslate returned status %s: %s", r.Status(), body)
}
