package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	simplejson "github.com/bitly/go-simplejson"
)

// baseURL strips the trailing /translate so sibling endpoints can be reached.
func (c *Client) baseURL() string {
	base := strings.TrimSuffix(c.endpoint, "/")
	return strings.TrimSuffix(base, "/translate")
}

// ServerLanguages returns the codes the instance advertises on /languages.
// A transport error means the instance is unreachable.
func (c *Client) ServerLanguages(ctx context.Context) ([]string, error) {
	body, err := c.http.Get(ctx, c.baseURL()+"/languages")
	if err != nil {
		return nil, transportError(fmt.Errorf("cannot connect to LibreTranslate at %s: %w", c.baseURL(), err))
	}

	if !json.Valid(body) {
		return nil, parseError(errors.New("languages response is not valid JSON"))
	}
	js, err := simplejson.NewJson(body)
	if err != nil {
		return nil, parseError(err)
	}
	items, err := js.Array()
	if err != nil {
		return nil, parseError(fmt.Errorf("languages response is not an array: %w", err))
	}

	codes := make([]string, 0, len(items))
	for i := range items {
		code, err := js.GetIndex(i).Get("code").String()
		if err != nil {
			continue
		}
		codes = append(codes, code)
	}
	return codes, nil
}
