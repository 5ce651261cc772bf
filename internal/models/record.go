package models

import (
	"time"

	"libretranslate/internal/language"
	"libretranslate/internal/translator"
)

// Record is one translation kept in the history store.
type Record struct {
	ID        string            `json:"id"`
	Source    language.Language `json:"source"`
	Target    language.Language `json:"target"`
	Input     string            `json:"input"`
	Output    string            `json:"output"`
	Endpoint  string            `json:"endpoint"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewRecord captures a completed translation.
func NewRecord(t *translator.Translator, endpoint string) *Record {
	return &Record{
		Source:    t.Source,
		Target:    t.Target,
		Input:     t.Input,
		Output:    t.Output,
		Endpoint:  endpoint,
		CreatedAt: time.Now().UTC(),
	}
}

// Pair returns "src->tgt" using wire codes.
func (r *Record) Pair() string {
	return r.Source.Code() + "->" + r.Target.Code()
}
