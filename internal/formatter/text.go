package formatter

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"libretranslate/internal/language"
	"libretranslate/internal/models"
	"libretranslate/internal/translator"
)

const previewLen = 40

type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format renders a translation as two labelled lines:
//
//	Portuguese: Olá Mundo!
//	English: Hello world!
func (f *TextFormatter) Format(t *translator.Translator) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", t.Source.Name(), t.Input))
	sb.WriteString(fmt.Sprintf("%s: %s\n", t.Target.Name(), t.Output))
	return sb.String()
}

// FormatLanguages renders the code/name table.
func (f *TextFormatter) FormatLanguages(langs []language.Language) string {
	var sb strings.Builder
	for _, l := range langs {
		sb.WriteString(fmt.Sprintf("%-4s %s\n", l.Code(), l.Name()))
	}
	return sb.String()
}

// FormatHistory renders one line per record, newest first as given.
func (f *TextFormatter) FormatHistory(records []*models.Record) string {
	if len(records) == 0 {
		return "No translations recorded\n"
	}

	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%s  %-8s %s => %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Pair(),
			preview(r.Input),
			preview(r.Output),
		))
	}
	return sb.String()
}

// FormatPairs renders per-pair counts sorted by pair.
func (f *TextFormatter) FormatPairs(pairs map[string]int) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-8s %d\n", k, pairs[k]))
	}
	return sb.String()
}

// preview collapses newlines and cuts long text on a rune boundary.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= previewLen {
		return fmt.Sprintf("%q", s)
	}
	runes := []rune(s)
	return fmt.Sprintf("%q", string(runes[:previewLen-3])+"...")
}
