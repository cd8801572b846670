package model

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Query parameter names used by share links. This is the only place the
// persisted wire format is named.
const (
	QueryTitle = "rifa"
	QuerySold  = "sold"
)

// LabelSet is a set of canonical slot labels.
type LabelSet map[string]struct{}

// NewLabelSet builds a set from the given labels as-is.
func NewLabelSet(labels ...string) LabelSet {
	set := make(LabelSet, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

// Has reports whether label is in the set.
func (s LabelSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Sorted returns the canonical labels of the set in ascending numeric order.
// Entries that are not canonical labels are dropped.
func (s LabelSet) Sorted() []string {
	nums := make([]int, 0, len(s))
	for label := range s {
		if n, ok := ParseLabel(label); ok {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = Label(n)
	}
	return out
}

// EncodedState is the persisted form of a board: two independent text fields.
type EncodedState struct {
	Title string `json:"title"`
	Sold  string `json:"sold"`
}

// Board decodes the state into a fresh board. An empty title falls back to
// defaultTitle.
func (st EncodedState) Board(defaultTitle string) *Board {
	b := NewBoard(DecodeTitle(st.Title, defaultTitle))
	b.MarkLabels(DecodeSold(st.Sold), Sold)
	return b
}

// DecodeSold parses a comma and/or whitespace separated list of slot numbers.
// Tokens that are not purely decimal digits or fall outside 0..99 are
// dropped. The result is deduplicated and uses 2-digit labels.
func DecodeSold(raw string) LabelSet {
	set := LabelSet{}
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, tok := range tokens {
		if !isDigits(tok) {
			continue
		}
		// Overlong tokens fail to parse and are out of range anyway.
		n, err := strconv.Atoi(tok)
		if err != nil || n >= SlotCount {
			continue
		}
		set[Label(n)] = struct{}{}
	}
	return set
}

// EncodeSold joins the labels in ascending numeric order with commas.
func EncodeSold(labels LabelSet) string {
	return strings.Join(labels.Sorted(), ",")
}

// DecodeTitle returns raw unless it is empty, in which case def is returned.
func DecodeTitle(raw, def string) string {
	if raw == "" {
		return def
	}
	return raw
}

// ParseShareQuery extracts the persisted state from a URL query string.
// A query that fails to parse yields whatever pairs were readable.
func ParseShareQuery(rawQuery string, defaultTitle string) EncodedState {
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return EncodedState{
		Title: DecodeTitle(values.Get(QueryTitle), defaultTitle),
		Sold:  values.Get(QuerySold),
	}
}

// ParseShareURL extracts the persisted state from a full share link.
func ParseShareURL(link string, defaultTitle string) (EncodedState, error) {
	u, err := url.Parse(link)
	if err != nil {
		return EncodedState{}, fmt.Errorf("parse share link: %w", err)
	}
	return ParseShareQuery(u.RawQuery, defaultTitle), nil
}

// ShareURL builds a share link carrying the encoded state as query parameters.
// Existing query parameters on base are preserved.
func ShareURL(base string, st EncodedState) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse share base url: %w", err)
	}
	q := u.Query()
	q.Set(QueryTitle, st.Title)
	q.Set(QuerySold, st.Sold)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
