package loader

import (
	"fmt"
	"strings"
)

// Document is one parsed NRB record: named fields plus field_N overflow
// entries, every value a plain string.
type Document map[string]string

// ParseError reports a line that could not be turned into a document.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// ParseLine splits a pipe-delimited NRB line into its document form and
// returns the document key (the trimmed first field, which is also the
// timestamp field).
//
// The timestamp field is always present in the document, even when empty.
// Every other named field, and every overflow field, is included only when
// its trimmed value is non-empty. Overflow tokens are keyed field_1,
// field_2, ... by position, so an empty overflow token leaves a gap in the
// emitted keys but never shifts the numbering of later ones.
func ParseLine(line string) (string, Document, error) {
	tokens := strings.Split(strings.TrimSpace(line), "|")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	if len(tokens) == 0 || tokens[0] == "" {
		return "", nil, &ParseError{Msg: "Empty or invalid line"}
	}

	doc := make(Document, len(tokens))
	for i, v := range tokens {
		if i < len(fieldNames) {
			if v != "" || i == 0 {
				doc[fieldNames[i]] = v
			}
			continue
		}
		if v != "" {
			doc[fmt.Sprintf("field_%d", i-len(fieldNames)+1)] = v
		}
	}
	return tokens[0], doc, nil
}
