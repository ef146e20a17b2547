// Package pagerange turns user-entered page specifications like "1-3,5" into
// zero-based page index lists.
//
// The parser is deliberately permissive about document bounds: it never sees a
// real document, so a spec of "0" yields index -1 and a spec naming page 900 of
// a 3-page file parses fine. Callers own bounds validation and the policy for
// out-of-range indices.
package pagerange

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a malformed page-range spec token.
type ParseError struct {
	Spec  string
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("pagerange: %s in %q", e.Msg, e.Spec)
	}
	return fmt.Sprintf("pagerange: %s in token %q of %q", e.Msg, e.Token, e.Spec)
}

// Parse expands a page-range spec into zero-based page indices.
//
// The spec is a comma-separated list of tokens, each either a single one-based
// page number ("2") or an inclusive range ("1-3"). Whitespace around tokens is
// ignored. Indices appear in token order, ranges expand ascending, and a page
// referenced twice yields two entries.
func Parse(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, &ParseError{Spec: spec, Msg: "empty spec"}
	}

	var indices []int
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, &ParseError{Spec: spec, Token: token, Msg: "empty token"}
		}
		if strings.Contains(token, "-") {
			bounds := strings.Split(token, "-")
			if len(bounds) != 2 {
				return nil, &ParseError{Spec: spec, Token: token, Msg: "more than one hyphen"}
			}
			start, err := parseInt(spec, token, bounds[0])
			if err != nil {
				return nil, err
			}
			end, err := parseInt(spec, token, bounds[1])
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, &ParseError{Spec: spec, Token: token, Msg: "inverted range"}
			}
			for n := start; n <= end; n++ {
				indices = append(indices, n-1)
			}
		} else {
			n, err := parseInt(spec, token, token)
			if err != nil {
				return nil, err
			}
			indices = append(indices, n-1)
		}
	}
	return indices, nil
}

func parseInt(spec, token, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ParseError{Spec: spec, Token: token, Msg: "non-numeric page number"}
	}
	return n, nil
}
