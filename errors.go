package tableschema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Issue codes reported by descriptor loading and constraint validation.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeUniqueness    = "uniqueness"
	CodeParseError    = "parse_error"
	CodeDuplicateKey  = "duplicate_key"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /3/price for row 3, field price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "got":0}) for
	// i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error lists the first issues as "code at path" and tallies the rest by
// code, for example
// "required at /1/id; uniqueness at /4/email; too_short at /4/code; +3 more (too_short=2, uniqueness=1)".
func (iss Issues) Error() string {
	const shown = 3
	head, rest := iss[:min(len(iss), shown)], iss[min(len(iss), shown):]
	parts := make([]string, 0, len(head)+1)
	for _, it := range head {
		parts = append(parts, it.Code+" at "+it.Path)
	}
	if len(rest) > 0 {
		counts := rest.ByCode()
		tally := make([]string, 0, len(counts))
		for _, code := range slices.Sorted(maps.Keys(counts)) {
			tally = append(tally, fmt.Sprintf("%s=%d", code, counts[code]))
		}
		parts = append(parts, fmt.Sprintf("+%d more (%s)", len(rest), strings.Join(tally, ", ")))
	}
	return strings.Join(parts, "; ")
}

// ByCode counts issues per code.
func (iss Issues) ByCode() map[string]int {
	counts := make(map[string]int, len(iss))
	for _, it := range iss {
		counts[it.Code]++
	}
	return counts
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef struct {
	parts []string
}

// Root returns the pointer "/".
func Root() PathRef { return PathRef{} }

// Field appends an escaped member name.
func (p PathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return PathRef{parts: append(append([]string{}, p.parts...), esc)}
}

// Index appends an array index.
func (p PathRef) Index(i int) PathRef {
	return PathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders the JSON Pointer.
func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue creates an Issue at this path; kv are key/value pairs for Params.
func (p PathRef) Issue(code, msg string, kv ...any) Issue {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}
