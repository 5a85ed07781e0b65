package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// RuleKind identifies a Rule variant. The values double as the canonical
// identifiers used in documents and JSON payloads.
type RuleKind string

const (
	RuleRequired RuleKind = "required"
	RuleLength   RuleKind = "length"
	RulePattern  RuleKind = "pattern"
	RuleEmail    RuleKind = "email"
	RuleOneOf    RuleKind = "oneOf"
	RuleMinItems RuleKind = "minItems"
	RuleSubset   RuleKind = "subset"
	RuleFile     RuleKind = "file"
)

// Rule is a single constraint attached to a field. The set of variants is
// closed: only the types declared in this package satisfy it.
type Rule interface {
	Kind() RuleKind
	// check returns the failure message and false when value violates the rule.
	check(value Value) (string, bool)
}

// Required rejects empty text, empty selections and missing files.
type Required struct {
	Message string
}

func (Required) Kind() RuleKind { return RuleRequired }

func (r Required) check(value Value) (string, bool) {
	if value.IsEmpty() {
		return messageOr(r.Message, "This field is required"), false
	}
	return "", true
}

// Length bounds the rune length of a text value. Max of zero means no upper
// bound.
type Length struct {
	Min        int
	Max        int
	MinMessage string
	MaxMessage string
}

func (Length) Kind() RuleKind { return RuleLength }

func (r Length) check(value Value) (string, bool) {
	n := utf8.RuneCountInString(value.Text())
	if r.Min > 0 && n < r.Min {
		return messageOr(r.MinMessage, fmt.Sprintf("Must be at least %d characters", r.Min)), false
	}
	if r.Max > 0 && n > r.Max {
		return messageOr(r.MaxMessage, fmt.Sprintf("Must be at most %d characters", r.Max)), false
	}
	return "", true
}

// Pattern requires the text value to match a regular expression. Build it
// with NewPattern or MustPattern so the expression is compiled once.
type Pattern struct {
	Expr    string
	Message string

	re *regexp.Regexp
}

// NewPattern compiles expr and returns the rule.
func NewPattern(expr, message string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("validation: compile pattern %q: %w", expr, err)
	}
	return Pattern{Expr: expr, Message: message, re: re}, nil
}

// MustPattern is NewPattern for expressions known at compile time.
func MustPattern(expr, message string) Pattern {
	rule, err := NewPattern(expr, message)
	if err != nil {
		panic(err)
	}
	return rule
}

func (Pattern) Kind() RuleKind { return RulePattern }

func (r Pattern) check(value Value) (string, bool) {
	re := r.re
	if re == nil {
		// Zero-value literal; compiled lazily on every call.
		re = regexp.MustCompile(r.Expr)
	}
	if !re.MatchString(value.Text()) {
		return messageOr(r.Message, "Invalid format"), false
	}
	return "", true
}

// emailPattern accepts local@domain.tld with no whitespace and a dotted
// domain, the same shape browsers accept for type=email inputs.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+'-]+@[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}$`)

// Email requires an RFC-shaped address.
type Email struct {
	Message string
}

func (Email) Kind() RuleKind { return RuleEmail }

func (r Email) check(value Value) (string, bool) {
	text := value.Text()
	if !emailPattern.MatchString(text) || strings.Contains(text, "..") {
		return messageOr(r.Message, "Invalid email address"), false
	}
	return "", true
}

// OneOf requires the text value to equal one of Values exactly.
type OneOf struct {
	Values  []string
	Message string
}

func (OneOf) Kind() RuleKind { return RuleOneOf }

func (r OneOf) check(value Value) (string, bool) {
	if !slices.Contains(r.Values, value.Text()) {
		return messageOr(r.Message, "Invalid option"), false
	}
	return "", true
}

// MinItems requires at least Min selected values.
type MinItems struct {
	Min     int
	Message string
}

func (MinItems) Kind() RuleKind { return RuleMinItems }

func (r MinItems) check(value Value) (string, bool) {
	if len(value.List()) < r.Min {
		return messageOr(r.Message, fmt.Sprintf("Select at least %d option(s)", r.Min)), false
	}
	return "", true
}

// Subset requires every selected value to be drawn from Options.
type Subset struct {
	Options []string
	Message string
}

func (Subset) Kind() RuleKind { return RuleSubset }

func (r Subset) check(value Value) (string, bool) {
	for _, selected := range value.List() {
		if !slices.Contains(r.Options, selected) {
			return messageOr(r.Message, fmt.Sprintf("%q is not an available option", selected)), false
		}
	}
	return "", true
}

// FileConstraint restricts the MIME type prefix and size of a file value.
// A missing file passes; pair with Required when a file is mandatory.
type FileConstraint struct {
	MIMEPrefix  string
	MaxBytes    int64
	TypeMessage string
	SizeMessage string
}

func (FileConstraint) Kind() RuleKind { return RuleFile }

func (r FileConstraint) check(value Value) (string, bool) {
	file := value.File()
	if file == nil {
		return "", true
	}
	if r.MIMEPrefix != "" && !strings.HasPrefix(strings.ToLower(file.ContentType), strings.ToLower(r.MIMEPrefix)) {
		return messageOr(r.TypeMessage, fmt.Sprintf("File must be of type %s*", r.MIMEPrefix)), false
	}
	if r.MaxBytes > 0 && file.Size > r.MaxBytes {
		return messageOr(r.SizeMessage, fmt.Sprintf("File must be at most %d bytes", r.MaxBytes)), false
	}
	return "", true
}

func messageOr(message, fallback string) string {
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		return trimmed
	}
	return fallback
}
