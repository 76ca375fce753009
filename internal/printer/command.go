package printer

import (
	"fmt"
	"strconv"
	"strings"
)

// positionalSlots is the fixed number of numeric parameters in the wire grammar.
const positionalSlots = 12

// SanitizeCodeType strips every character that is not alphanumeric,
// whitespace, hyphen, underscore or dot, then trims surrounding
// whitespace. It is a whitelist filter, not an encoder: characters
// outside the whitelist are deleted, never escaped.
func SanitizeCodeType(codeType string) string {
	var b strings.Builder
	b.Grow(len(codeType))
	for _, r := range codeType {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// BuildCommand serializes a print request into the device's flat wire
// command: codeType,p1,...,p12,"escaped text". Missing or non-numeric
// positional values default to 0; callers wanting the label-geometry
// default of 30 for p1/p2 apply ApplyLabelDefaults first. The result is
// deterministic and never fails: embedded double quotes in text are
// backslash-escaped and the text is wrapped in double quotes.
func BuildCommand(codeType string, options map[string]string, text string) string {
	fields := make([]string, 0, positionalSlots+2)
	fields = append(fields, SanitizeCodeType(codeType))
	for i := 1; i <= positionalSlots; i++ {
		v := 0
		if raw, ok := options[fmt.Sprintf("p%d", i)]; ok {
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				v = n
			}
		}
		fields = append(fields, strconv.Itoa(v))
	}
	escaped := strings.ReplaceAll(text, `"`, `\"`)
	fields = append(fields, `"`+escaped+`"`)
	return strings.Join(fields, ",")
}

// ApplyLabelDefaults returns a copy of options where missing or
// non-numeric p1 and p2 are set to "30". The device firmware treats 30 as
// the usable label geometry for those two slots, while the builder's own
// default stays 0; the two defaults are deliberately kept apart until the
// firmware semantics are confirmed.
func ApplyLabelDefaults(options map[string]string) map[string]string {
	out := make(map[string]string, len(options)+2)
	for k, v := range options {
		out[k] = v
	}
	for _, key := range []string{"p1", "p2"} {
		if _, err := strconv.Atoi(strings.TrimSpace(out[key])); err != nil {
			out[key] = "30"
		}
	}
	return out
}
