package types

import (
	"encoding/json"
	"strings"
)

// FlexStrings is a list of strings that tolerates the two shapes extraction
// output arrives in: a JSON array of strings or a single delimited string
// (pipe, comma or newline separated). The literal tokens "none", "n/a",
// "null" and the empty string normalize to no entries. Normalization happens
// once at the unmarshal boundary so scoring code never type-checks raw input.
type FlexStrings []string

// noiseTokens are extraction placeholders that mean "no entries"
var noiseTokens = map[string]bool{
	"":     true,
	"none": true,
	"n/a":  true,
	"null": true,
}

// UnmarshalJSON accepts either a JSON array of strings or a single string
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = normalizeEntries(list)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*f = SplitFlexible(single)
	return nil
}

// SplitFlexible splits a delimited string into trimmed entries, dropping
// noise tokens. Pipes, commas and newlines are all treated as delimiters.
func SplitFlexible(s string) FlexStrings {
	if noiseTokens[strings.ToLower(strings.TrimSpace(s))] {
		return nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == '\n'
	})
	return normalizeEntries(parts)
}

func normalizeEntries(parts []string) FlexStrings {
	var out FlexStrings
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if noiseTokens[strings.ToLower(p)] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ContainsFold reports whether any entry contains sub, case-insensitively
func (f FlexStrings) ContainsFold(sub string) bool {
	sub = strings.ToLower(sub)
	for _, entry := range f {
		if strings.Contains(strings.ToLower(entry), sub) {
			return true
		}
	}
	return false
}
