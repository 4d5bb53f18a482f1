package core

import (
	"encoding/json"
	"regexp"
)

// A quoted string is matched first and kept verbatim, so comment and comma
// patterns never apply inside string literals.
var jsoncPattern = regexp.MustCompile(
	`("(?:[^"\\]|\\.)*")` +
		`|/\*[\s\S]*?\*/` +
		`|//[^\n]*` +
		`|,(?:\s|/\*[\s\S]*?\*/|//[^\n]*)*[\]}]`,
)

// StripJSONComments removes block comments, line comments and trailing commas
// that are not inside quoted strings.
func StripJSONComments(raw []byte) []byte {
	return jsoncPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		switch match[0] {
		case '"':
			return match
		case ',':
			return match[len(match)-1:]
		default:
			return nil
		}
	})
}

func ParseJSONC(raw []byte) (value any, err error) {
	err = json.Unmarshal(StripJSONComments(raw), &value)
	return value, err
}
