package nexus

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLength is the spreadsheet limit on sheet name length, in characters.
const MaxSheetNameLength = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "_",
	`\`, "_",
	"/", "_",
	"?", "_",
	"*", "_",
	"[", "_",
	"]", "_",
)

// SanitizeSheetName maps a tool name onto a legal sheet name: forbidden
// characters become underscores, surrounding apostrophes and spaces are
// dropped and the result is cut to MaxSheetNameLength characters.
func SanitizeSheetName(name string) (string, error) {
	s := trimSheetName(sheetNameReplacer.Replace(name))
	if utf8.RuneCountInString(s) > MaxSheetNameLength {
		s = trimSheetName(string([]rune(s)[:MaxSheetNameLength]))
	}
	if s == "" {
		return "", fmt.Errorf("%w: sheet name %q is empty after sanitizing", ErrValidation, name)
	}
	return s, nil
}

func trimSheetName(s string) string {
	return strings.Trim(s, " '")
}
