package report

import "strings"

// maxSheetNameLen is the XLSX hard limit for worksheet names.
const maxSheetNameLen = 31

var sheetNameSanitizer = strings.NewReplacer(
	"/", " ",
	"\\", " ",
	"?", " ",
	"*", " ",
	"[", " ",
	"]", " ",
	":", " ",
)

// SanitizeSheetName makes a category name safe for use as a worksheet name:
// characters Excel forbids become spaces, then the result is truncated to 31
// characters. Consumers that read sheets by name rely on this exact mapping.
func SanitizeSheetName(name string) string {
	sanitized := sheetNameSanitizer.Replace(name)
	if len(sanitized) > maxSheetNameLen {
		sanitized = sanitized[:maxSheetNameLen]
	}
	return sanitized
}
