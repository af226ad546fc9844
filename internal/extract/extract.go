// Package extract turns free-form model output into typed records. Model
// responses are presumed to contain JSON, possibly wrapped in fenced code
// blocks or prose; parsing is a cascade of strategies that degrades instead
// of failing.
package extract

import "regexp"

var (
	fenceOpen  = regexp.MustCompile("```json\n?")
	fenceClose = regexp.MustCompile("```\n?")

	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
)

// stripFences removes markdown code-fence markers the model sometimes wraps
// its JSON in despite instructions.
func stripFences(s string) string {
	s = fenceOpen.ReplaceAllString(s, "")
	return fenceClose.ReplaceAllString(s, "")
}

// repairCommas fixes the common trailing-comma defect in model JSON.
func repairCommas(s string) string {
	s = trailingCommaArray.ReplaceAllString(s, "]")
	return trailingCommaObject.ReplaceAllString(s, "}")
}
