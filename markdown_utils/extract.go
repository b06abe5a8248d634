package markdown_utils

import "strings"

// ExtractFencedBlock returns the body of the first fenced code block tagged
// with lang. When no tagged block exists it falls back to the first untagged
// fence, and finally to the trimmed input. Model replies routinely wrap their
// payload in markdown fences despite instructions not to.
func ExtractFencedBlock(input string, lang string) string {
	if lang != "" {
		if block, ok := fencedBlock(input, "```"+lang); ok {
			return block
		}
	}
	if block, ok := fencedBlock(input, "```"); ok {
		return block
	}
	return strings.TrimSpace(input)
}

func fencedBlock(input string, opening string) (string, bool) {
	start := strings.Index(input, opening)
	if start < 0 {
		return "", false
	}
	rest := input[start+len(opening):]
	// A tagged opening must be followed by a line break, otherwise we matched
	// a longer language tag (e.g. ```jsonc for ```json).
	newline := strings.IndexByte(rest, '\n')
	if newline < 0 {
		return "", false
	}
	if opening != "```" && strings.TrimSpace(rest[:newline]) != "" {
		return "", false
	}
	rest = rest[newline+1:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}
