package llm

import "strings"

// CleanJSONBlock strips markdown fences and any chatter around a JSON
// document, returning the outermost object or array. Text with no JSON
// delimiters is returned trimmed.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop a language tag such as "json" on the fence line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			first := strings.TrimSpace(text[:idx])
			if !strings.ContainsAny(first, "{[ ") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return text[start:]
	}
	return text[start : end+1]
}
