package timeparse

import (
	"regexp"
	"strings"
)

var (
	remindPrefixRe   = regexp.MustCompile(`(?i)^(?:please\s+)?(?:can you\s+)?(?:remind me|set a reminder|remind)\b\s*`)
	leadingFillerRe  = regexp.MustCompile(`(?i)^(?:to|about|that|for)\s+`)
	trailingPrepRe   = regexp.MustCompile(`(?i)\s+(?:at|on|in|by|before|after)$`)
	collapseSpacesRe = regexp.MustCompile(`\s{2,}`)
)

// ExtractContent removes a matched time phrase from the original text and
// strips the filler words around it, leaving clean reminder content. The
// filler cleanup runs even with no matched phrase, so "remind me to stretch"
// still yields "stretch".
func ExtractContent(fullText, matched string) string {
	content := fullText
	// The matched text may be one span or several pieces joined by spaces
	// when day and clock phrases were not adjacent in the original.
	switch {
	case matched == "":
	case containsFold(content, matched):
		content = removeFold(content, matched)
	default:
		for _, piece := range splitPieces(matched) {
			content = removeFold(content, piece)
		}
	}

	content = collapseSpacesRe.ReplaceAllString(content, " ")
	content = strings.TrimSpace(content)
	content = remindPrefixRe.ReplaceAllString(content, "")
	content = leadingFillerRe.ReplaceAllString(content, "")
	content = trailingPrepRe.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// splitPieces breaks a joined match back into its phrases. Clock phrases keep
// their "at" prefix so removal take the whole phrase out.
func splitPieces(matched string) []string {
	fields := strings.Fields(matched)
	var pieces []string
	for i := 0; i < len(fields); i++ {
		if strings.EqualFold(fields[i], "at") && i+1 < len(fields) {
			pieces = append(pieces, fields[i]+" "+fields[i+1])
			i++
			continue
		}
		pieces = append(pieces, fields[i])
	}
	return pieces
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// removeFold removes the first case-insensitive occurrence of sub from s.
func removeFold(s, sub string) string {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(sub))
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(sub):]
}
