package answer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"boatchat-client/internal/entity"
)

// Inline citation markers reference the raw citation list 1-based: [doc3] is
// the third record delivered with the turn.
var citationMarker = regexp.MustCompile(`\[doc(\d+)\]`)

const filePathTruncationLimit = 50

// Extract rewrites every citation marker in text to its 1-based display
// index (` ^N^ `) and returns the de-duplicated citations in first-seen
// order. Repeat references to the same document resolve to the same index.
// Markers whose document index is out of range are left verbatim and
// contribute no citation. The source list is never mutated.
func Extract(text string, sources []entity.Citation) (string, []entity.Citation) {
	citations := []entity.Citation{}
	if text == "" {
		return text, citations
	}

	seen := make(map[string]struct{})
	reindex := 0
	for _, match := range citationMarker.FindAllStringSubmatch(text, -1) {
		marker, docIndex := match[0], match[1]
		if _, done := seen[docIndex]; done {
			continue
		}
		n, err := strconv.Atoi(docIndex)
		if err != nil || n < 1 || n > len(sources) {
			continue
		}
		seen[docIndex] = struct{}{}
		reindex++

		citation := cloneCitation(sources[n-1])
		citation.Id = docIndex
		citation.ReindexId = strconv.Itoa(reindex)
		citations = append(citations, citation)

		// All occurrences of the marker collapse to the first-seen index.
		text = strings.ReplaceAll(text, marker, fmt.Sprintf(" ^%d^ ", reindex))
	}

	return text, enumerateParts(citations)
}

func cloneCitation(c entity.Citation) entity.Citation {
	if c.PartIndex != nil {
		v := *c.PartIndex
		c.PartIndex = &v
	}
	return c
}

// enumerateParts numbers repeat references to the same file so their labels
// read "Part 1", "Part 2", ... in display order.
func enumerateParts(citations []entity.Citation) []entity.Citation {
	occurrences := make(map[string]int)
	for i := range citations {
		occurrences[citations[i].Filepath]++
		part := occurrences[citations[i].Filepath]
		citations[i].PartIndex = &part
	}
	return citations
}

// Label formats the human-readable reference label for a citation at the
// given 1-based display index. With truncate set, file paths longer than 50
// characters shorten to their first and last 20 characters; the full path
// stays available through Label(c, index, false) for tooltips.
func Label(c entity.Citation, index int, truncate bool) string {
	switch {
	case c.Filepath != "":
		path := c.Filepath
		if truncate && len(path) > filePathTruncationLimit {
			path = path[:20] + "..." + path[len(path)-20:]
		}
		return fmt.Sprintf("%s - Part %s", path, partIndicator(c))
	case c.ReindexId != "":
		return fmt.Sprintf("%s - Part %s", c.Filepath, c.ReindexId)
	default:
		return fmt.Sprintf("Citation %d", index)
	}
}

func partIndicator(c entity.Citation) string {
	if c.PartIndex != nil {
		return strconv.Itoa(*c.PartIndex)
	}
	if c.ChunkId != "" {
		if n, err := strconv.Atoi(c.ChunkId); err == nil {
			return strconv.Itoa(n + 1)
		}
	}
	return ""
}
