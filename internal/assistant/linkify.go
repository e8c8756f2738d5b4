package assistant

import "regexp"

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Segment is a run of reply text. URL segments are rendered as links.
type Segment struct {
	Text string
	URL  bool
}

// Linkify splits text into plain and URL segments, in order. Concatenating
// the segment texts gives back the input.
func Linkify(text string) []Segment {
	var out []Segment
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: text[last:loc[0]]})
		}
		out = append(out, Segment{Text: text[loc[0]:loc[1]], URL: true})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, Segment{Text: text[last:]})
	}
	return out
}
