package chess

import "sort"

// Tag names of the seven tag roster.
const (
	EventTag  = "Event"
	SiteTag   = "Site"
	DateTag   = "Date"
	RoundTag  = "Round"
	WhiteTag  = "White"
	BlackTag  = "Black"
	ResultTag = "Result"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	EventTag,
	SiteTag,
	DateTag,
	RoundTag,
	WhiteTag,
	BlackTag,
	ResultTag,
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// OrderedTagNames returns the roster tags present in tags first, in roster
// order, followed by the remaining names sorted alphabetically.
func OrderedTagNames(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for _, t := range SevenTagRoster {
		if _, ok := tags[t]; ok {
			names = append(names, t)
		}
	}
	var rest []string
	for name := range tags {
		if !IsSevenTagRosterTag(name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
