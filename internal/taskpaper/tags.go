package taskpaper

import (
	"fmt"
	"strings"
)

// TagShape says whether a tag carries a parenthesized value.
type TagShape int

const (
	Bare TagShape = iota
	Valued
)

// TagDescriptor names a recognized tag.
type TagDescriptor struct {
	Name  string
	Shape TagShape
}

// Token is the tag as written in a line, e.g. "@prio".
func (d TagDescriptor) Token() string { return "@" + d.Name }

var (
	TagPrio    = TagDescriptor{Name: "prio", Shape: Valued}
	TagStart   = TagDescriptor{Name: "start", Shape: Valued}
	TagDue     = TagDescriptor{Name: "due", Shape: Valued}
	TagRepeat  = TagDescriptor{Name: "repeat", Shape: Valued}
	TagProject = TagDescriptor{Name: "project", Shape: Valued}
	TagDone    = TagDescriptor{Name: "done", Shape: Bare}
	TagMaybe   = TagDescriptor{Name: "maybe", Shape: Bare}
	TagNote    = TagDescriptor{Name: "note", Shape: Bare}
	TagOverdue = TagDescriptor{Name: "overdue", Shape: Bare}
	TagDueSoon = TagDescriptor{Name: "duesoon", Shape: Bare}
	TagToday   = TagDescriptor{Name: "today", Shape: Bare}

	// Review groupings.
	TagAgenda   = TagDescriptor{Name: "agenda", Shape: Valued}
	TagWaiting  = TagDescriptor{Name: "waiting", Shape: Valued}
	TagCustomer = TagDescriptor{Name: "customer", Shape: Valued}
)

// ExtractTag returns the value of the first @name(...) in line. A tag opened
// without a closing parenthesis is ErrUnbalancedTag.
func ExtractTag(line string, d TagDescriptor) (string, bool, error) {
	open := d.Token() + "("
	i := strings.Index(line, open)
	if i < 0 {
		return "", false, nil
	}
	rest := line[i+len(open):]
	j := strings.IndexByte(rest, ')')
	if j < 0 {
		return "", false, fmt.Errorf("%w: %s", ErrUnbalancedTag, d.Token())
	}
	return rest[:j], true, nil
}

// HasTag reports whether the tag token occurs anywhere in line.
func HasTag(line string, d TagDescriptor) bool {
	return strings.Contains(line, d.Token())
}

// RemoveTaskParts drops every whitespace-separated word that contains one of
// the given tokens and rejoins the rest with single spaces. A dropped word
// that opens a parenthesis takes the following words up to the closing one
// with it, so "@project(Home Office)" goes away whole.
func RemoveTaskParts(text string, tokens ...string) string {
	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		if !containsAny(words[i], tokens) {
			kept = append(kept, words[i])
			continue
		}
		depth := parenDepth(words[i])
		for depth > 0 && i+1 < len(words) {
			i++
			depth += parenDepth(words[i])
		}
	}
	return strings.Join(kept, " ")
}

func containsAny(word string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(word, tok) {
			return true
		}
	}
	return false
}

func parenDepth(word string) int {
	return strings.Count(word, "(") - strings.Count(word, ")")
}

// removeExact drops words equal to token.
func removeExact(text, token string) string {
	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if w != token {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func appendTag(text string, d TagDescriptor, value string) string {
	tag := d.Token()
	if d.Shape == Valued {
		tag += "(" + value + ")"
	}
	if text == "" {
		return tag
	}
	return text + " " + tag
}

// NormalizeWhitespace collapses runs of whitespace and trims both ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func balancedParens(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
