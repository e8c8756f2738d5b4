// Package assistant is the portfolio's FAQ widget: an ordered keyword rule
// table, a per-visitor transcript and the delayed "typing" reply.
package assistant

import (
	"strings"

	"github.com/aryanwebd35/portfolio/internal/content"
)

// Reply is the engine's answer and the rule that produced it.
type Reply struct {
	Rule string
	Text string
}

// Engine picks canned replies. It is immutable after construction and safe
// for concurrent use.
type Engine struct {
	profile content.Profile
	rules   []Rule
}

// NewEngine builds an engine over the given profile. A nil rules slice means
// DefaultRules.
func NewEngine(p content.Profile, rules []Rule) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{
		profile: p.Clone(),
		rules:   append([]Rule(nil), rules...),
	}
}

// Reply evaluates the rules in order against the lowercased input and returns
// the first match, or the default reply.
func (e *Engine) Reply(input string) Reply {
	lower := strings.ToLower(input)
	for _, r := range e.rules {
		if r.Matches(lower) {
			return Reply{Rule: r.Name, Text: r.Respond(e.profile)}
		}
	}
	return Reply{Rule: RuleDefault, Text: DefaultReply(e.profile)}
}

func (e *Engine) Greeting() string {
	return Greeting(e.profile)
}
