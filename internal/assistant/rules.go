package assistant

import (
	"fmt"
	"strings"

	"github.com/aryanwebd35/portfolio/internal/content"
)

// Rule names double as topic labels in the analytics store.
const (
	RuleProjects   = "projects"
	RuleSkills     = "skills"
	RuleContact    = "contact"
	RuleResume     = "resume"
	RuleLeetCode   = "leetcode"
	RuleCodeForces = "codeforces"
	RuleCode360    = "code360"
	RuleLinkedIn   = "linkedin"
	RuleGitHub     = "github"
	RuleAbout      = "about"
	RuleDefault    = "default"
)

// Rule pairs a keyword predicate with the reply it produces. Keywords are
// matched as substrings of the lowercased input.
type Rule struct {
	Name     string
	Keywords []string
	Respond  func(p content.Profile) string
}

// Matches reports whether any keyword occurs in the already lowercased input.
func (r Rule) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func firstName(p content.Profile) string {
	if f := strings.Fields(p.Name); len(f) > 0 {
		return f[0]
	}
	return p.Name
}

// projectLabel quotes the title and appends the tagline when there is one.
func projectLabel(pr content.Project) string {
	if pr.Tagline == "" {
		return "'" + pr.Title + "'"
	}
	return fmt.Sprintf("'%s' (%s)", pr.Title, pr.Tagline)
}

// aboutPhrase prefers the profile's own one-line description and falls back
// to the role, with the sub-role only when it is set.
func aboutPhrase(p content.Profile) string {
	if p.About != "" {
		return p.About
	}
	phrase := "a " + p.Role
	if p.SubRole != "" {
		phrase += " (" + p.SubRole + ")"
	}
	return phrase
}

func codingProfileReply(name, format string) func(content.Profile) string {
	return func(p content.Profile) string {
		cp, ok := p.CodingProfile(name)
		if !ok {
			return fmt.Sprintf("%s hasn't shared a %s profile yet.", firstName(p), name)
		}
		return fmt.Sprintf(format, cp.URL)
	}
}

// DefaultRules is the rule table in priority order. Earlier rules win, so
// "email me about your projects" is answered by the projects rule.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     RuleProjects,
			Keywords: []string{"project", "work"},
			Respond: func(p content.Profile) string {
				if len(p.Projects) < 2 {
					return fmt.Sprintf("%s keeps a list of projects on this page, each with a link to its repository.", firstName(p))
				}
				return fmt.Sprintf("%s has developed impactful projects like %s and %s. He specializes in the MERN stack.",
					firstName(p), projectLabel(p.Projects[0]), projectLabel(p.Projects[1]))
			},
		},
		{
			Name:     RuleSkills,
			Keywords: []string{"skill", "tech", "stack"},
			Respond: func(content.Profile) string {
				return "He is proficient in React.js, Node.js, Next.js, and C++. He also has a strong background in DSA with over 1500 problems solved."
			},
		},
		{
			Name:     RuleContact,
			Keywords: []string{"contact", "email", "mail", "gmail"},
			Respond: func(p content.Profile) string {
				return fmt.Sprintf("You can reach him at %s or call at %s.", p.Contact.Email, p.Contact.Phone)
			},
		},
		{
			Name:     RuleResume,
			Keywords: []string{"resume", "cv"},
			Respond: func(p content.Profile) string {
				return "Here is his Resume: " + p.ResumeURL
			},
		},
		{
			Name:     RuleLeetCode,
			Keywords: []string{"leetcode"},
			Respond:  codingProfileReply("LeetCode", "Check out his LeetCode profile: %s"),
		},
		{
			Name:     RuleCodeForces,
			Keywords: []string{"codeforces"},
			Respond:  codingProfileReply("CodeForces", "Here is his CodeForces profile: %s"),
		},
		{
			Name:     RuleCode360,
			Keywords: []string{"code360", "naukri"},
			Respond:  codingProfileReply("Code360", "Here is his Naukri Code360 profile: %s"),
		},
		{
			Name:     RuleLinkedIn,
			Keywords: []string{"linkedin"},
			Respond: func(p content.Profile) string {
				return "Connect on LinkedIn: " + p.LinkedInURL()
			},
		},
		{
			Name:     RuleGitHub,
			Keywords: []string{"github"},
			Respond: func(p content.Profile) string {
				return "Check out his GitHub: " + p.GitHubURL()
			},
		},
		{
			Name:     RuleAbout,
			Keywords: []string{"about", "who"},
			Respond: func(p content.Profile) string {
				return fmt.Sprintf("%s is %s, passionate about building scalable web applications and solving complex algorithmic problems.",
					firstName(p), aboutPhrase(p))
			},
		},
	}
}

// DefaultReply is returned verbatim when no rule matches.
func DefaultReply(p content.Profile) string {
	return fmt.Sprintf("I can provide details on %s's projects, skills, or contact info. What would you like to know?", firstName(p))
}

// Greeting opens every transcript.
func Greeting(p content.Profile) string {
	return fmt.Sprintf("Hello! I'm %s's portfolio assistant. How can I help you learn more about his projects, skills, or coding journey?", firstName(p))
}
