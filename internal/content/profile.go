// Package content holds the static portfolio data: who the site is about,
// their projects, skills and profile links.
package content

import (
	"net/url"
	"strings"
)

// Profile is the read-only content the page and the assistant are built from.
// Treat it as a value: components receive a copy at construction.
type Profile struct {
	Name             string          `koanf:"name" yaml:"name" json:"name"`
	Role             string          `koanf:"role" yaml:"role" json:"role"`
	Roles            []string        `koanf:"roles" yaml:"roles" json:"roles"`
	SubRole          string          `koanf:"sub_role" yaml:"sub_role" json:"sub_role"`
	About            string          `koanf:"about" yaml:"about" json:"about"`
	Summary          string          `koanf:"summary" yaml:"summary" json:"summary"`
	ResumeURL        string          `koanf:"resume_url" yaml:"resume_url" json:"resume_url"`
	Photo            string          `koanf:"photo" yaml:"photo" json:"photo"`
	PhotoFallbackURL string          `koanf:"photo_fallback_url" yaml:"photo_fallback_url" json:"photo_fallback_url"`
	Achievements     []Achievement   `koanf:"achievements" yaml:"achievements" json:"achievements"`
	Projects         []Project       `koanf:"projects" yaml:"projects" json:"projects"`
	Skills           []string        `koanf:"skills" yaml:"skills" json:"skills"`
	Contact          Contact         `koanf:"contact" yaml:"contact" json:"contact"`
	CodingProfiles   []CodingProfile `koanf:"coding_profiles" yaml:"coding_profiles" json:"coding_profiles"`
}

type Achievement struct {
	Title       string `koanf:"title" yaml:"title" json:"title"`
	Description string `koanf:"description" yaml:"description" json:"description"`
}

type Project struct {
	Title       string   `koanf:"title" yaml:"title" json:"title"`
	Description string   `koanf:"description" yaml:"description" json:"description"`
	Tagline     string   `koanf:"tagline" yaml:"tagline" json:"tagline"`
	Stack       []string `koanf:"stack" yaml:"stack" json:"stack"`
	Link        string   `koanf:"link" yaml:"link" json:"link"`
}

// Contact holds handles, not URLs. The URL helpers on Profile build the links.
type Contact struct {
	Email     string `koanf:"email" yaml:"email" json:"email"`
	Phone     string `koanf:"phone" yaml:"phone" json:"phone"`
	GitHub    string `koanf:"github" yaml:"github" json:"github"`
	LinkedIn  string `koanf:"linkedin" yaml:"linkedin" json:"linkedin"`
	Instagram string `koanf:"instagram" yaml:"instagram" json:"instagram"`
}

type CodingProfile struct {
	Name string `koanf:"name" yaml:"name" json:"name"`
	URL  string `koanf:"url" yaml:"url" json:"url"`
}

// CodingProfile looks up a coding profile by its exact display name.
func (p Profile) CodingProfile(name string) (CodingProfile, bool) {
	for _, cp := range p.CodingProfiles {
		if cp.Name == name {
			return cp, true
		}
	}
	return CodingProfile{}, false
}

func (p Profile) GitHubURL() string {
	return "https://github.com/" + p.Contact.GitHub
}

func (p Profile) LinkedInURL() string {
	return "https://www.linkedin.com/in/" + p.Contact.LinkedIn
}

func (p Profile) InstagramURL() string {
	return "https://www.instagram.com/" + p.Contact.Instagram + "/"
}

// MailComposeURL opens a Gmail compose window addressed to the contact email.
func (p Profile) MailComposeURL() string {
	return "https://mail.google.com/mail/?view=cm&fs=1&to=" + url.QueryEscape(p.Contact.Email)
}

// Links returns every outbound link on the page keyed by a short slug, the
// way /go/:name addresses them.
func (p Profile) Links() map[string]string {
	links := map[string]string{
		"resume":    p.ResumeURL,
		"github":    p.GitHubURL(),
		"linkedin":  p.LinkedInURL(),
		"instagram": p.InstagramURL(),
		"email":     p.MailComposeURL(),
	}
	for _, cp := range p.CodingProfiles {
		links[Slug(cp.Name)] = cp.URL
	}
	for _, pr := range p.Projects {
		links["project-"+Slug(pr.Title)] = pr.Link
	}
	return links
}

// Slug lowercases s and joins its words with dashes.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Clone returns a deep copy so callers can never alias another component's slices.
func (p Profile) Clone() Profile {
	c := p
	c.Roles = append([]string(nil), p.Roles...)
	c.Skills = append([]string(nil), p.Skills...)
	c.Achievements = append([]Achievement(nil), p.Achievements...)
	c.CodingProfiles = append([]CodingProfile(nil), p.CodingProfiles...)
	c.Projects = make([]Project, len(p.Projects))
	for i, pr := range p.Projects {
		pr.Stack = append([]string(nil), pr.Stack...)
		c.Projects[i] = pr
	}
	return c
}
