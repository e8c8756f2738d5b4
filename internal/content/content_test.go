package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if p.Name != def.Name {
		t.Errorf("Name = %q, want %q", p.Name, def.Name)
	}
	if len(p.Projects) != len(def.Projects) {
		t.Errorf("Projects = %d, want %d", len(p.Projects), len(def.Projects))
	}
}

func TestLoadYAMLReplacesListsWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	yml := `name: Test Person
projects:
  - title: Only One
    description: single project
    stack: [Go]
    link: https://example.com/one
contact:
  email: test@example.com
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "Test Person" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Projects) != 1 || p.Projects[0].Title != "Only One" {
		t.Errorf("Projects = %+v", p.Projects)
	}
	if p.Contact.Email != "test@example.com" {
		t.Errorf("Email = %q", p.Contact.Email)
	}
	if p.Contact.GitHub != Default().Contact.GitHub {
		t.Errorf("GitHub handle should keep its default, got %q", p.Contact.GitHub)
	}
	if len(p.CodingProfiles) != len(Default().CodingProfiles) {
		t.Errorf("CodingProfiles should keep defaults")
	}
}

func TestLoadAboutAndTagline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	yml := `about: a backend developer
projects:
  - title: Relay
    tagline: message broker
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.About != "a backend developer" {
		t.Errorf("About = %q", p.About)
	}
	if p.Projects[0].Tagline != "message broker" {
		t.Errorf("Tagline = %q", p.Projects[0].Tagline)
	}
	if p.SubRole != Default().SubRole {
		t.Errorf("SubRole should keep its default, got %q", p.SubRole)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORTFOLIO_CONTACT__PHONE", "+1-555-0100")
	t.Setenv("PORTFOLIO_ROLE", "Engineer")

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Contact.Phone != "+1-555-0100" {
		t.Errorf("Phone = %q", p.Contact.Phone)
	}
	if p.Role != "Engineer" {
		t.Errorf("Role = %q", p.Role)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yml")
	if err := Default().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lc, ok := p.CodingProfile("LeetCode")
	if !ok || lc.URL != "https://leetcode.com/u/aryancpp/" {
		t.Errorf("LeetCode = %+v, %v", lc, ok)
	}
}

func TestCodingProfileLookup(t *testing.T) {
	p := Default()
	if _, ok := p.CodingProfile("leetcode"); ok {
		t.Error("lookup should be exact, not case-insensitive")
	}
	cf, ok := p.CodingProfile("CodeForces")
	if !ok || !strings.Contains(cf.URL, "codeforces.com") {
		t.Errorf("CodeForces = %+v, %v", cf, ok)
	}
}

func TestLinks(t *testing.T) {
	links := Default().Links()
	cases := map[string]string{
		"resume":                 Default().ResumeURL,
		"github":                 "https://github.com/aryanwebd35",
		"linkedin":               "https://www.linkedin.com/in/aryan-srivastava-223694269",
		"leetcode":               "https://leetcode.com/u/aryancpp/",
		"project-mnnit-insights": "https://github.com/aryanwebd35/MNNIT-Insights",
	}
	for name, want := range cases {
		if got := links[name]; got != want {
			t.Errorf("links[%q] = %q, want %q", name, got, want)
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	p := Default()
	c := p.Clone()
	c.Projects[0].Stack[0] = "changed"
	c.Skills[0] = "changed"
	if p.Projects[0].Stack[0] == "changed" || p.Skills[0] == "changed" {
		t.Error("Clone shares backing arrays with the original")
	}
}
