package content

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: PORTFOLIO_CONTACT__EMAIL -> contact.email.
const EnvPrefix = "PORTFOLIO_"

// Load reads the profile from the YAML file at path, then overlays
// PORTFOLIO_* environment variables. Top-level keys missing from both keep
// their Default() values; a key that is present replaces the default whole.
func Load(path string) (Profile, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Profile{}, fmt.Errorf("reading content %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Profile{}, fmt.Errorf("accessing content %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return Profile{}, fmt.Errorf("loading env overrides: %w", err)
	}

	var loaded Profile
	if err := k.Unmarshal("", &loaded); err != nil {
		return Profile{}, fmt.Errorf("unmarshalling content: %w", err)
	}

	p := Default()
	overlay(&p, loaded, k)
	return p, nil
}

func overlay(dst *Profile, src Profile, k *koanf.Koanf) {
	set := func(key string) bool { return k.Exists(key) }

	if set("name") {
		dst.Name = src.Name
	}
	if set("role") {
		dst.Role = src.Role
	}
	if set("roles") {
		dst.Roles = src.Roles
	}
	if set("sub_role") {
		dst.SubRole = src.SubRole
	}
	if set("about") {
		dst.About = src.About
	}
	if set("summary") {
		dst.Summary = src.Summary
	}
	if set("resume_url") {
		dst.ResumeURL = src.ResumeURL
	}
	if set("photo") {
		dst.Photo = src.Photo
	}
	if set("photo_fallback_url") {
		dst.PhotoFallbackURL = src.PhotoFallbackURL
	}
	if set("achievements") {
		dst.Achievements = src.Achievements
	}
	if set("projects") {
		dst.Projects = src.Projects
	}
	if set("skills") {
		dst.Skills = src.Skills
	}
	if set("coding_profiles") {
		dst.CodingProfiles = src.CodingProfiles
	}

	// Contact fields merge individually so one override keeps the other handles.
	if set("contact.email") {
		dst.Contact.Email = src.Contact.Email
	}
	if set("contact.phone") {
		dst.Contact.Phone = src.Contact.Phone
	}
	if set("contact.github") {
		dst.Contact.GitHub = src.Contact.GitHub
	}
	if set("contact.linkedin") {
		dst.Contact.LinkedIn = src.Contact.LinkedIn
	}
	if set("contact.instagram") {
		dst.Contact.Instagram = src.Contact.Instagram
	}
}

// Encode writes the profile to w as YAML.
func (p Profile) Encode(w io.Writer) error {
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding content: %w", err)
	}
	return enc.Close()
}

// Save writes the profile to path as YAML.
func (p Profile) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := p.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
