// Package site holds the portfolio content and renders the page.
package site

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed assets/content.yaml
var defaultContent []byte

// Content is everything shown on the page. Fields tagged as markdown are
// rendered to HTML before templating.
type Content struct {
	Title      string          `yaml:"title"`
	Owner      string          `yaml:"owner"`
	Hero       Hero            `yaml:"hero"`
	About      About           `yaml:"about"`
	Projects   []Project       `yaml:"projects"`
	Experience []Experience    `yaml:"experience"`
	Skills     []SkillCategory `yaml:"skills"`
	Contact    Contact         `yaml:"contact"`
}

type Hero struct {
	Lead      string   `yaml:"lead"`
	Highlight string   `yaml:"highlight"`
	Trail     string   `yaml:"trail"`
	Tagline   string   `yaml:"tagline"`
	Actions   []string `yaml:"actions"`
}

type About struct {
	Body         string   `yaml:"body"` // markdown
	Technologies []string `yaml:"technologies"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"` // markdown
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags"`
	DemoURL     string   `yaml:"demo_url"`
	RepoURL     string   `yaml:"repo_url"`
}

type Experience struct {
	Company      string   `yaml:"company"`
	Role         string   `yaml:"role"`
	Duration     string   `yaml:"duration"`
	Description  string   `yaml:"description"` // markdown
	Technologies []string `yaml:"technologies"`
}

type SkillCategory struct {
	Name   string  `yaml:"name"`
	Skills []Skill `yaml:"skills"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"` // percent
}

type Contact struct {
	Intro string `yaml:"intro"`
	Email string `yaml:"email"`
	Links []Link `yaml:"links"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// DefaultContent returns the bundled content.
func DefaultContent() (*Content, error) {
	return Parse(defaultContent)
}

// LoadContent reads content from path, or the bundled content when path is
// empty.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return DefaultContent()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML content and checks it.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks required fields and skill levels.
func (c *Content) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("content: title is required")
	}
	for _, p := range c.Projects {
		if p.Title == "" {
			return fmt.Errorf("content: project without title")
		}
	}
	for _, cat := range c.Skills {
		for _, s := range cat.Skills {
			if s.Level < 0 || s.Level > 100 {
				return fmt.Errorf("content: skill %q level %d out of range 0-100", s.Name, s.Level)
			}
		}
	}
	return nil
}
