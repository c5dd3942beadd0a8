// Package content loads the portfolio document shown by the terminal app.
//
// The document is YAML. A default copy is compiled into the binary and a
// different one can be loaded from disk.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultDocument []byte

var (
	ErrNoOwner     = errors.New("content: owner name is required")
	ErrDuplicateID = errors.New("content: duplicate id")
	ErrSkillLevel  = errors.New("content: skill level must be within 0-100")
	ErrNoTitle     = errors.New("content: title is required")
)

// ProjectColors are assigned to projects without an explicit border colour,
// in order.
var ProjectColors = []string{"#3B82F6", "#8B5CF6", "#EC4899", "#10B981", "#F59E0B", "#EF4444"}

type Document struct {
	Owner        Owner         `yaml:"owner"`
	Roles        []string      `yaml:"roles"`
	About        string        `yaml:"about"`
	Experience   []Experience  `yaml:"experience"`
	Skills       []Skill       `yaml:"skills"`
	Technologies []Technology  `yaml:"technologies"`
	Projects     []Project     `yaml:"projects"`
	Certificates []Certificate `yaml:"certificates"`
	Badges       []Badge       `yaml:"badges"`
	FAQ          []FAQItem     `yaml:"faq"`
	Socials      []Social      `yaml:"socials"`
	Titles       Titles        `yaml:"titles"`
}

type Owner struct {
	Name     string `yaml:"name"`
	Headline string `yaml:"headline"`
	Tagline  string `yaml:"tagline"`
	// Site is the base for relative links in descriptions.
	Site  string `yaml:"site"`
	Email string `yaml:"email"`
}

type Experience struct {
	Place        string `yaml:"place"`
	Role         string `yaml:"role"`
	Period       string `yaml:"period"`
	Details      string `yaml:"details"`
	Technologies string `yaml:"technologies"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type Technology struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type Project struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	// Description may contain inline HTML.
	Description  string `yaml:"description"`
	Technologies string `yaml:"technologies"`
	URL          string `yaml:"url"`
	Image        string `yaml:"image"`
	BorderColor  string `yaml:"border_color"`
}

type Certificate struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Issuer        string `yaml:"issuer"`
	Date          string `yaml:"date"`
	Image         string `yaml:"image"`
	CredentialURL string `yaml:"credential_url"`
	Description   string `yaml:"description"`
}

type Badge struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Issuer      string `yaml:"issuer"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

type FAQItem struct {
	Question string `yaml:"question"`
	// Answer is markdown.
	Answer string `yaml:"answer"`
}

type Social struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Titles are the typewriter string lists of each section heading.
type Titles struct {
	Home         []string `yaml:"home"`
	Projects     []string `yaml:"projects"`
	Certificates []string `yaml:"certificates"`
	FAQ          []string `yaml:"faq"`
	Contact      []string `yaml:"contact"`
}

// Default returns the compiled-in document.
func Default() (*Document, error) {
	doc, err := Parse(defaultDocument)
	if err != nil {
		return nil, fmt.Errorf("default document: %w", err)
	}
	return doc, nil
}

// Load reads and validates a document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a document, rejecting unknown fields, then fills defaults
// and validates it.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	doc.normalize()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) normalize() {
	for i := range d.Projects {
		p := &d.Projects[i]
		if p.ID == "" {
			p.ID = fmt.Sprintf("project-%d", i+1)
		}
		if p.BorderColor == "" {
			p.BorderColor = ProjectColors[i%len(ProjectColors)]
		}
	}
	for i := range d.Certificates {
		if d.Certificates[i].ID == "" {
			d.Certificates[i].ID = fmt.Sprintf("cert-%d", i+1)
		}
	}
	for i := range d.Badges {
		if d.Badges[i].ID == "" {
			d.Badges[i].ID = fmt.Sprintf("badge-%d", i+1)
		}
	}
}

// Validate reports the first structural problem in the document.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Owner.Name) == "" {
		return ErrNoOwner
	}
	for _, s := range d.Skills {
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("%w: %s is %d", ErrSkillLevel, s.Name, s.Level)
		}
	}

	// Cards share one id space: every card owns effects keyed by id.
	seen := make(map[string]struct{})
	check := func(kind, id, title string) error {
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("%w: %s %q", ErrNoTitle, kind, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, id)
		}
		seen[id] = struct{}{}
		return nil
	}
	for _, p := range d.Projects {
		if err := check("project", p.ID, p.Title); err != nil {
			return err
		}
	}
	for _, c := range d.Certificates {
		if err := check("certificate", c.ID, c.Title); err != nil {
			return err
		}
	}
	for _, b := range d.Badges {
		if err := check("badge", b.ID, b.Title); err != nil {
			return err
		}
	}
	return nil
}
