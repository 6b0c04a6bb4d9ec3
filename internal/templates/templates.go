// Parses database templates and builds database creation requests.

// Package templates holds database schema templates and the helpers that turn
// user input and generated samples into typed property values.
package templates

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/maruel/notionctl/internal/notion"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var builtin embed.FS

// Template describes a database schema and how to generate sample entries.
type Template struct {
	Version    int        `yaml:"version" json:"version" jsonschema:"enum=1,description=Template format version"`
	Name       string     `yaml:"name" json:"name" jsonschema:"description=Template identifier"`
	Title      string     `yaml:"title,omitempty" json:"title,omitempty" jsonschema:"description=Default database title"`
	Icon       string     `yaml:"icon,omitempty" json:"icon,omitempty" jsonschema:"description=Emoji icon of the database"`
	Properties []Property `yaml:"properties" json:"properties" jsonschema:"description=Database columns; exactly one must be of type title"`
}

// Property is one column of a template.
type Property struct {
	Name    string   `yaml:"name" json:"name"`
	Type    string   `yaml:"type" json:"type" jsonschema:"enum=title,enum=rich_text,enum=number,enum=select,enum=multi_select,enum=status,enum=date,enum=checkbox,enum=url,enum=email,enum=phone_number,enum=people,enum=files"`
	Format  string   `yaml:"format,omitempty" json:"format,omitempty" jsonschema:"description=Number format such as dollar or percent"`
	Options []Option `yaml:"options,omitempty" json:"options,omitempty"`
	// Fake is the sample value pattern; "{n}" is replaced by the entry index.
	// nil means no sample value, except for selects which pick an option.
	Fake *string `yaml:"fake,omitempty" json:"fake,omitempty" jsonschema:"description=Sample value pattern; {n} is replaced by the entry number"`
}

// Option is a select option.
type Option struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

var propertyTypes = []string{
	"title", "rich_text", "number", "select", "multi_select", "status", "date",
	"checkbox", "url", "email", "phone_number", "people", "files",
}

var colors = []string{
	"default", "gray", "brown", "orange", "yellow", "green", "blue", "purple", "pink", "red",
}

// Names returns the names of the built-in templates, sorted.
func Names() []string {
	entries, err := builtin.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}

// Load returns a built-in template by name, or reads a template file when name
// ends with .yaml or .yml.
func Load(name string) (*Template, error) {
	var data []byte
	var err error
	if ext := path.Ext(name); ext == ".yaml" || ext == ".yml" {
		data, err = os.ReadFile(name) //nolint:gosec // User-specified template path
	} else {
		data, err = builtin.ReadFile(name + ".yaml")
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unknown template %q, known: %s", name, strings.Join(Names(), ", "))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a template.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return &t, nil
}

// Validate checks that the template is valid.
func (t *Template) Validate() error {
	if t.Version != 1 {
		return fmt.Errorf("unsupported template version: %d", t.Version)
	}
	if t.Name == "" {
		return errors.New("name is required")
	}
	titles := 0
	seen := make(map[string]bool, len(t.Properties))
	for i := range t.Properties {
		p := &t.Properties[i]
		if p.Name == "" {
			return fmt.Errorf("property %d: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("property %q: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if !slices.Contains(propertyTypes, p.Type) {
			return fmt.Errorf("property %q: invalid type %q", p.Name, p.Type)
		}
		if p.Type == "title" {
			titles++
		}
		if len(p.Options) > 0 && p.Type != "select" && p.Type != "multi_select" && p.Type != "status" {
			return fmt.Errorf("property %q: options are only valid for select types", p.Name)
		}
		for _, o := range p.Options {
			if o.Name == "" {
				return fmt.Errorf("property %q: option name is required", p.Name)
			}
			if strings.Contains(o.Name, ",") {
				return fmt.Errorf("property %q: option %q: commas are not allowed", p.Name, o.Name)
			}
			if o.Color != "" && !slices.Contains(colors, o.Color) {
				return fmt.Errorf("property %q: option %q: invalid color %q", p.Name, o.Name, o.Color)
			}
		}
	}
	if titles != 1 {
		return fmt.Errorf("exactly one title property is required, got %d", titles)
	}
	return nil
}

// DatabaseRequest builds the request creating a database with this schema
// under a parent page. An empty title falls back to the template title.
func (t *Template) DatabaseRequest(parentPageID, title string) *notion.CreateDatabaseRequest {
	if title == "" {
		title = t.Title
	}
	req := &notion.CreateDatabaseRequest{
		Parent:     notion.Parent{Type: "page_id", PageID: parentPageID},
		Title:      notion.Text(title),
		Icon:       notion.EmojiIcon(t.Icon),
		Properties: make(map[string]notion.DBProperty, len(t.Properties)),
	}
	for i := range t.Properties {
		req.Properties[t.Properties[i].Name] = t.Properties[i].schema()
	}
	return req
}

func (p *Property) schema() notion.DBProperty {
	empty := &struct{}{}
	d := notion.DBProperty{}
	switch p.Type {
	case "title":
		d.Title = empty
	case "rich_text":
		d.RichText = empty
	case "number":
		format := p.Format
		if format == "" {
			format = "number"
		}
		d.Number = &notion.NumberConfig{Format: format}
	case "select":
		d.Select = p.selectConfig()
	case "multi_select":
		d.Type = "multi_select"
		d.MultiSelect = p.selectConfig()
	case "status":
		d.Status = p.selectConfig()
	case "date":
		d.Date = empty
	case "checkbox":
		d.Checkbox = empty
	case "url":
		d.URL = empty
	case "email":
		d.Email = empty
	case "phone_number":
		d.PhoneNumber = empty
	case "people":
		d.People = empty
	case "files":
		d.Files = empty
	}
	return d
}

func (p *Property) selectConfig() *notion.SelectConfig {
	c := &notion.SelectConfig{Options: make([]notion.SelectOption, 0, len(p.Options))}
	for _, o := range p.Options {
		c.Options = append(c.Options, notion.SelectOption{Name: o.Name, Color: o.Color})
	}
	return c
}

// Schema returns the JSON Schema of the template file format.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&Template{})
	return json.MarshalIndent(s, "", "  ")
}
