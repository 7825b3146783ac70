package templates

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of a template file.
type catalogFile struct {
	Templates []fileTemplate `yaml:"templates"`
}

type fileTemplate struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Category    string     `yaml:"category,omitempty"`
	Complexity  string     `yaml:"complexity,omitempty"`
	Keywords    []string   `yaml:"keywords"`
	Bonus       *fileBonus `yaml:"bonus,omitempty"`
	Body        string     `yaml:"body"`
}

type fileBonus struct {
	Mode   string   `yaml:"mode"`
	Terms  []string `yaml:"terms"`
	Points int      `yaml:"points"`
}

// LoadFile reads a YAML template file into a new catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML template data into a new catalog, preserving file order.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	c := NewCatalog()
	for _, ft := range f.Templates {
		if err := c.Register(ft.toTemplate()); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (ft fileTemplate) toTemplate() Template {
	t := Template{
		ID:          ft.ID,
		Name:        ft.Name,
		Description: ft.Description,
		Category:    ft.Category,
		Complexity:  ft.Complexity,
		Keywords:    ft.Keywords,
		Body:        ft.Body,
	}
	if ft.Bonus != nil {
		t.Bonus = &BonusRule{
			Mode:   BonusMode(ft.Bonus.Mode),
			Terms:  ft.Bonus.Terms,
			Points: ft.Bonus.Points,
		}
	}
	return t
}
