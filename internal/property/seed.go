package property

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
)

type seedFile struct {
	Properties []seedProperty `yaml:"properties"`
}

type seedProperty struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// LoadSeed reads a YAML list of properties:
//
//	properties:
//	  - name: Harbor View
//	    timezone: America/New_York
//
// Every entry is validated; the first invalid one fails the whole file.
func LoadSeed(path string) ([]Property, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(b)
}

func ParseSeed(b []byte) ([]Property, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("property seed: %w", err)
	}
	out := make([]Property, 0, len(f.Properties))
	for i, sp := range f.Properties {
		p, err := New(sp.Name, sp.Timezone)
		if err != nil {
			return nil, fmt.Errorf("property seed entry %d (%q): %w", i, sp.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Creator is the write side Import needs.
type Creator interface {
	Create(ctx context.Context, p Property) error
}

// Import creates every property, skipping names that already exist. It
// returns how many were created.
func Import(ctx context.Context, c Creator, ps []Property) (int, error) {
	created := 0
	for _, p := range ps {
		err := c.Create(ctx, p)
		if errors.Is(err, db.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("import %q: %w", p.Name, err)
		}
		created++
	}
	return created, nil
}
