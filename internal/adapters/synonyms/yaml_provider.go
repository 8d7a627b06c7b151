// Package synonyms provides synonym dictionaries that are not backed by Manticore.
package synonyms

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terratensor/addresser/internal/core/ports"
)

// YAMLProvider отдает синонимы из словаря, загруженного из YAML файла:
//
//	synonyms:
//	  0c5b2444-70a0-4932-980c-b4dc0d3f02b5:
//	    - Первопрестольная
//	    - Златоглавая
type YAMLProvider struct {
	synonyms map[string][]string
}

var _ ports.SynonymProvider = (*YAMLProvider)(nil)

// LoadYAMLFile reads the dictionary at path.
func LoadYAMLFile(path string) (*YAMLProvider, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonyms file: %w", err)
	}
	p, err := ParseYAML(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return p, nil
}

// ParseYAML builds a provider from the YAML document b.
func ParseYAML(b []byte) (*YAMLProvider, error) {
	var raw struct {
		Synonyms map[string][]string `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}

	p := &YAMLProvider{synonyms: make(map[string][]string, len(raw.Synonyms))}
	for fiasID, list := range raw.Synonyms {
		fiasID = strings.ToLower(strings.TrimSpace(fiasID))
		if fiasID == "" {
			return nil, fmt.Errorf("empty fias id in synonyms")
		}

		seen := make(map[string]bool, len(list))
		for _, synonym := range list {
			synonym = strings.TrimSpace(synonym)
			if synonym == "" || seen[synonym] {
				continue
			}
			seen[synonym] = true
			p.synonyms[fiasID] = append(p.synonyms[fiasID], synonym)
		}
	}
	return p, nil
}

func (p *YAMLProvider) Synonyms(_ context.Context, fiasID string) ([]string, error) {
	list := p.synonyms[strings.ToLower(fiasID)]
	if len(list) == 0 {
		return nil, nil
	}
	return append([]string(nil), list...), nil
}

// All returns a copy of the whole dictionary.
func (p *YAMLProvider) All() map[string][]string {
	out := make(map[string][]string, len(p.synonyms))
	for fiasID, list := range p.synonyms {
		out[fiasID] = append([]string(nil), list...)
	}
	return out
}

// Noop is a provider without synonyms.
type Noop struct{}

func (Noop) Synonyms(context.Context, string) ([]string, error) {
	return nil, nil
}
