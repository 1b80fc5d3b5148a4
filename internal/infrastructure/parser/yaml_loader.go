package parser

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
)

//go:embed menu.yaml
var defaultMenu []byte

type yamlMenu struct {
	Items []entity.MenuItem `yaml:"items"`
}

type yamlSeedLoader struct {
	data []byte
}

// NewDefaultSeedLoader ichiga joylangan menu.yaml dan o'qiydi
func NewDefaultSeedLoader() repository.SeedLoader {
	return &yamlSeedLoader{data: defaultMenu}
}

// NewYAMLSeedLoader berilgan YAML matnidan o'qiydi
func NewYAMLSeedLoader(data []byte) repository.SeedLoader {
	return &yamlSeedLoader{data: data}
}

// LoadSeed YAML dan menyu elementlari
func (l *yamlSeedLoader) LoadSeed(ctx context.Context) ([]entity.MenuItem, error) {
	dec := yaml.NewDecoder(bytes.NewReader(l.data))
	dec.KnownFields(true)

	var menu yamlMenu
	if err := dec.Decode(&menu); err != nil {
		return nil, fmt.Errorf("failed to decode seed menu: %w", err)
	}
	if len(menu.Items) == 0 {
		return nil, fmt.Errorf("seed menu has no items")
	}
	return menu.Items, nil
}
