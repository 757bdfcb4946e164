package quizconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

// Provider holds a loaded quiz. The document is read once at startup.
type Provider struct {
	quiz *entity.Quiz
}

func NewProvider(q *entity.Quiz) *Provider {
	return &Provider{quiz: q}
}

func (p *Provider) Quiz() *entity.Quiz {
	return p.quiz
}

// LoadFile reads a quiz document. Files ending in .yaml or .yml are decoded
// as YAML, everything else as JSON.
func LoadFile(path string) (*entity.Quiz, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(raw)
	default:
		return ParseJSON(raw)
	}
}

func ParseJSON(raw []byte) (*entity.Quiz, error) {
	var q entity.Quiz
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("invalid quiz JSON: %w", err)
	}
	return validated(&q)
}

func ParseYAML(raw []byte) (*entity.Quiz, error) {
	var q entity.Quiz
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("invalid quiz YAML: %w", err)
	}
	return validated(&q)
}

func validated(q *entity.Quiz) (*entity.Quiz, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quiz config: %w", err)
	}
	return q, nil
}
