// Package ruleset loads the risk rules a run evaluates.
package ruleset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"riskaction/internal/risk"
)

var ErrInvalidRuleSet = errors.New("invalid rule set")

// RuleSet is an ordered list of rules. Output bindings follow this order.
type RuleSet struct {
	Rules []risk.Rule `json:"rules" yaml:"rules" validate:"required,min=1,unique=Name,dive"`
}

var validate = validator.New()

// Default returns the primary and residual risk rules.
func Default() *RuleSet {
	return &RuleSet{Rules: risk.DefaultRules()}
}

// LoadFromPath reads a rule set file (YAML or JSON).
// Format is detected by extension (.yaml/.yml -> YAML, .json -> JSON) or by content.
func LoadFromPath(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses and validates a rule set. ext is the file extension used as a
// format hint; empty means detect from content.
func Load(data []byte, ext string) (*RuleSet, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		ext = ".yaml"
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		}
	}

	var rs RuleSet
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &rs); err != nil {
			return nil, fmt.Errorf("parse rule set json: %w", err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, &rs); err != nil {
			return nil, fmt.Errorf("parse rule set yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("rule set format %q not supported (want .yaml, .yml or .json)", ext)
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Validate checks that there is at least one rule, that every rule names
// all of its fields, and that rule names are unique.
func (rs *RuleSet) Validate() error {
	if err := validate.Struct(rs); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidRuleSet, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}
	return nil
}
