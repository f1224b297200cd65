// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/function-config.schema.json
var functionConfigSchema []byte

// DefaultTemplateFormat is the template syntax assumed when config.json does not name one.
const DefaultTemplateFormat = "semantic-kernel"

// DefaultInputVariable is the argument a function accepts when it declares none.
const DefaultInputVariable = "input"

// FunctionConfig is the parsed content of a function's config.json.
type FunctionConfig struct {
	Name              string                    `json:"name,omitempty"`
	Schema            int                       `json:"schema,omitempty"`
	Type              string                    `json:"type,omitempty"`
	Description       string                    `json:"description,omitempty"`
	TemplateFormat    string                    `json:"template_format,omitempty"`
	InputVariables    []InputVariable           `json:"input_variables,omitempty"`
	ExecutionSettings map[string]map[string]any `json:"execution_settings,omitempty"`
	DefaultServices   []string                  `json:"default_services,omitempty"`
}

// InputVariable describes one named argument of a function template.
type InputVariable struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
	IsRequired  bool   `json:"is_required,omitempty"`
}

// rawConfig accepts both the current and the legacy config.json layouts.
type rawConfig struct {
	FunctionConfig

	InputVariables []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Default     any    `json:"default"`
		IsRequired  bool   `json:"is_required"`
	} `json:"input_variables"`

	Input struct {
		Parameters []struct {
			Name         string `json:"name"`
			Description  string `json:"description"`
			DefaultValue any    `json:"defaultValue"`
		} `json:"parameters"`
	} `json:"input"`

	Completion map[string]any `json:"completion"`
}

// DefaultConfig returns the configuration used when config.json is absent or blank.
func DefaultConfig() FunctionConfig {
	return FunctionConfig{TemplateFormat: DefaultTemplateFormat}
}

// ParseConfig validates data against the function configuration schema and
// decodes it. Blank input yields DefaultConfig. Legacy input.parameters are
// folded into InputVariables and a legacy completion block becomes the
// "default" execution settings.
func ParseConfig(data []byte) (FunctionConfig, error) {
	if strings.TrimSpace(string(data)) == "" {
		return DefaultConfig(), nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(functionConfigSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return FunctionConfig{}, fmt.Errorf("config schema validation failed: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return FunctionConfig{}, formatNumberedErrors("config schema validation failed", msgs)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return FunctionConfig{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg := raw.FunctionConfig
	cfg.InputVariables = nil
	for _, v := range raw.InputVariables {
		cfg.InputVariables = append(cfg.InputVariables, InputVariable{
			Name:        v.Name,
			Description: v.Description,
			Default:     stringifyDefault(v.Default),
			IsRequired:  v.IsRequired,
		})
	}
	for _, p := range raw.Input.Parameters {
		if slices.ContainsFunc(cfg.InputVariables, func(v InputVariable) bool { return v.Name == p.Name }) {
			continue
		}
		cfg.InputVariables = append(cfg.InputVariables, InputVariable{
			Name:        p.Name,
			Description: p.Description,
			Default:     stringifyDefault(p.DefaultValue),
		})
	}
	if len(raw.Completion) > 0 {
		if cfg.ExecutionSettings == nil {
			cfg.ExecutionSettings = make(map[string]map[string]any)
		}
		if _, ok := cfg.ExecutionSettings["default"]; !ok {
			cfg.ExecutionSettings["default"] = raw.Completion
		}
	}
	if cfg.TemplateFormat == "" {
		cfg.TemplateFormat = DefaultTemplateFormat
	}
	return cfg, nil
}

// InputNames returns the names of the function's declared inputs, or
// DefaultInputVariable when none are declared.
func (c FunctionConfig) InputNames() []string {
	if len(c.InputVariables) == 0 {
		return []string{DefaultInputVariable}
	}
	names := make([]string, 0, len(c.InputVariables))
	for _, v := range c.InputVariables {
		names = append(names, v.Name)
	}
	return names
}

// Clone returns a deep copy of c. Execution settings values are copied
// recursively through JSON objects and arrays.
func (c FunctionConfig) Clone() FunctionConfig {
	c.InputVariables = slices.Clone(c.InputVariables)
	c.DefaultServices = slices.Clone(c.DefaultServices)
	if c.ExecutionSettings != nil {
		settings := make(map[string]map[string]any, len(c.ExecutionSettings))
		for k, v := range c.ExecutionSettings {
			settings[k] = cloneObject(v)
		}
		c.ExecutionSettings = settings
	}
	return c
}

func cloneObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := maps.Clone(m)
	for k, v := range out {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneObject(x)
	case []any:
		out := slices.Clone(x)
		for i, e := range out {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func stringifyDefault(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return fmt.Sprint(d)
		}
		return string(b)
	}
}
