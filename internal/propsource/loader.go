package propsource

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/json-properties/internal/document"
	"github.com/eugenenazirov/json-properties/internal/flatten"
	"github.com/eugenenazirov/json-properties/internal/resource"
	"github.com/eugenenazirov/json-properties/internal/schema"
)

// Loader turns a configuration resource into property sources.
type Loader interface {
	// FileExtensions lists the extensions (without dot) the loader handles.
	FileExtensions() []string
	// Load reads res and returns the property sources it yields under name.
	// A resource without properties yields an empty result, not an error.
	Load(name string, res resource.Resource) ([]*PropertySource, error)
}

// LoaderOption configures the file loaders.
type LoaderOption func(*loaderConfig)

// WithMaxDepth limits document nesting. Non-positive values keep the default.
func WithMaxDepth(depth int) LoaderOption {
	return func(cfg *loaderConfig) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithSchema validates JSON resources against v before parsing.
func WithSchema(v *schema.Validator) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.validator = v
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(cfg *loaderConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

type loaderConfig struct {
	maxDepth  int
	validator *schema.Validator
	logger    *zap.Logger
}

func newLoaderConfig(opts []LoaderOption) loaderConfig {
	cfg := loaderConfig{
		maxDepth: document.DefaultMaxDepth,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

type parseFunc func(data []byte, maxDepth int) (*document.Document, error)

func (c loaderConfig) load(name string, res resource.Resource, data []byte, parse parseFunc) ([]*PropertySource, error) {
	doc, err := parse(data, c.maxDepth)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", res.Description(), err)
	}

	props, err := flatten.Flatten("", doc, flatten.WithMaxDepth(c.maxDepth))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", res.Description(), err)
	}

	if len(props) == 0 {
		c.logger.Debug("resource has no properties", zap.String("location", res.Description()))
		return nil, nil
	}

	c.logger.Debug("resource loaded",
		zap.String("name", name),
		zap.String("location", res.Description()),
		zap.Int("properties", len(props)),
	)
	return []*PropertySource{New(name, res.Description(), props)}, nil
}

// JSONLoader loads .json resources.
type JSONLoader struct {
	cfg loaderConfig
}

// NewJSONLoader creates a loader for JSON documents.
func NewJSONLoader(opts ...LoaderOption) *JSONLoader {
	return &JSONLoader{cfg: newLoaderConfig(opts)}
}

func (l *JSONLoader) FileExtensions() []string {
	return []string{"json"}
}

func (l *JSONLoader) Load(name string, res resource.Resource) ([]*PropertySource, error) {
	data, err := resource.ReadAll(res)
	if err != nil {
		return nil, err
	}

	if l.cfg.validator != nil {
		if err := l.cfg.validator.Validate(data); err != nil {
			return nil, fmt.Errorf("load %s: %w", res.Description(), err)
		}
	}

	return l.cfg.load(name, res, data, document.ParseJSON)
}

// YAMLLoader loads .yml and .yaml resources.
type YAMLLoader struct {
	cfg loaderConfig
}

// NewYAMLLoader creates a loader for YAML documents. Schema validation is not
// applied to YAML.
func NewYAMLLoader(opts ...LoaderOption) *YAMLLoader {
	return &YAMLLoader{cfg: newLoaderConfig(opts)}
}

func (l *YAMLLoader) FileExtensions() []string {
	return []string{"yml", "yaml"}
}

func (l *YAMLLoader) Load(name string, res resource.Resource) ([]*PropertySource, error) {
	data, err := resource.ReadAll(res)
	if err != nil {
		return nil, err
	}
	return l.cfg.load(name, res, data, document.ParseYAML)
}
