package runner

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/eugenenazirov/json-properties/internal/environment"
)

// Resolver resolves ${key} placeholders and enumerates effective properties.
type Resolver interface {
	Resolve(text string) (string, error)
	Properties() []environment.Property
}

// Runner prints configuration values injected from the environment.
type Runner struct {
	env         Resolver
	propertyKey string
	logger      *zap.Logger

	keyColor    *color.Color
	originColor *color.Color
}

// New creates a Runner that injects the value of propertyKey.
func New(env Resolver, propertyKey string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		env:         env,
		propertyKey: propertyKey,
		logger:      logger,
		keyColor:    color.New(color.FgCyan, color.Bold),
		originColor: color.New(color.Faint),
	}
}

// Run writes "message is : <value>" for the injected property.
func (r *Runner) Run(w io.Writer) error {
	message, err := r.env.Resolve("${" + r.propertyKey + "}")
	if err != nil {
		return fmt.Errorf("inject %s: %w", r.propertyKey, err)
	}

	r.logger.Debug("property injected", zap.String("key", r.propertyKey))
	_, err = fmt.Fprintf(w, "message is : %s\n", message)
	return err
}

// List writes every effective property as "key = value  (origin)", sorted by key.
func (r *Runner) List(w io.Writer) error {
	for _, p := range r.env.Properties() {
		if _, err := fmt.Fprintf(w, "%s = %s  %s\n",
			r.keyColor.Sprint(p.Key),
			p.Value,
			r.originColor.Sprintf("(%s)", p.Origin),
		); err != nil {
			return err
		}
	}
	return nil
}
