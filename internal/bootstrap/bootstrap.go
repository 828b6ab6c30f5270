package bootstrap

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/eugenenazirov/json-properties/internal/environment"
	"github.com/eugenenazirov/json-properties/internal/propsource"
	"github.com/eugenenazirov/json-properties/internal/resource"
)

// DefaultConfigName is the base name probed in every search directory.
const DefaultConfigName = "application"

// DefaultSearchLocations returns the directories searched when none are configured.
func DefaultSearchLocations() []string {
	return []string{"classpath:/", "classpath:/config/"}
}

// Options controls which configuration files are discovered.
type Options struct {
	// ConfigName is the file base name probed in directory locations.
	ConfigName string
	// SearchLocations are the default locations. Later entries take precedence.
	SearchLocations []string
	// AdditionalLocations take precedence over every search location. Later
	// entries take precedence over earlier ones.
	AdditionalLocations []string
}

// ConfigFileLoader discovers configuration files and registers the property
// sources produced by the loaders registered with it.
type ConfigFileLoader struct {
	resolver *resource.Resolver
	loaders  []propsource.Loader
	byExt    map[string]propsource.Loader
	logger   *zap.Logger
	opts     Options
}

// New creates a ConfigFileLoader. Loaders are consulted in registration order;
// the first loader claiming an extension handles it.
func New(resolver *resource.Resolver, logger *zap.Logger, opts Options, loaders ...propsource.Loader) (*ConfigFileLoader, error) {
	if len(loaders) == 0 {
		return nil, ErrNoLoaders
	}
	if opts.ConfigName == "" {
		opts.ConfigName = DefaultConfigName
	}
	if len(opts.SearchLocations) == 0 {
		opts.SearchLocations = DefaultSearchLocations()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	byExt := make(map[string]propsource.Loader)
	for _, l := range loaders {
		for _, ext := range l.FileExtensions() {
			if _, taken := byExt[ext]; !taken {
				byExt[ext] = l
			}
		}
	}

	return &ConfigFileLoader{
		resolver: resolver,
		loaders:  loaders,
		byExt:    byExt,
		logger:   logger,
		opts:     opts,
	}, nil
}

// Load appends the discovered property sources to env in precedence order.
func (c *ConfigFileLoader) Load(env *environment.Environment) error {
	seen := make(map[string]struct{})

	for _, locations := range [][]string{c.opts.AdditionalLocations, c.opts.SearchLocations} {
		for _, raw := range slices.Backward(locations) {
			loc := resource.ParseLocation(raw)
			if loc.Value == "" {
				continue
			}
			if err := c.loadLocation(env, loc, seen); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *ConfigFileLoader) loadLocation(env *environment.Environment, loc resource.Location, seen map[string]struct{}) error {
	if loc.IsDirectory() {
		for _, l := range c.loaders {
			for _, ext := range l.FileExtensions() {
				if c.byExt[ext] != l {
					continue
				}
				res := c.resolver.Resolve(loc.Child(c.opts.ConfigName + "." + ext))
				if !res.Exists() {
					c.logger.Debug("config file not present", zap.String("location", res.Description()))
					continue
				}
				if err := c.loadResource(env, l, res, seen); err != nil {
					return err
				}
			}
		}
		return nil
	}

	l, ok := c.byExt[loc.Extension()]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, loc.Value)
	}

	res := c.resolver.Resolve(loc.Value)
	if loc.Optional && !res.Exists() {
		c.logger.Warn("optional config file not found", zap.String("location", res.Description()))
		return nil
	}
	return c.loadResource(env, l, res, seen)
}

func (c *ConfigFileLoader) loadResource(env *environment.Environment, l propsource.Loader, res resource.Resource, seen map[string]struct{}) error {
	if _, dup := seen[res.Description()]; dup {
		return nil
	}
	seen[res.Description()] = struct{}{}

	name := fmt.Sprintf("applicationConfig: [%s]", res.Description())
	sources, err := l.Load(name, res)
	if err != nil {
		return err
	}

	for _, src := range sources {
		c.logger.Info("property source registered",
			zap.String("name", src.Name()),
			zap.String("origin", src.Origin()),
			zap.Int("properties", src.Len()),
		)
	}
	env.AddLast(sources...)
	return nil
}
