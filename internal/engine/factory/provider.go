package factory

import "go.trai.ch/classmeta/internal/core/ports"

// Provider creates factories that share a driver, a resolver and a persistent cache.
type Provider struct {
	driver   ports.Driver
	resolver ports.ClassResolver
	opts     []Option
}

// NewProvider creates a Provider. The options apply to every factory it creates.
func NewProvider(driver ports.Driver, resolver ports.ClassResolver, opts ...Option) *Provider {
	return &Provider{driver: driver, resolver: resolver, opts: opts}
}

// New returns a factory with an empty memory tier. extra options are applied
// after the shared ones.
func (p *Provider) New(extra ...Option) *Factory {
	opts := make([]Option, 0, len(p.opts)+len(extra))
	opts = append(opts, p.opts...)
	opts = append(opts, extra...)
	return New(p.driver, p.resolver, opts...)
}

// Resolver returns the shared class resolver.
func (p *Provider) Resolver() ports.ClassResolver {
	return p.resolver
}
