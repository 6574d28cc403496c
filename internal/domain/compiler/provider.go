package compiler

import "github.com/felixgeelhaar/pyprep/internal/domain/config"

// Provider contributes the steps of one tool (apt, asdf, pipx, ...).
type Provider interface {
	// Name returns the provider's identifier.
	Name() string

	// Compile turns configuration into steps, in the order they must run.
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext carries what providers need to build their steps.
type CompileContext struct {
	config        *config.Config
	home          string
	ubuntuVersion string
}

// NewCompileContext creates a CompileContext for cfg.
func NewCompileContext(cfg *config.Config) CompileContext {
	return CompileContext{config: cfg}
}

// Config returns the run configuration.
func (c CompileContext) Config() *config.Config {
	return c.config
}

// Home returns the user's home directory, used to resolve "~" in
// configured paths.
func (c CompileContext) Home() string {
	return c.home
}

// WithHome returns a new CompileContext with the home directory set.
func (c CompileContext) WithHome(home string) CompileContext {
	c.home = home
	return c
}

// UbuntuVersion returns the detected Ubuntu VERSION_ID, or "" when the host
// is not Ubuntu or detection failed.
func (c CompileContext) UbuntuVersion() string {
	return c.ubuntuVersion
}

// WithUbuntuVersion returns a new CompileContext with the release set.
func (c CompileContext) WithUbuntuVersion(version string) CompileContext {
	c.ubuntuVersion = version
	return c
}
