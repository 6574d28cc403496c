package app

// RunOptions configures a bootstrap run.
type RunOptions struct {
	// ConfigPath is an optional YAML or TOML overlay; empty means defaults.
	ConfigPath string
	// ProfilePath overrides the configured shell profile.
	ProfilePath string
	// DryRun checks every step and prints the plan without applying.
	DryRun bool
	// AssumeYes skips the interpreter confirmation prompt.
	AssumeYes bool
	// Interactive is true when a human can answer prompts.
	Interactive bool
	// Verbose adds step explanations to the plan output.
	Verbose bool
}

// NewRunOptions creates default run options.
func NewRunOptions() RunOptions {
	return RunOptions{}
}

// WithConfig sets the configuration overlay path.
func (o RunOptions) WithConfig(path string) RunOptions {
	o.ConfigPath = path
	return o
}

// WithProfile overrides the shell profile path.
func (o RunOptions) WithProfile(path string) RunOptions {
	o.ProfilePath = path
	return o
}

// WithDryRun enables dry-run mode.
func (o RunOptions) WithDryRun(dryRun bool) RunOptions {
	o.DryRun = dryRun
	return o
}

// WithAssumeYes skips confirmation prompts.
func (o RunOptions) WithAssumeYes(yes bool) RunOptions {
	o.AssumeYes = yes
	return o
}

// WithInteractive marks the run as attached to a terminal.
func (o RunOptions) WithInteractive(interactive bool) RunOptions {
	o.Interactive = interactive
	return o
}

// WithVerbose enables step explanations.
func (o RunOptions) WithVerbose(verbose bool) RunOptions {
	o.Verbose = verbose
	return o
}
