// Package config holds the immutable run configuration for kvdiag.
//
// A Config is constructed once at startup — defaults, then an
// optional TOML file, then command-line flag overrides applied by the
// CLI — and passed by reference to every component. Nothing reads
// configuration from ambient process-wide state, and nothing mutates
// a Config after Validate.
//
//	cfg, err := config.Load("/etc/kvdiag/config.toml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// The probe auth token value supports `${VAR}` environment expansion
// so tokens stay out of config files.
package config
