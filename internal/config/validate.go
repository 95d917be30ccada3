package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("api.base_url: must be an absolute URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("api.timeout: must not be negative, got %s", c.API.Timeout))
	}

	if c.Output.Dir == "" {
		errs = append(errs, "output.dir: required")
	}

	if c.Download.Delay < 0 {
		errs = append(errs, fmt.Sprintf("download.delay: must not be negative, got %s", c.Download.Delay))
	}
	if c.Download.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("download.timeout: must not be negative, got %s", c.Download.Timeout))
	}
	for i, class := range c.Download.LinkClasses {
		if class == "" {
			errs = append(errs, fmt.Sprintf("download.link_classes[%d]: must not be empty", i))
		}
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
