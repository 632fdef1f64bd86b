// Package config provides configuration structures and utilities for htmlslim.
// It defines the processing options resolved from CLI flags and the optional
// .htmlslim configuration file, plus validation and XDG directory helpers.
package config
