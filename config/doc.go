// SPDX-License-Identifier: MIT

// Package config describes a sampling run: where the data lives, how the
// columns are modelled, the chain's seed and length, and logging.
//
// Files are YAML (.yaml, .yml; gopkg.in/yaml.v3) or TOML (.toml;
// github.com/pelletier/go-toml/v2), chosen by extension. Unknown keys are
// rejected. Fields absent from the file keep their Default values.
package config
