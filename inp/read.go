// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"
)

// ReadDict reads a viscosity dictionary file. The format is selected by the extension:
//  .json (and anything unknown) => JSON
//  .yaml, .yml => YAML
//  .toml => TOML
func ReadDict(path string) (Dict, error) {
	b, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		return nil, chk.Err("cannot read dictionary file %q: %v", path, err)
	}
	d, err := ParseDict(b, Format(path))
	if err != nil {
		return nil, chk.Err("cannot parse dictionary file %q: %v", path, err)
	}
	return d, nil
}

// Format returns the dictionary format corresponding to the extension of a file path
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return "json"
}

// ParseDict decodes a dictionary given as "json", "yaml" or "toml"
func ParseDict(data []byte, format string) (d Dict, err error) {
	m := make(map[string]interface{})
	switch format {
	case "json":
		err = json.Unmarshal(data, &m)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &m)
	case "toml":
		err = toml.Unmarshal(data, &m)
	default:
		return nil, chk.Err("dictionary format %q is not available", format)
	}
	if err != nil {
		return
	}
	return Dict(m), nil
}
