// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package manifest patches the package.json of a project template
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileName is the name of the manifest inside a template
const FileName = "package.json"

// ErrParse indicates the template manifest is not a JSON object
var ErrParse = errors.New("invalid manifest")

// Fields are the manifest keys set from the user answers, empty values are written as empty strings
type Fields struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Author      string `json:"author" yaml:"author"`
}

// Patch sets name, description and author in raw and returns it indented by two spaces.
//
// Keys keep their original order and all other values are passed through unchanged,
// keys that did not exist are appended to the object.
func Patch(raw []byte, f Fields) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrParse)
	}

	if !gjson.ParseBytes(raw).IsObject() {
		return nil, fmt.Errorf("%w: not a JSON object", ErrParse)
	}

	// sjson may reuse its input buffer
	res := bytes.Clone(raw)

	var err error
	for _, kv := range [][2]string{{"name", f.Name}, {"description", f.Description}, {"author", f.Author}} {
		res, err = sjson.SetBytes(res, kv[0], kv[1])
		if err != nil {
			return nil, fmt.Errorf("could not set %s: %w", kv[0], err)
		}
	}

	buf := bytes.NewBuffer([]byte{})
	err = json.Indent(buf, bytes.TrimSpace(res), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// Name returns the name key of a manifest, empty when unset or not a string
func Name(raw []byte) string {
	res := gjson.GetBytes(raw, "name")
	if res.Type != gjson.String {
		return ""
	}

	return res.String()
}
