package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/textvary/pkg/errors"
	"github.com/matzehuels/textvary/pkg/variation"
)

// Input file extensions recognized by [Import].
const (
	ExtJSON = ".json"
	ExtTOML = ".toml"
)

// ReadJSON decodes a JSON dialogue from r.
//
// Unknown fields are rejected so a misspelled key does not silently drop
// text. Roles are normalized and missing comment IDs assigned; see [Normalize].
func ReadJSON(r io.Reader) (variation.Dialogue, error) {
	var d variation.Dialogue
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return variation.Dialogue{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json dialogue")
	}
	return Normalize(d)
}

// ReadTOML decodes a TOML dialogue from r.
func ReadTOML(r io.Reader) (variation.Dialogue, error) {
	var d variation.Dialogue
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return variation.Dialogue{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml dialogue")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return variation.Dialogue{}, errors.New(errors.ErrCodeInvalidInput, "unknown key %q in toml dialogue", undecoded[0].String())
	}
	return Normalize(d)
}

// Import reads the dialogue file at path, choosing the decoder by extension.
func Import(path string) (variation.Dialogue, error) {
	var read func(io.Reader) (variation.Dialogue, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtJSON:
		read = ReadJSON
	case ExtTOML:
		read = ReadTOML
	default:
		return variation.Dialogue{}, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported dialogue file %q (want %s or %s)", filepath.Base(path), ExtJSON, ExtTOML)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return variation.Dialogue{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "dialogue file not found: %s", path)
	}
	if err != nil {
		return variation.Dialogue{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := read(f)
	if err != nil {
		return variation.Dialogue{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Normalize validates comment roles and numbers comments that have no ID
// (see [variation.NumberComments]).
func Normalize(d variation.Dialogue) (variation.Dialogue, error) {
	comments := make([]variation.Comment, len(d.Comments))
	for i, c := range d.Comments {
		role, err := variation.ParseRole(string(c.Role))
		if err != nil {
			return variation.Dialogue{}, errors.Wrap(errors.ErrCodeInvalidRole, err, "comment %d", i+1)
		}
		c.Role = role
		comments[i] = c
	}
	return variation.Dialogue{Post: d.Post, Comments: variation.NumberComments(comments)}, nil
}
