package sceneio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/layercake/pkg/errors"
)

// ReadJSON decodes a JSON scene description from r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode scene document")
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadYAML decodes a YAML scene description from r. The YAML tree
// normalizes through the JSON path, so both formats share one document
// model and one validation pass.
func ReadYAML(r io.Reader) (*Document, error) {
	var tree any
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode scene document")
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "normalize yaml document")
	}
	return ReadJSON(bytes.NewReader(data))
}

// ReadFile reads a scene description, dispatching on the file
// extension: .json, .yaml or .yml.
func ReadFile(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".yaml", ".yml":
		return ReadYAML(f)
	}
	return nil, errors.New(errors.ErrCodeInvalidExtension,
		"unsupported scene file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
}

// Marshal encodes the document as indented JSON.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode scene document")
	}
	return data, nil
}

// Write encodes the document as indented JSON to w.
func Write(doc *Document, w io.Writer) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// WriteFile writes the document to path, dispatching on the extension
// like [ReadFile].
func WriteFile(doc *Document, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := Marshal(doc)
		if err != nil {
			return err
		}
		return os.WriteFile(path, append(data, '\n'), 0o644)
	case ".yaml", ".yml":
		// Normalize through JSON so field names match the read path.
		jsonData, err := json.Marshal(doc)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode scene document")
		}
		var tree any
		if err := json.Unmarshal(jsonData, &tree); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "normalize scene document")
		}
		data, err := yaml.Marshal(tree)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode scene document")
		}
		return os.WriteFile(path, data, 0o644)
	}
	return errors.New(errors.ErrCodeInvalidExtension,
		"unsupported scene file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
}

// validate checks the structural invariants a decoded document must
// satisfy before Build attempts it.
func validate(doc *Document) error {
	if doc.Width <= 0 || doc.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDocument,
			"invalid canvas dimensions %dx%d", doc.Width, doc.Height)
	}
	return validateLayers(doc.Layers)
}

func validateLayers(layers []Layer) error {
	for i := range layers {
		l := &layers[i]
		if l.Type == "" {
			return errors.New(errors.ErrCodeInvalidLayerType, "layer %d missing type", i)
		}
		if l.ID != "" {
			if err := errors.ValidateLayerID(l.ID); err != nil {
				return err
			}
		}
		if len(l.Children) > 0 {
			if err := validateLayers(l.Children); err != nil {
				return err
			}
		}
	}
	return nil
}
