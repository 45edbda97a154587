package hcl

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/compflat/internal/ctxlog"
	"github.com/specialistvlad/compflat/internal/sbml"
)

// Codec reads and writes model documents in HCL syntax.
type Codec struct{}

// NewCodec creates a new HCL codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Load reads the document at path. The document's LocationURI is set to the
// absolute file URL of path.
func (c *Codec) Load(ctx context.Context, path string) (*sbml.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}
	doc, err := c.Decode(src, path)
	if err != nil {
		return nil, err
	}
	doc.LocationURI = FileURI(path)

	logger.Debug("HCL loading complete.", "location", doc.LocationURI, "model_definitions", len(doc.ModelDefinitions), "external_model_definitions", len(doc.ExternalModelDefinitions))
	return doc, nil
}

// Decode parses src as a document. filename is used in diagnostics and, when
// it is an absolute URI, as the document's LocationURI.
func (c *Codec) Decode(src []byte, filename string) (*sbml.Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	doc := &sbml.Document{}
	if u, err := url.Parse(filename); err == nil && u.IsAbs() {
		doc.LocationURI = filename
	}

	switch len(root.Models) {
	case 0:
	case 1:
		m, err := translateModel(root.Models[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		doc.Model = m
		doc.CompEnabled = m.CompEnabled
	default:
		return nil, fmt.Errorf("%s: a document holds at most one model block, found %d", filename, len(root.Models))
	}

	for _, mb := range root.ModelDefinitions {
		m, err := translateModel(mb)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		doc.ModelDefinitions = append(doc.ModelDefinitions, m)
	}
	for _, eb := range root.ExternalModelDefinitions {
		e, err := translateExternalModel(eb)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		doc.ExternalModelDefinitions = append(doc.ExternalModelDefinitions, e)
	}
	if len(doc.ModelDefinitions) > 0 || len(doc.ExternalModelDefinitions) > 0 {
		doc.CompEnabled = true
	}
	return doc, nil
}

// FileURI converts a local path into an absolute file:// URI.
func FileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}
