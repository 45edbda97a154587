package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/compflat/internal/ctxlog"
	"github.com/specialistvlad/compflat/internal/hcl"
)

// Run loads the input document, internalizes its external model definitions
// when configured to, flattens it and writes the result. The returned report
// is also what a YAML output or report file contains.
func (a *App) Run(ctx context.Context) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "input", a.config.InputPath)

	doc, err := a.codec.Load(ctx, a.config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	internalized := 0
	if a.config.Internalize && len(doc.ExternalModelDefinitions) > 0 {
		before := len(doc.ModelDefinitions)
		if doc, err = a.internalizer.Internalize(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to internalize external model definitions: %w", err)
		}
		internalized = len(doc.ModelDefinitions) - before
		a.logger.Info("External model definitions internalized.", "definitions", internalized)
	}

	res, err := a.flattener.Flatten(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("flattening failed: %w", err)
	}

	digest, err := hcl.Digest(res.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to encode flat document: %w", err)
	}
	report := newReport(a.config.InputPath, internalized, res, digest)

	var out []byte
	switch a.config.Format {
	case FormatYAML:
		out, err = report.Marshal()
	default:
		out, err = a.codec.Encode(res.Document)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s output: %w", a.config.Format, err)
	}
	if err := a.write(a.config.OutputPath, out); err != nil {
		return nil, err
	}

	if a.config.ReportPath != "" {
		data, err := report.Marshal()
		if err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
		if err := os.WriteFile(a.config.ReportPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		a.logger.Debug("Report written.", "path", a.config.ReportPath)
	}

	a.logger.Info("🏁 Flattening finished.", "model", report.Model, "digest", report.Digest, "diagnostics", len(report.Diagnostics))
	return report, nil
}

func (a *App) write(path string, data []byte) error {
	if a.config.writesToStdout() {
		if _, err := a.outW.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	a.logger.Debug("Output written.", "path", path)
	return nil
}
