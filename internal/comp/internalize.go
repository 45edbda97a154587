package comp

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/specialistvlad/compflat/internal/ctxlog"
	"github.com/specialistvlad/compflat/internal/sbml"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Internalizer copies the model definitions that a document references from
// other documents into the document itself, so flattening needs no I/O.
type Internalizer struct {
	fetcher Fetcher
	decoder Decoder
}

// NewInternalizer creates an internalizer that retrieves documents with
// fetcher and parses them with decoder.
func NewInternalizer(fetcher Fetcher, decoder Decoder) *Internalizer {
	return &Internalizer{fetcher: fetcher, decoder: decoder}
}

// Internalize returns a copy of doc in which every external model definition
// has been replaced by local model definitions. A definition takes the id of
// the external definition that named it; the definitions it depends on are
// brought along under a prefix derived from the referenced model id, so they
// collide with nothing already in the document. External documents that
// reference further documents are internalized first.
//
// Source references are resolved against doc.LocationURI, which must be
// set: ErrUnsetLocationURI is returned before anything is fetched.
func (in *Internalizer) Internalize(ctx context.Context, doc *sbml.Document) (*sbml.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("internalize: document is nil")
	}
	start := time.Now()
	ctx, span := tracer.Start(ctx, "comp.Internalize", trace.WithAttributes(attribute.String("location", doc.LocationURI)))
	defer span.End()

	modelID := ""
	if doc.Model != nil {
		modelID = doc.Model.ID
	}
	out, err := in.internalize(ctx, doc, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		measure(ctx, "internalize", modelID, false, time.Since(start), 0)
		return nil, err
	}
	measure(ctx, "internalize", modelID, true, time.Since(start), 0)
	return out, nil
}

func (in *Internalizer) internalize(ctx context.Context, doc *sbml.Document, trail []string) (*sbml.Document, error) {
	logger := ctxlog.FromContext(ctx)
	if doc.LocationURI == "" {
		return nil, ErrUnsetLocationURI
	}
	base, err := url.Parse(doc.LocationURI)
	if err != nil {
		return nil, fmt.Errorf("invalid document location %q: %w", doc.LocationURI, err)
	}
	trail = append(trail, doc.LocationURI)

	result := doc.Clone()
	if len(result.ExternalModelDefinitions) == 0 {
		return result, nil
	}

	used := make([]string, 0, len(result.ModelDefinitions)+len(result.ExternalModelDefinitions)+1)
	if result.Model != nil {
		used = append(used, result.Model.ID)
	}
	for _, md := range result.ModelDefinitions {
		used = append(used, md.ID)
	}
	for _, emd := range result.ExternalModelDefinitions {
		used = append(used, emd.ID)
	}

	for _, emd := range result.ExternalModelDefinitions {
		src, err := url.Parse(emd.Source)
		if err != nil {
			return nil, &FetchError{URI: emd.Source, Err: err}
		}
		uri := base.ResolveReference(src).String()
		if slices.Contains(trail, uri) {
			return nil, &CyclicCompositionError{Chain: append(slices.Clone(trail), uri)}
		}

		logger.Debug("Fetching external model definition.", "id", emd.ID, "uri", uri, "model_ref", emd.ModelRef)
		data, err := in.fetcher.Fetch(ctx, uri)
		if err != nil {
			return nil, &FetchError{URI: uri, Err: err}
		}
		remote, err := in.decoder.Decode(data, uri)
		if err != nil {
			return nil, &FetchError{URI: uri, Err: err}
		}
		remote.LocationURI = uri

		flat, err := in.internalize(ctx, remote, trail)
		if err != nil {
			return nil, err
		}
		if flat.FindModel(emd.ModelRef) == nil {
			return nil, &UnknownModelError{Submodel: emd.ID, ModelRef: emd.ModelRef}
		}

		prefix := emd.ModelRef + prefixPad
		for collides(used, prefix) {
			prefix += prefixPad
		}

		working := slices.Clone(flat.ModelDefinitions)
		if flat.Model != nil && mainReferenced(flat, emd.ModelRef) {
			working = append([]*sbml.Model{flat.Model}, working...)
		}

		renamed := make(map[string]string, len(working))
		for _, md := range working {
			if md.ID == emd.ModelRef {
				renamed[md.ID] = emd.ID
			} else {
				renamed[md.ID] = prefix + md.ID
			}
		}
		for _, md := range working {
			c := md.Clone()
			c.ID = renamed[md.ID]
			for _, sm := range c.Submodels {
				if id, ok := renamed[sm.ModelRef]; ok {
					sm.ModelRef = id
				} else {
					sm.ModelRef = prefix + sm.ModelRef
				}
			}
			result.ModelDefinitions = append(result.ModelDefinitions, c)
			used = append(used, c.ID)
		}
		logger.Debug("Internalized external model definition.", "id", emd.ID, "uri", uri, "definitions", len(working), "prefix", prefix)
	}
	result.ExternalModelDefinitions = nil
	return result, nil
}

// mainReferenced reports whether the main model of doc is needed: either it
// is the referenced model or one of the model definitions instantiates it.
func mainReferenced(doc *sbml.Document, modelRef string) bool {
	main := doc.Model.ID
	if main == modelRef {
		return true
	}
	for _, md := range doc.ModelDefinitions {
		for _, sm := range md.Submodels {
			if sm.ModelRef == main {
				return true
			}
		}
	}
	return false
}
