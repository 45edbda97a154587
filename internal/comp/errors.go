package comp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingExtension is reported when the document or its main model does
	// not enable the composition extension. The document is returned as is.
	ErrMissingExtension = errors.New("composition extension is not enabled on the document")

	// ErrUnsetLocationURI is returned by the internalizer when the document
	// has no location to resolve external sources against.
	ErrUnsetLocationURI = errors.New("document location URI is not set")
)

// UnresolvableReferenceError describes a deletion, replacement or
// replaced-by declaration whose target could not be found. It is recorded as
// a diagnostic; flattening goes on without the declaration.
type UnresolvableReferenceError struct {
	Path   string
	Kind   RefKind
	Target string
	Reason string
}

func (e *UnresolvableReferenceError) Error() string {
	return fmt.Sprintf("unresolvable %s reference %q at %q: %s", e.Kind, e.Target, e.Path, e.Reason)
}

// DanglingReferenceError is recorded when an element is dropped, or an
// attribute cleared, because it names an element that was deleted.
type DanglingReferenceError struct {
	Path    string
	Element string
	ID      string
	Ref     string
}

func (e *DanglingReferenceError) Error() string {
	elem := e.Element
	if e.ID != "" {
		elem = fmt.Sprintf("%s %q", e.Element, e.ID)
	}
	return fmt.Sprintf("%s at %q refers to deleted element %q and was dropped", elem, e.Path, e.Ref)
}

// AmbiguousIdentifierError is returned when two elements of the flat model
// end up with the same identifier.
type AmbiguousIdentifierError struct {
	ID        string
	Namespace string
	Existing  string
	Incoming  string
}

func (e *AmbiguousIdentifierError) Error() string {
	return fmt.Sprintf("%s %q is used by both a %s and a %s", e.Namespace, e.ID, e.Existing, e.Incoming)
}

// CyclicCompositionError is returned when a model definition instantiates
// itself, directly or through other definitions.
type CyclicCompositionError struct {
	Chain []string
}

func (e *CyclicCompositionError) Error() string {
	return fmt.Sprintf("cyclic composition: %s", strings.Join(e.Chain, " -> "))
}

// UnknownModelError is returned when a submodel refers to a model
// definition the document does not contain.
type UnknownModelError struct {
	Submodel string
	ModelRef string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("submodel %q refers to unknown model definition %q", e.Submodel, e.ModelRef)
}

// FetchError wraps a failure to retrieve or decode an external document.
type FetchError struct {
	URI string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch external document %s: %v", e.URI, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
