package testutil

import (
	"testing"

	"github.com/specialistvlad/compflat/internal/app"
	"github.com/specialistvlad/compflat/internal/hcl"
	"github.com/specialistvlad/compflat/internal/sbml"
	"github.com/stretchr/testify/require"
)

// RunHCLFlattenTest provides a simplified harness for flattening a single
// HCL document. It wraps the main harness, writing the document to
// main.hcl and decoding the HCL the app prints.
func RunHCLFlattenTest(t *testing.T, mainHCL string) (*HarnessResult, *sbml.Document) {
	t.Helper()

	result := RunFlattenTest(t, map[string]string{"main.hcl": mainHCL}, app.Config{
		InputPath:   "main.hcl",
		Format:      app.FormatHCL,
		Internalize: true,
	})
	if result.Err != nil {
		return result, nil
	}

	doc, err := hcl.NewCodec().Decode([]byte(result.Output), "output.hcl")
	require.NoError(t, err, "the app printed a document that does not decode:\n%s", result.Output)
	return result, doc
}
