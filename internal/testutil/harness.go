package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/compflat/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an end-to-end run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Report    *app.Report
	Err       error
}

// RunFlattenTest provides a standardized harness for running the app end to
// end using a default background context.
func RunFlattenTest(t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()
	return RunFlattenTestWithContext(context.Background(), t, files, cfg, opts...)
}

// RunFlattenTestWithContext writes files into a temporary directory and runs
// the app on them. Relative paths in cfg are resolved against that
// directory.
func RunFlattenTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()

	// 1. Write all HCL files below a temporary root. Test paths such as
	//    "lib/other.hcl" create their subdirectories.
	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	// 2. Anchor the configured paths in the temporary root.
	cfg.InputPath = resolve(tmpDir, cfg.InputPath)
	if cfg.OutputPath != "-" {
		cfg.OutputPath = resolve(tmpDir, cfg.OutputPath)
	}
	cfg.ReportPath = resolve(tmpDir, cfg.ReportPath)
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	// 3. Run the app.
	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	report, runErr := app.NewApp(out, logs, config, opts...).Run(ctx)

	if os.Getenv("COMPFLAT_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Dir:       tmpDir,
		Output:    out.String(),
		LogOutput: logs.String(),
		Report:    report,
		Err:       runErr,
	}
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
