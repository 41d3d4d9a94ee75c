package main

import (
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/go-python/gpython/py"
)

// TestScripts runs every python script in lib/ with the _pyatlas module
// registered; any python exception (including a failed assert) fails the test.
func TestScripts(t *testing.T) {
	scriptDir := "lib/"
	files, err := os.ReadDir(scriptDir)
	if err != nil {
		t.Fatal(err)
	}

	for _, fi := range files {
		pyFile := path.Join(scriptDir, fi.Name())
		if filepath.Ext(pyFile) != ".py" {
			continue
		}

		ctx := py.NewContext(py.DefaultContextOpts())
		_, err = py.RunFile(ctx, pyFile, py.CompileOpts{}, nil)
		ctx.Close()
		<-ctx.Done()

		if err != nil {
			py.TracebackDump(err)
			t.Fatalf("%s: %v", pyFile, err)
		}
	}
}
