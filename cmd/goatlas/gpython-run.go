package main

import (
	"fmt"
	"time"

	"log"

	"github.com/go-python/gpython/py"

	_ "github.com/atlas-structures/atlas.SDK/pyatlas"
	_ "github.com/go-python/gpython/stdlib"
)

func go_gpython(pathname string) {
	ctx := py.NewContext(py.DefaultContextOpts())

	startTime := time.Now()
	fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", pathname)

	_, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil)

	if err == nil {
		elapsed := time.Since(startTime)
		fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", elapsed)
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		log.Fatal(err)
	}
}
