// Package fxc compiles declarative UI markup into Java source ahead of
// time. A document is read, resolved against a class metadata registry,
// deduplicated, and emitted as a class that rebuilds the same object graph
// without reflection over the markup.
package fxc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/fxmlkit/fxc/compiler"
	"github.com/fxmlkit/fxc/format"
	"github.com/fxmlkit/fxc/fxml"
	"github.com/fxmlkit/fxc/introspect"
)

var log = commonlog.GetLogger("fxc")

// Options configures a compilation run.
type Options struct {
	// Package is the Java package of the generated classes.
	Package string
	// Implements lists extra interfaces every generated class implements.
	Implements []string
	// PreserveIdentity lists type names exempt from node deduplication.
	// Nil selects compiler.DefaultPreserveIdentity.
	PreserveIdentity []string
	// Jobs bounds concurrent document compilations. Zero means one per
	// CPU.
	Jobs int
	// Timeout bounds the compilation of a single document. Zero means no
	// limit.
	Timeout time.Duration
}

// Result is the outcome of compiling one document. Err is set when the
// document failed; Source is set otherwise.
type Result struct {
	Path      string
	ClassName string
	Source    []byte
	Err       error
}

// Compile turns one markup file into Java source. The registry is only read
// from, so one registry can serve concurrent calls.
func Compile(reg *introspect.Registry, path string, opts Options) *Result {
	result := &Result{Path: path}

	doc, err := fxml.Read(path)
	if err != nil {
		result.Err = err
		return result
	}
	result.ClassName = doc.ClassName

	processed, err := compiler.Process(reg, doc, compiler.Options{PreserveIdentity: opts.PreserveIdentity})
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}

	var buf bytes.Buffer
	encoder := format.NewJavaEncoder(&buf, reg, format.Options{
		Package:    opts.Package,
		Implements: opts.Implements,
	})
	if err := encoder.Encode(processed); err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}
	result.Source = buf.Bytes()
	return result
}

// CompileAll compiles every path, bounded by opts.Jobs workers. Documents
// are independent: one failure never stops the others. Results are returned
// in input order.
func CompileAll(ctx context.Context, reg *introspect.Registry, paths []string, opts Options) []Result {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	results := make([]Result, len(paths))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = compileOne(ctx, reg, paths[i], opts)
			}
		}()
	}

	for i := range paths {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
	return results
}

// compileOne runs a single compilation under the context's and the
// per-document deadline.
func compileOne(ctx context.Context, reg *introspect.Registry, path string, opts Options) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: err}
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	done := make(chan *Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("panic compiling %s: %v", path, r)
				done <- &Result{Path: path, Err: fmt.Errorf("%s: internal error: %v", path, r)}
			}
		}()
		done <- Compile(reg, path, opts)
	}()

	select {
	case result := <-done:
		return *result
	case <-ctx.Done():
		return Result{Path: path, Err: fmt.Errorf("%s: %w", path, ctx.Err())}
	}
}

// Dump writes an intermediate representation of one document to w. Stage
// "raw" is the parsed markup tree, "graph" the resolved and deduplicated
// node graph.
func Dump(reg *introspect.Registry, path, stage string, opts Options, w io.Writer) error {
	doc, err := fxml.Read(path)
	if err != nil {
		return err
	}

	switch stage {
	case "raw":
		return format.NewTreeEncoder(w).Encode(doc)
	case "graph":
		processed, err := compiler.Process(reg, doc, compiler.Options{PreserveIdentity: opts.PreserveIdentity})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return format.NewGraphEncoder(w).Encode(processed)
	}
	return fmt.Errorf("unknown stage %q (want raw or graph)", stage)
}
