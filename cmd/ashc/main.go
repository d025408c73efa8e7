// Command ashc is the Ash compiler front-end's CLI driver: it resolves
// an ash.mod manifest, parses the named .ash files, and runs the
// ownership/type checker over the resulting Program. It follows the
// teacher's compiler driver split (cmd/orizon-compiler/main.go):
// log.Fatalf for driver-level I/O and configuration errors, structured
// diagnostics for everything the checker itself finds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/ash-lang/ashc/internal/ast"
	"github.com/ash-lang/ashc/internal/checker"
	"github.com/ash-lang/ashc/internal/cli"
	"github.com/ash-lang/ashc/internal/diagnostic"
	"github.com/ash-lang/ashc/internal/manifest"
	"github.com/ash-lang/ashc/internal/position"
)

// parseFile lowers one source file into its AST fragment. The lexer
// and parser are external collaborators to the checker (spec.md §1:
// "only the interfaces the checker consumes from the parser... are
// specified") and are not part of this repository; a real front end
// wires its own implementation in here. ashc still exercises the full
// manifest/concurrency/diagnostics pipeline around this seam.
var parseFile = func(path string, source []byte) (*ast.Program, error) {
	return nil, fmt.Errorf("%s: no parser is wired into this build of ashc", path)
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
		dir         = flag.String("dir", ".", "module directory containing ash.mod")
		watch       = flag.Bool("watch", false, "recheck whenever a watched .ash file changes")
	)
	flag.Parse()

	if *showVersion {
		cli.PrintVersion("ashc", *jsonOutput)
		return
	}

	m, err := manifest.Load(*dir)
	if err != nil {
		log.Fatalf("ashc: %v", err)
	}
	if err := m.CheckVersion(cli.Version); err != nil {
		log.Fatalf("ashc: %v", err)
	}
	if len(m.Files) == 0 {
		log.Fatalf("ashc: no .ash source files found in %s", *dir)
	}

	sources := position.NewSourceMap()
	if err := checkModule(m, sources); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !*watch {
			os.Exit(1)
		}
	}

	if *watch {
		runWatch(m, sources)
	}
}

// checkModule loads every file the manifest names, merges them into a
// single Program (Ash has no import system — a module is one flat
// namespace, spec.md §4.1), and runs the checker. Per-file source text
// is always registered with sources first so a later error can always
// render its one-line excerpt (spec.md §6 "Error preview"), even when
// the error aborts before every file is parsed.
func checkModule(m *manifest.Manifest, sources *position.SourceMap) error {
	prog := &ast.Program{}
	for _, path := range m.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("ashc: reading %s: %w", path, err)
		}
		sources.AddFile(path, string(data))

		frag, err := parseFile(path, data)
		if err != nil {
			return fmt.Errorf("ashc: %w", err)
		}
		prog.Structs = append(prog.Structs, frag.Structs...)
		prog.Resources = append(prog.Resources, frag.Resources...)
		prog.Funcs = append(prog.Funcs, frag.Funcs...)
	}

	return checkProgramConcurrently(prog, sources)
}

// checkProgramConcurrently builds the (read-only) global context
// sequentially, then checks every function and every resource's
// cleanup block concurrently with an errgroup — spec.md §5: "the
// global context, once built, is read-only and may be shared freely if
// the host ever chose to parallelize across functions." Diagnostics
// from every function/resource are aggregated into one engine rather
// than surfacing only the first goroutine's error, so one invocation
// reports every independent bug at once.
func checkProgramConcurrently(prog *ast.Program, sources *position.SourceMap) error {
	ctx, err := checker.Prepare(prog)
	if err != nil {
		return formatOne(err, sources)
	}

	engine := diagnostic.NewEngine(sources)
	var g errgroup.Group
	var mu sync.Mutex

	for _, name := range ctx.FuncOrder {
		fn := ctx.Funcs[name]
		g.Go(func() error {
			if _, err := checker.CheckFunction(ctx, fn); err != nil {
				mu.Lock()
				defer mu.Unlock()
				engine.Add(toDiagnostic(err))
			}
			return nil
		})
	}
	for _, name := range ctx.ResourceOrder {
		res := ctx.Resources[name]
		g.Go(func() error {
			if _, err := checker.CheckResource(ctx, res); err != nil {
				mu.Lock()
				defer mu.Unlock()
				engine.Add(toDiagnostic(err))
			}
			return nil
		})
	}
	_ = g.Wait() // individual failures are collected into engine, not returned here

	if engine.HasErrors() {
		return fmt.Errorf("%s", engine.Format())
	}
	return nil
}

func formatOne(err error, sources *position.SourceMap) error {
	engine := diagnostic.NewEngine(sources)
	engine.Add(toDiagnostic(err))
	return fmt.Errorf("%s", engine.Format())
}

func toDiagnostic(err error) diagnostic.Diagnostic {
	if ce, ok := err.(*checker.CheckError); ok {
		return diagnostic.New().Kind(string(ce.Kind)).Message(ce.Message).Span(ce.Span).Build()
	}
	return diagnostic.New().Kind("Internal").Message(err.Error()).Build()
}

// runWatch re-runs checkModule whenever a named .ash file changes
// (ambient CLI affordance; grounded on the teacher's
// internal/runtime/vfs/watch_fsnotify.go).
func runWatch(m *manifest.Manifest, sources *position.SourceMap) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("ashc: starting watcher: %v", err)
	}
	defer watcher.Close()

	for _, f := range m.Files {
		if err := watcher.Add(f); err != nil {
			log.Fatalf("ashc: watching %s: %v", f, err)
		}
	}

	log.Printf("ashc: watching %d file(s) for changes", len(m.Files))
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fresh, err := manifest.Load(m.Dir)
			if err != nil {
				log.Printf("ashc: %v", err)
				continue
			}
			freshSources := position.NewSourceMap()
			if err := checkModule(fresh, freshSources); err != nil {
				fmt.Fprintln(os.Stderr, err)
			} else {
				log.Printf("ashc: %s checked clean", event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ashc: watch error: %v", err)
		}
	}
}
