package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	offset "github.com/wippyai/offset"
	"github.com/wippyai/offset/codegen"
	"github.com/wippyai/offset/errors"
	"github.com/wippyai/offset/layout"
	"github.com/wippyai/offset/memory"
	"github.com/wippyai/offset/render"
	"github.com/wippyai/offset/schema"
	"github.com/wippyai/offset/verify"
)

type options struct {
	schemaFile  string
	structName  string
	dumpFile    string
	wasmFile    string
	memName     string
	base        string
	genFile     string
	pkgName     string
	interactive bool
	color       bool
}

func main() {
	var (
		schemaFile  = flag.String("schema", "", "Path to YAML schema file")
		structName  = flag.String("struct", "", "Structure to plan or render (default: all)")
		dumpFile    = flag.String("dump", "", "Render from a raw memory dump file")
		wasmFile    = flag.String("wasm", "", "Render from the exported memory of a wasm module")
		memName     = flag.String("mem", "", "Exported memory name (default: the module's memory)")
		base        = flag.String("base", "0", "Address of the structure in memory")
		genFile     = flag.String("gen", "", "Generate Go declarations into file (- for stdout)")
		pkgName     = flag.String("pkg", codegen.DefaultPackage, "Package name of generated code")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose debug logging")
	)
	flag.Parse()

	if *schemaFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: offsetc -schema <file.yaml> [-struct name]")
		fmt.Fprintln(os.Stderr, "       offsetc -schema <file.yaml> -struct name -dump <file.bin> [-base addr]")
		fmt.Fprintln(os.Stderr, "       offsetc -schema <file.yaml> -struct name -wasm <file.wasm> [-mem name] -base addr")
		fmt.Fprintln(os.Stderr, "       offsetc -schema <file.yaml> -gen <out.go> [-pkg name]")
		fmt.Fprintln(os.Stderr, "       offsetc -schema <file.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	layout.SetLogger(log.Named("layout"))
	verify.SetLogger(log.Named("verify"))
	codegen.SetLogger(log.Named("codegen"))

	opts := options{
		schemaFile:  *schemaFile,
		structName:  *structName,
		dumpFile:    *dumpFile,
		wasmFile:    *wasmFile,
		memName:     *memName,
		base:        *base,
		genFile:     *genFile,
		pkgName:     *pkgName,
		interactive: *interactive,
		color:       term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := run(context.Background(), os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func run(ctx context.Context, w io.Writer, opts options) error {
	schemas, err := schema.Load(opts.schemaFile)
	if err != nil {
		return err
	}
	if opts.structName != "" {
		s, err := schema.Find(schemas, opts.structName)
		if err != nil {
			return err
		}
		schemas = []*schema.Schema{s}
	}

	base, err := strconv.ParseUint(opts.base, 0, 32)
	if err != nil {
		return errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Path("base").
			Detail("invalid address %q", opts.base).
			Cause(err).
			Build()
	}

	if opts.genFile != "" {
		return generate(w, opts, schemas)
	}

	plans := make([]*layout.Plan, 0, len(schemas))
	for _, s := range schemas {
		plan, err := layout.Build(s)
		if err != nil {
			return err
		}
		plans = append(plans, plan)
	}

	mem, closeMem, err := openMemory(ctx, opts)
	if err != nil {
		return err
	}
	defer closeMem()

	if opts.interactive {
		return runInteractive(opts.schemaFile, plans, mem, uint32(base))
	}

	if mem == nil {
		for i, plan := range plans {
			if i > 0 {
				fmt.Fprintln(w)
			}
			printPlan(w, plan, opts.color)
		}
		return nil
	}

	if len(plans) != 1 {
		return errors.InvalidInput(errors.PhaseRender, nil, "rendering needs -struct when the schema declares several structures")
	}
	values, err := renderValues(plans[0], mem, uint32(base))
	if err != nil {
		return err
	}
	out := render.Format(plans[0].Name, values)
	if opts.color {
		out = resultStyle.Render(out)
	}
	fmt.Fprintln(w, out)
	return nil
}

func generate(w io.Writer, opts options, schemas []*schema.Schema) error {
	src, err := codegen.Generate(codegen.Config{Package: opts.pkgName}, schemas...)
	if err != nil {
		return err
	}
	if opts.genFile == "-" {
		_, err = w.Write(src)
		return err
	}
	if err := os.WriteFile(opts.genFile, src, 0o644); err != nil {
		return errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "write "+opts.genFile)
	}
	return nil
}

// openMemory returns the memory selected by -dump or -wasm, or nil.
func openMemory(ctx context.Context, opts options) (offset.Memory, func(), error) {
	noop := func() {}

	switch {
	case opts.dumpFile != "" && opts.wasmFile != "":
		return nil, noop, errors.InvalidInput(errors.PhaseLoad, nil, "-dump and -wasm are mutually exclusive")

	case opts.dumpFile != "":
		data, err := os.ReadFile(opts.dumpFile)
		if err != nil {
			return nil, noop, errors.Load("read dump file", err)
		}
		return memory.NewBytes(data), noop, nil

	case opts.wasmFile != "":
		data, err := os.ReadFile(opts.wasmFile)
		if err != nil {
			return nil, noop, errors.Load("read wasm file", err)
		}
		mod, err := memory.Instantiate(ctx, data, opts.memName)
		if err != nil {
			return nil, noop, err
		}
		return mod.Memory(), func() { _ = mod.Close(ctx) }, nil

	default:
		return nil, noop, nil
	}
}

// renderValues is render.Render with its out-of-bounds panic turned into
// an error.
func renderValues(plan *layout.Plan, mem offset.Memory, base uint32) (values []render.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	return render.Render(plan, mem, base), nil
}

func printPlan(w io.Writer, plan *layout.Plan, color bool) {
	if !color {
		fmt.Fprint(w, plan)
		return
	}
	fmt.Fprintln(w, planHeader(plan))
	for _, seg := range plan.Segments {
		fmt.Fprintln(w, segmentLine(seg))
	}
}
