package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/scenekit/gltf"
	"github.com/scenekit/gltf/validate"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to .gltf or .glb document")
		complete    = flag.Bool("complete", false, "Run the full-conformance pass instead of the minimal pass")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: gltfcheck -file <scene.gltf|scene.glb> [-complete] [-v]")
		fmt.Fprintln(os.Stderr, "       gltfcheck -file <scene.gltf|scene.glb> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			gltf.SetLogger(logger)
			defer logger.Sync()
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*file, *complete); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, *complete); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, complete bool) error {
	asset, err := gltf.Open(file)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	raw := asset.JSON()
	fmt.Printf("Document: %s\n", file)
	fmt.Printf("Buffers: %d  BufferViews: %d  Accessors: %d\n",
		len(raw.Buffers), len(raw.BufferViews), len(raw.Accessors))
	fmt.Printf("Nodes: %d  Animations: %d  Skins: %d\n",
		len(raw.Nodes), len(raw.Animations), len(raw.Skins))

	var doc *gltf.Document
	if complete {
		doc, err = asset.ValidateCompletely()
	} else {
		doc, err = asset.ValidateMinimally()
	}
	if err != nil {
		var errs validate.Errors
		if errors.As(err, &errs) {
			fmt.Printf("\n%d violation(s):\n", len(errs))
			for _, v := range errs {
				fmt.Printf("  %-20s %s: %s\n", v.Kind, v.Path, v.Detail)
			}
			os.Exit(1)
		}
		return err
	}

	pass := "minimal"
	if complete {
		pass = "complete"
	}
	fmt.Printf("\nValidation (%s pass): OK\n", pass)

	printAnimations(doc)
	return nil
}

func printAnimations(doc *gltf.Document) {
	resolver := doc.Resolver()
	for _, anim := range doc.Animations() {
		name := anim.Name()
		if name == "" {
			name = fmt.Sprintf("animation[%d]", anim.Index())
		}
		fmt.Printf("\n%s:\n", name)
		for i, ch := range anim.Channels() {
			target := ch.Target()
			reader := ch.Reader(resolver)
			times, err := reader.ReadInputs()
			switch {
			case err != nil:
				fmt.Printf("  channel %d (%s): error: %v\n", i, target.Path, err)
			case times == nil:
				fmt.Printf("  channel %d (%s): buffer unresolved\n", i, target.Path)
			default:
				fmt.Printf("  channel %d (%s): %d keyframes\n", i, target.Path, times.Count())
			}
		}
	}
}
