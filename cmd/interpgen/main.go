// Command interpgen writes field-wise Interpolate methods for struct types.
//
// Typical use is from a go:generate directive next to the type:
//
//	//go:generate go run github.com/comalice/tickloop/cmd/interpgen -t Body
//
// Each field is blended with the matching helper from package interpolate.
// Tag a field `interp:"-"` to snap it to the nearer snapshot instead.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/comalice/tickloop/internal/gen"
)

func main() {
	types := pflag.StringSliceP("type", "t", nil, "comma-separated struct type names (required)")
	output := pflag.StringP("output", "o", "", "output file name (default <type>_interp.go)")
	dir := pflag.StringP("dir", "d", "", "package directory (default: directory of $GOFILE, or .)")
	pflag.Parse()

	if len(*types) == 0 {
		fmt.Fprintln(os.Stderr, "interpgen: -type is required")
		pflag.Usage()
		os.Exit(2)
	}
	if err := run(*types, *dir, *output); err != nil {
		fmt.Fprintf(os.Stderr, "interpgen: %v\n", err)
		os.Exit(1)
	}
}

func run(types []string, dir, output string) error {
	for i, t := range types {
		types[i] = strings.TrimSpace(t)
	}
	if dir == "" {
		dir = "."
		if f := os.Getenv("GOFILE"); f != "" {
			dir = filepath.Dir(f)
		}
	}
	if output == "" {
		output = gen.OutputName(types)
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}

	pkg, structs, err := gen.ParseDir(dir, types)
	if err != nil {
		return err
	}
	src, err := gen.Render(pkg, structs)
	if err != nil {
		return err
	}
	return os.WriteFile(output, src, 0o644)
}
