// ledgetool extracts climbable ledge paths and collider ribbons from
// vertex-colored OBJ meshes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/ledgefinder/internal/config"
	"github.com/Faultbox/ledgefinder/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, rest)
	case "extract", "x":
		err = cmdExtract(cfg, rest)
	case "ribbon":
		err = cmdRibbon(cfg, rest)
	case "watch":
		err = cmdWatch(cfg, rest)
	case "config":
		err = cmdConfig(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ledgetool - climbable ledge extraction from vertex-colored meshes

Usage:
  ledgetool [flags] <command> [options]

Commands:
  info <mesh.obj>                    Show vertex, boundary and markup counts
  extract <mesh.obj> [-o out.yaml]   Write ordered ledge paths as YAML
  ribbon <mesh.obj> -o out.obj       Write ribbon collider meshes as OBJ
  watch <mesh.obj> -o out.yaml       Re-extract whenever the mesh is saved
  config [-o path]                   Write the effective config (.toml or YAML)

Flags:
  -config path      Config file (default ./ledgetool.yaml or user config dir)
  -sentinel #RRGGBB Unmarked vertex color (default #FFFFFF)
  -mode m           components (one path per loop) or seed (first loop only)
  -tolerance t      Endpoint matching tolerance (default exact)
  -workers n        Regions processed concurrently
  -height h         Ribbon collider height
  -no-ribbon        Skip ribbon generation
  -debug            Debug logging and raw boundary segments

Examples:
  ledgetool info level.obj
  ledgetool extract level.obj -o ledges.yaml
  ledgetool -height 0.2 ribbon level.obj -o colliders.obj`)
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ledgetool info <mesh.obj>")
	}
	return runInfo(cfg, args[0], os.Stdout)
}

func cmdExtract(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	out := fs.String("o", "", "Output YAML file (default stdout)")
	fs.Parse(reorder(args, fs))

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: ledgetool extract <mesh.obj> [-o out.yaml]")
	}

	w, closeFn, err := openOutput(*out)
	if err != nil {
		return err
	}
	defer closeFn()
	return runExtract(cfg, fs.Arg(0), w)
}

func cmdRibbon(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ribbon", flag.ExitOnError)
	out := fs.String("o", "", "Output OBJ file")
	fs.Parse(reorder(args, fs))

	if fs.NArg() < 1 || *out == "" {
		return fmt.Errorf("usage: ledgetool ribbon <mesh.obj> -o out.obj")
	}
	return runRibbon(cfg, fs.Arg(0), *out)
}

func cmdWatch(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	out := fs.String("o", "", "Output YAML file")
	fs.Parse(reorder(args, fs))

	if fs.NArg() < 1 || *out == "" {
		return fmt.Errorf("usage: ledgetool watch <mesh.obj> -o out.yaml")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runWatch(ctx, cfg, fs.Arg(0), *out)
}

func cmdConfig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("o", "", "Write to this path instead of the user config dir")
	fs.Parse(args)

	return runConfig(cfg, *out, os.Stdout)
}

// reorder moves flags after the positional mesh path to the front, so
// "extract mesh.obj -o out.yaml" parses the same as "extract -o out.yaml mesh.obj".
func reorder(args []string, fs *flag.FlagSet) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) > 1 && a[0] == '-' {
			flags = append(flags, a)
			name := a[1:]
			if name[0] == '-' {
				name = name[1:]
			}
			if f := fs.Lookup(name); f != nil && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positional = append(positional, a)
	}
	return append(flags, positional...)
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
