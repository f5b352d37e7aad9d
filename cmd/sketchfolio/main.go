package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/eringen/sketchfolio"
	"github.com/eringen/sketchfolio/gallery"
	applog "github.com/eringen/sketchfolio/internal/log"
	"github.com/eringen/sketchfolio/scaffold"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	args := os.Args[2:]
	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(args)
	case "render":
		err = runRender(args, os.Stdout)
	case "list":
		err = runList(args, os.Stdout)
	case "init":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "Usage: sketchfolio init <dir>")
			os.Exit(1)
		}
		err = runInit(args[0], os.Stdout)
	case "version":
		fmt.Printf("sketchfolio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		slog.Error("command failed", "cmd", os.Args[1], "err", err)
		_ = applog.Close()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sketchfolio - An interactive sketch portfolio built with Go, Echo, and templ

Usage:
  sketchfolio <command> [flags]

Commands:
  serve         Run the web server
  render        Render the page for one width and filter to a file
  list          Print the catalogue, optionally filtered
  init <dir>    Create a starter site directory
  version       Print the sketchfolio version
  help          Show this help message

Examples:
  sketchfolio serve -config sketchfolio.yaml
  sketchfolio render -w 1200 -filter ALL -o out.html
  sketchfolio list -filter LANDSCAPE`)
}

// loadConfig reads the config file and installs the configured logger.
func loadConfig(path string) (sketchfolio.SiteConfig, error) {
	cfg, err := sketchfolio.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	applog.Init(cfg.Log.Options())
	return cfg, nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "sketchfolio.yaml", "config file (optional)")
	addr := fs.String("addr", "", "listen address, overrides config")
	static := fs.String("static", "public", "directory for user static assets")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	app := sketchfolio.New(cfg, sketchfolio.WithStaticDir(*static))
	defer app.Close()
	return app.Start()
}

func runRender(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configPath := fs.String("config", "sketchfolio.yaml", "config file (optional)")
	width := fs.Float64("w", 1200, "viewport width in px")
	filterName := fs.String("filter", "ALL", "ALL, SQUARE or LANDSCAPE")
	out := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, err := gallery.ParseFilter(*filterName)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	// A static file has no server to talk to.
	cfg.LiveEnabled = false

	app := sketchfolio.New(cfg)
	defer app.Close()
	if err := app.Setup(); err != nil {
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}

	page := app.Page(*width, filter)
	if err := app.Views.Home(page).Render(context.Background(), w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	slog.Info("rendered", "width", page.Gallery.Width, "filter", filter, "items", len(page.Gallery.Items), "out", *out)
	return nil
}

func runList(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filterName := fs.String("filter", "ALL", "ALL, SQUARE or LANDSCAPE")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, err := gallery.ParseFilter(*filterName)
	if err != nil {
		return err
	}

	store, err := gallery.NewStore(gallery.Catalogue())
	if err != nil {
		return err
	}
	store.SetFilter(filter)
	for _, it := range store.Visible() {
		kind := "sketch"
		switch {
		case it.IsEmpty:
			kind = "spacer"
		case it.IsText:
			kind = "text"
		}
		fmt.Fprintf(stdout, "%-14s %-7s %5dx%-5d %s\n", it.ID, kind, it.Width, it.Height, it.Title)
	}
	return nil
}

func runInit(dir string, stdout io.Writer) error {
	fmt.Fprintf(stdout, "Creating new sketchfolio site: %s\n\n", dir)
	if err := scaffold.Generate(dir, scaffold.NewData(dir), stdout); err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Done! Next steps:")
	fmt.Fprintf(stdout, "  cd %s\n", dir)
	fmt.Fprintln(stdout, "  sketchfolio serve")
	return nil
}
