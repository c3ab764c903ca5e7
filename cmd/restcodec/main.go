package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/config"
	"github.com/reoring/restcodec/example/petstore"
	"github.com/reoring/restcodec/i18n"
	"github.com/reoring/restcodec/mapper"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		os.Exit(checkCmd(os.Args[2:], os.Stdout, os.Stderr))
	case "serve":
		os.Exit(serveCmd(os.Args[2:], os.Stderr))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "restcodec CLI\n\nUsage:\n  restcodec check -type pet|pets -f file.json [-driver go-json|encoding/json] [-max-depth N]\n  restcodec serve [-config config.yaml]")
}

var checkTypes = map[string]reflect.Type{
	"pet":  reflect.TypeOf((*petstore.Pet)(nil)).Elem(),
	"pets": reflect.TypeOf((*petstore.Pets)(nil)).Elem(),
}

// checkCmd reads a document through the mapper and prints it back pretty
// printed, or prints the failures and returns 1.
func checkCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var typeName, file, driverName string
	var maxDepth int
	fs.StringVar(&typeName, "type", "pet", "document type: pet or pets")
	fs.StringVar(&file, "f", "", "JSON file to check; - reads stdin")
	fs.StringVar(&driverName, "driver", "go-json", "JSON driver: go-json or encoding/json")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth; 0 disables the limit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	typ, ok := checkTypes[typeName]
	if !ok || file == "" {
		fs.Usage()
		return 2
	}
	driver, ok := restcodec.DriverByName(driverName)
	if !ok {
		fmt.Fprintf(stderr, "unknown driver %q\n", driverName)
		return 2
	}

	var in io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			fmt.Fprintf(stderr, "open: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	m := mapper.New(mapper.WithDriver(driver), mapper.WithParseOpt(restcodec.ParseOpt{MaxDepth: maxDepth}))
	v, err := m.Read(typ, in)
	if err != nil {
		if pe, ok := restcodec.AsParseError(err); ok {
			for _, msg := range pe.Messages() {
				fmt.Fprintln(stderr, msg)
			}
			return 1
		}
		fmt.Fprintf(stderr, "read: %v\n", err)
		return 1
	}
	out, err := m.WriteString(v, typ)
	if err != nil {
		fmt.Fprintf(stderr, "write: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}

// serveCmd serves the example pet API until interrupted.
func serveCmd(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var path string
	fs.StringVar(&path, "config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	logger, err := config.NewLogger(stderr, cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	i18n.SetLanguage(cfg.Log.Language)

	handler := newHandler(cfg, logger)
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.Server.Addr, "driver", cfg.JSON.JSONDriver().Name())

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			return 1
		}
	}
	return 0
}
