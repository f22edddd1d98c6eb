package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/diamondburned/eggboard/eggboard"
	"github.com/diamondburned/eggboard/eggboard/feed"
	"github.com/diamondburned/eggboard/frontend/frontserver"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/spf13/pflag"
	"golang.org/x/net/http2"

	toml "github.com/pelletier/go-toml"
)

var (
	configGlob = "./config*.toml"
	listenAddr = ""
)

func stderrlnf(f string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", v...)
}

type Config struct {
	// Listen is the TCP address. It's ignored if SocketPath is set. Behind a
	// reverse proxy, also set trustProxy.
	Listen     string `toml:"listen"`
	SocketPath string `toml:"socketPath"`
	SocketPerm string `toml:"socketPerm"`

	frontserver.FrontConfig
}

func NewConfig() Config {
	return Config{
		Listen:      ":8080",
		FrontConfig: frontserver.NewConfig(),
	}
}

func (c *Config) Validate() error {
	if c.Listen == "" && c.SocketPath == "" {
		return errors.New("missing `listen' or `socketPath' value")
	}
	return c.FrontConfig.Validate()
}

func init() {
	pflag.StringVarP(
		&configGlob, "config", "c", configGlob,
		"Path to config file with glob support for fallback",
	)

	pflag.StringVarP(
		&listenAddr, "listen", "l", listenAddr,
		"TCP address to listen on, overrides the config",
	)

	pflag.Usage = func() {
		stderrlnf("Usage: %s [subcommand] [flags...]", filepath.Base(os.Args[0]))
		stderrlnf("Subcommands:")
		stderrlnf("  serve                Run the HTTP server")
		stderrlnf("  check-feed <archive> Load an archive's feed and count it")
		stderrlnf("  search <terms...>    Search the page table")
		stderrlnf("Flags:")
		pflag.PrintDefaults()
	}
}

func main() {
	pflag.Parse()

	var cfg = NewConfig()

	// Read all globs. No matches means defaults only.
	d, err := filepath.Glob(configGlob)
	if err != nil {
		log.Fatalln("Failed to glob:", err)
	}

	for _, path := range d {
		f, err := ioutil.ReadFile(path)
		if err != nil {
			log.Fatalln("Failed to read globbed config file:", err)
		}

		t, err := toml.LoadBytes(f)
		if err != nil {
			log.Fatalf("Failed to load TOML from %s: %v", path, err)
		}

		if err := t.Unmarshal(&cfg); err != nil {
			log.Fatalln("Failed to unmarshal from TOML:", err)
		}
	}

	if listenAddr != "" {
		cfg.Listen = listenAddr
		cfg.SocketPath = ""
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalln("Invalid config:", err)
	}

	switch pflag.Arg(0) {
	case "check-feed":
		checkFeed(cfg, pflag.Arg(1))

	case "search":
		searchPages(cfg, pflag.Args()[1:])

	case "serve":
		fallthrough
	default:
		serve(cfg)
	}
}

func checkFeed(cfg Config, name string) {
	v, err := eggboard.VariantByName(name)
	if err != nil {
		log.Fatalf("Unknown archive %q", name)
	}

	l := feed.NewLoader(cfg.FeedSource(cfg.NewClient(), v), v)

	start := time.Now()

	subs, err := l.Fetch(context.Background())
	if err != nil {
		log.Fatalln("Failed to fetch feed:", err)
	}

	fmt.Printf(
		"%s: %s approved %s in %v.\n",
		v.Heading, humanize.Comma(int64(len(subs))),
		plural(len(subs), "submission", "submissions"),
		time.Since(start).Round(time.Millisecond),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func searchPages(cfg Config, terms []string) {
	r := cfg.SearchIndex().Search(strings.Join(terms, " "))

	switch {
	case r.Prompt:
		stderrlnf("Please enter a search term.")
		os.Exit(2)
	case r.NoResults():
		stderrlnf("No results found for %q.", r.Query)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, page := range r.Pages {
		fmt.Fprintf(w, "%s\t%s\n", page.Title, page.URL)
	}
	w.Flush()
}

func listen(cfg Config) net.Listener {
	if cfg.SocketPath == "" {
		l, err := net.Listen("tcp", cfg.Listen)
		if err != nil {
			log.Fatalln("Failed to listen:", err)
		}
		return l
	}

	// Ensure that the socket is cleaned up in case the last run didn't.
	if err := os.Remove(cfg.SocketPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalln("Failed to clean up old socket:", err)
		}
	}

	l, err := net.Listen("unix", cfg.SocketPath)
	if err != nil {
		log.Fatalln("Failed to listen to Unix socket:", err)
	}

	if cfg.SocketPerm != "" {
		o, err := strconv.ParseUint(cfg.SocketPerm, 8, 32)
		if err != nil {
			log.Fatalln("Failed to parse socket perm in octet:", err)
		}
		if err := os.Chmod(cfg.SocketPath, os.FileMode(o)); err != nil {
			log.Fatalln("Failed to chmod socket:", err)
		}
	}

	return l
}

func serve(cfg Config) {
	f, err := frontserver.New(cfg.FrontConfig)
	if err != nil {
		log.Fatalln("Failed to create frontend:", err)
	}

	c := middleware.NewCompressor(5)
	c.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})

	mux := chi.NewMux()
	mux.Use(c.Handler)
	mux.Mount("/", f)

	l := listen(cfg)

	var server = http.Server{
		Handler: mux,
	}

	// Explicitly set up HTTP/2.
	err = http2.ConfigureServer(&server, &http2.Server{
		MaxHandlers:          4096,
		MaxConcurrentStreams: 1024,
	})

	if err != nil {
		log.Fatalln("Failed to configure HTTP/2 server:", err)
	}

	log.Println("Starting HTTP/2 listener at", l.Addr())

	go func() {
		if err := server.Serve(l); err != nil && err != http.ErrServerClosed {
			log.Fatalln("Failed to start:", err)
		}
	}()

	// Handle SIGINT and gracefully close the server.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig

	// Give the server a 10 seconds timeout for shutting down.
	ctx, cancel := context.WithTimeout(context.TODO(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalln("Failed to gracefully close the server:", err)
	}
}
