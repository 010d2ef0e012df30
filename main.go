// Ink Browser is an embedded-browser shell with an e-ink visual treatment.
// It serves the shell UI over a loopback listener, classifies address-bar
// input as URL or search, and probes https-first with http fallback.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MKDHXY/EInk-Browser/config"
	"github.com/MKDHXY/EInk-Browser/favourites"
	"github.com/MKDHXY/EInk-Browser/launcher"
	"github.com/MKDHXY/EInk-Browser/navigator"
	"github.com/MKDHXY/EInk-Browser/omnibox"
	"github.com/MKDHXY/EInk-Browser/probe"
	"github.com/MKDHXY/EInk-Browser/server"
	"github.com/MKDHXY/EInk-Browser/session"
)

func main() {
	startInput := ""
	initConfig := false
	noOpen := false
	appWindow := false

	for _, arg := range os.Args[1:] {
		switch arg {
		case "--init-config":
			initConfig = true
		case "--no-open":
			noOpen = true
		case "--app":
			appWindow = true
		case "-h", "--help":
			printUsage()
			return
		default:
			if startInput == "" {
				startInput = arg
			}
		}
	}

	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if err := run(startInput, noOpen, appWindow); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Ink Browser - e-ink web browsing shell

Usage: inkbrowser [options] [url-or-query]

Options:
  --no-open         Don't open the shell in a browser on start
  --app             Open the shell in a chromeless Chrome app window
  --init-config     Output default config (redirect to ~/.config/inkbrowser/config.toml)
  -h, --help        Show this help

Examples:
  inkbrowser                      Start the shell on the home page
  inkbrowser example.com          Start on example.com (https probed first)
  inkbrowser "aerospace news"     Start on the search results
  inkbrowser --init-config > ~/.config/inkbrowser/config.toml`)
}

func run(startInput string, noOpen, appWindow bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	prober := probe.NewHTTP(probe.Options{
		UserAgent:      cfg.Probe.UserAgent,
		TimeoutSeconds: cfg.Probe.TimeoutSeconds,
	})
	resolver := navigator.New(prober, navigator.Options{
		SearchTemplate: cfg.Search.Template,
		SearchName:     cfg.Search.Name,
	})

	home := startURL(cfg, resolver, startInput, log)

	favPath, err := favourites.DefaultPath()
	if err != nil {
		return fmt.Errorf("locating favourites: %w", err)
	}
	favs, err := favourites.Load(favPath)
	if err != nil {
		return fmt.Errorf("loading favourites: %w", err)
	}

	srv := server.New(server.Config{
		Host:     cfg.Server.Host,
		Port:     cfg.Server.Port,
		MaxConns: cfg.Server.MaxConns,
		HomeURL:  home,
		Search:   cfg.Search.Name,
	}, resolver, favs, log)

	// Persist the viewer state so the next start can restore it.
	if sessPath, err := session.Path(); err == nil {
		var mu sync.Mutex
		srv.OnViewerFinal = func(url string) {
			mu.Lock()
			defer mu.Unlock()
			if err := session.Save(sessPath, &session.State{URL: url}); err != nil {
				log.Warn("saving session", zap.Error(err))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	if !noOpen {
		// Give the listener a moment before pointing a browser at it.
		time.Sleep(150 * time.Millisecond)
		if appWindow || cfg.Launch.AppWindow {
			go func() {
				if err := launcher.AppWindow(ctx, srv.URL(), cfg.Launch.ChromePath); err != nil {
					log.Warn("app window failed, falling back to default browser", zap.Error(err))
					if err := launcher.OpenDefault(srv.URL()); err != nil {
						log.Warn("opening browser", zap.Error(err))
					}
				}
			}()
		} else if cfg.Launch.OpenBrowser {
			if err := launcher.OpenDefault(srv.URL()); err != nil {
				log.Warn("opening browser", zap.Error(err))
			}
		}
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startURL picks the initial viewer address: a command-line input resolved
// through the normal pipeline, else the restored session, else the
// configured home page.
func startURL(cfg *config.Config, resolver *navigator.Resolver, startInput string, log *zap.Logger) string {
	if startInput != "" {
		if in, ok := omnibox.Classify(startInput); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			final := resolver.Resolve(ctx, in, nil)
			if final.Message != "" {
				log.Info(final.Message)
			}
			return final.URL
		}
	}

	if cfg.Viewer.RestoreLast {
		if path, err := session.Path(); err == nil {
			if st, err := session.Load(path); err == nil && st.URL != "" {
				return st.URL
			}
		}
	}

	return cfg.Viewer.HomeURL
}
