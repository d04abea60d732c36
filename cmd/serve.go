package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitekit/internal/devserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve the site locally for development",
	Long: `Starts a static file server for the site directory with permissive CORS,
no-cache headers and correct web-font MIME types. Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "interface to bind (overrides config)")
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is up")
	serveCmd.Flags().Bool("no-cache", true, "send no-cache headers on every response")
	serveCmd.Flags().Bool("cors", true, "allow cross-origin requests from any origin")
	serveCmd.Flags().BoolP("yes", "y", false, "start even if index.html is missing")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	s := &cfg.Serve
	if flagChanged(cmd, "host") {
		s.Host, _ = cmd.Flags().GetString("host")
	}
	if flagChanged(cmd, "port") {
		s.Port, _ = cmd.Flags().GetInt("port")
	}
	if flagChanged(cmd, "open") {
		s.Open, _ = cmd.Flags().GetBool("open")
	}
	if flagChanged(cmd, "no-cache") {
		s.NoCache, _ = cmd.Flags().GetBool("no-cache")
	}
	if flagChanged(cmd, "cors") {
		s.CORS, _ = cmd.Flags().GetBool("cors")
	}
	if err := validate(cfg); err != nil {
		return err
	}

	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", cfg.Dir, err)
	}
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("site directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("site directory %s is not a directory", dir)
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if s.RequireIndex && !devserver.HasIndex(dir) {
		fmt.Fprintf(os.Stderr, "Warning: index.html not found in %s\n", dir)
		if !yes {
			ok, err := confirm("Continue anyway")
			if err != nil {
				return fmt.Errorf("confirmation: %w", err)
			}
			if !ok {
				return nil
			}
		}
	}

	srv := devserver.New(devserver.Config{
		Dir:     dir,
		Host:    s.Host,
		Port:    s.Port,
		CORS:    s.CORS,
		NoCache: s.NoCache,
		Quiet:   !verbose,
	})
	if err := srv.Listen(); err != nil {
		return err
	}

	rule := strings.Repeat("=", 50)
	fmt.Printf("\n%s\nsitekit development server\n%s\n", rule, rule)
	fmt.Printf("Serving files from: %s\n", dir)
	fmt.Printf("Server running at:  %s\n", srv.URL())
	fmt.Printf("Homepage:           %s/index.html\n", srv.URL())
	fmt.Printf("%s\nPress Ctrl+C to stop the server\n\n", rule)

	if s.Open {
		devserver.OpenBrowserAfter(srv.URL(), time.Duration(s.OpenDelayMS)*time.Millisecond)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("serving site: %w", err)
	}
	fmt.Println("\nServer stopped.")
	return nil
}
