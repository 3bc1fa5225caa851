package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"prismplane/api"
	"prismplane/config"
	"prismplane/gallery"
	"prismplane/generator"
	"prismplane/model"
	"prismplane/storage"
	"prismplane/theme"
)

//go:embed templates
var templatesFS embed.FS

//go:embed web/dist
var staticFS embed.FS

var (
	dataDir       string
	terminalStyle string
	writePNG      bool
	listen        string
	listenPort    int
	generateFirst bool
	scheme        string
	appVersion    = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "prismplane",
	Short: "prismplane – prismatic battery cell renders",
	Long:  "Prismplane regenerates the prismatic cell SVG assets and serves them in a web gallery.",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gallery",
	Long:  "Serve the gallery page and the asset API. Fails if any asset is missing unless --generate is given.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage prismplane configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default prismplane.yaml in the specified data directory (or current directory if not specified).",
	Args:  cobra.NoArgs,
	RunE:  runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", wd, "Data directory holding prismplane.yaml and assets/")
	rootCmd.PersistentFlags().StringVar(&terminalStyle, "terminal-style", "", "Terminal decoration: rounded or ellipse")
	rootCmd.PersistentFlags().BoolVar(&writePNG, "png", false, "Also write PNG previews")

	serveCmd.Flags().StringVar(&listen, "listen", "all", "IP address to listen on")
	serveCmd.Flags().IntVar(&listenPort, "listen-port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&generateFirst, "generate", false, "Regenerate assets before serving")
	serveCmd.Flags().StringVar(&scheme, "scheme", "", "Page colour scheme (light or dark)")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(serveCmd, configCmd)
}

// loadConfig reads the config file and applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	dir, err := filepath.Abs(dataDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("data-dir") || cfg.DataDir == "." {
		cfg.DataDir = dir
	}
	if cmd.Flags().Changed("terminal-style") {
		cfg.TerminalStyle = terminalStyle
	}
	if cmd.Flags().Changed("png") {
		cfg.Preview = writePNG
	}
	if cmd.Flags().Changed("listen") || cmd.Flags().Changed("listen-port") {
		if listen != "" && listen != "all" {
			cfg.ListenAddr = net.JoinHostPort(listen, fmt.Sprint(listenPort))
		} else {
			cfg.ListenAddr = fmt.Sprintf(":%d", listenPort)
		}
	}
	return cfg, nil
}

func newGenerator(cfg config.Config, cat *model.Catalog, store *storage.Store) *generator.Generator {
	wd, _ := os.Getwd()
	return generator.New(cat, store, generator.Options{
		PNG:          cfg.Preview,
		PreviewScale: cfg.PreviewScale,
		RelativeTo:   wd,
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	store := storage.New(cfg.AssetsPath())
	_, err = newGenerator(cfg, cat, store).Run(cmd.Context(), cmd.OutOrStdout())
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	store := storage.New(cfg.AssetsPath())
	gen := newGenerator(cfg, cat, store)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if generateFirst {
		if _, err := gen.Run(ctx, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	pageFS, err := fs.Sub(staticFS, "web/dist")
	if err != nil {
		return fmt.Errorf("create static sub-filesystem: %w", err)
	}
	page, err := gallery.New(cat, store, pageFS, "index.html")
	if err != nil {
		return err
	}
	page.AppVersion = appVersion

	// Fail fast before listening: every variant must have its asset.
	if err := page.EnsureAssets(); err != nil {
		return err
	}

	themeManager, err := theme.NewManager(templatesFS, "templates")
	if err != nil {
		return fmt.Errorf("initialize theme manager: %w", err)
	}
	themeHandler := theme.NewHandler(themeManager, cat.Registry)
	page.Scheme = themeManager.DefaultScheme(theme.DefaultTemplate)
	if scheme != "" {
		page.Scheme = scheme
	}

	apiServer := api.NewServer(cat, store, func(ctx context.Context) ([]generator.Result, error) {
		return gen.Run(ctx, log.Writer())
	})

	mux := http.NewServeMux()
	apiServer.Register(mux)
	mux.HandleFunc("/api/theme", themeHandler.HandleTheme)
	mux.HandleFunc("/api/schemes", themeHandler.HandleSchemes)
	mux.HandleFunc("/api/templates", themeHandler.HandleTemplates)
	mux.Handle("/", page)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	printListeningAddresses(cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	return nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := config.Default()
	cfg.DataDir = dir

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config file already exists: %s", cfgPath)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", cfgPath)
	return nil
}

func printListeningAddresses(addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		log.Printf("listening on http://%s", addr)
		return
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		addrs, err := net.InterfaceAddrs()
		if err == nil {
			log.Println("listening on:")
			for _, a := range addrs {
				if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
					if ipnet.IP.To4() != nil {
						log.Printf("  http://%s:%s", ipnet.IP.String(), port)
					}
				}
			}
			log.Printf("  http://localhost:%s", port)
			log.Printf("  http://127.0.0.1:%s", port)
		} else {
			log.Printf("listening on http://0.0.0.0:%s", port)
		}
	} else {
		log.Printf("listening on http://%s:%s", host, port)
	}
}

func main() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
