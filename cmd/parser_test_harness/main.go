package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vilterp/parsec/pkg/config"
	"github.com/vilterp/parsec/pkg/corpus"
	"github.com/vilterp/parsec/pkg/json_lang"
	clog "github.com/vilterp/parsec/pkg/log"
	"github.com/vilterp/parsec/pkg/parserlib_test_harness"
	"github.com/vilterp/parsec/pkg/treesql_lang"
)

type flags struct {
	configFile    string
	host          string
	port          int
	dataFile      string
	maxInputBytes int
	logLevel      string
	diagnostics   bool
}

// loadConfig reads the config file, then applies any flags the user set.
func (f *flags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	changed := cmd.Flags().Changed
	if changed("host") {
		cfg.Server.Host = f.host
	}
	if changed("port") {
		cfg.Server.Port = f.port
	}
	if changed("data-file") {
		cfg.Corpus.DataFile = f.dataFile
	}
	if changed("max-input-bytes") {
		cfg.Parse.MaxInputBytes = f.maxInputBytes
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("diagnostics") {
		cfg.Parse.Diagnostics = f.diagnostics
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	f := &flags{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "parser_test_harness",
		Short: "Serve grammars over HTTP for trying them out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&f.configFile, "config", "", "YAML config file")
	persistent.StringVar(&f.host, "host", defaults.Server.Host, "host to listen on")
	persistent.IntVar(&f.port, "port", defaults.Server.Port, "port to listen on")
	persistent.StringVar(&f.dataFile, "data-file", defaults.Corpus.DataFile, "corpus data file")
	persistent.IntVar(&f.maxInputBytes, "max-input-bytes", defaults.Parse.MaxInputBytes, "reject inputs longer than this; 0 for no limit")
	persistent.StringVar(&f.logLevel, "log-level", defaults.Logging.Level, "log level")
	persistent.BoolVar(&f.diagnostics, "diagnostics", defaults.Parse.Diagnostics, "record callstacks unless a request says otherwise")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	if err := clog.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}

	store, err := corpus.Open(cfg.Corpus.DataFile)
	if err != nil {
		return err
	}
	clog.Printf(clog.Background, "opened corpus: %s", cfg.Corpus.DataFile)

	fmt.Println("parser test harness")
	server := parserlib_test_harness.NewServer(cfg, store, json_lang.Language, treesql_lang.Language)

	// graceful shutdown on Ctrl-C
	ctrlCChan := make(chan os.Signal, 1)
	signal.Notify(ctrlCChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlCChan
		if err := server.Close(); err != nil {
			clog.Println(clog.Background, "error closing:", err)
		}
		os.Exit(0)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "error listening")
	}
	return nil
}
