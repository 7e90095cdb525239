package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zzenonn/zreplica/internal/config"
	"github.com/zzenonn/zreplica/internal/logging"
	"github.com/zzenonn/zreplica/internal/platform"
	"github.com/zzenonn/zreplica/internal/service"
)

var (
	cfgFile            string
	cfg                *config.Config
	replicationService *service.ReplicationService
	templateService    *service.TemplateService
)

var rootCmd = &cobra.Command{
	Use:   "zreplica",
	Short: "Replicate one file into many copies",
	Long: `zreplica writes N copies of a source file into a destination directory.

Plain copies are byte-identical and are written from a single read of the
source. Templated copies replace a placeholder token with a fresh unique
identifier per file and are spread over a pool of workers.`,
	SilenceUsage: true,
}

func init() {
	// assigned here rather than in the literal: initConfig reads rootCmd
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initConfig()
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.Int("workers", 0, "templated worker pool size (0 = twice the CPU count)")
	flags.Int("chunk-size", 0, "chunk size in bytes for fan-out copies (0 = automatic)")
	flags.Bool("zero-copy", true, "use kernel zero-copy transfer when available")
	flags.Bool("mmap", false, "memory-map large sources when zero-copy is unavailable")
	flags.String("placeholder", config.DefaultPlaceholder, "placeholder token replaced in templated copies")
	flags.BoolP("quiet", "q", false, "suppress progress bars")
}

func initConfig() error {
	var err error
	cfg, err = config.LoadConfig(cfgFile, rootCmd)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	logging.InitLogger(cfg)

	caps := platform.Probe()
	caps.ZeroCopy = caps.ZeroCopy && cfg.ZeroCopy

	log.WithFields(log.Fields{
		"zero_copy": caps.ZeroCopy,
		"mmap":      caps.Mmap,
		"clone":     caps.Clone,
		"workers":   cfg.Workers,
	}).Debug("Platform capabilities")

	replicationService = service.NewReplicationService(service.Options{
		ChunkSize:    cfg.ChunkSize,
		Capabilities: caps,
		PreferMmap:   cfg.Mmap,
	})
	templateService = service.NewTemplateService(cfg.Workers, service.UUIDGenerator{})
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
