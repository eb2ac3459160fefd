package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recourse/intake"
	"github.com/recourse/intake/internal/config"
	"github.com/recourse/intake/pkg/adapters/file"
	"github.com/recourse/intake/pkg/adapters/memory"
	"github.com/recourse/intake/pkg/adapters/redis"
	"github.com/recourse/intake/pkg/flow"
	"github.com/recourse/intake/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Intake is a guided legal intake wizard",
	Long:  `Intake walks NYC tenants through claim preparation flows step by step, saving a resumable draft as they go.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the config file")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for file-backed drafts (overrides config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// loadConfig resolves the effective configuration from flags and file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Storage.Backend = config.BackendFile
		cfg.Storage.Dir = dir
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// openStore builds the draft store the configuration selects.
func openStore(cfg *config.Config) (ports.DraftStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendFile:
		return file.NewStore(cfg.Storage.Dir), nil
	case config.BackendRedis:
		r := cfg.Storage.Redis
		return redis.New(r.Addr, r.Password, r.DB, redis.WithTTL(r.TTL.Std())), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// flowByName resolves one of the registered intake flows, accepting a few
// short aliases for the terminal.
func flowByName(name string) (*flow.Flow, error) {
	switch name {
	case "deposit":
		name = "deposit_claim"
	case "hpaction":
		name = "hp_action"
	}
	fl, err := intake.Flows().Build(name)
	if err != nil {
		return nil, fmt.Errorf("unknown flow %q (expected deposit or hp_action)", name)
	}
	return fl, nil
}

func allFlows() []*flow.Flow {
	reg := intake.Flows()
	flows := make([]*flow.Flow, 0, len(reg.Names()))
	for _, name := range reg.Names() {
		fl, err := reg.Build(name)
		if err != nil {
			continue
		}
		flows = append(flows, fl)
	}
	return flows
}
