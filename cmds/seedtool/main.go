package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/safing/entropy"
	"github.com/safing/entropy/pool"
)

var (
	requestBits int
	withNonce   bool
	keepOpen    bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "seedtool",
	Short: "Gather a seed from the configured entropy sources and print it",
	RunE:  gatherSeed,

	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().IntVar(&requestBits, "bits", 256, "entropy bits to request")
	rootCmd.Flags().BoolVar(&withNonce, "nonce", true, "mix in nonce and additional uniqueness data")
	rootCmd.Flags().BoolVar(&keepOpen, "keep-open", false, "keep random device handles open between polls")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}),
	))
}

func gatherSeed(cmd *cobra.Command, args []string) error {
	setupLogging()

	if err := entropy.Init(); err != nil {
		return fmt.Errorf("init entropy collection: %w", err)
	}
	defer entropy.Cleanup()

	entropy.KeepRandomDevicesOpen(keepOpen)

	slog.Info("configured sources", "order", strings.Join(entropy.SourceNames(), " > "))

	p := pool.New(requestBits)
	bits := entropy.AcquireEntropy(p)
	if bits == 0 {
		return fmt.Errorf("no entropy source credited any bits")
	}
	slog.Info("entropy acquired", "bits", bits, "bytes", p.Length())

	if withNonce {
		if err := entropy.AddNonceData(p); err != nil {
			return fmt.Errorf("add nonce data: %w", err)
		}
		if err := entropy.AddAdditionalData(p); err != nil {
			return fmt.Errorf("add additional data: %w", err)
		}
		slog.Info("uniqueness data mixed in", "bytes", p.Length())
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(p.SeedMaterial()))
	return nil
}
