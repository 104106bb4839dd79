package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/bore/internal/config"
	"github.com/agenthands/bore/internal/core"
	"github.com/agenthands/bore/internal/core/model"
	"github.com/agenthands/bore/internal/logger"
)

var (
	configPath string
	jsonLogs   bool
	jsonOutput bool
	bySameAs   bool
)

var rootCmd = &cobra.Command{
	Use:   "bore",
	Short: "Assemble plain-language facts about artists from a triple graph",
	Long: `bore - artist facts from a music triple graph.

Examples:
  bore facts http://www.bbc.co.uk/music/artists/<mbid>#artist
  bore facts --same-as http://dbpedia.org/resource/Fugazi
  bore load triples.json
  bore indices`,
	SilenceUsage: true,
}

var factsCmd = &cobra.Command{
	Use:   "facts <uri>",
	Short: "Print every fact known about an artist",
	Args:  cobra.ExactArgs(1),
	RunE:  runFacts,
}

var loadCmd = &cobra.Command{
	Use:   "load <file.json>",
	Short: `Load triples from a {"triples":[...]} JSON file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "Create graph indices",
	Args:  cobra.NoArgs,
	RunE:  runIndices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.toml", "Path to the TOML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Log in JSON")

	factsCmd.Flags().BoolVar(&bySameAs, "same-as", false, "Treat the argument as an owl:sameAs cross reference")
	factsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	rootCmd.AddCommand(factsCmd, loadCmd, indicesCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// open loads config and connects. The caller closes the returned Bore and
// syncs the logger.
func open(ctx context.Context) (*core.Bore, *zap.Logger, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg.ApplyEnv()
	if jsonLogs {
		cfg.Log.JSON = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	b, err := core.Open(ctx, cfg, zl)
	if err != nil {
		return nil, nil, err
	}
	return b, zl, nil
}

func runFacts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, zl, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	defer func() { _ = b.Close(ctx) }()

	uri := args[0]
	if bySameAs {
		found, ok, err := b.ArtistURIForSameAs(ctx, uri)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Newf("no artist has owl:sameAs %s", uri)
		}
		uri = found
	}

	report, err := b.Statements(ctx, uri)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	for _, s := range report.Sentences() {
		fmt.Fprintln(out, s)
	}
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", args[0])
	}
	var doc struct {
		Triples []model.Triple `json:"triples"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, "failed to parse %s", args[0])
	}

	ctx := cmd.Context()
	b, zl, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	defer func() { _ = b.Close(ctx) }()

	n, err := b.LoadTriples(ctx, doc.Triples)
	if err != nil {
		return errors.Wrapf(err, "loaded %d of %d triples", n, len(doc.Triples))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d triples\n", n)
	return nil
}

func runIndices(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, zl, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	defer func() { _ = b.Close(ctx) }()

	return b.BuildIndices(ctx)
}
