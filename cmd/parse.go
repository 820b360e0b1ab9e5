package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/resume"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Parse resume files and print the extracted fields as JSON",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		parse(args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parse(paths []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	p, err := newParser(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the parser", zap.Error(err), zap.String("hint", geminiKeyHint))
	}
	defer p.Close()

	records := make(map[string]resume.Record, len(paths))
	failed := 0
	for _, path := range paths {
		record, err := p.ParseFile(ctx, path)
		if err != nil {
			logger.Error("parsing a document", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}
		records[path] = record
	}

	if err := printRecords(paths, records); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}

	if failed > 0 {
		logger.Fatal("some documents were not parsed", zap.Int("failed", failed), zap.Int("total", len(paths)))
	}
}

// printRecords writes a single flat record for one file and a path-keyed
// object for several.
func printRecords(paths []string, records map[string]resume.Record) error {
	var out any = records
	if len(paths) == 1 {
		record, ok := records[paths[0]]
		if !ok {
			return nil
		}
		out = record
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}
