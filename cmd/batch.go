package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/batch"
	"github.com/spigell/resume-parser/internal/export"
	"github.com/spigell/resume-parser/internal/logger"
)

const (
	PromptPrint           = "Print results"
	PromptDumpToFile      = "Dump results to file"
	PromptExportXLSX      = "Export results to XLSX"
	PromptReportByCompany = "Report by company"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit")

var batchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptPrint, PromptDumpToFile, PromptExportXLSX, PromptReportByCompany, PromptExit},
}

var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Parse every supported resume under a directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBatch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolP("yes", "y", false, "do not ask what to do with results; print them and exit")
	batchCmd.Flags().IntP("workers", "w", 0, "number of documents parsed concurrently (0 = number of CPUs)")
	batchCmd.Flags().StringP("output", "o", "resumes.xlsx", "path of the XLSX export")

	viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers"))
}

func runBatch(cmd *cobra.Command, root string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the batch", zap.String("version", version), zap.String("dir", root))

	p, err := newParser(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the parser", zap.Error(err), zap.String("hint", geminiKeyHint))
	}
	defer p.Close()

	paths, stats, err := batch.Collect(root, p.Supports)
	if err != nil {
		logger.Fatal("collecting documents", zap.Error(err))
	}

	logger.Info("collected documents",
		zap.Int("files", stats.Files),
		zap.Int("unsupported", stats.Unsupported),
		zap.Int("hidden", stats.Hidden),
	)

	if len(paths) == 0 {
		logger.Info("exiting", zap.String("reason", "no supported documents found"))
		return
	}

	results, err := batch.Run(ctx, p, paths, config.Workers, logger)
	if err != nil {
		logger.Fatal("batch interrupted", zap.Error(err))
	}

	output := cmd.Flag("output").Value.String()

	if cmd.Flag("yes").Value.String() == "true" {
		if err := handleAction(PromptPrint, logger, results, output); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := batchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, results, output); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, results *batch.Results, output string) error {
	switch action {
	case PromptPrint:
		pretty, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(pretty))
		return nil
	case PromptDumpToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExportXLSX:
		data, err := export.XLSX(results)
		if err != nil {
			return fmt.Errorf("export results: %w", err)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		logger.Info("exported results", zap.String("filename", output), zap.Int("resumes", results.Len()))
		return nil
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(results.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("resumes count", results.Len()))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
