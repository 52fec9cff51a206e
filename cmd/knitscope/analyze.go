package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/knitlab/knitscope/analyzer"
	"github.com/knitlab/knitscope/logger"
	"github.com/knitlab/knitscope/snapshot"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

var (
	snapshotURL    string
	outputURL      string
	configURL      string
	projectName    string
	expectedIssues int
	pretty         bool
	verbose        bool
)

var analyzeCmd = &cobra.Command{
	Use:           "analyze",
	Short:         "Analyze a wiring snapshot and emit the graph document",
	Long:          `The analyze command loads a wiring snapshot, builds the dependency graph, detects wiring defects, and writes the visualization document as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		ctx := cmd.Context()

		snap, err := snapshot.Load(ctx, snapshotURL)
		if err != nil {
			return err
		}
		logger.Debugf("loaded snapshot %v: %v components, checksum %v", snapshotURL, len(snap.Components), snap.Checksum)

		config, err := resolveConfig(ctx, snap)
		if err != nil {
			return err
		}

		options := []analyzer.Option{
			analyzer.WithConfig(config),
			analyzer.WithLogger(logger.L()),
		}
		if expectedIssues >= 0 {
			options = append(options, analyzer.WithExpectedIssues(expectedIssues))
		}

		result, err := analyzer.New(options...).Analyze(ctx, snap.Components)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if err := writeDocument(ctx, result); err != nil {
			return err
		}
		summarize(result)

		if result.HasErrors() {
			os.Exit(2)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&snapshotURL, "snapshot", "s", "", "Snapshot URL or path to analyze")
	analyzeCmd.Flags().StringVarP(&outputURL, "out", "o", "", "Destination for the export document, stdout when empty")
	analyzeCmd.Flags().StringVarP(&configURL, "config", "c", "", "Analyzer configuration file (YAML)")
	analyzeCmd.Flags().StringVar(&projectName, "project-name", "", "Project name override for the document metadata")
	analyzeCmd.Flags().IntVar(&expectedIssues, "expected-issues", -1, "Expected issue count used for the accuracy report")
	analyzeCmd.Flags().BoolVar(&pretty, "pretty", true, "Indent the emitted JSON")
	analyzeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	analyzeCmd.MarkFlagRequired("snapshot")
}

// resolveConfig layers the run configuration: file or defaults first, then
// snapshot-derived values fill the unknowns, flags override everything.
func resolveConfig(ctx context.Context, snap *snapshot.Snapshot) (*analyzer.Config, error) {
	config := analyzer.DefaultConfig()
	if configURL != "" {
		loaded, err := analyzer.LoadConfig(ctx, configURL)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if config.ProjectName == "" {
		config.ProjectName = snap.Project
	}
	if config.ProjectName == "" {
		config.ProjectName = snapshot.NewDetector().DetectName(snapshotURL)
	}
	if config.KnitVersion == "" || config.KnitVersion == "unknown" {
		if snap.KnitVersion != "" {
			config.KnitVersion = snap.KnitVersion
		}
	}
	if projectName != "" {
		config.ProjectName = projectName
	}
	return config, nil
}

func writeDocument(ctx context.Context, result *analyzer.Result) error {
	var data []byte
	var err error
	if pretty {
		data, err = result.Document.JSON()
	} else {
		data, err = json.Marshal(result.Document)
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if outputURL == "" {
		fmt.Println(string(data))
		return nil
	}
	fs := afs.New()
	if err := fs.Upload(ctx, outputURL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write document %v: %w", outputURL, err)
	}
	logger.Infof("wrote %v", outputURL)
	return nil
}

func summarize(result *analyzer.Result) {
	logger.Infof("status %v: %v nodes, %v edges, %v issues, %v cycles",
		result.Status,
		len(result.Document.Graph.Nodes),
		len(result.Document.Graph.Edges),
		len(result.Issues),
		len(result.Cycles.Cycles))
	for _, diag := range result.Diagnostics {
		logger.Warnf("%v: %v", diag.Stage, diag.Message)
	}
	if result.Accuracy != nil {
		logger.Infof("accuracy: precision %.2f recall %.2f f1 %.2f statistical error %.2f",
			result.Accuracy.Precision, result.Accuracy.Recall, result.Accuracy.F1Score, result.Accuracy.StatisticalError)
	}
}
