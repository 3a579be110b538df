// Package main provides the CLI entry point for testsheet-go.
package main

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/ukaji3/testsheet-go/pkg/testsheet"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/models"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/output"
	"github.com/ukaji3/testsheet-go/pkg/testsheet/server"
	"gopkg.in/yaml.v3"
)

var (
	configPath  string
	logLevel    string
	templateArg string
	detailsPath string
	sheetName   string
	outputPath  string
	pretty      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "testsheet",
		Short: "Manage software test plans in Excel workbooks",
		Long: `testsheet-go keeps test case workbooks in memory and exposes them
to MCP clients over stdio. It can also generate a blank test plan or dump
the test cases of an existing one as JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the test sheet tools over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	initCmd := &cobra.Command{
		Use:   "init [output.xlsx]",
		Short: "Write a new test plan workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
	initCmd.Flags().StringVar(&templateArg, "template", "", "Template workbook (default: blank sheet)")
	initCmd.Flags().StringVar(&detailsPath, "details", "", "YAML file with the testing details block")

	inspectCmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Print the test cases, details and summary of a sheet as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: SW Validation Testing)")
	inspectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(serveCmd, initCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the options and builds a logger writing to stderr, since
// stdout carries the MCP stream.
func setup() (testsheet.Options, *slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return testsheet.Options{}, nil, fmt.Errorf("invalid log level: %s", logLevel)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := testsheet.DefaultOptions()
	if configPath != "" {
		var err error
		if opts, err = testsheet.LoadOptions(configPath); err != nil {
			return opts, nil, err
		}
	}
	return opts, logger, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	opts, logger, err := setup()
	if err != nil {
		return err
	}

	registry := testsheet.NewRegistry()
	defer func() {
		if err := registry.Close(); err != nil {
			logger.Warn("closing workbooks", "error", err)
		}
	}()

	svc := testsheet.NewService(registry, opts, logger)
	s := server.New(svc, opts.ServerName)
	logger.Info("serving on stdio", "name", opts.ServerName, "version", server.Version)

	errLog := slog.NewLogLogger(logger.Handler(), slog.LevelError)
	if err := mcpserver.ServeStdio(s, mcpserver.WithErrorLogger(errLog)); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	opts, logger, err := setup()
	if err != nil {
		return err
	}

	registry := testsheet.NewRegistry()
	defer registry.Close()
	svc := testsheet.NewService(registry, opts, logger)

	res, err := svc.CreateWorkbook("", templateArg)
	if err != nil {
		return err
	}
	if res.TemplateMissing() {
		logger.Warn("template not found, generated a blank sheet", "template", res.Template)
	}

	if detailsPath != "" {
		d, err := loadDetails(detailsPath)
		if err != nil {
			return err
		}
		if err := svc.UpdateDetails(res.ID, "", d); err != nil {
			return err
		}
	}

	if err := svc.SaveWorkbook(res.ID, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
	return nil
}

func loadDetails(path string) (models.Details, error) {
	var d models.Details
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read details: %w", err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse details %s: %w", path, err)
	}
	return d, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(); err != nil {
		return err
	}

	report, err := testsheet.Inspect(args[0], sheetName)
	if err != nil {
		return err
	}

	jsonData, err := output.ToJSON(report, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
