package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/jsdoc-gen/internal/generator"
)

func newGenerateCommand() *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the documentation model from source files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Generate(cmd.Context(), &config)
		},
	}

	cmd.Flags().StringSliceVar(&config.Sources, "source", nil, "Source file or doublestar glob (repeatable)")
	cmd.Flags().StringVar(&config.OutputPath, "output", "jsdoc.json", "Path to output file or '-' for stdout")
	cmd.Flags().StringVar(&config.Format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&config.GlobalNS, "global-ns", "", "Namespace prefix for files without an owning class")
	cmd.Flags().IntVar(&config.Concurrency, "concurrency", 4, "Number of files processed in parallel")
	cmd.Flags().StringVar(&config.ConfigPath, "config", "", "Path to .jsdocgen.yml config file")
	cmd.Flags().BoolVar(&config.Verbose, "verbose", false, "Enable debug logging")

	return cmd
}

// GenerateConfig holds configuration for documentation generation.
type GenerateConfig struct {
	Sources     []string `yaml:"sources" validate:"min=1,dive,required"`
	OutputPath  string   `yaml:"output" validate:"required"`
	Format      string   `yaml:"format" validate:"oneof=json yaml"`
	GlobalNS    string   `yaml:"globalNS"`
	Concurrency int      `yaml:"concurrency" validate:"gte=1"`
	ConfigPath  string   `yaml:"-"`
	Verbose     bool     `yaml:"-"`
}

// Generate runs the pipeline per the provided configuration and writes the
// merged documentation model. Per-file failures are logged and the run
// continues; the command fails afterwards if any file failed.
func Generate(ctx context.Context, config *GenerateConfig) error {
	if err := loadConfigFile(config); err != nil {
		return err
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	gen := generator.New(generator.Options{
		GlobalNS: config.GlobalNS,
		Logger:   logger,
	})

	result, runErr := gen.Run(ctx, config.Sources, config.Concurrency)
	if result != nil {
		if err := writeOutput(result, config); err != nil {
			return err
		}
		logger.Info("documentation generated",
			"files", len(result.Files),
			"nodes", len(result.Nodes),
			"sections", len(result.Sections),
			"warnings", len(result.Warnings))
	}

	if runErr != nil {
		return fmt.Errorf("one or more files failed: %w", runErr)
	}
	return nil
}

// loadConfigFile merges .jsdocgen.yml values under flag values: a config
// entry applies only where the flag kept its default.
func loadConfigFile(config *GenerateConfig) error {
	if config.ConfigPath == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Clean(config.ConfigPath))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var cfg GenerateConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if len(config.Sources) == 0 {
		config.Sources = cfg.Sources
	}
	if config.OutputPath == "jsdoc.json" && cfg.OutputPath != "" {
		config.OutputPath = cfg.OutputPath
	}
	if config.Format == "json" && cfg.Format != "" {
		config.Format = cfg.Format
	}
	if config.GlobalNS == "" {
		config.GlobalNS = cfg.GlobalNS
	}
	if config.Concurrency == 4 && cfg.Concurrency != 0 {
		config.Concurrency = cfg.Concurrency
	}

	return nil
}

func writeOutput(result *generator.Result, config *GenerateConfig) error {
	var data []byte
	var err error
	switch config.Format {
	case "yaml":
		data, err = yaml.Marshal(result)
	default:
		data, err = json.MarshalIndent(result, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if config.OutputPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(config.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
