package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"soldocs/internal/analysis"
	"soldocs/internal/config"
	"soldocs/internal/crawler"
	"soldocs/internal/docblock"
	"soldocs/internal/git"
	"soldocs/internal/logging"
	"soldocs/internal/metadata"
	"soldocs/internal/report"
	"soldocs/internal/storage"
	"soldocs/internal/validator"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "soldocs",
		Short: "Maintain the documentation embedded in algorithm solution files",
	}
	configPath string
	dbPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "soldocs.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the validation history database (SQLite); defaults to storage.db")

	setSectionCmd.Flags().String("name", "", "Section name, e.g. APPROACH")
	setSectionCmd.Flags().String("content", "", "Section content")
	setSectionCmd.Flags().String("content-file", "", "Read section content from a file ('-' for stdin)")
	_ = setSectionCmd.MarkFlagRequired("name")

	replaceCmd.Flags().String("markdown-file", "", "File holding the complete replacement document ('-' for stdin)")
	_ = replaceCmd.MarkFlagRequired("markdown-file")

	addMetadataCmd.Flags().Bool("overwrite", false, "Rewrite METADATA sections that already exist")
	addMetadataCmd.Flags().StringSlice("ext", nil, "Only process these extensions, e.g. --ext .py")

	validateCmd.Flags().String("changed", "", "Only validate files changed since this git ref")
	validateCmd.Flags().String("report", "", "Write the JSON report to this file")
	validateCmd.Flags().Bool("save", false, "Record the run in the validation history database (--db or storage.db)")
	validateCmd.Flags().StringSlice("ext", nil, "Only process these extensions")

	analyzeCmd.Flags().StringSlice("ext", []string{".py"}, "Extensions to analyze")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(setSectionCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(addMetadataCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads the configuration file, falling back to defaults.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func initLogger(cfg *config.Config, name string) logging.Logger {
	provider, err := logging.NewProvider(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return provider.Logger(name)
}

// collectFiles lists the supported solution files under the requested root.
func collectFiles(cfg *config.Config, engine *docblock.Engine, args []string, exts []string) (string, []string) {
	root := cfg.Project.Root
	if len(args) > 0 {
		root = args[0]
	}

	cr := crawler.NewCrawler(engine, cfg.Project.Ignore...).Only(exts...)
	paths, err := cr.Collect(root)
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", root, err)
	}
	return root, paths
}

func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the markdown embedded in a solution file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := loadConfig().Engine()

		code, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read %s: %v", args[0], err)
		}
		md, err := engine.ExtractMarkdown(string(code), filepath.Ext(args[0]))
		if err != nil {
			log.Fatalf("Failed to extract documentation: %v", err)
		}
		fmt.Print(md)
	},
}

var setSectionCmd = &cobra.Command{
	Use:   "set-section FILE",
	Short: "Insert or replace one section of a solution's documentation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		content, _ := cmd.Flags().GetString("content")
		contentFile, _ := cmd.Flags().GetString("content-file")

		if contentFile != "" {
			var err error
			if content, err = readInput(contentFile); err != nil {
				log.Fatalf("Failed to read content: %v", err)
			}
		}

		engine := loadConfig().Engine()
		ok, msg := engine.UpdateFileSection(args[0], name, content)
		if !ok {
			log.Fatalf("❌ %s", msg)
		}
		fmt.Printf("✅ %s\n", msg)
	},
}

var replaceCmd = &cobra.Command{
	Use:   "replace FILE",
	Short: "Replace the whole documentation block of a solution file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mdFile, _ := cmd.Flags().GetString("markdown-file")
		markdown, err := readInput(mdFile)
		if err != nil {
			log.Fatalf("Failed to read markdown: %v", err)
		}

		engine := loadConfig().Engine()
		ok, msg := engine.UpdateFileWithMarkdown(args[0], markdown)
		if !ok {
			log.Fatalf("❌ %s", msg)
		}
		fmt.Printf("✅ %s\n", msg)
	},
}

var addMetadataCmd = &cobra.Command{
	Use:   "add-metadata [root]",
	Short: "Add a METADATA section to every solution that lacks one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		exts, _ := cmd.Flags().GetStringSlice("ext")

		cfg := loadConfig()
		logger := initLogger(cfg, "metadata")
		engine := cfg.Engine()

		root, paths := collectFiles(cfg, engine, args, exts)
		fmt.Printf("📂 Adding METADATA to %d files under %s\n", len(paths), root)

		counts := make(map[metadata.Status]int)
		for _, path := range paths {
			res := metadata.Apply(engine, path, overwrite)
			counts[res.Status]++
			if res.Status == metadata.StatusFailed {
				logger.Warn("metadata not written", "path", path, "reason", res.Message)
			}
		}

		fmt.Printf("✅ %d added, %d updated, %d skipped, %d failed\n",
			counts[metadata.StatusAdded], counts[metadata.StatusUpdated],
			counts[metadata.StatusSkipped], counts[metadata.StatusFailed])
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [root]",
	Short: "Check every solution against the documentation convention",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		changedRef, _ := cmd.Flags().GetString("changed")
		reportPath, _ := cmd.Flags().GetString("report")
		save, _ := cmd.Flags().GetBool("save")
		exts, _ := cmd.Flags().GetStringSlice("ext")

		ctx := context.Background()
		cfg := loadConfig()
		logger := initLogger(cfg, "validator")
		engine := cfg.Engine()

		root, paths := collectFiles(cfg, engine, args, exts)
		if changedRef != "" {
			changes, err := git.GetChangedFiles(root, changedRef)
			if err != nil {
				log.Fatalf("Failed to get git changes: %v", err)
			}
			paths = git.FilterPaths(root, paths, changes)
			fmt.Printf("📝 %d solution files changed since %s\n", len(paths), changedRef)
		}

		fmt.Printf("🔍 Validating %d files under %s...\n", len(paths), root)
		start := time.Now()
		v := validator.New(engine, cfg.Docs.RequiredSections,
			validator.WithWorkers(cfg.Workers),
			validator.WithLogger(logger))
		rep, err := v.ValidateAll(ctx, root, paths)
		if err != nil {
			log.Fatalf("Validation aborted: %v", err)
		}

		for _, f := range rep.Files {
			for _, is := range f.Issues {
				mark := "⚠️ "
				if is.Severity == validator.SeverityError {
					mark = "❌"
				}
				fmt.Printf("%s %s: [%s] %s\n", mark, f.Path, is.Code, is.Message)
			}
		}
		for _, err := range rep.ProcessingErrors() {
			logger.Error("solution file not processed", "error", err)
		}
		fmt.Printf("📊 %d files: %d passed, %d failed, %d warnings (%v)\n",
			rep.Summary.Files, rep.Summary.Passed, rep.Summary.Failed, rep.Summary.Warnings, time.Since(start).Round(time.Millisecond))

		if reportPath != "" {
			if err := report.Save(reportPath, rep); err != nil {
				log.Fatalf("Failed to write report: %v", err)
			}
			fmt.Printf("💾 Report written to %s\n", reportPath)
		}

		if save {
			path := dbPath
			if path == "" {
				path = cfg.Storage.DB
			}
			store, err := storage.NewSQLiteStore(path)
			if err != nil {
				log.Fatalf("Failed to initialize database: %v", err)
			}
			runID, err := store.SaveRun(ctx, rep)
			store.Close()
			if err != nil {
				log.Fatalf("Failed to record run: %v", err)
			}
			fmt.Printf("💾 Recorded run #%d in %s\n", runID, path)
		}

		if rep.Summary.Failed > 0 {
			os.Exit(1)
		}
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [root]",
	Short: "Report documentation coverage per section",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exts, _ := cmd.Flags().GetStringSlice("ext")

		cfg := loadConfig()
		engine := cfg.Engine()
		root, paths := collectFiles(cfg, engine, args, exts)

		fmt.Printf("🧠 Analyzing %d files under %s\n", len(paths), root)
		cov := analysis.NewAnalyzer(engine).AnalyzeFiles(paths)
		fmt.Print(cov.String())
		for _, p := range cov.Undocumented {
			fmt.Printf("  ⚠️  no documentation block: %s\n", p)
		}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the latest recorded validation run and its failing files",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()
		path := dbPath
		if path == "" {
			path = cfg.Storage.DB
		}

		store, err := storage.NewSQLiteStore(path)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		run, err := store.LatestRun(ctx)
		if errors.Is(err, storage.ErrNoRuns) {
			fmt.Printf("📭 No validation runs recorded in %s\n", path)
			return
		}
		if err != nil {
			log.Fatalf("Failed to load run: %v", err)
		}

		fmt.Printf("📊 Run #%d on %s at %s: %d files, %d passed, %d failed, %d warnings\n",
			run.ID, run.Root, run.StartedAt.Local().Format(time.DateTime),
			run.Summary.Files, run.Summary.Passed, run.Summary.Failed, run.Summary.Warnings)

		failing, err := store.FailingFiles(ctx, run.ID)
		if err != nil {
			log.Fatalf("Failed to load file results: %v", err)
		}
		for _, f := range failing {
			fmt.Printf("❌ %s\n", f.Path)
			for _, is := range f.Issues {
				if is.Severity == validator.SeverityError {
					fmt.Printf("   [%s] %s\n", is.Code, is.Message)
				}
			}
		}
	},
}
