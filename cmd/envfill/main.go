package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soldal/envfill/internal/config"
	"github.com/soldal/envfill/internal/envfile"
	"github.com/soldal/envfill/internal/logging"
	"github.com/soldal/envfill/internal/project"
	"github.com/soldal/envfill/internal/reconcile"
	"github.com/soldal/envfill/internal/scan"
	"github.com/soldal/envfill/internal/session"
	"github.com/soldal/envfill/internal/ui"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:   "envfill [path]",
		Short: "Find missing environment variables and fill them in",
		Long: "envfill scans a codebase for environment variable usages, compares them " +
			"with the .env file, and walks you through filling in the missing values.",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runFill,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	scanCmd = &cobra.Command{
		Use:   "scan [path]",
		Short: "Report missing and already-set variables without prompting",
		Long: "Recursively scan a directory for environment variable usages and report " +
			"which ones the .env file already covers. Exits 1 when variables are missing.",
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	foldersCmd = &cobra.Command{
		Use:   "folders [path]",
		Short: "List folders that carry their own environment files",
		Long:  "Walk a tree, monorepo style, and list every folder holding conventional env files.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFolders,
	}

	syncExampleCmd = &cobra.Command{
		Use:   "sync-example [path]",
		Short: "Mirror the .env keys into the example file",
		Long: "Append the keys declared in the .env file to the example file as bare KEY= " +
			"lines, without copying any values.",
		Args: cobra.MaximumNArgs(1),
		RunE: runSyncExample,
	}

	initConfigCmd = &cobra.Command{
		Use:   "init-config [path]",
		Short: "Create a starter " + config.FileName + " file",
		Long:  "Creates a " + config.FileName + " file with commented defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInitConfig,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}

	// Flags
	envFile      string
	jsonOutput   bool
	silent       bool
	shallow      bool
	verbose      bool
	noHeader     bool
	noExample    bool
	allFolders   bool
	includeGlobs []string
	excludeGlobs []string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&envFile, "env-file", "", "Target env file (overrides config)")
	rootCmd.Flags().BoolVar(&shallow, "shallow", false, "Use declared env file keys instead of scanning source")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false, "Skip printing the header")
	rootCmd.Flags().BoolVar(&noExample, "no-example", false, "Skip syncing the example file after the session")
	rootCmd.Flags().BoolVar(&allFolders, "all-folders", false, "Run folder by folder across the whole tree")
	rootCmd.Flags().StringSliceVar(&includeGlobs, "include", []string{}, "Glob patterns to include")
	rootCmd.Flags().StringSliceVar(&excludeGlobs, "exclude", []string{}, "Glob patterns to exclude")

	scanCmd.Flags().StringVar(&envFile, "env-file", "", "Target env file (overrides config)")
	scanCmd.Flags().BoolVar(&shallow, "shallow", false, "Use declared env file keys instead of scanning source")
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	scanCmd.Flags().BoolVar(&silent, "silent", false, "Silent mode (exit code only)")
	scanCmd.Flags().BoolVar(&noHeader, "no-header", false, "Skip printing the header")
	scanCmd.Flags().StringSliceVar(&includeGlobs, "include", []string{}, "Glob patterns to include")
	scanCmd.Flags().StringSliceVar(&excludeGlobs, "exclude", []string{}, "Glob patterns to exclude")

	foldersCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(syncExampleCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolvePath turns the optional positional argument into an absolute,
// existing path.
func resolvePath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("path does not exist: %s", absPath)
	}
	return absPath, nil
}

// target bundles everything the commands need about one folder.
type target struct {
	root   string
	cfg    *config.Config
	result scan.Result
	doc    *envfile.Document
}

func (t *target) envPath() string {
	name := t.cfg.EnvFile()
	if envFile != "" {
		name = envFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(t.root, name)
}

func (t *target) examplePath() string {
	return filepath.Join(t.root, t.cfg.ExampleFile())
}

// prepare loads the folder's config, scans it, and parses its env file.
func prepare(root string, mode scan.Mode, progress bool) (*target, error) {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		logging.Warn("ignoring unreadable config file", "error", err)
		cfg = &config.Config{}
	}

	scanner := scan.NewScanner()
	scanner.AddIgnoredVars(cfg.Ignore.Variables)
	scanner.AddExcludeDirs(cfg.Ignore.Folders)
	if len(includeGlobs) > 0 {
		scanner.SetIncludeGlobs(includeGlobs)
	}
	if len(excludeGlobs) > 0 {
		scanner.SetExcludeGlobs(excludeGlobs)
	}

	var spin *ui.Progress
	if progress {
		spin = ui.StartProgress("Scanning for environment variables")
	}
	result, err := scanner.Scan(root, mode)
	if progress {
		spin.Stop()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	t := &target{root: root, cfg: cfg, result: result}
	doc, err := envfile.Parse(t.envPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	t.doc = doc
	return t, nil
}

func scanMode() scan.Mode {
	if shallow {
		return scan.Shallow
	}
	return scan.Deep
}

func runFill(cmd *cobra.Command, args []string) error {
	logging.Setup(os.Stderr, verbose)

	root, err := resolvePath(args)
	if err != nil {
		return err
	}

	if !ui.IsInteractive() {
		// No terminal to prompt on; fall back to the report.
		logging.Warn("not a terminal, printing report instead of prompting")
		return reportOnly(root)
	}

	if !noHeader {
		ui.PrintBanner(os.Stdout, Version)
	}

	roots := []string{root}
	if allFolders {
		cfg, err := config.LoadConfig(root)
		if err != nil {
			logging.Warn("ignoring unreadable config file", "error", err)
			cfg = &config.Config{}
		}
		folders, err := project.Discover(root, cfg.Ignore.Folders)
		if err != nil {
			return err
		}
		if len(folders) > 0 {
			roots = roots[:0]
			for _, f := range folders {
				roots = append(roots, f.AbsPath)
			}
		}
	}

	for _, folderRoot := range roots {
		if len(roots) > 1 {
			rel, relErr := filepath.Rel(root, folderRoot)
			if relErr != nil {
				rel = folderRoot
			}
			ui.PrintFolderHeading(os.Stdout, rel)
		}
		if err := fillFolder(folderRoot); err != nil {
			return err
		}
	}
	return nil
}

// fillFolder runs the prompt session for a single folder.
func fillFolder(root string) error {
	t, err := prepare(root, scanMode(), true)
	if err != nil {
		return err
	}

	summary := reconcile.Summarize(t.result, t.doc)
	if summary.Total == 0 {
		fmt.Println("No environment variable references found.")
		return nil
	}
	if summary.Missing == 0 {
		fmt.Printf("✓ All %d variables are already set.\n", summary.Total)
		return nil
	}

	fmt.Printf("Found %d variables across %d files, %d missing a value.\n",
		summary.Total, t.result.FileCount(), summary.Missing)

	runner := &session.Runner{
		Path:      t.envPath(),
		Result:    t.result,
		Doc:       t.doc,
		Collector: ui.NewPrompter(os.Stdin, os.Stdout),
		OnSaved: func(key, value string) {
			ui.PrintSaved(os.Stdout, key)
		},
	}
	written, err := runner.Run()
	if err != nil {
		return err
	}

	ui.PrintSessionSummary(os.Stdout, written, t.envPath(), reconcile.Summarize(t.result, t.doc))

	if !noExample {
		added, err := envfile.SyncExample(t.examplePath(), t.result.Names())
		if err != nil {
			return fmt.Errorf("failed to sync example file: %w", err)
		}
		if added > 0 {
			fmt.Printf("Added %d keys to %s.\n", added, t.cfg.ExampleFile())
		}
	}
	return nil
}

// reportOnly mirrors the scan subcommand for non-interactive invocations
// of the root command.
func reportOnly(root string) error {
	t, err := prepare(root, scanMode(), false)
	if err != nil {
		return err
	}
	if err := ui.Format(os.Stdout, t.result, t.doc, false, false); err != nil {
		return err
	}
	if reconcile.Summarize(t.result, t.doc).Missing > 0 {
		os.Exit(1)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	logging.Setup(os.Stderr, verbose)

	root, err := resolvePath(args)
	if err != nil {
		return err
	}

	if !noHeader && !jsonOutput && !silent {
		ui.PrintBanner(os.Stdout, Version)
	}

	t, err := prepare(root, scanMode(), !jsonOutput && !silent)
	if err != nil {
		return err
	}

	if err := ui.Format(os.Stdout, t.result, t.doc, jsonOutput, silent); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	summary := reconcile.Summarize(t.result, t.doc)
	if shallow && summary.Total == 0 && !jsonOutput && !silent {
		fmt.Fprintln(os.Stderr, "No env files declare any keys here. Try again without --shallow to scan the source.")
	}
	if summary.Missing > 0 {
		os.Exit(1)
	}
	return nil
}

func runFolders(cmd *cobra.Command, args []string) error {
	logging.Setup(os.Stderr, verbose)

	root, err := resolvePath(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		logging.Warn("ignoring unreadable config file", "error", err)
		cfg = &config.Config{}
	}

	folders, err := project.Discover(root, cfg.Ignore.Folders)
	if err != nil {
		return err
	}
	return ui.ListFolders(os.Stdout, folders, jsonOutput)
}

func runSyncExample(cmd *cobra.Command, args []string) error {
	logging.Setup(os.Stderr, verbose)

	root, err := resolvePath(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return err
	}

	t := &target{root: root, cfg: cfg}
	doc, err := envfile.Parse(t.envPath())
	if err != nil {
		return err
	}

	var keys []string
	for _, key := range doc.Keys() {
		if cfg.ShouldIgnoreVariable(key) {
			continue
		}
		keys = append(keys, key)
	}

	added, err := envfile.SyncExample(t.examplePath(), keys)
	if err != nil {
		return fmt.Errorf("failed to sync example file: %w", err)
	}
	if added == 0 {
		fmt.Printf("%s is already up to date.\n", cfg.ExampleFile())
	} else {
		fmt.Printf("Added %d keys to %s.\n", added, cfg.ExampleFile())
	}
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	root, err := resolvePath(args)
	if err != nil {
		return err
	}

	path, err := config.WriteStarter(root)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		ui.Errorf(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
