// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for the Licmaster
// application using the Cobra library. It defines the root command,
// subcommands (like create, genkey, backup), flags, and the main entry
// point for execution.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/toeirei/licmaster/buildvars"
	"github.com/toeirei/licmaster/internal/clipboard"
	"github.com/toeirei/licmaster/internal/config"
	"github.com/toeirei/licmaster/internal/crypto/rsakey"
	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/dialog"
	"github.com/toeirei/licmaster/internal/i18n"
	"github.com/toeirei/licmaster/internal/logging"
	"github.com/toeirei/licmaster/internal/project"
	"github.com/toeirei/licmaster/internal/store"
	"github.com/toeirei/licmaster/internal/tui"
)

var cfgFile string
var debugFlag bool

// appConfig is the resolved configuration every command body reads from.
// setupDefaultServices populates it before any command runs.
var appConfig config.Config

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// newRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licmaster [project-file.rlic]",
		Short: "Licmaster administers the signing keys of licensed products.",
		Long: `Licmaster keeps the RSA keypair a product uses to sign and verify
licenses in one small project file. The public half ships inside the
product, the private half signs license keys; Licmaster generates the
pair, hands out either half, and remembers where each project lives.

Running without a subcommand will launch the interactive TUI,
optionally opening the project file given as argument.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setupDefaultServices,
		Run: func(cmd *cobra.Command, args []string) {
			// Config, i18n and the audit database are already set up by
			// PersistentPreRunE.
			tui.SetConfigSaver(languageSaver{})
			opts := tui.Options{
				KeyBits:     appConfig.Keys.Bits,
				KeepBackups: appConfig.Backups.KeepRlicBak,
			}
			if len(args) > 0 {
				opts.OpenPath = args[0]
			}
			if err := tui.Run(opts); err != nil {
				log.Fatalf("%v", err)
			}
		},
	}

	// Add subcommands to the newly created root command.
	cmd.AddCommand(createCmd)
	cmd.AddCommand(inspectCmd)
	cmd.AddCommand(renameCmd)
	cmd.AddCommand(genkeyCmd)
	cmd.AddCommand(copyKeyCmd)
	cmd.AddCommand(exportKeyCmd)
	cmd.AddCommand(recentCmd)
	cmd.AddCommand(auditCmd)
	cmd.AddCommand(backupCmd)
	cmd.AddCommand(restoreCmd)
	cmd.AddCommand(maintainCmd)

	// Set version
	cmd.Version = buildvars.VersionOrDefault("dev")

	// Define flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is licmaster.yaml in the user config directory)")
	cmd.PersistentFlags().String("db-type", "sqlite", "Database type (e.g., sqlite, postgres)")
	cmd.PersistentFlags().String("db-dsn", "./licmaster.db", "Database connection string (DSN)")
	cmd.PersistentFlags().String("lang", "en", `UI language ("en", "de")`)
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	// Subcommand flags. newRootCmd may run more than once in tests while the
	// subcommands are package-level singletons, so guard against redefining.
	if createCmd.Flags().Lookup("out") == nil {
		createCmd.Flags().String("out", "", "Destination file; skips the interactive prompt")
		createCmd.Flags().Bool("generate", false, "Generate a keypair for the new product right away")
	}
	if genkeyCmd.Flags().Lookup("force") == nil {
		genkeyCmd.Flags().Bool("force", false, "Replace an existing keypair")
	}
	if copyKeyCmd.Flags().Lookup("private") == nil {
		copyKeyCmd.Flags().Bool("private", false, "Copy the private half instead of the public one")
		copyKeyCmd.Flags().Bool("stdout", false, "Write the key text to stdout instead of the clipboard")
	}
	if exportKeyCmd.Flags().Lookup("out") == nil {
		exportKeyCmd.Flags().String("out", "", "Destination file (default derives from the product name)")
		exportKeyCmd.Flags().Bool("private", false, "Export the private half instead of the public one")
	}
	if recentCmd.Flags().Lookup("clear") == nil {
		recentCmd.Flags().Bool("clear", false, "Empty the recent-project list")
	}
	if auditCmd.Flags().Lookup("search") == nil {
		auditCmd.Flags().String("search", "", "Only show entries matching this term")
		auditCmd.Flags().Int("limit", 0, "Show at most this many entries (0 shows all)")
	}
	if restoreCmd.Flags().Lookup("merge") == nil {
		restoreCmd.Flags().BoolVar(&mergeRestore, "merge", false, "Integrate the backup without wiping existing data")
	}

	return cmd
}

// setupDefaultServices resolves the configuration and initializes i18n and
// the audit database. It runs before every command body.
func setupDefaultServices(cmd *cobra.Command, args []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := map[string]any{
		"database.type":         "sqlite",
		"database.dsn":          "./licmaster.db",
		"language":              "en",
		"keys.bits":             rsakey.DefaultBits,
		"backups.keep_rlic_bak": true,
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// First run: persist the defaults so the settings are discoverable.
	// Failing to write is not fatal; the app runs on in-memory defaults.
	if configPath == nil && config.FindConfigFile() == "" {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		}
	}

	// A hand-edited config may carry empty values; fall back to defaults.
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = defaults["database.dsn"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}
	if appConfig.Keys.Bits == 0 {
		appConfig.Keys.Bits = rsakey.DefaultBits
	}

	// The classic flag names don't match the dotted config keys, so the
	// automatic flag binding cannot map them; apply them by hand.
	if cmd.Flags().Changed("db-type") {
		appConfig.Database.Type, _ = cmd.Flags().GetString("db-type")
	}
	if cmd.Flags().Changed("db-dsn") {
		appConfig.Database.Dsn, _ = cmd.Flags().GetString("db-dsn")
	}
	if cmd.Flags().Changed("lang") {
		appConfig.Language, _ = cmd.Flags().GetString("lang")
	}

	if debugFlag {
		logging.SetDebug(true)
	}

	i18n.Init(appConfig.Language)

	// Initialize the database if not already initialized by tests or
	// earlier setup.
	if !db.IsInitialized() {
		if err := db.InitDB(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
	}

	return nil
}

// getConfigPathFromCli returns the config file path when the user explicitly
// set the --config flag, nil otherwise.
func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		// This is unlikely if Changed() is true, but good practice.
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}

	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// languageSaver persists the running configuration after the TUI language
// picker changes it.
type languageSaver struct{}

func (languageSaver) Save() error {
	appConfig.Language = i18n.GetLang()
	return config.WriteConfigFile(&appConfig, false)
}

// newCLIController builds a project controller for one-shot command use.
// A non-empty savePath pre-answers the save dialog; otherwise a terminal
// prompt asks interactively.
func newCLIController(savePath string) *project.Controller {
	fileStore := store.NewFileStore()
	fileStore.KeepBackups = appConfig.Backups.KeepRlicBak

	var gateway dialog.Gateway
	if savePath != "" {
		gateway = &dialog.Static{SavePath: savePath}
	} else {
		gateway = &dialog.Terminal{}
	}
	return project.NewController(rsakey.Generator{Bits: appConfig.Keys.Bits}, fileStore, gateway, clipboard.System{})
}

// sanitizeFileName reduces a display name to something safe to use as a file
// name: letters, digits, dot, dash and underscore survive, runs of anything
// else collapse to one underscore.
func sanitizeFileName(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
