// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/i18n"
	"github.com/toeirei/licmaster/internal/model"
)

var mergeRestore bool // Flag for the restore command

// recentCmd represents the 'recent' command.
// It lists the recent-project bookkeeping, newest first.
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently used projects",
	Long: `Shows the recent-project list, newest first: every successful save or
open lands here. --clear empties the list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		clearList, _ := cmd.Flags().GetBool("clear")
		if clearList {
			if err := db.ClearRecentProjects(); err != nil {
				return fmt.Errorf("failed to clear recent projects: %w", err)
			}
			fmt.Println("Recent projects cleared.")
			return nil
		}

		recents, err := db.GetRecentProjects(0)
		if err != nil {
			return fmt.Errorf("failed to list recent projects: %w", err)
		}
		if len(recents) == 0 {
			fmt.Println("No recent projects.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LAST OPENED\tPRODUCT\tPATH")
		for _, r := range recents {
			product := r.ProductName
			if product == "" {
				product = "(unnamed)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				r.LastOpenedAt.Format("2006-01-02 15:04"), product, r.Path)
		}
		w.Flush()
		return nil
	},
}

// auditCmd represents the 'audit' command.
// It lists the audit trail, most recent first.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List audit log entries",
	Long: `Shows the audit log, most recent entries first. --search filters by
action, details or username; --limit caps the number of rows shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")

		var entries []model.AuditLogEntry
		var err error
		if search != "" {
			entries, err = db.SearchAuditLogEntries(search)
		} else {
			entries, err = db.GetAllAuditLogEntries()
		}
		if err != nil {
			return fmt.Errorf("failed to load audit log: %w", err)
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		if len(entries) == 0 {
			fmt.Println("No audit log entries.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tUSER\tACTION\tDETAILS")
		for _, e := range entries {
			// RFC3339 reads better without the T, and fractional seconds
			// are noise in a table.
			ts := e.Timestamp
			if len(ts) > 19 {
				ts = ts[:19]
			}
			ts = strings.Replace(ts, "T", " ", 1)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ts, e.Username, e.Action, e.Details)
		}
		w.Flush()
		return nil
	},
}

// backupCmd represents the 'backup' command.
// It dumps the audit database into a single compressed JSON file.
var backupCmd = &cobra.Command{
	Use:   "backup [output-file]",
	Short: "Create a compressed (zstd) JSON backup of the database",
	Long: `Dumps the audit log and the recent-project list into a single,
Zstandard-compressed JSON file.

If an output file is specified, '.zst' will be appended to the name if it's
not already present. If no output file is specified, a default filename
'licmaster-backup-YYYY-MM-DD.json.zst' is used.

Examples:
  # Backup to a default file (e.g., licmaster-backup-2026-08-25.json.zst)
  licmaster backup

  # Backup to a specific file
  licmaster backup my-backup.json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var outputFile string
		if len(args) == 0 {
			outputFile = fmt.Sprintf("licmaster-backup-%s.json.zst", time.Now().Format("2006-01-02"))
		} else {
			outputFile = args[0]
			if !strings.HasSuffix(outputFile, ".zst") {
				outputFile += ".zst"
			}
		}

		fmt.Println(i18n.T("backup.cli_starting"))
		data, err := db.ExportDataForBackup()
		if err != nil {
			log.Fatalf("%s", i18n.T("backup.cli_error_export", err))
		}
		if err := writeCompressedBackup(outputFile, data); err != nil {
			log.Fatalf("%s", i18n.T("backup.cli_error_write", err))
		}
		_ = logAction("DB_BACKUP", "file: "+outputFile)
		fmt.Println(i18n.T("backup.cli_success", outputFile))
	},
}

// restoreCmd represents the 'restore' command.
// It restores the audit database from a compressed JSON backup file.
var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file.zst>",
	Short: "Restore the database from a compressed JSON backup",
	Long: `Restores the audit log and recent-project list from a
Zstandard-compressed JSON backup file.

By default this performs a full restore that WIPES the existing data before
importing. Use --merge for a non-destructive restore that only adds entries
which do not already exist.

WARNING: the default full restore is not reversible.

Example (Full Restore):
  licmaster restore ./licmaster-backup-2026-08-25.json.zst

Example (Merge):
  licmaster restore --merge ./licmaster-backup-2026-08-25.json.zst`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]
		fmt.Println(i18n.T("restore.cli_starting", inputFile))

		data, err := readCompressedBackup(inputFile)
		if err != nil {
			log.Fatalf("%s", i18n.T("restore.cli_error_read", err))
		}

		if mergeRestore {
			err = db.IntegrateDataFromBackup(data)
		} else {
			err = db.ImportDataFromBackup(data)
		}
		if err != nil {
			log.Fatalf("%s", i18n.T("restore.cli_error_import", err))
		}
		_ = logAction("DB_RESTORE", "file: "+inputFile)
		fmt.Println(i18n.T("restore.cli_success"))
	},
}

// maintainCmd represents the 'maintain' command.
// It runs backend-appropriate maintenance on the audit database.
var maintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Run database maintenance",
	Long: `Runs engine-specific maintenance on the audit database: VACUUM plus an
integrity check for SQLite, VACUUM ANALYZE for PostgreSQL, OPTIMIZE TABLE
for MySQL.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(i18n.T("maintain.cli_starting"))
		if err := db.RunDBMaintenance(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			log.Fatalf("%s", i18n.T("maintain.cli_error", err))
		}
		fmt.Println(i18n.T("maintain.cli_success"))
	},
}

// readCompressedBackup handles reading and decoding a zstd-compressed JSON
// backup file.
func readCompressedBackup(filename string) (*model.BackupData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdReader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var backupData model.BackupData
	if err := json.NewDecoder(zstdReader).Decode(&backupData); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}

	return &backupData, nil
}

// writeCompressedBackup streams the JSON encoding of the backup data through
// a zstd writer, so large audit logs never sit in memory twice.
func writeCompressedBackup(filename string, data *model.BackupData) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	defer func() { _ = zstdWriter.Close() }()

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ") // Pretty-print the JSON inside the compressed file

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}

	return nil
}
