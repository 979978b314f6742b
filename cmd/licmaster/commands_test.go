// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/licmaster/internal/config"
	"github.com/toeirei/licmaster/internal/crypto/rsakey"
	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/dialog"
	"github.com/toeirei/licmaster/internal/i18n"
	"github.com/toeirei/licmaster/internal/keytext"
	"github.com/toeirei/licmaster/internal/model"
	"github.com/toeirei/licmaster/internal/store"
)

// seedProjectFile writes a project file with a freshly generated keypair and
// returns its path together with the public key text. bits <= 0 seeds a
// project without key material.
func seedProjectFile(t *testing.T, name string, bits int) (string, string) {
	t.Helper()
	product := model.NewProduct(name)
	publicKey := ""
	if bits > 0 {
		pub, priv, err := rsakey.GenerateBits(bits)
		if err != nil {
			t.Fatalf("GenerateBits failed: %v", err)
		}
		product.SetKeyPair(pub, priv)
		publicKey = pub
	}
	proj := model.NewProject()
	proj.SetProduct(product)
	path := filepath.Join(t.TempDir(), "product.rlic")
	if err := store.NewFileStore().Save(proj, path); err != nil {
		t.Fatalf("seeding project file failed: %v", err)
	}
	return path, publicKey
}

// captureStdout runs fn and returns everything it wrote to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

// setFlag sets a flag on one of the package-level command singletons and
// restores the previous value when the test ends. Values would otherwise leak
// between tests that invoke RunE directly.
func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	f := cmd.Flags().Lookup(name)
	if f == nil {
		t.Fatalf("command %s has no --%s flag", cmd.Name(), name)
	}
	old := f.Value.String()
	if err := cmd.Flags().Set(name, value); err != nil {
		t.Fatalf("setting --%s failed: %v", name, err)
	}
	t.Cleanup(func() { _ = cmd.Flags().Set(name, old) })
}

// stubAppConfig pins the package configuration for one test. Small key sizes
// keep generation fast.
func stubAppConfig(t *testing.T, bits int) {
	t.Helper()
	old := appConfig
	appConfig = config.Config{}
	appConfig.Keys.Bits = bits
	t.Cleanup(func() { appConfig = old })
}

// recordAudit swaps the command audit writer for an in-memory fake.
func recordAudit(t *testing.T) *db.FakeAuditWriter {
	t.Helper()
	rec := &db.FakeAuditWriter{}
	auditWriter = rec
	t.Cleanup(func() { auditWriter = nil })
	return rec
}

// TestCreateCmd_HelpText verifies create command help text is present
func TestCreateCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	create := findSubcommand(cmd, "create")
	if create == nil {
		t.Fatalf("create command not found")
	}

	if create.Short == "" {
		t.Fatalf("create command missing short help")
	}
	if !strings.Contains(create.Long, "product") {
		t.Fatalf("create help should mention product, got: %s", create.Long)
	}
}

// TestInspectCmd_HelpText verifies inspect command help text is present
func TestInspectCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	inspect := findSubcommand(cmd, "inspect")
	if inspect == nil {
		t.Fatalf("inspect command not found")
	}

	if inspect.Short == "" {
		t.Fatalf("inspect command missing short help")
	}
	if !strings.Contains(inspect.Long, "read-only") {
		t.Fatalf("inspect help should mention read-only, got: %s", inspect.Long)
	}
}

// TestRenameCmd_HelpText verifies rename command help text is present
func TestRenameCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	rename := findSubcommand(cmd, "rename")
	if rename == nil {
		t.Fatalf("rename command not found")
	}

	if rename.Short == "" {
		t.Fatalf("rename command missing short help")
	}
	if !strings.Contains(rename.Long, "renames") {
		t.Fatalf("rename help should mention renaming, got: %s", rename.Long)
	}
}

// TestGenkeyCmd_HelpText verifies genkey command help text is present
func TestGenkeyCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	genkey := findSubcommand(cmd, "genkey")
	if genkey == nil {
		t.Fatalf("genkey command not found")
	}

	if genkey.Short == "" {
		t.Fatalf("genkey command missing short help")
	}
	if !strings.Contains(genkey.Long, "keypair") || !strings.Contains(genkey.Long, "--force") {
		t.Fatalf("genkey help should mention keypair and --force, got: %s", genkey.Long)
	}
}

// TestCopyKeyCmd_HelpText verifies copy-key command help text is present
func TestCopyKeyCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	copyKey := findSubcommand(cmd, "copy-key")
	if copyKey == nil {
		t.Fatalf("copy-key command not found")
	}

	if copyKey.Short == "" {
		t.Fatalf("copy-key command missing short help")
	}
	if !strings.Contains(copyKey.Long, "clipboard") {
		t.Fatalf("copy-key help should mention clipboard, got: %s", copyKey.Long)
	}
}

// TestExportKeyCmd_HelpText verifies export-key command help text is present
func TestExportKeyCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	exportKey := findSubcommand(cmd, "export-key")
	if exportKey == nil {
		t.Fatalf("export-key command not found")
	}

	if exportKey.Short == "" {
		t.Fatalf("export-key command missing short help")
	}
	if !strings.Contains(exportKey.Long, "product name") {
		t.Fatalf("export-key help should mention the product name, got: %s", exportKey.Long)
	}
}

// TestRecentCmd_HelpText verifies recent command help text is present
func TestRecentCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	recent := findSubcommand(cmd, "recent")
	if recent == nil {
		t.Fatalf("recent command not found")
	}

	if recent.Short == "" {
		t.Fatalf("recent command missing short help")
	}
	if !strings.Contains(recent.Long, "newest first") {
		t.Fatalf("recent help should mention ordering, got: %s", recent.Long)
	}
}

// TestAuditCmd_HelpText verifies audit command help text is present
func TestAuditCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	audit := findSubcommand(cmd, "audit")
	if audit == nil {
		t.Fatalf("audit command not found")
	}

	if audit.Short == "" {
		t.Fatalf("audit command missing short help")
	}
	if !strings.Contains(audit.Long, "audit log") {
		t.Fatalf("audit help should mention the audit log, got: %s", audit.Long)
	}
}

// TestBackupCmd_HelpText verifies backup command help text is present
func TestBackupCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	backup := findSubcommand(cmd, "backup")
	if backup == nil {
		t.Fatalf("backup command not found")
	}

	if backup.Short == "" {
		t.Fatalf("backup command missing short help")
	}
	if !strings.Contains(backup.Long, "Zstandard") {
		t.Fatalf("backup help should mention Zstandard, got: %s", backup.Long)
	}
}

// TestRestoreCmd_HelpText verifies restore command help text is present
func TestRestoreCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	restore := findSubcommand(cmd, "restore")
	if restore == nil {
		t.Fatalf("restore command not found")
	}

	if restore.Short == "" {
		t.Fatalf("restore command missing short help")
	}
	if !strings.Contains(restore.Long, "restore") || !strings.Contains(restore.Long, "--merge") {
		t.Fatalf("restore help should mention restore and --merge, got: %s", restore.Long)
	}
}

// TestMaintainCmd_HelpText verifies maintain command help text is present
func TestMaintainCmd_HelpText(t *testing.T) {
	cmd := newRootCmd()
	maintain := findSubcommand(cmd, "maintain")
	if maintain == nil {
		t.Fatalf("maintain command not found")
	}

	if maintain.Short == "" {
		t.Fatalf("maintain command missing short help")
	}
	if !strings.Contains(maintain.Long, "VACUUM") {
		t.Fatalf("maintain help should mention VACUUM, got: %s", maintain.Long)
	}
}

// TestRootCmd_PersistentFlags verifies root command has persistent flags
func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()

	// Check --config flag
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Fatalf("root command should have --config flag")
	}

	// Check --db-type flag
	dbTypeFlag := cmd.PersistentFlags().Lookup("db-type")
	if dbTypeFlag == nil {
		t.Fatalf("root command should have --db-type flag")
	}
	if dbTypeFlag.DefValue != "sqlite" {
		t.Fatalf("expected --db-type default to be 'sqlite', got %s", dbTypeFlag.DefValue)
	}

	// Check --db-dsn flag
	dbDsnFlag := cmd.PersistentFlags().Lookup("db-dsn")
	if dbDsnFlag == nil {
		t.Fatalf("root command should have --db-dsn flag")
	}
	if !strings.Contains(dbDsnFlag.DefValue, "licmaster.db") {
		t.Fatalf("expected --db-dsn default to contain 'licmaster.db', got %s", dbDsnFlag.DefValue)
	}

	// Check --lang flag
	langFlag := cmd.PersistentFlags().Lookup("lang")
	if langFlag == nil {
		t.Fatalf("root command should have --lang flag")
	}
	if langFlag.DefValue != "en" {
		t.Fatalf("expected --lang default to be 'en', got %s", langFlag.DefValue)
	}

	// Check --debug flag
	if cmd.PersistentFlags().Lookup("debug") == nil {
		t.Fatalf("root command should have --debug flag")
	}
}

// TestCreateCmd_Flags verifies create command has destination flags
func TestCreateCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	create := findSubcommand(cmd, "create")
	if create == nil {
		t.Fatalf("create command not found")
	}

	if create.Flags().Lookup("out") == nil {
		t.Fatalf("create command should have --out flag")
	}
	if create.Flags().Lookup("generate") == nil {
		t.Fatalf("create command should have --generate flag")
	}
}

// TestCopyKeyCmd_Flags verifies copy-key command has half and stdout flags
func TestCopyKeyCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	copyKey := findSubcommand(cmd, "copy-key")
	if copyKey == nil {
		t.Fatalf("copy-key command not found")
	}

	if copyKey.Flags().Lookup("private") == nil {
		t.Fatalf("copy-key command should have --private flag")
	}
	if copyKey.Flags().Lookup("stdout") == nil {
		t.Fatalf("copy-key command should have --stdout flag")
	}
}

// TestAuditCmd_Flags verifies audit command has search and limit flags
func TestAuditCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	audit := findSubcommand(cmd, "audit")
	if audit == nil {
		t.Fatalf("audit command not found")
	}

	if audit.Flags().Lookup("search") == nil {
		t.Fatalf("audit command should have --search flag")
	}
	limitFlag := audit.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatalf("audit command should have --limit flag")
	}
	if limitFlag.DefValue != "0" {
		t.Fatalf("expected --limit default to be '0', got %s", limitFlag.DefValue)
	}
}

// TestRestoreCmd_MergeFlag verifies restore command has --merge flag
func TestRestoreCmd_MergeFlag(t *testing.T) {
	cmd := newRootCmd()
	restore := findSubcommand(cmd, "restore")
	if restore == nil {
		t.Fatalf("restore command not found")
	}

	mergeFlag := restore.Flags().Lookup("merge")
	if mergeFlag == nil {
		t.Fatalf("restore command should have --merge flag")
	}
	if mergeFlag.DefValue != "false" {
		t.Fatalf("expected --merge default to be 'false', got %s", mergeFlag.DefValue)
	}
}

// TestGetConfigPathFromCli_NoFlag verifies config path extraction when flag not set
func TestGetConfigPathFromCli_NoFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")

	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("expected no error when flag not set, got: %v", err)
	}
	if path != nil {
		t.Fatalf("expected nil path when flag not set, got: %v", *path)
	}
}

// TestGetConfigPathFromCli_WithPath verifies config path extraction when flag is set
func TestGetConfigPathFromCli_WithPath(t *testing.T) {
	tmp := t.TempDir()
	configPath := tmp + "/custom.yaml"

	// Create an empty config file
	f, err := os.Create(configPath)
	if err != nil {
		t.Fatalf("failed to create temp config: %v", err)
	}
	f.Close()

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	cmd.Flags().Set("config", configPath)

	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if path == nil {
		t.Fatalf("expected non-nil path")
	}
	if *path != configPath {
		t.Fatalf("expected path %s, got: %s", configPath, *path)
	}
}

// TestGetConfigPathFromCli_MissingFile verifies an explicit config path must exist
func TestGetConfigPathFromCli_MissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	cmd.Flags().Set("config", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := getConfigPathFromCli(cmd); err == nil {
		t.Fatalf("expected error for a missing config file")
	}
}

// TestSetupDefaultServices_DBInitialization verifies DB initialization logic
func TestSetupDefaultServices_DBInitialization(t *testing.T) {
	tmp := t.TempDir()
	dsn := "file:test_cmd_setup?mode=memory&cache=shared"

	// Set up minimal command with database flags
	cmd := &cobra.Command{}
	cmd.Flags().String("db-type", "sqlite", "")
	cmd.Flags().String("db-dsn", "", "")
	cmd.Flags().Set("db-type", "sqlite")
	cmd.Flags().Set("db-dsn", dsn)

	// Set XDG_CONFIG_HOME to temp dir to avoid config file conflicts
	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tmp)
	defer os.Setenv("XDG_CONFIG_HOME", oldXDG)

	oldCfg := appConfig
	defer func() { appConfig = oldCfg }()

	if err := setupDefaultServices(cmd, []string{}); err != nil {
		t.Fatalf("setupDefaultServices failed: %v", err)
	}

	// Verify DB was initialized
	if !db.IsInitialized() {
		t.Fatalf("expected DB to be initialized")
	}

	// The explicit flag must beat the built-in default.
	if appConfig.Database.Dsn != dsn {
		t.Fatalf("expected flag DSN to win, got %s", appConfig.Database.Dsn)
	}
	if appConfig.Keys.Bits != rsakey.DefaultBits {
		t.Fatalf("expected default key size %d, got %d", rsakey.DefaultBits, appConfig.Keys.Bits)
	}

	// The first run should have persisted a default config file.
	if config.FindConfigFile() == "" {
		t.Fatalf("expected a default config file to be written")
	}

	// Verify i18n was initialized (should not panic)
	_ = i18n.T("dashboard.title")
}

// TestCreateCmd_WritesProjectFile verifies the full create flow end to end
func TestCreateCmd_WritesProjectFile(t *testing.T) {
	tmp := t.TempDir()

	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tmp)
	defer os.Setenv("XDG_CONFIG_HOME", oldXDG)

	// Plant a config selecting a small key size and an in-memory database.
	cfgDir := filepath.Join(tmp, "licmaster")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgBody := "database:\n" +
		"  type: sqlite\n" +
		"  dsn: \"file:test_cmd_create?mode=memory&cache=shared\"\n" +
		"language: en\n" +
		"keys:\n" +
		"  bits: 512\n" +
		"backups:\n" +
		"  keep_rlic_bak: false\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "licmaster.yaml"), []byte(cfgBody), 0o600); err != nil {
		t.Fatal(err)
	}

	oldCfg := appConfig
	t.Cleanup(func() {
		appConfig = oldCfg
		_ = createCmd.Flags().Set("out", "")
		_ = createCmd.Flags().Set("generate", "false")
	})

	dest := filepath.Join(tmp, "rhino.rlic")
	root := newRootCmd()
	root.SetArgs([]string{"create", "Rhino 3D", "--out", dest, "--generate"})

	var execErr error
	output := captureStdout(t, func() { execErr = root.Execute() })
	if execErr != nil {
		t.Fatalf("create failed: %v", execErr)
	}
	if !strings.Contains(output, "Created Rhino 3D") {
		t.Fatalf("unexpected create output: %q", output)
	}

	loaded, err := store.NewFileStore().Load(dest)
	if err != nil {
		t.Fatalf("project file not readable: %v", err)
	}
	product := loaded.Product()
	if got := product.Name(); got != "Rhino 3D" {
		t.Fatalf("product name = %q, want %q", got, "Rhino 3D")
	}
	if !product.HasKeyPair() {
		t.Fatalf("expected --generate to produce a keypair")
	}

	// The configured key size must be honored end to end.
	info, err := keytext.Inspect(product.PublicKey())
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Bits != 512 {
		t.Fatalf("key size = %d, want 512 from the config file", info.Bits)
	}
}

// TestCreateCmd_BlankNameFails verifies create rejects a whitespace-only name
func TestCreateCmd_BlankNameFails(t *testing.T) {
	err := createCmd.RunE(createCmd, []string{"   "})
	if err == nil || !strings.Contains(err.Error(), "blank") {
		t.Fatalf("expected blank-name error, got %v", err)
	}
}

// TestCreateCmd_InteractiveWithoutTerminalFails verifies create fails cleanly
// when it would have to prompt but stdin is not a terminal
func TestCreateCmd_InteractiveWithoutTerminalFails(t *testing.T) {
	stubAppConfig(t, 512)
	setFlag(t, createCmd, "out", "")
	setFlag(t, createCmd, "generate", "false")

	// go test runs without a terminal on stdin, so the save prompt must bail.
	err := createCmd.RunE(createCmd, []string{"Rhino 3D"})
	if !errors.Is(err, dialog.ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal, got %v", err)
	}
}

// TestInspectCmd_PrintsSummary verifies inspect reports name, size and halves
func TestInspectCmd_PrintsSummary(t *testing.T) {
	rec := recordAudit(t)
	path, _ := seedProjectFile(t, "Rhino 3D", 512)

	var runErr error
	output := captureStdout(t, func() { runErr = inspectCmd.RunE(inspectCmd, []string{path}) })
	if runErr != nil {
		t.Fatalf("inspect failed: %v", runErr)
	}

	if !strings.Contains(output, "Rhino 3D") {
		t.Fatalf("output missing product name: %q", output)
	}
	if !strings.Contains(output, "RSA-512") {
		t.Fatalf("output missing key size: %q", output)
	}
	if !strings.Contains(output, "private") {
		t.Fatalf("output missing private half state: %q", output)
	}
	if len(rec.Actions()) != 0 {
		t.Fatalf("inspect is read-only but logged %v", rec.Actions())
	}
}

// TestInspectCmd_WithoutKeypair verifies inspect handles unkeyed projects
func TestInspectCmd_WithoutKeypair(t *testing.T) {
	path, _ := seedProjectFile(t, "Fresh Product", 0)

	var runErr error
	output := captureStdout(t, func() { runErr = inspectCmd.RunE(inspectCmd, []string{path}) })
	if runErr != nil {
		t.Fatalf("inspect failed: %v", runErr)
	}
	if !strings.Contains(output, "Keypair:  none") {
		t.Fatalf("expected keypair-free summary, got %q", output)
	}
}

// TestRenameCmd_RenamesAndLogs verifies rename rewrites the file and audits it
func TestRenameCmd_RenamesAndLogs(t *testing.T) {
	stubAppConfig(t, 512)
	rec := recordAudit(t)
	path, _ := seedProjectFile(t, "Old Name", 512)

	var runErr error
	output := captureStdout(t, func() { runErr = renameCmd.RunE(renameCmd, []string{path, "New Name"}) })
	if runErr != nil {
		t.Fatalf("rename failed: %v", runErr)
	}
	if !strings.Contains(output, "Renamed") {
		t.Fatalf("unexpected rename output: %q", output)
	}

	loaded, err := store.NewFileStore().Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.Product().Name(); got != "New Name" {
		t.Fatalf("name after rename = %q, want %q", got, "New Name")
	}

	actions := rec.Actions()
	if len(actions) != 1 || actions[0] != "PRODUCT_RENAMED" {
		t.Fatalf("audit actions = %v, want [PRODUCT_RENAMED]", actions)
	}
	if rec.Calls[0][1] != "product: New Name" {
		t.Fatalf("audit details = %q", rec.Calls[0][1])
	}
}

// TestRenameCmd_SameNameIsNoop verifies rename to the current name writes nothing
func TestRenameCmd_SameNameIsNoop(t *testing.T) {
	stubAppConfig(t, 512)
	rec := recordAudit(t)
	path, _ := seedProjectFile(t, "Same", 512)

	var runErr error
	output := captureStdout(t, func() { runErr = renameCmd.RunE(renameCmd, []string{path, "Same"}) })
	if runErr != nil {
		t.Fatalf("rename failed: %v", runErr)
	}
	if !strings.Contains(output, "Nothing to rename.") {
		t.Fatalf("unexpected output: %q", output)
	}
	if len(rec.Actions()) != 0 {
		t.Fatalf("no-op rename logged %v", rec.Actions())
	}
}

// TestGenkeyCmd_RefusesSecondKeypair verifies genkey guards existing keys
func TestGenkeyCmd_RefusesSecondKeypair(t *testing.T) {
	stubAppConfig(t, 512)
	setFlag(t, genkeyCmd, "force", "false")
	path, pub := seedProjectFile(t, "Guarded", 512)

	err := genkeyCmd.RunE(genkeyCmd, []string{path})
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected refusal pointing at --force, got %v", err)
	}

	loaded, loadErr := store.NewFileStore().Load(path)
	if loadErr != nil {
		t.Fatal(loadErr)
	}
	if got := loaded.Product().PublicKey(); got != pub {
		t.Fatal("public key changed although genkey refused")
	}
}

// TestGenkeyCmd_ForceReplacesKeypair verifies genkey --force rotates the pair
func TestGenkeyCmd_ForceReplacesKeypair(t *testing.T) {
	stubAppConfig(t, 512)
	setFlag(t, genkeyCmd, "force", "true")
	path, oldPub := seedProjectFile(t, "Rotated", 512)

	var runErr error
	output := captureStdout(t, func() { runErr = genkeyCmd.RunE(genkeyCmd, []string{path}) })
	if runErr != nil {
		t.Fatalf("genkey --force failed: %v", runErr)
	}
	if !strings.Contains(output, "Generated RSA-512") {
		t.Fatalf("unexpected genkey output: %q", output)
	}

	loaded, err := store.NewFileStore().Load(path)
	if err != nil {
		t.Fatal(err)
	}
	product := loaded.Product()
	if !product.HasKeyPair() {
		t.Fatal("expected a keypair after genkey --force")
	}
	if product.PublicKey() == oldPub {
		t.Fatal("expected a fresh keypair, got the old one back")
	}
}

// TestCopyKeyCmd_StdoutPrintsKey verifies --stdout bypasses the clipboard
func TestCopyKeyCmd_StdoutPrintsKey(t *testing.T) {
	rec := recordAudit(t)
	setFlag(t, copyKeyCmd, "stdout", "true")
	setFlag(t, copyKeyCmd, "private", "false")
	path, pub := seedProjectFile(t, "Piped", 512)

	var runErr error
	output := captureStdout(t, func() { runErr = copyKeyCmd.RunE(copyKeyCmd, []string{path}) })
	if runErr != nil {
		t.Fatalf("copy-key --stdout failed: %v", runErr)
	}
	if strings.TrimSpace(output) != pub {
		t.Fatalf("stdout should carry the public key verbatim, got %q", output)
	}
	if len(rec.Actions()) != 0 {
		t.Fatalf("--stdout is not a clipboard copy, but it logged %v", rec.Actions())
	}
}

// TestCopyKeyCmd_RequiresKeypair verifies copy-key fails without key material
func TestCopyKeyCmd_RequiresKeypair(t *testing.T) {
	setFlag(t, copyKeyCmd, "stdout", "true")
	path, _ := seedProjectFile(t, "Unkeyed", 0)

	err := copyKeyCmd.RunE(copyKeyCmd, []string{path})
	if err == nil || !strings.Contains(err.Error(), "genkey") {
		t.Fatalf("expected missing-keypair error, got %v", err)
	}
}

// TestExportKeyCmd_WritesKeyFile verifies export-key writes and audits
func TestExportKeyCmd_WritesKeyFile(t *testing.T) {
	rec := recordAudit(t)
	path, pub := seedProjectFile(t, "Exported", 512)
	dest := filepath.Join(t.TempDir(), "pub.xml")
	setFlag(t, exportKeyCmd, "out", dest)
	setFlag(t, exportKeyCmd, "private", "false")

	var runErr error
	output := captureStdout(t, func() { runErr = exportKeyCmd.RunE(exportKeyCmd, []string{path}) })
	if runErr != nil {
		t.Fatalf("export-key failed: %v", runErr)
	}
	if !strings.Contains(output, "Wrote the public key") {
		t.Fatalf("unexpected export output: %q", output)
	}

	content, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("export destination not written: %v", err)
	}
	if string(content) != pub {
		t.Fatal("exported file does not carry the stored public key verbatim")
	}

	if len(rec.Calls) != 1 || rec.Calls[0][0] != "KEY_EXPORTED" {
		t.Fatalf("audit calls = %v, want one KEY_EXPORTED", rec.Calls)
	}
	if rec.Calls[0][1] != "file: "+dest {
		t.Fatalf("audit details = %q", rec.Calls[0][1])
	}
}

// TestExportKeyCmd_PrivateHalf verifies --private exports the signing half
func TestExportKeyCmd_PrivateHalf(t *testing.T) {
	recordAudit(t)
	path, _ := seedProjectFile(t, "Signer", 512)
	dest := filepath.Join(t.TempDir(), "priv.xml")
	setFlag(t, exportKeyCmd, "out", dest)
	setFlag(t, exportKeyCmd, "private", "true")

	var runErr error
	_ = captureStdout(t, func() { runErr = exportKeyCmd.RunE(exportKeyCmd, []string{path}) })
	if runErr != nil {
		t.Fatalf("export-key --private failed: %v", runErr)
	}

	content, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if keytext.Classify(string(content)) != keytext.Private {
		t.Fatal("expected the private half in the export file")
	}
}

// TestExportKeyFileName verifies the derived export destination
func TestExportKeyFileName(t *testing.T) {
	if got := exportKeyFileName("Rhino 3D", "public"); got != "Rhino_3D_public.xml" {
		t.Fatalf("exportKeyFileName = %q, want Rhino_3D_public.xml", got)
	}
	if got := exportKeyFileName("", "private"); got != "product_private.xml" {
		t.Fatalf("exportKeyFileName = %q, want product_private.xml", got)
	}
}

// TestBackupHelpers_RoundTrip verifies the zstd backup file format
func TestBackupHelpers_RoundTrip(t *testing.T) {
	opened, err := time.Parse(time.RFC3339, "2026-08-25T10:30:00Z")
	if err != nil {
		t.Fatal(err)
	}
	data := &model.BackupData{
		SchemaVersion: 1,
		AuditLogEntries: []model.AuditLogEntry{
			{ID: 1, Timestamp: "2026-08-25T10:00:00Z", Username: "rei", Action: "KEY_COPIED", Details: "public key, product: Rhino 3D"},
			{ID: 2, Timestamp: "2026-08-25T10:05:00Z", Username: "rei", Action: "PROJECT_SAVE", Details: "file: rhino.rlic"},
		},
		RecentProjects: []model.RecentProject{
			{ID: 1, Path: "./rhino.rlic", ProductName: "Rhino 3D", LastOpenedAt: opened},
		},
	}

	path := filepath.Join(t.TempDir(), "roundtrip.json.zst")
	if err := writeCompressedBackup(path, data); err != nil {
		t.Fatalf("writeCompressedBackup failed: %v", err)
	}

	restored, err := readCompressedBackup(path)
	if err != nil {
		t.Fatalf("readCompressedBackup failed: %v", err)
	}
	if restored.SchemaVersion != 1 {
		t.Fatalf("schema version = %d, want 1", restored.SchemaVersion)
	}
	if len(restored.AuditLogEntries) != 2 || len(restored.RecentProjects) != 1 {
		t.Fatalf("restored %d audit entries and %d recents, want 2 and 1",
			len(restored.AuditLogEntries), len(restored.RecentProjects))
	}
	if restored.AuditLogEntries[0].Action != "KEY_COPIED" {
		t.Fatalf("first audit action = %q", restored.AuditLogEntries[0].Action)
	}
	if !restored.RecentProjects[0].LastOpenedAt.Equal(opened) {
		t.Fatal("recent timestamp changed across the roundtrip")
	}
}

// TestRecentCmd_ListsNewestFirst verifies the recent table and its ordering
func TestRecentCmd_ListsNewestFirst(t *testing.T) {
	if err := db.InitDB("sqlite", "file:test_cmd_recent?mode=memory&cache=shared"); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if err := db.ClearRecentProjects(); err != nil {
		t.Fatal(err)
	}
	if err := db.TouchRecentProject("./alpha.rlic", "Alpha"); err != nil {
		t.Fatal(err)
	}
	if err := db.TouchRecentProject("./beta.rlic", "Beta"); err != nil {
		t.Fatal(err)
	}
	setFlag(t, recentCmd, "clear", "false")

	var runErr error
	output := captureStdout(t, func() { runErr = recentCmd.RunE(recentCmd, []string{}) })
	if runErr != nil {
		t.Fatalf("recent failed: %v", runErr)
	}

	if !strings.Contains(output, "LAST OPENED") {
		t.Fatalf("missing table header: %q", output)
	}
	alpha := strings.Index(output, "Alpha")
	beta := strings.Index(output, "Beta")
	if alpha < 0 || beta < 0 {
		t.Fatalf("missing entries in output: %q", output)
	}
	if beta > alpha {
		t.Fatalf("expected the newest entry first:\n%s", output)
	}
}

// TestRecentCmd_ClearFlag verifies --clear empties the list
func TestRecentCmd_ClearFlag(t *testing.T) {
	if err := db.InitDB("sqlite", "file:test_cmd_recent_clear?mode=memory&cache=shared"); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if err := db.TouchRecentProject("./gone.rlic", "Gone"); err != nil {
		t.Fatal(err)
	}
	setFlag(t, recentCmd, "clear", "true")

	var runErr error
	output := captureStdout(t, func() { runErr = recentCmd.RunE(recentCmd, []string{}) })
	if runErr != nil {
		t.Fatalf("recent --clear failed: %v", runErr)
	}
	if !strings.Contains(output, "Recent projects cleared.") {
		t.Fatalf("unexpected output: %q", output)
	}

	recents, err := db.GetRecentProjects(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recents) != 0 {
		t.Fatalf("expected an empty list after --clear, got %d entries", len(recents))
	}
}

// TestAuditCmd_FiltersBySearch verifies --search narrows the listing
func TestAuditCmd_FiltersBySearch(t *testing.T) {
	if err := db.InitDB("sqlite", "file:test_cmd_audit?mode=memory&cache=shared"); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if err := db.LogAction("KEY_COPIED", "public key, product: Rhino 3D"); err != nil {
		t.Fatal(err)
	}
	if err := db.LogAction("DB_BACKUP", "file: backup.json.zst"); err != nil {
		t.Fatal(err)
	}
	setFlag(t, auditCmd, "search", "rhino")
	setFlag(t, auditCmd, "limit", "0")

	var runErr error
	output := captureStdout(t, func() { runErr = auditCmd.RunE(auditCmd, []string{}) })
	if runErr != nil {
		t.Fatalf("audit failed: %v", runErr)
	}

	if !strings.Contains(output, "TIMESTAMP") {
		t.Fatalf("missing table header: %q", output)
	}
	if !strings.Contains(output, "KEY_COPIED") {
		t.Fatalf("search should match the copy entry: %q", output)
	}
	if strings.Contains(output, "DB_BACKUP") {
		t.Fatalf("search leaked a non-matching entry: %q", output)
	}
}

// TestAuditCmd_LimitCapsRows verifies --limit drops the oldest entries
func TestAuditCmd_LimitCapsRows(t *testing.T) {
	if err := db.InitDB("sqlite", "file:test_cmd_audit_limit?mode=memory&cache=shared"); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	for _, action := range []string{"STEP_ONE", "STEP_TWO", "STEP_THREE"} {
		if err := db.LogAction(action, "capped listing"); err != nil {
			t.Fatal(err)
		}
	}
	setFlag(t, auditCmd, "search", "")
	setFlag(t, auditCmd, "limit", "2")

	var runErr error
	output := captureStdout(t, func() { runErr = auditCmd.RunE(auditCmd, []string{}) })
	if runErr != nil {
		t.Fatalf("audit --limit failed: %v", runErr)
	}

	if !strings.Contains(output, "STEP_THREE") || !strings.Contains(output, "STEP_TWO") {
		t.Fatalf("expected the two newest entries: %q", output)
	}
	if strings.Contains(output, "STEP_ONE") {
		t.Fatalf("--limit 2 should drop the oldest entry: %q", output)
	}
}

// Helper function to find a subcommand by name
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
