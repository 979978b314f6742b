// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the translation catalogs for drift. It scans the Go
// source tree for i18n.T() calls, compares the used keys against the YAML
// locale files, and flags hardcoded strings that look like they should be
// translated.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Location stores the file and line number of a found string.
type Location struct {
	Filepath string
	Line     int
}

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	// usedKeyRe matches i18n.T("key") calls plus bare dotted-key literals, so
	// keys referenced through variables or slices still count as used.
	usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"|\"([a-z]+\.[a-z\._]+)\"`)
	// callLiteralRe captures a string literal passed directly to a call.
	callLiteralRe = regexp.MustCompile(`([a-zA-Z0-9_]+\.)?([a-zA-Z0-9_]+)\("([^"]+)"`)
	keyShapeRe    = regexp.MustCompile(`^[a-z_]+\.[a-z\._]+$`)
	allCapsRe     = regexp.MustCompile(`^[A-Z_]+$`)
	formatOnlyRe  = regexp.MustCompile(`^[\s%.,:;()#\d\w-]*%[\s\w-]*$`)
)

// literalSinks are call names whose literals never go through the catalog:
// CLI output and error construction are intentionally English.
var literalSinks = map[string]struct{}{
	"Print": {}, "Println": {}, "Printf": {},
	"Fatal": {}, "Fatalf": {},
	"Errorf": {}, "New": {},
	"WriteString": {},
}

var sqlKeywords = []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "TRUNCATE ", "PRAGMA ", "CREATE ", "ALTER ", "DROP ", "VACUUM"}

func main() {
	fmt.Println("🔍 Running i18n linter...")

	usedKeys, err := findUsedKeys(projectRoot)
	if err != nil {
		fmt.Printf("❌ Error finding used keys: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Found %d unique translation keys used in source code.\n", len(usedKeys))

	// The English catalog is the source of truth.
	primaryKeys, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		fmt.Printf("❌ Error loading primary locale '%s': %v\n", primaryLocale, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d keys from primary locale (%s).\n\n", len(primaryKeys), primaryLocale)

	localeFiles, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		fmt.Printf("❌ Error finding locale files: %v\n", err)
		os.Exit(1)
	}

	hasOrphans := reportOrphanedKeys(primaryKeys, usedKeys)
	hasMissing := reportMissingKeys(localeFiles, primaryKeys)
	reportUntranslated(projectRoot, primaryKeys)

	fmt.Println("\n--- Linter Finished ---")
	switch {
	case hasMissing:
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	case hasOrphans:
		fmt.Println("⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Println("✅ All translation files are consistent!")
	}
}

// reportOrphanedKeys lists primary-locale keys no source file references.
// Orphans warn but never fail the run.
func reportOrphanedKeys(primaryKeys, usedKeys map[string]struct{}) bool {
	fmt.Println("--- Checking for Orphaned Keys (in primary locale but not used in code) ---")
	var orphaned []string
	for key := range primaryKeys {
		if _, ok := usedKeys[key]; !ok {
			orphaned = append(orphaned, key)
		}
	}
	sort.Strings(orphaned)
	for _, key := range orphaned {
		fmt.Printf("  - Orphaned: %s\n", key)
	}
	if len(orphaned) == 0 {
		fmt.Println("  ✨ None found.")
	}
	fmt.Println()
	return len(orphaned) > 0
}

// reportMissingKeys compares every secondary locale against the primary.
// Missing keys fail the run: a partial catalog breaks language switching.
func reportMissingKeys(localeFiles []string, primaryKeys map[string]struct{}) bool {
	fmt.Println("--- Checking for Missing Keys (in primary locale but not in others) ---")
	hasMissing := false
	for _, file := range localeFiles {
		if filepath.Base(file) == primaryLocale {
			continue
		}

		fmt.Printf("Checking %s:\n", file)
		secondaryKeys, err := loadKeysFromLocale(file)
		if err != nil {
			fmt.Printf("  - ❌ Error loading %s: %v\n", file, err)
			hasMissing = true
			continue
		}

		var missing []string
		for key := range primaryKeys {
			if _, ok := secondaryKeys[key]; !ok {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)
		for _, key := range missing {
			fmt.Printf("  - Missing: %s\n", key)
			hasMissing = true
		}
		if len(missing) == 0 {
			fmt.Println("  ✨ All keys present.")
		}
	}
	return hasMissing
}

// reportUntranslated warns about literals that look like user-facing text.
// Heuristic only, so it never fails the run.
func reportUntranslated(root string, primaryKeys map[string]struct{}) {
	fmt.Println("\n--- Checking for Potentially Untranslated Strings ---")
	found, err := findUntranslatedStrings(root, primaryKeys)
	if err != nil {
		fmt.Printf("  ❌ Error scanning source: %v\n", err)
		return
	}
	if len(found) == 0 {
		fmt.Println("  ✨ None found.")
		return
	}

	var literals []string
	for lit := range found {
		literals = append(literals, lit)
	}
	sort.Strings(literals)
	for _, lit := range literals {
		locs := found[lit]
		fmt.Printf("  - Potential: \"%s\" (found in %s:%d)\n", lit, locs[0].Filepath, locs[0].Line)
	}
}

// walkGoSources calls fn with the path and contents of every non-test .go
// file under root. The tools tree is skipped: the linter must not lint
// itself or the other dev utilities.
func walkGoSources(root string, fn func(path string, content []byte) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "tools" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return fn(path, content)
	})
}

// findUsedKeys scans the source tree for translation keys in use.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := walkGoSources(root, func(_ string, content []byte) error {
		for _, match := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			switch {
			case match[1] != "":
				keys[match[1]] = struct{}{}
			case match[2] != "":
				keys[match[2]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

// findUntranslatedStrings scans for hardcoded literals that might need
// translation, keyed by literal with every location recorded.
func findUntranslatedStrings(root string, catalog map[string]struct{}) (map[string][]Location, error) {
	untranslated := make(map[string][]Location)
	err := walkGoSources(root, func(path string, content []byte) error {
		for i, line := range strings.Split(string(content), "\n") {
			for _, match := range callLiteralRe.FindAllStringSubmatch(line, -1) {
				if len(match) < 4 {
					continue
				}
				if _, ok := literalSinks[match[2]]; ok {
					continue
				}
				literal := match[3]
				if skipLiteral(literal, catalog) {
					continue
				}
				untranslated[literal] = append(untranslated[literal], Location{Filepath: path, Line: i + 1})
			}
		}
		return nil
	})
	return untranslated, err
}

// skipLiteral filters out literals that are legitimately untranslated:
// catalog keys, SQL, DSNs, time layouts, audit actions and format strings.
func skipLiteral(literal string, catalog map[string]struct{}) bool {
	// Known translation key, or shaped like one.
	if _, exists := catalog[literal]; exists {
		return true
	}
	if keyShapeRe.MatchString(literal) {
		return true
	}
	// Too short to be user-facing text.
	if len(literal) < 4 {
		return true
	}
	// DSNs and URLs.
	if strings.HasPrefix(literal, "file:") || strings.HasPrefix(literal, "http") {
		return true
	}
	// SQL fragments.
	upper := strings.ToUpper(literal)
	for _, kw := range sqlKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	// Go reference time layouts.
	if strings.HasPrefix(literal, "2006-") {
		return true
	}
	// Audit action constants (e.g. KEY_EXPORTED).
	if allCapsRe.MatchString(literal) {
		return true
	}
	// Bare format strings with no real text.
	return formatOnlyRe.MatchString(literal) && !strings.Contains(literal, " ")
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into a flat map with dot-separated keys.
// The catalogs use flat dotted IDs already, so most nodes are leaves, but
// nested maps from hand-edited files still flatten correctly.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			newPrefix := k
			if prefix != "" {
				newPrefix = prefix + "." + k
			}
			flattenYAML(newPrefix, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			flattenYAML(fmt.Sprintf("%s[%d]", prefix, i), val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
