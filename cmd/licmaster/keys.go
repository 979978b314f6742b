// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toeirei/licmaster/internal/clipboard"
	"github.com/toeirei/licmaster/internal/keytext"
	"github.com/toeirei/licmaster/internal/store"
	"github.com/toeirei/licmaster/internal/tui"
)

// genkeyCmd represents the 'genkey' command.
// It generates a fresh keypair for the product in a project file and saves
// the file back.
var genkeyCmd = &cobra.Command{
	Use:   "genkey <project-file.rlic>",
	Short: "Generate a signing keypair for a project",
	Long: `Loads a project file, generates a fresh RSA keypair for its product and
saves the file back to the same destination.

A project that already carries a keypair is left alone unless --force is
given: regenerating throws the old pair away, and licenses signed with it
stop verifying against the new public key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		ctrl := newCLIController("")
		if err := ctrl.OpenPath(args[0]); err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}

		product := ctrl.Current().Product()
		if product.HasKeyPair() && !force {
			return errors.New("project already has a keypair; use --force to replace it")
		}

		if err := ctrl.GenerateKey(); err != nil {
			return fmt.Errorf("failed to generate keypair: %w", err)
		}
		if _, err := ctrl.Save(); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}

		info, err := keytext.Inspect(product.PublicKey())
		if err != nil {
			return fmt.Errorf("generated key did not parse back: %w", err)
		}
		fmt.Printf("Generated RSA-%d keypair for %s (%s)\n", info.Bits, product.Name(), info.Fingerprint)
		return nil
	},
}

// copyKeyCmd represents the 'copy-key' command.
// It puts one half of a project's keypair on the system clipboard, verbatim.
var copyKeyCmd = &cobra.Command{
	Use:   "copy-key <project-file.rlic>",
	Short: "Copy a key to the clipboard",
	Long: `Loads a project file and puts one half of its keypair on the system
clipboard, exactly as stored. The public half is the default; --private
copies the signing half instead.

With --stdout the key text is written to standard output instead of the
clipboard, for piping into other tools.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		private, _ := cmd.Flags().GetBool("private")
		toStdout, _ := cmd.Flags().GetBool("stdout")

		proj, err := store.NewFileStore().Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		product := proj.Product()
		if !product.HasKeyPair() {
			return errors.New("project has no keypair; run genkey first")
		}

		half, text := "public key", product.PublicKey()
		if private {
			half, text = "private key", product.PrivateKey()
		}

		if toStdout {
			fmt.Println(text)
			return nil
		}
		if err := (clipboard.System{}).SetText(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		_ = logAction("KEY_COPIED", half+", product: "+product.Name())
		fmt.Printf("Copied the %s of %s to the clipboard.\n", half, product.Name())
		return nil
	},
}

// exportKeyCmd represents the 'export-key' command.
// It writes one half of a project's keypair to a file with owner-only
// permissions.
var exportKeyCmd = &cobra.Command{
	Use:   "export-key <project-file.rlic>",
	Short: "Write a key to a file",
	Long: `Loads a project file and writes one half of its keypair to a file,
exactly as stored. The public half is the default; --private exports the
signing half. Key files are written with owner-only permissions.

When --out is omitted the file name derives from the product name, e.g.
Rhino_3D_public.xml in the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		private, _ := cmd.Flags().GetBool("private")

		proj, err := store.NewFileStore().Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		product := proj.Product()
		if !product.HasKeyPair() {
			return errors.New("project has no keypair; run genkey first")
		}

		half, text, suffix := "public key", product.PublicKey(), "public"
		if private {
			half, text, suffix = "private key", product.PrivateKey(), "private"
		}
		if out == "" {
			out = exportKeyFileName(product.Name(), suffix)
		}

		if err := tui.WriteKeyFile(out, []byte(text)); err != nil {
			return fmt.Errorf("failed to write key file: %w", err)
		}
		_ = logAction("KEY_EXPORTED", "file: "+out)
		fmt.Printf("Wrote the %s of %s to %s\n", half, product.Name(), out)
		return nil
	},
}

// exportKeyFileName derives the export destination from the product name and
// the keypair half being exported.
func exportKeyFileName(productName, half string) string {
	base := sanitizeFileName(productName)
	if base == "" {
		base = "product"
	}
	return base + "_" + half + ".xml"
}
