// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toeirei/licmaster/internal/dialog"
	"github.com/toeirei/licmaster/internal/keytext"
	"github.com/toeirei/licmaster/internal/store"
)

// createCmd represents the 'create' command.
// It builds a fresh project around one named product, optionally generates
// its keypair, and saves the project file.
var createCmd = &cobra.Command{
	Use:   "create <product-name>",
	Short: "Create a new license project",
	Long: `Creates a fresh project holding one product and saves it to a project file.

With --out the destination is taken from the flag and no prompt appears.
Otherwise an interactive prompt asks for the destination, suggesting a
file name derived from the product name.

Examples:
  # Create, generate the keypair, save without prompting
  licmaster create "Rhino 3D" --out ./rhino.rlic --generate

  # Create and answer the destination prompt interactively
  licmaster create "Rhino 3D"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return errors.New("product name must not be blank")
		}
		out, _ := cmd.Flags().GetString("out")
		generate, _ := cmd.Flags().GetBool("generate")

		ctrl := newCLIController(out)
		if out == "" {
			// Interactive save: suggest a destination from the product name,
			// the way the TUI save dialog does.
			ctrl.SaveModelFactory = func() dialog.SaveModel {
				m := dialog.NewSaveModel()
				if base := sanitizeFileName(name); base != "" {
					m.FileName = base + dialog.FileExtension
				}
				return m
			}
		}

		proj := ctrl.NewProject()
		proj.Product().SetName(name)

		if generate {
			if err := ctrl.GenerateKey(); err != nil {
				return fmt.Errorf("failed to generate keypair: %w", err)
			}
		}

		saved, err := ctrl.Save()
		if err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		if !saved {
			fmt.Println("Cancelled.")
			return nil
		}
		fmt.Printf("Created %s (%s)\n", name, proj.AssociatedFile())
		return nil
	},
}

// inspectCmd represents the 'inspect' command.
// It loads a project file read-only and prints what it carries.
var inspectCmd = &cobra.Command{
	Use:   "inspect <project-file.rlic>",
	Short: "Show what a project file contains",
	Long: `Loads a project file and prints the product name and the state of its
keypair. Inspection is read-only: it does not touch the audit log or
the recent-project list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := store.NewFileStore().Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		product := proj.Product()

		name := product.Name()
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("Product:  %s\n", name)
		fmt.Printf("File:     %s\n", proj.AssociatedFile())

		if !product.HasKeyPair() {
			fmt.Println("Keypair:  none")
			return nil
		}
		info, err := keytext.Inspect(product.PublicKey())
		if err != nil {
			return fmt.Errorf("project carries unreadable key material: %w", err)
		}
		fmt.Printf("Keypair:  RSA-%d, %s\n", info.Bits, info.Fingerprint)
		fmt.Printf("Private:  %s\n", keytext.Classify(product.PrivateKey()))
		return nil
	},
}

// renameCmd represents the 'rename' command.
// It loads a project file, renames its product and saves it back to the
// same destination without prompting.
var renameCmd = &cobra.Command{
	Use:   "rename <project-file.rlic> <new-name>",
	Short: "Rename the product in a project file",
	Long: `Loads a project file, renames its product and saves the file back.
The destination is the loaded file itself, so no prompt appears.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		newName := strings.TrimSpace(args[1])
		if newName == "" {
			return errors.New("product name must not be blank")
		}

		ctrl := newCLIController("")
		if err := ctrl.OpenPath(args[0]); err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}

		product := ctrl.Current().Product()
		oldName := product.Name()
		if oldName == newName {
			fmt.Println("Nothing to rename.")
			return nil
		}

		product.SetName(newName)
		_ = logAction("PRODUCT_RENAMED", "product: "+newName)

		if _, err := ctrl.Save(); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		fmt.Printf("Renamed %q to %q (%s)\n", oldName, newName, ctrl.Current().AssociatedFile())
		return nil
	},
}
