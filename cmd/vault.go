package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"toolbelt/internal/config"
	"toolbelt/internal/vault"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

const maxUnlockAttempts = 3

func init() {
	rootCmd.AddCommand(vaultCmd)
}

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Keep credentials in an encrypted local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dir := filepath.Join(cfg.DataDir, "vault")

		v, err := openVault(dir)
		if err != nil {
			return err
		}
		fmt.Println("Vault unlocked.")

		for {
			fmt.Println("\n════════ CREDENTIAL VAULT ════════")
			fmt.Println("1. Add credential")
			fmt.Println("2. Get credential")
			fmt.Println("3. List services")
			fmt.Println("4. Search")
			fmt.Println("5. Update credential")
			fmt.Println("6. Delete credential")
			fmt.Println("7. Generate password")
			fmt.Println("8. Export encrypted backup")
			fmt.Println("9. Lock and exit")

			switch readLine("\nChoice (1-9): ") {
			case "1":
				vaultAdd(v)
			case "2":
				vaultGet(v)
			case "3":
				vaultList(v)
			case "4":
				vaultSearch(v)
			case "5":
				vaultUpdate(v)
			case "6":
				vaultDelete(v)
			case "7":
				vaultGenerate()
			case "8":
				vaultExport(v)
			case "9":
				fmt.Println("Vault locked.")
				return nil
			default:
				fmt.Println("Invalid choice, try again.")
			}
		}
	},
}

// openVault runs first-time setup, or authenticates with a bounded number
// of attempts.
func openVault(dir string) (*vault.Vault, error) {
	if !vault.Exists(dir) {
		fmt.Println("First run — create a master password (min 8 characters).")
		for {
			master, err := readPassword("Master password: ")
			if err != nil {
				return nil, err
			}
			confirm, err := readPassword("Confirm: ")
			if err != nil {
				return nil, err
			}
			if master != confirm {
				fmt.Println("Passwords don't match, try again.")
				continue
			}
			v, err := vault.Init(dir, master)
			if errors.Is(err, vault.ErrMasterTooShort) {
				fmt.Println(err)
				continue
			}
			if err != nil {
				return nil, err
			}
			fmt.Println("Vault initialized.")
			return v, nil
		}
	}

	for attempt := 1; attempt <= maxUnlockAttempts; attempt++ {
		master, err := readPassword(fmt.Sprintf("Master password (attempt %d/%d): ", attempt, maxUnlockAttempts))
		if err != nil {
			return nil, err
		}
		v, err := vault.Open(dir, master)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, vault.ErrInvalidMasterPassword) {
			fmt.Println("Incorrect master password.")
			continue
		}
		// Corruption and I/O problems are not recoverable by retyping.
		return nil, err
	}
	return nil, fmt.Errorf("too many failed attempts")
}

func vaultAdd(v *vault.Vault) {
	service := readLine("Service name: ")
	username := readLine("Username: ")
	password, err := readPassword("Password (blank to generate): ")
	if err != nil {
		fmt.Println(err)
		return
	}
	if password == "" {
		password, err = vault.GeneratePassword(vault.DefaultGenerateOptions())
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Generated password: %s\n", password)
	}

	if err := v.Set(service, username, password); err != nil {
		fmt.Printf("Could not save credential: %v\n", err)
		return
	}
	fmt.Printf("Credential saved for %s.\n", service)
}

func vaultGet(v *vault.Vault) {
	service := readLine("Service name: ")
	c, ok := v.Get(service)
	if !ok {
		fmt.Printf("No credential for %q.\n", service)
		return
	}

	fmt.Printf("Service:  %s\nUsername: %s\n", c.Service, c.Username)
	if err := clipboard.WriteAll(c.Password); err != nil {
		fmt.Printf("Clipboard unavailable (%v); password: %s\n", err, c.Password)
		return
	}
	fmt.Println("Password copied to clipboard.")
}

func vaultList(v *vault.Vault) {
	creds := v.List()
	if len(creds) == 0 {
		fmt.Println("No credentials stored yet.")
		return
	}

	fmt.Printf("\n%-20s %s\n", "SERVICE", "USERNAME")
	fmt.Println("────────────────────────────────────────")
	for _, c := range creds {
		fmt.Printf("%-20s %s\n", c.Service, c.Username)
	}
}

func vaultSearch(v *vault.Vault) {
	matches := v.Search(readLine("Search query: "))
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return
	}
	for _, c := range matches {
		fmt.Printf("  %s (%s)\n", c.Service, c.Username)
	}
}

func vaultUpdate(v *vault.Vault) {
	service := readLine("Service name: ")
	username := readLine("New username (blank to keep): ")
	password, err := readPassword("New password (blank to keep): ")
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := v.Update(service, username, password); err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			fmt.Printf("No credential for %q.\n", service)
		} else {
			fmt.Printf("Update failed: %v\n", err)
		}
		return
	}
	fmt.Printf("Credential updated for %s.\n", service)
}

func vaultDelete(v *vault.Vault) {
	service := readLine("Service name to delete: ")
	if !readYesNo(fmt.Sprintf("Delete credential for %q? (y/n): ", service)) {
		fmt.Println("Cancelled.")
		return
	}
	if err := v.Delete(service); err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			fmt.Printf("No credential for %q.\n", service)
		} else {
			fmt.Printf("Delete failed: %v\n", err)
		}
		return
	}
	fmt.Printf("Credential deleted for %s.\n", service)
}

func vaultGenerate() {
	opts := vault.DefaultGenerateOptions()
	if raw := readLine("Length (default 16): "); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Println("Not a number.")
			return
		}
		opts.Length = n
	}
	opts.Symbols = readYesNo("Include symbols? (y/n): ")
	opts.Digits = readYesNo("Include digits? (y/n): ")

	password, err := vault.GeneratePassword(opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Generated: %s\n", password)
	if err := clipboard.WriteAll(password); err == nil {
		fmt.Println("Copied to clipboard.")
	}
}

func vaultExport(v *vault.Vault) {
	path := readLine("Export path (default vault_backup.enc): ")
	if path == "" {
		path = "vault_backup.enc"
	}
	if err := v.Export(path); err != nil {
		fmt.Printf("Export failed: %v\n", err)
		return
	}
	fmt.Printf("Encrypted backup written to %s (stays encrypted).\n", path)
}
