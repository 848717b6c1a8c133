package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"capsule-go/internal/app"
	"capsule-go/internal/capsule"
	"capsule-go/internal/config"
)

var version = "2.0.0"

const noCapsulesMsg = "No capsules found in ~/.emacs_capsules directory."

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a CapsuleApp. The caller must defer app.Close().
// operation identifies the action being run (e.g. "Create", "Restore").
func newApp(operation string) (*app.CapsuleApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewCapsuleApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:           "capsule",
	Short:         "A CLI for managing Emacs time capsules",
	Version:       version,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		create, _ := cmd.Flags().GetBool("create_capsule")
		list, _ := cmd.Flags().GetBool("list_time_capsules")
		restore, _ := cmd.Flags().GetBool("restore_time_capsule")

		switch {
		case create:
			return runCreate()
		case restore:
			return runRestore()
		case list:
			return runList()
		default:
			return cmd.Help()
		}
	},
}

func runCreate() error {
	a, err := newApp("Create")
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.CreateCapsule()
	var auxErr *capsule.AuxiliaryError
	if err != nil && !errors.As(err, &auxErr) {
		return fmt.Errorf("creating capsule: %w", err)
	}

	fmt.Printf("Capsule created: %s\n", result.Capsule.Path)
	fmt.Printf("%d file(s), %s archived, capsule size %s\n",
		result.Files,
		humanize.IBytes(uint64(result.Bytes)),
		humanize.IBytes(uint64(result.Capsule.Size)),
	)

	if auxErr != nil {
		return fmt.Errorf("failed to backup the %s file: %w", capsule.AuxFileName, auxErr.Err)
	}
	if result.AuxBackup != "" {
		fmt.Printf("Saved %s as %s\n", capsule.AuxFileName, result.AuxBackup)
	} else {
		fmt.Printf("No %s file found, skipped\n", capsule.AuxFileName)
	}
	return nil
}

func runList() error {
	a, err := newApp("List")
	if err != nil {
		return err
	}
	defer a.Close()

	capsules, err := a.ListCapsules()
	if errors.Is(err, capsule.ErrNoCapsules) {
		fmt.Println(noCapsulesMsg)
		return nil
	}
	if err != nil {
		return err
	}
	return app.RenderListing(os.Stdout, capsules)
}

func runRestore() error {
	a, err := newApp("Restore")
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.RestoreCapsule(os.Stdin, os.Stdout)
	if errors.Is(err, capsule.ErrNoCapsules) {
		fmt.Println(noCapsulesMsg)
		return nil
	}
	if err != nil {
		return fmt.Errorf("restoring capsule: %w", err)
	}

	if result.BackupDir != "" {
		fmt.Printf("Previous configuration moved to %s\n", result.BackupDir)
	}
	fmt.Println("Restoration complete.")
	return nil
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		if err := config.Init(defaults["config_path"], config.NewConfig()); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.Load(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		layout, err := app.ResolveLayout()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Compression:  %s\n", cfg.Compression)
		fmt.Printf("Log Level:    %s\n", cfg.LogLevel)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Progress:     %t\n", cfg.Progress)
		fmt.Printf("Ignore:       %v\n", cfg.Ignore)
		fmt.Printf("Config Dir:   %s\n", layout.ConfigDir)
		fmt.Printf("Capsule Dir:  %s\n", layout.StoreDir)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("Emacs TimeMachine version: {{.Version}}\n")
	rootCmd.Flags().BoolP("create_capsule", "c", false, "Create a time capsule of the ~/.emacs.d directory")
	rootCmd.Flags().BoolP("list_time_capsules", "l", false, "List all available time capsules")
	rootCmd.Flags().BoolP("restore_time_capsule", "r", false, "Restore a specific time capsule")
	rootCmd.Flags().BoolP("version", "v", false, "Displays version information")
	rootCmd.MarkFlagsMutuallyExclusive("create_capsule", "list_time_capsules", "restore_time_capsule")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
