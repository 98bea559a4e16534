package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"una-go/internal/app"
	"una-go/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a UnaApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "RunArchiveCycle").
func newApp(operation string) (*app.UnaApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewUnaApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// prompt reads a single line of input.
func prompt(r *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a line without echoing it to the terminal.
func promptSecret(label string) (string, error) {
	fmt.Printf("%s: ", label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

var rootCmd = &cobra.Command{
	Use:   "una",
	Short: "Reddit usernotes archiver",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		r := bufio.NewReader(os.Stdin)

		subreddit, err := prompt(r, "Subreddit")
		if err != nil {
			return err
		}
		if subreddit == "" {
			return fmt.Errorf("subreddit is required")
		}

		clientID, err := prompt(r, "Reddit client ID")
		if err != nil {
			return err
		}
		clientSecret, err := promptSecret("Reddit client secret")
		if err != nil {
			return err
		}
		refreshToken, err := promptSecret("Reddit refresh token")
		if err != nil {
			return err
		}

		cfg := config.NewConfig(subreddit, defaults["base_dir"])
		cfg.Source.ClientID = clientID
		cfg.Source.ClientSecret = clientSecret
		cfg.Source.RefreshToken = refreshToken

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Subreddit: %s\n", subreddit)
		fmt.Printf("Base Dir:  %s\n", defaults["base_dir"])
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

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Subreddit: %s\n", cfg.Subreddit)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Interval:  %dh\n", cfg.Archive.IntervalHours)
		fmt.Printf("Source:    %s\n", cfg.Source.Type)
		fmt.Printf("Store:     %s\n", cfg.Store.Type)
		fmt.Printf("Database:  %s\n", cfg.Database.Type)
		return nil
	},
}

// archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Run one archive cycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RunArchiveCycle")
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.RunArchiveCycle()
		if err != nil {
			return fmt.Errorf("archive cycle failed: %w", err)
		}

		fmt.Printf("Archived %d note(s) for %d new user(s) (%d moderator(s), %d warning type(s) added)\n",
			stats.NotesAdded, stats.UsersAdded, stats.ModeratorsAdded, stats.WarningsAdded)
		return nil
	},
}

// daemon command
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run archive cycles on a fixed interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		intervalHours, _ := cmd.Flags().GetInt("interval-hours")

		a, err := newApp("RunDaemon")
		if err != nil {
			return err
		}
		defer a.Close()

		if intervalHours <= 0 {
			intervalHours = a.IntervalHours()
		}

		a.RunDaemon(time.Duration(intervalHours) * time.Hour)
		return nil
	},
}

// notes command
var notesCmd = &cobra.Command{
	Use:   "notes USERNAME",
	Short: "Show a user's usernotes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetNotes")
		if err != nil {
			return err
		}
		defer a.Close()

		text, err := a.GetNotes(args[0])
		if err != nil {
			return err
		}

		fmt.Println(text)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View archive cycle history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No archive cycles recorded.")
			return nil
		}

		for _, rec := range records {
			duration := ""
			if rec.Finished {
				duration = rec.FinishedAt.Sub(rec.StartedAt).Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %s  %s  %-8s  +%d note(s)  %s\n",
				rec.ID,
				rec.CycleUID[:8],
				rec.StartedAt.Format("2006-01-02 15:04:05"),
				rec.Status,
				rec.Stats.NotesAdded,
				duration,
			)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().IntP("interval-hours", "i", 0, "Hours between cycles (default: from config)")
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of cycles to show")
}
