package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"libretranslate/internal/config"
	"libretranslate/internal/formatter"
	"libretranslate/internal/language"
	"libretranslate/internal/logging"
	"libretranslate/internal/server"
	"libretranslate/internal/service"
	"libretranslate/internal/storage"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logrus.Logger
	store   *storage.SQLiteStorage
	svc     *service.Service
	format  = formatter.NewTextFormatter()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "libretranslate",
	Short:         "Translate text through a LibreTranslate instance",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// languages is a pure table lookup
		if cmd.Name() == "languages" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log = logging.New(cfg.Log.Level, cfg.Log.Format)

		noHistory, _ := cmd.Flags().GetBool("no-history")
		if cfg.History.Enabled && !noHistory {
			store, err = storage.NewSQLiteStorage(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
		}

		svc = service.NewService(cfg, store, service.NewClient(cfg), log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text (reads stdin when no text is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, target, err := languageFlags(cmd)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := readStdin()
			if err != nil {
				return err
			}
			text = data
		}

		result, err := svc.Translate(cmd.Context(), source, target, text)
		if err != nil {
			return err
		}

		if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
			fmt.Println(result.Output)
			return nil
		}
		fmt.Print(format.Format(result))
		return nil
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(format.FormatLanguages(language.All()))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent translations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
			n, err := svc.ClearHistory()
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d translations\n", n)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := svc.History(limit)
		if err != nil {
			return err
		}
		fmt.Print(format.FormatHistory(records))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := svc.Stats()
		if err != nil {
			return err
		}

		fmt.Println("=== Translation History ===")
		fmt.Printf("Total translations: %d\n", stats.Total)
		if len(stats.Pairs) > 0 {
			fmt.Println("By language pair:")
			fmt.Print(format.FormatPairs(stats.Pairs))
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the LibreTranslate endpoint is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := svc.Check(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("✓ %s reachable (%s)\n", res.Endpoint, res.Latency.Round(time.Millisecond))
		for _, l := range res.Unsupported {
			fmt.Printf("  ✗ %s (%s) not offered by server\n", l.Name(), l.Code())
		}
		return nil
	},
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run a local HTTP API in front of the translator",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.New(cfg, svc, log).Run()
	},
}

func languageFlags(cmd *cobra.Command) (language.Language, language.Language, error) {
	source, target := svc.Defaults()

	if v, _ := cmd.Flags().GetString("from"); v != "" {
		l, err := language.Parse(v)
		if err != nil {
			return 0, 0, err
		}
		source = l
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		l, err := language.Parse(v)
		if err != nil {
			return 0, 0, err
		}
		target = l
	}
	return source, target, nil
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().Bool("no-history", false, "do not open or write the history database")

	translateCmd.Flags().StringP("from", "f", "", "source language code or name (default from config)")
	translateCmd.Flags().StringP("to", "t", "", "target language code or name (default from config)")
	translateCmd.Flags().BoolP("quiet", "q", false, "print only the translated text")

	historyCmd.Flags().IntP("limit", "l", 20, "maximum number of translations to show")
	historyCmd.Flags().Bool("clear", false, "delete all stored translations")

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serverCmd)
}
