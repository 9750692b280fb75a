package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/arnavshah/roster-api-go/pkg/tabular"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	filePath      string
	areaTags      []string
	rulesPath     string
	directoryPath string
	seed          int64
	maxShifts     int
	verbose       bool
	rateLimit     int
)

var rootCmd = &cobra.Command{
	Use:   "rosterctl",
	Short: "Roster API companion tool",
	Long: `rosterctl issues API keys and generates draft rosters from an
availability sheet without going through the HTTP API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
	SilenceUsage: true,
}

var keygenCmd = &cobra.Command{
	Use:   "keygen <userID>",
	Short: "Generate an HMAC-signed API key and register it",
	Long: `keygen signs a key with API_MASTER_SECRET and stores its record in the
database named by DATABASE_URL or DATA_PATH. The API rejects keys without a record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.MasterSecret == "" {
			return errors.New("API_MASTER_SECRET not set")
		}
		db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
		if err != nil {
			return err
		}
		_, key, err := auth.NewService(cfg.JWTSecret, cfg.MasterSecret).IssueKey(db, args[0], rateLimit)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated Key for %s:\n%s\n", args[0], key)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a draft roster from a CSV/XLSX availability sheet",
	Example: `  rosterctl generate --file respostas.csv
  rosterctl generate --file respostas.xlsx --areas FILMAGEM,PROJEÇÃO --rules configs/rules.yaml
  rosterctl generate --file respostas.csv --directory team.yaml`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&filePath, "file", "f", "", "availability sheet (.csv or .xlsx)")
	generateCmd.Flags().StringSliceVar(&areaTags, "areas", nil, "active areas (default: all)")
	generateCmd.Flags().StringVar(&rulesPath, "rules", "", "YAML rules file (default: $ROSTER_RULES_FILE)")
	generateCmd.Flags().StringVarP(&directoryPath, "directory", "d", "", "team directory file (.yaml or .json)")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	generateCmd.Flags().IntVar(&maxShifts, "max-shifts", roster.DefaultMaxShifts, "automatic shifts per person")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-date allocation details")
	_ = generateCmd.MarkFlagRequired("file")

	keygenCmd.Flags().IntVar(&rateLimit, "rate-limit", auth.DefaultRateLimit, "daily request limit")

	rootCmd.AddCommand(keygenCmd, generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := tabular.Read(filePath, f)
	if err != nil {
		return err
	}
	areas, err := roster.ParseAreas(areaTags)
	if err != nil {
		return err
	}
	if rulesPath == "" {
		rulesPath = os.Getenv("ROSTER_RULES_FILE")
	}
	rules, err := roster.LoadRules(rulesPath)
	if err != nil {
		return err
	}

	var directory []roster.DirectoryEntry
	if directoryPath != "" {
		if directory, err = roster.LoadDirectory(directoryPath); err != nil {
			return err
		}
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := roster.NewEngine(roster.EngineOptions{
		MaxShifts: maxShifts,
		Rules:     rules,
		Shuffler:  rand.New(rand.NewSource(seed)),
		Logger:    logger,
	})
	res, err := engine.Generate(roster.GenerateInput{Rows: rows, Directory: directory, Areas: areas})
	if err != nil {
		return err
	}

	return printRoster(cmd.OutOrStdout(), res)
}

func printRoster(out io.Writer, res *roster.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAREA\tFUNCTION\tASSIGNED")
	for _, s := range res.Slots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Date, s.Area, s.Function, s.Assigned)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	conflicts := roster.DetectConflicts(res.Slots)
	if len(conflicts) == 0 {
		return nil
	}
	names := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		names = append(names, c.Date+" "+c.Name)
	}
	fmt.Fprintf(out, "\nconflicts: %s\n", strings.Join(names, "; "))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
