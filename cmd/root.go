package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pable/lq-ratings/internal/history"
	"github.com/pable/lq-ratings/internal/model"
	"github.com/pable/lq-ratings/internal/rating"
	"github.com/pable/lq-ratings/internal/storage"
)

var (
	dbPath        string
	algorithmName string
	rosterSize    int
	championsPath string
	verbose       bool
	ratingCfg     rating.Config

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "lqratings",
	Short: "Player ratings for League of Legends custom games",
	Long: `Import custom-game match records exported from the League client, replay them
in chronological order through a rating algorithm and report leaderboards,
player cards and per-match rating changes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	home := filepath.Join(mustUserHome(), ".lqratings")
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dbPath, "db", filepath.Join(home, "matches.db"), "path to SQLite database")
	pf.StringVar(&algorithmName, "algorithm", "skill", "rating algorithm: elo or skill")
	pf.IntVar(&rosterSize, "roster-size", model.DefaultRosterSize, "players per team in a valid match")
	pf.StringVar(&championsPath, "champions", filepath.Join(home, "champions.json"), "champion id to name table (JSON object)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	pf.Float64Var(&ratingCfg.Elo.Start, "elo-start", rating.DefaultEloStart, "elo: rating of a new player")
	pf.Float64Var(&ratingCfg.Elo.K, "elo-k", rating.DefaultEloK, "elo: update step (0 freezes ratings)")
	pf.Float64Var(&ratingCfg.Skill.Mu, "mu", rating.DefaultSkillMu, "skill: mean of a new player")
	pf.Float64Var(&ratingCfg.Skill.Sigma, "sigma", rating.DefaultSkillSigma, "skill: uncertainty of a new player (must be positive)")
	pf.Float64Var(&ratingCfg.Skill.Beta, "beta", 0, "skill: performance variance (0 = sigma/2)")
	pf.Float64Var(&ratingCfg.Skill.Tau, "tau", 0, "skill: dynamics factor (0 = sigma/100)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// newLogger builds a console logger on stderr. Info and above by default,
// debug with verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	return cfg.Build()
}

func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func newAlgorithm() (rating.Algorithm, error) {
	alg, err := rating.New(algorithmName, ratingCfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("rating algorithm", zap.String("name", alg.Name()), zap.Stringer("default", alg.Default()))
	return alg, nil
}

// loadHistory loads every stored match and replays it through the configured
// algorithm.
func loadHistory(db *storage.DB) (*history.History, error) {
	alg, err := newAlgorithm()
	if err != nil {
		return nil, err
	}
	matches, err := db.LoadMatches()
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	h := history.Build(matches, alg, nil)
	logger.Debug("built rating history", zap.Int("matches", len(matches)), zap.Int("players", h.Latest().Len()))
	return h, nil
}
