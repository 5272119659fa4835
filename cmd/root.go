package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Achintharya/eightfold-bot/pkg/agent"
	"github.com/Achintharya/eightfold-bot/pkg/cache"
	"github.com/Achintharya/eightfold-bot/pkg/config"
	"github.com/Achintharya/eightfold-bot/pkg/llm"
	"github.com/Achintharya/eightfold-bot/pkg/logger"
	"github.com/Achintharya/eightfold-bot/pkg/plan"
	"github.com/Achintharya/eightfold-bot/pkg/retrieval"
	"github.com/Achintharya/eightfold-bot/pkg/summarize"
	"github.com/Achintharya/eightfold-bot/pkg/websearch"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "eightfold-bot",
	Short: "Company research and account planning agent",
	Long: `A conversational agent that researches companies on the web and
generates structured account plans you can refine section by section.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDependencies()
		if err != nil {
			return err
		}
		defer logger.Close()

		if prompt := viper.GetString("prompt"); prompt != "" {
			session := agent.NewSession(deps)
			fmt.Println(session.ProcessInput(context.Background(), prompt))
			return nil
		}

		return runREPL(deps)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .eightfold/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "process a single input and exit")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))
}

// buildDependencies loads config, initializes logging, and wires the
// collaborators every session shares.
func buildDependencies() (agent.Options, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return agent.Options{}, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(); err != nil {
		return agent.Options{}, fmt.Errorf("failed to initialize logging: %w", err)
	}

	provider, err := llm.NewFromConfig(cfg)
	if err != nil {
		// The agent degrades gracefully without a provider; warn and go on
		logger.Warn("generation provider unavailable: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\nPlan sections will use raw research text.\n", err)
	}

	searcher := websearch.NewClient(
		websearch.WithSerperAPIKey(cfg.Search.SerperAPIKey),
		websearch.WithMaxResults(cfg.Search.MaxResults),
		websearch.WithTimeout(cfg.Search.Timeout),
	)

	opts := agent.Options{
		Searcher:   searcher,
		Summarizer: summarize.NewLLMSummarizer(provider),
		Provider:   provider,
		Cache:      cache.NewStore(),
		Plans:      plan.NewStore(cfg.Plans.Directory),
	}

	if cfg.Retrieval.Enabled {
		index, err := retrieval.NewIndexFromConfig(cfg)
		if err != nil {
			logger.Warn("research retrieval disabled: %v", err)
		} else {
			opts.Index = index
		}
	}

	return opts, nil
}
