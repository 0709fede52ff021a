package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/catalog"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/extract"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/pipeline"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/render"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/structurer"
	"github.com/felixxvo7/Investing-AI-Agent/pkg/invest/yahoo"
)

func main() {
	log := setupLogging()
	if err := newRootCmd(log).Execute(); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func setupLogging() zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).With().Timestamp().Logger()
}

// initConfig sets compiled defaults with environment overrides
// (INVEST_OUTPUT_DIR, INVEST_MAX_TICKERS, ...). There is no config file.
func initConfig() {
	viper.SetEnvPrefix("invest")
	viper.AutomaticEnv()
	viper.SetDefault("output_dir", "dataset")
	viper.SetDefault("max_tickers", 5)
	viper.SetDefault("timeout", 15*time.Second)
	viper.SetDefault("ticker", "AAPL")
	viper.SetDefault("company", "Apple Inc.")
}

func newRootCmd(log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "invest",
		Short:         "Fetch company financial statements and reshape them into tabular files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFetchCmd(log))
	root.AddCommand(newStructureCmd(log))
	root.AddCommand(newPricesCmd(log))
	return root
}

func newFetchCmd(log zerolog.Logger) *cobra.Command {
	var (
		outDir      string
		catalogPath string
		preview     bool
	)
	cmd := &cobra.Command{
		Use:   "fetch [tickers...]",
		Short: "Download per-ticker statement CSVs",
		Long: "Validates the requested tickers, extracts the catalog line items from\n" +
			"each company's financial, balance-sheet, cash-flow and market data, and\n" +
			"writes one wide CSV per statement. Tickers whose four files already\n" +
			"exist are skipped; with no arguments the tickers are prompted for.",
		RunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			if outDir == "" {
				outDir = viper.GetString("output_dir")
			}

			cat := catalog.Default()
			if catalogPath != "" {
				var err error
				if cat, err = catalog.Load(catalogPath); err != nil {
					return err
				}
			}

			symbols := make([]string, 0, len(args))
			for _, a := range args {
				if s := strings.ToUpper(strings.TrimSpace(a)); s != "" {
					symbols = append(symbols, s)
				}
			}
			if len(symbols) == 0 {
				var err error
				symbols, err = promptSymbols(cmd.InOrStdin(), cmd.OutOrStdout(), viper.GetInt("max_tickers"))
				if err != nil {
					return err
				}
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			client := yahoo.NewClient(cat, viper.GetDuration("timeout"))
			runner := &pipeline.Runner{
				Validator: client,
				Extractor: &extract.Extractor{Provider: client, Catalog: cat},
				OutDir:    outDir,
				Log:       log,
			}
			if preview {
				tr := render.NewTableRenderer()
				if w := detectTerminalWidth(); w > 0 && w < 120 {
					tr.MaxColWidth = 20
				}
				runner.Renderer = tr
				runner.Writer = cmd.OutOrStdout()
			}
			return runner.Run(cmd.Context(), symbols)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML file overriding the metric catalog")
	cmd.Flags().BoolVar(&preview, "preview", false, "print extracted tables to the terminal")
	return cmd
}

func newStructureCmd(log zerolog.Logger) *cobra.Command {
	var (
		outDir  string
		ticker  string
		company string
	)
	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Combine the saved statement CSVs into one structured table",
		Long: "Reads the financial, balance-sheet and cash-flow CSVs previously saved\n" +
			"for a ticker, melts them into long form, and pivots into a single wide\n" +
			"table written as structured_financials.csv and .xlsx.",
		RunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			if outDir == "" {
				outDir = viper.GetString("output_dir")
			}
			if ticker == "" {
				ticker = viper.GetString("ticker")
			}
			if company == "" {
				company = viper.GetString("company")
			}
			s := &structurer.Structurer{
				Dir:     outDir,
				Ticker:  strings.ToUpper(strings.TrimSpace(ticker)),
				Company: company,
				Log:     log,
			}
			return s.Run()
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "directory holding the statement CSVs")
	cmd.Flags().StringVar(&ticker, "ticker", "", "ticker whose CSVs to combine")
	cmd.Flags().StringVar(&company, "company", "", "company name to tag rows with")
	return cmd
}

func newPricesCmd(log zerolog.Logger) *cobra.Command {
	var (
		outDir string
		start  string
		end    string
	)
	cmd := &cobra.Command{
		Use:   "prices <ticker>",
		Short: "Download daily price history to stock_price.csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			if outDir == "" {
				outDir = viper.GetString("output_dir")
			}
			symbol := strings.ToUpper(strings.TrimSpace(args[0]))

			to := time.Now()
			if end != "" {
				var err error
				if to, err = time.Parse("2006-01-02", end); err != nil {
					return fmt.Errorf("parse --end: %w", err)
				}
			}
			from := to.AddDate(-5, 0, 0)
			if start != "" {
				var err error
				if from, err = time.Parse("2006-01-02", start); err != nil {
					return fmt.Errorf("parse --start: %w", err)
				}
			}

			client := yahoo.NewClient(catalog.Default(), viper.GetDuration("timeout"))
			bars, err := client.History(cmd.Context(), symbol, from, to)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			path := filepath.Join(outDir, "stock_price.csv")
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := yahoo.WriteHistoryCSV(f, bars); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			log.Info().Str("file", path).Int("bars", len(bars)).Msg("written")
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default 5 years back)")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD (default today)")
	return cmd
}
