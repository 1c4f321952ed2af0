/*
loanquote - Command-line front end for the loan calculation engine.

Reads a YAML scenario file, runs each scenario through the engine, and
prints the amortization schedule plus an optional early-settlement quote.
The engine itself stays pure; all I/O and logging live here.

SCENARIO FILE:
  logging:
    level: info
    format: console
  scenarios:
    - name: standard-12m
      principal: "10000"
      annual_rate: "15"
      term_months: 12
      frequency: monthly
      method: reducing_balance
      settle_after_payments: 6
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/warp/loan-engine/loan"
	"github.com/warp/loan-engine/settlement"
	"github.com/warp/loan-engine/strategy"
)

// Scenario is one loan to quote.
type Scenario struct {
	Name                string `mapstructure:"name"`
	Principal           string `mapstructure:"principal"`
	AnnualRate          string `mapstructure:"annual_rate"`
	TermMonths          int    `mapstructure:"term_months"`
	Frequency           string `mapstructure:"frequency"`
	Method              string `mapstructure:"method"`
	GracePeriodDays     int    `mapstructure:"grace_period_days"`
	ProcessingFee       string `mapstructure:"processing_fee"`
	BalloonAmount       string `mapstructure:"balloon_amount"`
	SettleAfterPayments int    `mapstructure:"settle_after_payments"`
}

// FileConfig is the scenario file layout.
type FileConfig struct {
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
	Scenarios []Scenario `mapstructure:"scenarios"`
}

func initializeLogger(level, format, override string) (*zap.Logger, error) {
	if override != "" {
		level = override
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	if format == "" {
		format = "console"
	}
	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return cfg.Build()
}

func loadConfig(path string) (*FileConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return &cfg, nil
}

func buildInput(sc Scenario) (loan.CalculationInput, error) {
	principal, err := decimal.NewFromString(sc.Principal)
	if err != nil {
		return loan.CalculationInput{}, fmt.Errorf("scenario %q: bad principal: %w", sc.Name, err)
	}
	rate, err := decimal.NewFromString(sc.AnnualRate)
	if err != nil {
		return loan.CalculationInput{}, fmt.Errorf("scenario %q: bad annual_rate: %w", sc.Name, err)
	}

	in := loan.CalculationInput{
		PrincipalAmount:    principal,
		AnnualInterestRate: rate,
		TermInMonths:       sc.TermMonths,
		RepaymentFrequency: loan.Frequency(sc.Frequency),
		CalculationMethod:  loan.Method(sc.Method),
		GracePeriodDays:    sc.GracePeriodDays,
	}
	if sc.ProcessingFee != "" {
		fee, err := decimal.NewFromString(sc.ProcessingFee)
		if err != nil {
			return loan.CalculationInput{}, fmt.Errorf("scenario %q: bad processing_fee: %w", sc.Name, err)
		}
		in.ProcessingFeeAmount = fee
	}
	if sc.BalloonAmount != "" {
		balloon, err := decimal.NewFromString(sc.BalloonAmount)
		if err != nil {
			return loan.CalculationInput{}, fmt.Errorf("scenario %q: bad balloon_amount: %w", sc.Name, err)
		}
		in.BalloonAmount = balloon
	}
	return in, nil
}

func printSchedule(result *loan.CalculationResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDue Date\tPrincipal\tInterest\tFees\tTotal\tBalance")
	for _, inst := range result.Installments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inst.Number,
			inst.DueDate.Format("2006-01-02"),
			inst.Principal.StringFixed(2),
			inst.Interest.StringFixed(2),
			inst.Fees.StringFixed(2),
			inst.TotalDue.StringFixed(2),
			inst.RemainingBalance.StringFixed(2),
		)
	}
	w.Flush()
	fmt.Printf("installment %s  interest %s  fees %s  total %s  apr %s%%\n\n",
		result.InstallmentAmount.StringFixed(2),
		result.TotalInterest.StringFixed(2),
		result.TotalFees.StringFixed(2),
		result.TotalAmount.StringFixed(2),
		result.APR.String(),
	)
}

func main() {
	configPath := flag.String("config", "loanquote.yaml", "path to the scenario file")
	logLevel := flag.String("log-level", "", "override the configured log level")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg.Logging.Level, cfg.Logging.Format, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	settlements := settlement.NewCalculator(loan.DefaultConfig())

	for _, sc := range cfg.Scenarios {
		in, err := buildInput(sc)
		if err != nil {
			logger.Error("invalid scenario", zap.String("scenario", sc.Name), zap.Error(err))
			continue
		}

		result, err := strategy.Calculate(in)
		if err != nil {
			logger.Error("calculation failed", zap.String("scenario", sc.Name), zap.Error(err))
			continue
		}

		logger.Info("scenario calculated",
			zap.String("scenario", sc.Name),
			zap.String("method", string(result.Method)),
			zap.Int("installments", result.Summary.InstallmentCount),
			zap.String("total_interest", result.TotalInterest.StringFixed(2)),
		)

		fmt.Printf("== %s (%s)\n", sc.Name, result.Method)
		printSchedule(result)

		if sc.SettleAfterPayments > 0 && sc.SettleAfterPayments < len(result.Installments) {
			settleDate := result.Installments[sc.SettleAfterPayments-1].DueDate.AddDate(0, 0, 1)
			quote, err := settlements.EarlySettlement(result, settleDate, sc.SettleAfterPayments)
			if err != nil {
				logger.Error("settlement quote failed", zap.String("scenario", sc.Name), zap.Error(err))
				continue
			}
			fmt.Printf("early settlement after %d payments (%s): payoff %s, rebate %s, savings %s\n\n",
				sc.SettleAfterPayments,
				settleDate.Format(time.DateOnly),
				quote.TotalSettlementAmount.StringFixed(2),
				quote.InterestRebate.StringFixed(2),
				quote.Savings.StringFixed(2),
			)
		}
	}
}
