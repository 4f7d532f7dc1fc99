package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	postgresRepo "github.com/iho/fxledger/internal/adapter/repository/postgres"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/infrastructure/config"
	"github.com/iho/fxledger/internal/infrastructure/logger"
	"github.com/iho/fxledger/internal/infrastructure/postgres"
	"github.com/iho/fxledger/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fxledger-cli",
		Short: "FXLedger CLI tool",
		Long:  `A command line interface for interacting with the FXLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FXLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(seedCmd())

	accountCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}
	accountCmd.AddCommand(listAccountsCmd())
	accountCmd.AddCommand(balancesCmd())
	accountCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(accountCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		Run: func(cmd *cobra.Command, args []string) {
			body, status := get("/ready")
			if status != http.StatusOK {
				fmt.Printf("Health check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
				os.Exit(1)
			}
			fmt.Println("Health check PASSED")
		},
	}
}

// seedCmd loads sample data straight into the database. Seeding is an
// admin action with no API endpoint, so the command wires the repository
// stack itself from the same environment variables the server uses.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample accounts and balances into the database",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Printf("Failed to load configuration: %v\n", err)
				os.Exit(1)
			}

			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

			currencies, err := domain.NewCurrencySet(cfg.SupportedCurrencies)
			if err != nil {
				fmt.Printf("Invalid supported currencies: %v\n", err)
				os.Exit(1)
			}

			ctx := context.Background()

			pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
			if err != nil {
				fmt.Printf("Failed to connect to postgres: %v\n", err)
				os.Exit(1)
			}
			defer pool.Close()

			txManager := postgresRepo.NewTxManager(pool)
			accountRepo := postgresRepo.NewAccountRepository(pool)
			balanceRepo := postgresRepo.NewBalanceRepository(pool)
			transactionRepo := postgresRepo.NewTransactionRepository(pool)
			idGen := postgresRepo.NewULIDGenerator()

			accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
			balanceUC := usecase.NewBalanceUseCase(txManager, balanceRepo, transactionRepo, idGen, currencies, log)
			seedUC := usecase.NewSeedUseCase(accountRepo, accountUC, balanceUC,
				usecase.NewRandomBalanceGenerator(currencies), log)

			if err := seedUC.Run(ctx); err != nil {
				fmt.Printf("Seeding failed: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("Seeding complete")
		},
	}
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			body, status := get("/api/v1/accounts")
			if status != http.StatusOK {
				fail(status, body)
			}

			var result struct {
				Accounts []struct {
					Number string `json:"number"`
					Holder string `json:"holder"`
				} `json:"accounts"`
				Total int `json:"total"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}

			for _, acc := range result.Accounts {
				fmt.Printf("%s  %s\n", acc.Number, truncate(acc.Holder, 40))
			}
			fmt.Printf("Total: %d\n", result.Total)
		},
	}
}

func balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances [account number]",
		Short: "Show account balances",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body, status := get("/api/v1/accounts/" + args[0] + "/balances")
			if status != http.StatusOK {
				fail(status, body)
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}
			printJSON(result)
		},
	}
}

func transactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transactions [account number]",
		Short: "Show account transaction history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body, status := get("/api/v1/accounts/" + args[0] + "/transactions")
			if status != http.StatusOK {
				fail(status, body)
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}
			printJSON(result)
		},
	}
}

func get(path string) ([]byte, int) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}

func fail(status int, body []byte) {
	fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", status, string(body))
	os.Exit(1)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
