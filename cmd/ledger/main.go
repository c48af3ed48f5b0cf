// cmd/ledger/main.go

// 互動式主控台：於標準輸入輸出操作同一份 in-memory 帳本。
// 日誌固定寫到 stderr，避免與選單輸出混在一起。
// -demo 會預先建立一位使用者與支票、儲蓄各一個帳戶。

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"personalledger/internal/bank"
	"personalledger/internal/config"
	"personalledger/internal/logging"
	"personalledger/internal/money"
	"personalledger/internal/shell"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	demo := flag.Bool("demo", false, "seed a demo user with two accounts")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewWithWriter(cfg.Log, os.Stderr)

	// 設定驗證時已確認時區可解析
	loc, _ := cfg.Report.Location()

	b := bank.NewBank(bank.WithLogger(logger))
	if *demo {
		if err := seed(b, logger); err != nil {
			logger.Error("seed demo data failed", "error", err)
			os.Exit(1)
		}
	}

	f := money.NewFormatter(cfg.Currency.Locale, cfg.Currency.Symbol)
	if err := shell.New(b, os.Stdin, os.Stdout, f, loc).Run(); err != nil {
		logger.Error("console stopped", "error", err)
		os.Exit(1)
	}
}

// seed 建立示範資料：支票帳戶 $1,500.00（再提出 $250.00）、儲蓄帳戶 $5,000.00。
func seed(b *bank.Bank, logger *slog.Logger) error {
	u, err := b.CreateUser(bank.Profile{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
		Phone:     "555-0100",
	})
	if err != nil {
		return err
	}
	checking, err := b.OpenAccount(u.ID(), bank.AccountRequest{Kind: bank.KindChecking, OpeningBalance: 150000})
	if err != nil {
		return err
	}
	if err := checking.Withdraw(25000); err != nil {
		return err
	}
	if _, err := b.OpenAccount(u.ID(), bank.AccountRequest{Kind: bank.KindSavings, OpeningBalance: 500000}); err != nil {
		return err
	}
	logger.Info("demo data seeded", "user_id", u.ID())
	return nil
}
