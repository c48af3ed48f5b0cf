// cmd/server/main.go

// 本服務提供使用者、帳戶、存提款、轉帳與對帳單的 RESTful API。
// 此檔案負責載入設定、初始化模組（logging, bank, server），
// 並啟動 HTTP 伺服器；收到 SIGINT/SIGTERM 時優雅關閉。

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"personalledger/internal/bank"
	"personalledger/internal/config"
	"personalledger/internal/logging"
	"personalledger/internal/money"
	"personalledger/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)
	gin.SetMode(cfg.Server.Mode)

	// 設定驗證時已確認時區可解析
	loc, _ := cfg.Report.Location()

	b := bank.NewBank(bank.WithLogger(logger))
	s := server.NewServer(b, logger,
		server.WithFormatter(money.NewFormatter(cfg.Currency.Locale, cfg.Currency.Symbol)),
		server.WithLocation(loc),
	)
	srv := server.NewHTTPServer(logger, cfg.Server, s.Router())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
