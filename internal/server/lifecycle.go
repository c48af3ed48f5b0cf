// internal/server/lifecycle.go
//
// 本檔負責 HTTP 伺服器的生命週期：監聽、服務請求，並在 context 結束時優雅關閉。
// 關閉期間不再接受新連線，進行中的請求最多等待 ShutdownTimeout。
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"personalledger/internal/config"
)

// HTTPServer 包裝 http.Server 與關閉逾時設定。
type HTTPServer struct {
	srv             *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// NewHTTPServer 依設定建立 HTTPServer；handler 通常為 (*Server).Router()。
func NewHTTPServer(logger *slog.Logger, cfg config.ServerConfig, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run 在設定的位址上監聽並服務，直到 ctx 結束或監聽失敗。
func (h *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return err
	}
	return h.Serve(ctx, ln)
}

// Serve 以指定的 listener 服務請求；ctx 結束時優雅關閉並回傳 nil。
func (h *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- h.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	h.logger.Info("http server shutting down", "timeout", h.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err := h.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// Serve 在 Shutdown 後回傳 ErrServerClosed
	<-errCh
	return nil
}
