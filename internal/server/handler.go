// internal/server/handler.go
//
// Package server
// ─────────────────────────────────────────────
// 提供 HTTP RESTful 介面，作為 bank 模組的應用層。
// 每個 handler 僅負責：
//  1. 接收與驗證 HTTP 請求（路徑參數、JSON 主體）
//  2. 呼叫 bank 層執行帳本操作
//  3. 回傳標準化 JSON 回應，錯誤依類別轉成狀態碼
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"personalledger/internal/bank"
	"personalledger/internal/money"
	"personalledger/internal/report"
)

// Server 為 HTTP 層核心結構：
// - bank：注入帳本核心。
// - money / loc：回應中的金額字串與報表時區。
type Server struct {
	bank   *bank.Bank
	logger *slog.Logger
	money  *money.Formatter
	loc    *time.Location
	now    func() time.Time
}

// Option 調整 Server 的顯示設定。
type Option func(*Server)

// WithFormatter 設定金額格式。
func WithFormatter(f *money.Formatter) Option {
	return func(s *Server) { s.money = f }
}

// WithLocation 設定報表時區。
func WithLocation(loc *time.Location) Option {
	return func(s *Server) { s.loc = loc }
}

// NewServer 建立新的 HTTP 伺服器；logger 為 nil 時不輸出日誌。
func NewServer(b *bank.Bank, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		bank:   b,
		logger: logger,
		money:  money.NewFormatter("en-US", "$"),
		loc:    time.Local,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ──────────────── 使用者 ────────────────

type createUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// createUser 處理 POST /users。
func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	u, err := s.bank.CreateUser(bank.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		s.fail(c, "create user failed", err)
		return
	}
	writeJSON(c, http.StatusCreated, s.userView(u))
}

// listUsers 處理 GET /users，依建立順序列出。
func (s *Server) listUsers(c *gin.Context) {
	users := s.bank.Users()
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, s.userView(u))
	}
	writeJSON(c, http.StatusOK, out)
}

// getUser 處理 GET /users/:id。
func (s *Server) getUser(c *gin.Context) {
	u, ok := s.lookupUser(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, s.userView(u))
}

type openAccountRequest struct {
	Kind           string `json:"kind"`
	OpeningBalance int64  `json:"opening_balance"`
	BalanceCap     int64  `json:"balance_cap"`
}

// openAccount 處理 POST /users/:id/accounts。
func (s *Server) openAccount(c *gin.Context) {
	u, ok := s.lookupUser(c)
	if !ok {
		return
	}
	var req openAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	kind, err := bank.ParseKind(req.Kind)
	if err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	a, err := s.bank.OpenAccount(u.ID(), bank.AccountRequest{
		Kind:           kind,
		OpeningBalance: req.OpeningBalance,
		BalanceCap:     req.BalanceCap,
	})
	if err != nil {
		s.fail(c, "open account failed", err)
		return
	}
	writeJSON(c, http.StatusCreated, s.accountView(a))
}

// listUserAccounts 處理 GET /users/:id/accounts，依開戶順序列出。
func (s *Server) listUserAccounts(c *gin.Context) {
	u, ok := s.lookupUser(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, s.userView(u).Accounts)
}

// depositByIndex 處理 POST /users/:id/accounts/:index/deposit（序號 0 起算）。
func (s *Server) depositByIndex(c *gin.Context) {
	u, ok := s.lookupUser(c)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		writeErr(c, bank.ErrBadSelection, http.StatusBadRequest)
		return
	}
	amount, ok := s.bindAmount(c)
	if !ok {
		return
	}
	if err := u.Deposit(idx, amount); err != nil {
		s.fail(c, "deposit failed", err)
		return
	}
	a, _ := u.AccountAt(idx)
	writeJSON(c, http.StatusOK, s.accountView(a))
}

// statement 處理 GET /users/:id/statement?format=json|csv|xlsx|text。
func (s *Server) statement(c *gin.Context) {
	u, ok := s.lookupUser(c)
	if !ok {
		return
	}
	st := report.BuildStatement(u, s.now())
	filename := "statement_" + strconv.FormatUint(uint64(u.ID()), 10) + "_" + st.Meta.GeneratedAt.Format("20060102")

	var err error
	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		c.Header("Content-Type", "application/json")
		c.Status(http.StatusOK)
		err = report.WriteJSON(c.Writer, st)
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		c.Status(http.StatusOK)
		err = report.WriteCSV(c.Writer, st, s.money, s.loc)
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Status(http.StatusOK)
		err = report.WriteXLSX(c.Writer, st, s.money, s.loc)
	case "text":
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		err = report.NewPrinter(c.Writer, s.money, s.loc).User(u)
	default:
		writeErr(c, errors.New("unsupported format "+strconv.Quote(format)), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("write statement failed", "error", err, "user_id", u.ID())
	}
}

// ──────────────── 帳戶 ────────────────

// getAccount 處理 GET /accounts/:id。
func (s *Server) getAccount(c *gin.Context) {
	a, ok := s.lookupAccount(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, s.accountView(a))
}

// deposit 處理 POST /accounts/:id/deposit。
func (s *Server) deposit(c *gin.Context) {
	a, ok := s.lookupAccount(c)
	if !ok {
		return
	}
	amount, ok := s.bindAmount(c)
	if !ok {
		return
	}
	if err := a.Deposit(amount); err != nil {
		s.fail(c, "deposit failed", err)
		return
	}
	writeJSON(c, http.StatusOK, s.accountView(a))
}

// withdraw 處理 POST /accounts/:id/withdraw；餘額可以變成負數。
func (s *Server) withdraw(c *gin.Context) {
	a, ok := s.lookupAccount(c)
	if !ok {
		return
	}
	amount, ok := s.bindAmount(c)
	if !ok {
		return
	}
	if err := a.Withdraw(amount); err != nil {
		s.fail(c, "withdraw failed", err)
		return
	}
	writeJSON(c, http.StatusOK, s.accountView(a))
}

// transactions 處理 GET /accounts/:id/transactions，依時間順序回傳。
func (s *Server) transactions(c *gin.Context) {
	a, ok := s.lookupAccount(c)
	if !ok {
		return
	}
	snap := a.Snapshot()
	out := make([]transactionView, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		out = append(out, s.transactionView(tx))
	}
	writeJSON(c, http.StatusOK, out)
}

type transferRequest struct {
	From uint32 `json:"from" binding:"required"`
	To   uint32 `json:"to" binding:"required"`
	amountRequest
}

// transfer 處理 POST /transfers，成功後回傳兩帳戶最新狀態。
func (s *Server) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	amount, err := req.cents()
	if err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	if err := s.bank.Transfer(req.From, req.To, amount); err != nil {
		s.fail(c, "transfer failed", err)
		return
	}
	from, _ := s.bank.Account(req.From)
	to, _ := s.bank.Account(req.To)
	writeJSON(c, http.StatusOK, gin.H{
		"message": "transfer success",
		"from":    s.accountView(from),
		"to":      s.accountView(to),
	})
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// ──────────────── 共用 ────────────────

// amountRequest 接受以分表示的 amount，或以元表示的 dollars 字串（擇一）。
type amountRequest struct {
	Amount  *int64 `json:"amount"`
	Dollars string `json:"dollars"`
}

var errMissingAmount = errors.New("amount or dollars is required")

func (r amountRequest) cents() (int64, error) {
	switch {
	case r.Dollars != "":
		return money.ParseDollars(r.Dollars)
	case r.Amount != nil:
		return *r.Amount, nil
	default:
		return 0, errMissingAmount
	}
}

func (s *Server) bindAmount(c *gin.Context) (int64, bool) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return 0, false
	}
	amount, err := req.cents()
	if err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return 0, false
	}
	return amount, true
}

func (s *Server) lookupUser(c *gin.Context) (*bank.User, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErr(c, bank.ErrUserNotFound, http.StatusNotFound)
		return nil, false
	}
	u, err := s.bank.User(id)
	if err != nil {
		writeErr(c, err, statusFor(err))
		return nil, false
	}
	return u, true
}

func (s *Server) lookupAccount(c *gin.Context) (*bank.Account, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeErr(c, bank.ErrAccountNotFound, http.StatusNotFound)
		return nil, false
	}
	a, err := s.bank.Account(id)
	if err != nil {
		writeErr(c, err, statusFor(err))
		return nil, false
	}
	return a, true
}

// fail 記錄並回傳錯誤；只有非預期的錯誤以 ERROR 記錄。
func (s *Server) fail(c *gin.Context, msg string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(msg, "error", err, "path", c.Request.URL.Path)
	} else {
		s.logger.Debug(msg, "error", err, "path", c.Request.URL.Path)
	}
	writeErr(c, err, code)
}

func parseID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}
