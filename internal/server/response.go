// internal/server/response.go
//
// 本檔負責統一 HTTP 回應格式與錯誤狀態碼映射。
// 成功回應一律為 JSON；錯誤回應為 {"error": "..."}。
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"personalledger/internal/bank"
)

// writeJSON 統一輸出成功回應。
func writeJSON(c *gin.Context, code int, v any) {
	c.JSON(code, v)
}

// writeErr 統一輸出錯誤回應。
func writeErr(c *gin.Context, err error, code int) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

// statusFor 將領域錯誤映射為 HTTP 狀態碼：
//   - 找不到使用者或帳戶 → 404
//   - 超過餘額上限、轉帳已沖回 → 409
//   - 識別碼用盡 → 503
//   - 其餘（金額非法、序號超出範圍）→ 400
func statusFor(err error) int {
	switch {
	case errors.Is(err, bank.ErrUserNotFound), errors.Is(err, bank.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, bank.ErrBalanceCap), errors.Is(err, bank.ErrTransferReverted):
		return http.StatusConflict
	case errors.Is(err, bank.ErrIDSpaceExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

type transactionView struct {
	AccountID   uint32    `json:"account_id"`
	Amount      int64     `json:"amount"`
	AmountText  string    `json:"amount_text"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type accountView struct {
	ID           uint32    `json:"id"`
	Kind         bank.Kind `json:"kind"`
	Balance      int64     `json:"balance"`
	BalanceText  string    `json:"balance_text"`
	BalanceCap   int64     `json:"balance_cap,omitempty"`
	Transactions int       `json:"transactions"`
}

type userView struct {
	ID uint32 `json:"id"`
	bank.Profile
	Accounts []accountView `json:"accounts"`
}

func (s *Server) transactionView(tx bank.Transaction) transactionView {
	return transactionView{
		AccountID:   tx.AccountID,
		Amount:      tx.Amount,
		AmountText:  s.money.Format(tx.Amount),
		Description: tx.Description,
		Timestamp:   tx.Timestamp,
	}
}

func (s *Server) accountView(a *bank.Account) accountView {
	sum := a.Summary()
	return accountView{
		ID:           sum.ID,
		Kind:         sum.Kind,
		Balance:      sum.Balance,
		BalanceText:  s.money.Format(sum.Balance),
		BalanceCap:   sum.BalanceCap,
		Transactions: sum.Transactions,
	}
}

func (s *Server) userView(u *bank.User) userView {
	v := userView{ID: u.ID(), Profile: u.Profile(), Accounts: []accountView{}}
	for _, a := range u.Accounts() {
		v.Accounts = append(v.Accounts, s.accountView(a))
	}
	return v
}
