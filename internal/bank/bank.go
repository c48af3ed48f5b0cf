// internal/bank/bank.go

// Package bank 定義帳本核心：交易紀錄、帳戶、使用者與使用者索引。
// 擁有關係為樹狀：Registry → User → Account → History → Transaction。
// 每個 Account 以自己的互斥鎖序列化異動；轉帳為「先扣款、再入帳、失敗則沖回」的兩段式操作。
// 金額以 int64 的最小貨幣單位（分）儲存，避免浮點誤差。
package bank

import (
	"io"
	"log/slog"
	"time"
)

// Bank 為聚合根：組合使用者索引、識別碼產生器、時鐘與 logger，
// 供 HTTP 層與互動式主控台以識別碼操作帳戶。
type Bank struct {
	users  *Registry
	ids    *IDGenerator
	now    func() time.Time
	logger *slog.Logger
}

// Option 調整 NewBank 的相依元件。
type Option func(*Bank)

// WithClock 覆寫交易時間來源（測試用）。
func WithClock(now func() time.Time) Option {
	return func(b *Bank) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLogger 設定 logger；未設定時丟棄所有輸出。
func WithLogger(l *slog.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithIDs 注入共用的識別碼產生器。
func WithIDs(g *IDGenerator) Option {
	return func(b *Bank) {
		if g != nil {
			b.ids = g
		}
	}
}

// NewBank 建立空白銀行實例（僅 in-memory 狀態）。
func NewBank(opts ...Option) *Bank {
	b := &Bank{
		users:  NewRegistry(),
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.ids == nil {
		b.ids = NewIDGenerator(nil)
	}
	return b
}

// Registry 回傳使用者索引（報表走訪用）。
func (b *Bank) Registry() *Registry { return b.users }

// CreateUser 以新的識別碼建立使用者並加入索引。
func (b *Bank) CreateUser(p Profile) (*User, error) {
	id, err := b.ids.NextUserID()
	if err != nil {
		return nil, err
	}
	u := NewUser(id, p)
	b.users.Add(u)
	b.logger.Debug("user created", "user_id", id)
	return u, nil
}

// AccountRequest 描述開戶參數；金額單位為分。
type AccountRequest struct {
	Kind           Kind
	OpeningBalance int64
	BalanceCap     int64
}

// OpenAccount 為指定使用者開立新帳戶。
func (b *Bank) OpenAccount(userID uint32, req AccountRequest) (*Account, error) {
	u, err := b.User(userID)
	if err != nil {
		return nil, err
	}
	id, err := b.ids.NextAccountID()
	if err != nil {
		return nil, err
	}
	a, err := NewAccount(id,
		WithKind(req.Kind),
		WithOpeningBalance(req.OpeningBalance),
		WithBalanceCap(req.BalanceCap),
		WithAccountClock(b.now),
	)
	if err != nil {
		return nil, err
	}
	u.AddAccount(a)
	b.logger.Debug("account opened", "user_id", userID, "account_id", id, "kind", req.Kind)
	return a, nil
}

// User 依識別碼取得使用者；不存在回傳 ErrUserNotFound。
func (b *Bank) User(id uint32) (*User, error) {
	u, ok := b.users.Find(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Users 依建立順序回傳所有使用者。
func (b *Bank) Users() []*User {
	out := make([]*User, 0, b.users.Len())
	for u := range b.users.All() {
		out = append(out, u)
	}
	return out
}

// Account 依識別碼取得帳戶；不存在回傳 ErrAccountNotFound。
func (b *Bank) Account(id uint32) (*Account, error) {
	a, ok := b.users.FindAccount(id)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// Deposit 存款至指定帳戶。
func (b *Bank) Deposit(id uint32, amount int64) (*Account, error) {
	a, err := b.Account(id)
	if err != nil {
		return nil, err
	}
	if err := a.Deposit(amount); err != nil {
		return nil, err
	}
	return a, nil
}

// Withdraw 自指定帳戶提款。
func (b *Bank) Withdraw(id uint32, amount int64) (*Account, error) {
	a, err := b.Account(id)
	if err != nil {
		return nil, err
	}
	if err := a.Withdraw(amount); err != nil {
		return nil, err
	}
	return a, nil
}

// Transfer 依識別碼在兩帳戶間轉帳；沖回時記錄 WARN。
func (b *Bank) Transfer(fromID, toID uint32, amount int64) error {
	if amount <= 0 {
		return ErrBadAmount
	}
	from, err := b.Account(fromID)
	if err != nil {
		return err
	}
	to, err := b.Account(toID)
	if err != nil {
		return err
	}
	if err := from.Transfer(to, amount); err != nil {
		b.logger.Warn("transfer failed", "from", fromID, "to", toID, "amount", amount, "error", err)
		return err
	}
	return nil
}
