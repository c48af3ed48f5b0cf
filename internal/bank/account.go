// internal/bank/account.go
//
// Account 持有餘額與交易紀錄，提供存款、提款、轉帳。
// 不變量：任何時刻 balance == 交易紀錄金額總和。
// 金額以 int64 的最小貨幣單位（分）儲存。

package bank

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Kind 為帳戶種類（封閉集合）。
type Kind string

const (
	KindChecking Kind = "checking"
	KindSavings  Kind = "savings"
)

// ParseKind 將字串轉為 Kind；空字串視為支票帳戶。
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindChecking:
		return KindChecking, nil
	case KindSavings:
		return KindSavings, nil
	default:
		return "", fmt.Errorf("unknown account kind %q", s)
	}
}

// Account 為單一帳戶。
// - mu：序列化本帳戶的所有異動，確保交易紀錄順序與呼叫順序一致。
// - balanceCap：> 0 時存入後餘額不得超過此值；0 表示無上限。
type Account struct {
	mu         sync.Mutex
	id         uint32
	kind       Kind
	balance    int64
	balanceCap int64
	history    *History
}

// AccountOption 調整 NewAccount 的建立參數。
type AccountOption func(*accountOptions)

type accountOptions struct {
	kind       Kind
	opening    int64
	balanceCap int64
	now        func() time.Time
}

// WithKind 設定帳戶種類。
func WithKind(k Kind) AccountOption {
	return func(o *accountOptions) { o.kind = k }
}

// WithOpeningBalance 設定開戶餘額；正數會記成一筆存款。
func WithOpeningBalance(cents int64) AccountOption {
	return func(o *accountOptions) { o.opening = cents }
}

// WithBalanceCap 設定餘額上限（分）。
func WithBalanceCap(cents int64) AccountOption {
	return func(o *accountOptions) { o.balanceCap = cents }
}

// WithAccountClock 覆寫交易時間來源（測試用）。
func WithAccountClock(now func() time.Time) AccountOption {
	return func(o *accountOptions) { o.now = now }
}

// NewAccount 以指定識別碼建立帳戶。
// 開戶餘額不得為負，也不得超過餘額上限。
func NewAccount(id uint32, opts ...AccountOption) (*Account, error) {
	o := accountOptions{kind: KindChecking}
	for _, opt := range opts {
		opt(&o)
	}
	if o.opening < 0 || o.balanceCap < 0 {
		return nil, ErrBadAmount
	}
	if o.balanceCap > 0 && o.opening > o.balanceCap {
		return nil, ErrBalanceCap
	}
	a := &Account{
		id:         id,
		kind:       o.kind,
		balanceCap: o.balanceCap,
		history:    NewHistory(o.now),
	}
	if o.opening > 0 {
		a.credit(o.opening)
	}
	return a, nil
}

// ID 回傳帳戶識別碼。
func (a *Account) ID() uint32 { return a.id }

// Kind 回傳帳戶種類。
func (a *Account) Kind() Kind { return a.kind }

// BalanceCap 回傳餘額上限；0 表示無上限。
func (a *Account) BalanceCap() int64 { return a.balanceCap }

// History 回傳帳戶的交易紀錄（唯讀使用）。
func (a *Account) History() *History { return a.history }

// Balance 回傳目前餘額。
func (a *Account) Balance() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit 存款：金額需 > 0；有上限的帳戶不得超過上限。
// 被拒絕時餘額與交易紀錄皆不變。
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrBadAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance > math.MaxInt64-amount {
		return errOverflow
	}
	if a.balanceCap > 0 && a.balance > a.balanceCap-amount {
		return ErrBalanceCap
	}
	a.credit(amount)
	return nil
}

// Withdraw 提款：金額需 > 0。
// 不檢查餘額是否足夠，餘額可以變成負數，但不得低於 int64 下限。
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrBadAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance < math.MinInt64+amount {
		return errOverflow
	}
	a.balance -= amount
	a.history.Append(a.id, -amount)
	return nil
}

// Transfer 由本帳戶轉出 amount 到 dst，分兩段進行：
//  1. 自本帳戶提款；失敗則整筆轉帳失敗且無任何變更。
//  2. 存入 dst；失敗則把金額存回本帳戶（沖回），並回傳 ErrTransferReverted。
//
// 兩段之間沒有跨帳戶鎖，因此不是原子操作；沖回的兩筆紀錄會保留在本帳戶。
// dst 與本帳戶相同時，結果為餘額不變、多兩筆紀錄。
func (a *Account) Transfer(dst *Account, amount int64) error {
	if amount <= 0 {
		return ErrBadAmount
	}
	if dst == nil {
		return ErrAccountNotFound
	}
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	if err := dst.Deposit(amount); err != nil {
		a.mu.Lock()
		a.credit(amount)
		a.mu.Unlock()
		return fmt.Errorf("%w: deposit into %d: %w", ErrTransferReverted, dst.id, err)
	}
	return nil
}

// credit 增加餘額並記錄一筆存款；呼叫端需持有 mu（建構時除外）。
// 沖回時直接使用，不受餘額上限限制。
// 只用於開戶（自 0 起算）與沖回剛由本帳戶扣出的金額，因此不再檢查溢位。
func (a *Account) credit(amount int64) {
	a.balance += amount
	a.history.Append(a.id, amount)
}

// AccountSnapshot 為帳戶的唯讀快照，供報表與 JSON 輸出使用。
type AccountSnapshot struct {
	ID           uint32        `json:"id"`
	Kind         Kind          `json:"kind"`
	Balance      int64         `json:"balance"`
	BalanceCap   int64         `json:"balance_cap,omitempty"`
	Transactions []Transaction `json:"transactions"`
}

// Snapshot 在同一個臨界區內取得餘額與交易紀錄，兩者保證一致。
func (a *Account) Snapshot() AccountSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AccountSnapshot{
		ID:           a.id,
		Kind:         a.kind,
		Balance:      a.balance,
		BalanceCap:   a.balanceCap,
		Transactions: a.history.Transactions(),
	}
}

// AccountSummary 為不含交易明細的帳戶摘要。
type AccountSummary struct {
	ID           uint32
	Kind         Kind
	Balance      int64
	BalanceCap   int64
	Transactions int
}

// Summary 與 Snapshot 相同，但只計算交易筆數，不複製明細。
func (a *Account) Summary() AccountSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AccountSummary{
		ID:           a.id,
		Kind:         a.kind,
		Balance:      a.balance,
		BalanceCap:   a.balanceCap,
		Transactions: a.history.Len(),
	}
}
