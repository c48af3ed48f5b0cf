// internal/bank/history.go
//
// History 為單一帳戶的交易紀錄：只允許附加（append-only），
// 插入順序即時間順序，不重新排序、不從中間刪除。

package bank

import (
	"iter"
	"sync"
	"time"
)

// History 以切片保存交易。
// mu 讓報表讀取可以與帳戶寫入並行；寫入的序列化由擁有它的 Account 負責。
type History struct {
	mu      sync.RWMutex
	entries []Transaction
	now     func() time.Time
}

// NewHistory 建立空的交易紀錄；now 為 nil 時使用 time.Now。
func NewHistory(now func() time.Time) *History {
	if now == nil {
		now = time.Now
	}
	return &History{now: now}
}

// Append 以目前時間建立一筆交易並附加在最後。
// amount 不可為 0（由 Account 先行拒絕）。
func (h *History) Append(accountID uint32, amount int64) {
	tx := newTransaction(accountID, amount, h.now())
	h.mu.Lock()
	h.entries = append(h.entries, tx)
	h.mu.Unlock()
}

// All 依插入順序逐筆產出交易。
// 每次迭代開始時取當下長度的切片，之後的附加不影響本次迭代；可重複呼叫。
func (h *History) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		h.mu.RLock()
		view := h.entries[:len(h.entries):len(h.entries)]
		h.mu.RUnlock()
		for _, tx := range view {
			if !yield(tx) {
				return
			}
		}
	}
}

// Transactions 回傳交易紀錄的值拷貝。
func (h *History) Transactions() []Transaction {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Transaction, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len 回傳交易筆數。
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Sum 回傳所有交易金額總和，應恆等於帳戶餘額。
func (h *History) Sum() int64 {
	var sum int64
	for tx := range h.All() {
		sum += tx.Amount
	}
	return sum
}
