// internal/bank/registry.go
//
// Registry 依加入順序保存使用者，以識別碼線性查找。
// 識別碼的唯一性由 IDGenerator 保證，此處不檢查重複。

package bank

import (
	"iter"
	"sync"
)

// Registry 為使用者索引。
type Registry struct {
	mu    sync.RWMutex
	users []*User
}

// NewRegistry 建立空的使用者索引。
func NewRegistry() *Registry {
	return &Registry{}
}

// Add 將使用者附加到最後。
func (r *Registry) Add(u *User) {
	r.mu.Lock()
	r.users = append(r.users, u)
	r.mu.Unlock()
}

// Find 回傳第一個識別碼相符的使用者；找不到時 ok 為 false。
func (r *Registry) Find(id uint32) (*User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID() == id {
			return u, true
		}
	}
	return nil, false
}

// FindAccount 依序走訪所有使用者的帳戶，回傳識別碼相符者。
func (r *Registry) FindAccount(id uint32) (*Account, bool) {
	for u := range r.All() {
		for _, a := range u.Accounts() {
			if a.ID() == id {
				return a, true
			}
		}
	}
	return nil, false
}

// All 依加入順序逐一產出使用者。
func (r *Registry) All() iter.Seq[*User] {
	return func(yield func(*User) bool) {
		r.mu.RLock()
		view := r.users[:len(r.users):len(r.users)]
		r.mu.RUnlock()
		for _, u := range view {
			if !yield(u) {
				return
			}
		}
	}
}

// Len 回傳使用者數量。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
