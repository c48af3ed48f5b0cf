// internal/bank/user.go

package bank

import (
	"strings"
	"sync"
)

// Profile 為使用者的姓名與聯絡資訊。
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// User 擁有一組依加入順序排列的帳戶；帳戶只會增加，不會移除。
type User struct {
	mu       sync.RWMutex
	id       uint32
	profile  Profile
	accounts []*Account
}

// NewUser 建立沒有任何帳戶的使用者。
func NewUser(id uint32, p Profile) *User {
	return &User{id: id, profile: p}
}

// ID 回傳使用者識別碼。
func (u *User) ID() uint32 { return u.id }

// Profile 回傳姓名與聯絡資訊。
func (u *User) Profile() Profile { return u.profile }

// FullName 回傳「名 姓」。
func (u *User) FullName() string {
	return strings.TrimSpace(u.profile.FirstName + " " + u.profile.LastName)
}

// AddAccount 將帳戶附加到最後；不檢查重複。
func (u *User) AddAccount(a *Account) {
	u.mu.Lock()
	u.accounts = append(u.accounts, a)
	u.mu.Unlock()
}

// Accounts 依加入順序回傳帳戶清單（切片拷貝）。
func (u *User) Accounts() []*Account {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*Account, len(u.accounts))
	copy(out, u.accounts)
	return out
}

// AccountAt 以 0 起算的序號取得帳戶。
func (u *User) AccountAt(index int) (*Account, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if index < 0 || index >= len(u.accounts) {
		return nil, ErrBadSelection
	}
	return u.accounts[index], nil
}

// Deposit 存入使用者的第 index 個帳戶。
func (u *User) Deposit(index int, amount int64) error {
	a, err := u.AccountAt(index)
	if err != nil {
		return err
	}
	return a.Deposit(amount)
}
