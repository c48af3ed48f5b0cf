// internal/bank/bank_test.go
//
// Bank 聚合根的整合測試：以識別碼建立使用者、開戶、存提款、轉帳與沖回。
// 所有測試皆為 in-memory 執行，不依賴外部服務。

package bank

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// openAccount 為小工具：開戶失敗即終止測試。
func openAccount(t *testing.T, b *Bank, userID uint32, req AccountRequest) *Account {
	t.Helper()
	a, err := b.OpenAccount(userID, req)
	if err != nil {
		t.Fatalf("OpenAccount(%d) err=%v", userID, err)
	}
	return a
}

// TestCreateUserAndOpenAccounts 驗證使用者與帳戶建立、查詢與順序。
func TestCreateUserAndOpenAccounts(t *testing.T) {
	b := NewBank(WithClock(fixedClock()))
	u, err := b.CreateUser(Profile{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatal(err)
	}
	if u.ID() < 100000 || u.ID() > 999999 {
		t.Fatalf("user id %d out of range", u.ID())
	}

	chk := openAccount(t, b, u.ID(), AccountRequest{Kind: KindChecking, OpeningBalance: 1000})
	sav := openAccount(t, b, u.ID(), AccountRequest{Kind: KindSavings})
	if chk.ID() == sav.ID() {
		t.Fatalf("account ids should be unique: %d", chk.ID())
	}

	got, err := b.User(u.ID())
	if err != nil || got != u {
		t.Fatalf("User(%d)=%v,%v", u.ID(), got, err)
	}
	if accts := got.Accounts(); len(accts) != 2 || accts[0] != chk || accts[1] != sav {
		t.Fatalf("accounts out of order")
	}
	if a, err := b.Account(sav.ID()); err != nil || a != sav {
		t.Fatalf("Account(%d)=%v,%v", sav.ID(), a, err)
	}
	if len(b.Users()) != 1 {
		t.Fatalf("Users len=%d want=1", len(b.Users()))
	}
}

// TestNotFound 驗證不存在的使用者與帳戶以明確錯誤回報。
func TestNotFound(t *testing.T) {
	b := NewBank()
	if _, err := b.User(1); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
	if _, err := b.OpenAccount(1, AccountRequest{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
	if _, err := b.Deposit(1, 10); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
	if _, err := b.Withdraw(1, 10); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
	if err := b.Transfer(1, 2, 10); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

// TestBankTransferAndRollbackLogged 驗證以識別碼轉帳，沖回時輸出 WARN。
func TestBankTransferAndRollbackLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := NewBank(WithLogger(logger), WithClock(fixedClock()))

	u, _ := b.CreateUser(Profile{FirstName: "A"})
	a := openAccount(t, b, u.ID(), AccountRequest{OpeningBalance: 10000})
	capped := openAccount(t, b, u.ID(), AccountRequest{Kind: KindSavings, BalanceCap: 2000})

	if err := b.Transfer(a.ID(), capped.ID(), 1500); err != nil {
		t.Fatal(err)
	}
	if a.Balance() != 8500 || capped.Balance() != 1500 {
		t.Fatalf("a=%d capped=%d", a.Balance(), capped.Balance())
	}

	err := b.Transfer(a.ID(), capped.ID(), 1000)
	if !errors.Is(err, ErrTransferReverted) {
		t.Fatalf("want ErrTransferReverted, got %v", err)
	}
	if a.Balance() != 8500 || a.History().Len() != 4 {
		t.Fatalf("after rollback a=%d len=%d", a.Balance(), a.History().Len())
	}
	if !strings.Contains(buf.String(), "transfer failed") {
		t.Fatalf("rollback not logged: %s", buf.String())
	}

	if err := b.Transfer(a.ID(), capped.ID(), 0); !errors.Is(err, ErrBadAmount) {
		t.Fatalf("want ErrBadAmount, got %v", err)
	}
}

// TestBankDepositWithdraw 驗證以識別碼存提款並回傳帳戶。
func TestBankDepositWithdraw(t *testing.T) {
	b := NewBank()
	u, _ := b.CreateUser(Profile{})
	a := openAccount(t, b, u.ID(), AccountRequest{})

	if got, err := b.Deposit(a.ID(), 700); err != nil || got.Balance() != 700 {
		t.Fatalf("Deposit=%v,%v", got, err)
	}
	if got, err := b.Withdraw(a.ID(), 900); err != nil || got.Balance() != -200 {
		t.Fatalf("Withdraw=%v,%v", got, err)
	}
	if _, err := b.Deposit(a.ID(), -3); !errors.Is(err, ErrBadAmount) {
		t.Fatalf("want ErrBadAmount, got %v", err)
	}
}
