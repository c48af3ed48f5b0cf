package shell

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"personalledger/internal/bank"
)

func run(t *testing.T, b *bank.Bank, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(b, strings.NewReader(input), &out, nil, time.UTC)
	if err := sh.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestSessionFlow(t *testing.T) {
	b := bank.NewBank()
	input := strings.Join([]string{
		// 建立使用者
		"1", "Jane", "Doe", "jane@example.com", "555-0100",
		// 支票帳戶開戶 $100，再開一個儲蓄帳戶
		"2", "1", "", "100",
		"2", "1", "savings", "",
		// 存入儲蓄、自支票提款、支票轉儲蓄 $5
		"3", "1", "2", "25.50",
		"4", "1", "1", "10",
		"5", "1", "1", "1", "2", "5",
		"9",
		"6", "1",
		"0",
	}, "\n") + "\n"

	out := run(t, b, input)

	users := b.Users()
	if len(users) != 1 {
		t.Fatalf("users=%d want 1", len(users))
	}
	accts := users[0].Accounts()
	if len(accts) != 2 {
		t.Fatalf("accounts=%d want 2", len(accts))
	}
	if got := accts[0].Balance(); got != 8500 {
		t.Fatalf("checking balance=%d want 8500", got)
	}
	if got := accts[1].Balance(); got != 3050 {
		t.Fatalf("savings balance=%d want 3050", got)
	}
	if accts[1].Kind() != bank.KindSavings {
		t.Fatalf("second account kind=%s", accts[1].Kind())
	}

	for _, want := range []string{
		`Invalid choice "9".`,
		"Transfer complete.",
		"NAME: Jane Doe | EMAIL: jane@example.com | PHONE: 555-0100",
		"TYPE: checking | BALANCE: $85.00",
		"TYPE: savings | BALANCE: $30.50",
		"Bye.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionErrorsKeepRunning(t *testing.T) {
	b := bank.NewBank()
	input := strings.Join([]string{
		"3",
		"1", "A", "B", "", "",
		"3", "1",
		"2", "1", "bond",
		"2", "1", "", "",
		"3", "1", "7",
		"3", "1", "1", "ten",
		"4", "1", "1", "0",
		"7",
		"0",
	}, "\n") + "\n"

	out := run(t, b, input)

	for _, want := range []string{
		"Error: no users yet",
		"account selection out of range",
		`unknown account kind "bond"`,
		"invalid amount",
		"Error: bad amount",
		"BALANCE: $0.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if a := b.Users()[0].Accounts()[0]; a.History().Len() != 0 {
		t.Fatalf("rejected operations left %d transactions", a.History().Len())
	}
}

func TestSessionEndsOnEOF(t *testing.T) {
	b := bank.NewBank()

	// 操作進行到一半輸入就結束
	out := run(t, b, "1\nJane\n")
	if len(b.Users()) != 0 {
		t.Fatalf("partial input created a user")
	}
	if strings.Contains(out, "Error") {
		t.Fatalf("EOF reported as error:\n%s", out)
	}

	// 空輸入
	run(t, b, "")
}

func TestTransferRevertedIsReported(t *testing.T) {
	b := bank.NewBank()
	u, _ := b.CreateUser(bank.Profile{FirstName: "A", LastName: "B"})
	src, _ := b.OpenAccount(u.ID(), bank.AccountRequest{OpeningBalance: 1000})
	if _, err := b.OpenAccount(u.ID(), bank.AccountRequest{BalanceCap: 100}); err != nil {
		t.Fatal(err)
	}

	out := run(t, b, "5\n1\n1\n1\n2\n5\n0\n")
	if !strings.Contains(out, "transfer reverted") {
		t.Fatalf("missing rollback message:\n%s", out)
	}
	if src.Balance() != 1000 || src.History().Len() != 3 {
		t.Fatalf("source balance=%d len=%d", src.Balance(), src.History().Len())
	}
}
