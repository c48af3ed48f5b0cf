// internal/shell/shell.go

// Package shell 提供互動式主控台：以數字選單操作使用者、帳戶、存提款與轉帳。
// 輸入來源與輸出目標皆為抽象的 io.Reader / io.Writer，方便測試。
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"personalledger/internal/bank"
	"personalledger/internal/money"
	"personalledger/internal/report"
)

const menu = `
==== PERSONAL LEDGER ====
1) Create user
2) Open account
3) Deposit
4) Withdraw
5) Transfer
6) Show user
7) Show all users
0) Quit
`

// errNoUsers 代表尚未建立任何使用者。
var errNoUsers = errors.New("no users yet")

// Shell 為單一使用者的互動工作階段。
type Shell struct {
	bank    *bank.Bank
	in      *bufio.Scanner
	out     io.Writer
	printer *report.Printer
	money   *money.Formatter
}

// New 建立主控台；f 為 nil 時使用 en-US 美元格式。
func New(b *bank.Bank, in io.Reader, out io.Writer, f *money.Formatter, loc *time.Location) *Shell {
	if f == nil {
		f = money.NewFormatter("en-US", "$")
	}
	return &Shell{
		bank:    b,
		in:      bufio.NewScanner(in),
		out:     out,
		printer: report.NewPrinter(out, f, loc),
		money:   f,
	}
}

// Run 反覆顯示選單直到選擇 0 或輸入結束（EOF）。
// 單一操作的錯誤只會顯示出來，不會中止工作階段。
func (s *Shell) Run() error {
	for {
		fmt.Fprint(s.out, menu)
		choice, err := s.ask("> ")
		if err != nil {
			return endOfInput(err)
		}

		var opErr error
		switch choice {
		case "1":
			opErr = s.createUser()
		case "2":
			opErr = s.openAccount()
		case "3":
			opErr = s.deposit()
		case "4":
			opErr = s.withdraw()
		case "5":
			opErr = s.transfer()
		case "6":
			opErr = s.showUser()
		case "7":
			opErr = s.printer.All(s.bank.Registry().All())
		case "0":
			fmt.Fprintln(s.out, "Bye.")
			return nil
		default:
			fmt.Fprintf(s.out, "Invalid choice %q.\n", choice)
			continue
		}

		if opErr != nil {
			if errors.Is(opErr, io.EOF) {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %v\n", opErr)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// ask 輸出提示並讀取一行（去除前後空白）。
func (s *Shell) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// askIndex 讀取 1 起算的序號並轉成 0 起算。
func (s *Shell) askIndex(prompt string, n int) (int, error) {
	raw, err := s.ask(prompt)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 1 || i > n {
		return 0, bank.ErrBadSelection
	}
	return i - 1, nil
}

// askCents 讀取金額字串；allowEmpty 時空白視為 0。
func (s *Shell) askCents(prompt string, allowEmpty bool) (int64, error) {
	raw, err := s.ask(prompt)
	if err != nil {
		return 0, err
	}
	if raw == "" && allowEmpty {
		return 0, nil
	}
	return money.ParseDollars(raw)
}

func (s *Shell) createUser() error {
	var p bank.Profile
	var err error
	if p.FirstName, err = s.ask("First name: "); err != nil {
		return err
	}
	if p.LastName, err = s.ask("Last name: "); err != nil {
		return err
	}
	if p.Email, err = s.ask("Email: "); err != nil {
		return err
	}
	if p.Phone, err = s.ask("Phone: "); err != nil {
		return err
	}
	u, err := s.bank.CreateUser(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Created user #%d.\n", u.ID())
	return nil
}

// pickUser 列出所有使用者並讓使用者挑選一位。
func (s *Shell) pickUser() (*bank.User, error) {
	users := s.bank.Users()
	if len(users) == 0 {
		return nil, errNoUsers
	}
	for i, u := range users {
		fmt.Fprintf(s.out, "%d) #%d %s\n", i+1, u.ID(), u.FullName())
	}
	i, err := s.askIndex("User: ", len(users))
	if err != nil {
		return nil, err
	}
	return users[i], nil
}

// pickAccount 列出使用者的帳戶並回傳 0 起算的序號。
func (s *Shell) pickAccount(u *bank.User) (int, error) {
	accounts := u.Accounts()
	if len(accounts) == 0 {
		return 0, fmt.Errorf("user #%d: %w", u.ID(), bank.ErrBadSelection)
	}
	for i, a := range accounts {
		fmt.Fprintf(s.out, "%d) #%d %s %s\n", i+1, a.ID(), a.Kind(), s.money.Format(a.Balance()))
	}
	return s.askIndex("Account: ", len(accounts))
}

// pickUserAccount 依序挑選使用者與帳戶。
func (s *Shell) pickUserAccount() (*bank.User, int, error) {
	u, err := s.pickUser()
	if err != nil {
		return nil, 0, err
	}
	idx, err := s.pickAccount(u)
	if err != nil {
		return nil, 0, err
	}
	return u, idx, nil
}

func (s *Shell) openAccount() error {
	u, err := s.pickUser()
	if err != nil {
		return err
	}
	raw, err := s.ask("Type (checking/savings) [checking]: ")
	if err != nil {
		return err
	}
	kind, err := bank.ParseKind(strings.ToLower(raw))
	if err != nil {
		return err
	}
	opening, err := s.askCents("Opening balance [0]: ", true)
	if err != nil {
		return err
	}
	a, err := s.bank.OpenAccount(u.ID(), bank.AccountRequest{Kind: kind, OpeningBalance: opening})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Opened %s account #%d.\n", a.Kind(), a.ID())
	return nil
}

func (s *Shell) deposit() error {
	u, idx, err := s.pickUserAccount()
	if err != nil {
		return err
	}
	amount, err := s.askCents("Amount: ", false)
	if err != nil {
		return err
	}
	if err := u.Deposit(idx, amount); err != nil {
		return err
	}
	a, _ := u.AccountAt(idx)
	return s.printer.AccountInfo(a)
}

func (s *Shell) withdraw() error {
	u, idx, err := s.pickUserAccount()
	if err != nil {
		return err
	}
	amount, err := s.askCents("Amount: ", false)
	if err != nil {
		return err
	}
	a, err := s.bank.Withdraw(mustAccount(u, idx).ID(), amount)
	if err != nil {
		return err
	}
	return s.printer.AccountInfo(a)
}

func (s *Shell) transfer() error {
	fmt.Fprintln(s.out, "From:")
	fu, fi, err := s.pickUserAccount()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "To:")
	tu, ti, err := s.pickUserAccount()
	if err != nil {
		return err
	}
	amount, err := s.askCents("Amount: ", false)
	if err != nil {
		return err
	}
	from, to := mustAccount(fu, fi), mustAccount(tu, ti)
	if err := s.bank.Transfer(from.ID(), to.ID(), amount); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Transfer complete.")
	if err := s.printer.AccountInfo(from); err != nil {
		return err
	}
	return s.printer.AccountInfo(to)
}

func (s *Shell) showUser() error {
	u, err := s.pickUser()
	if err != nil {
		return err
	}
	return s.printer.User(u)
}

// mustAccount 取得已通過 pickAccount 檢查的帳戶；帳戶只增不減，序號必定有效。
func mustAccount(u *bank.User, idx int) *bank.Account {
	a, err := u.AccountAt(idx)
	if err != nil {
		panic(err)
	}
	return a
}
