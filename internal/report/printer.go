// internal/report/printer.go

// Package report 將帳本狀態輸出成主控台文字報表或結構化對帳單（JSON / CSV / XLSX）。
// 報表只讀取已完成的狀態，不會修改帳本。
package report

import (
	"fmt"
	"io"
	"iter"
	"time"

	"personalledger/internal/bank"
	"personalledger/internal/money"
)

// TimeLayout 為交易時間的顯示格式。
const TimeLayout = "2006-01-02 15:04:05"

// Printer 輸出主控台樣式的文字報表。
// 第一次寫入失敗後其餘輸出都會略過，錯誤由各方法回傳。
type Printer struct {
	w     io.Writer
	money *money.Formatter
	loc   *time.Location
	err   error
}

// NewPrinter 建立文字報表輸出器；loc 為 nil 時使用本地時區。
func NewPrinter(w io.Writer, f *money.Formatter, loc *time.Location) *Printer {
	if loc == nil {
		loc = time.Local
	}
	return &Printer{w: w, money: f, loc: loc}
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// AccountInfo 輸出帳號與餘額。
func (p *Printer) AccountInfo(a *bank.Account) error {
	s := a.Snapshot()
	p.accountLine(s)
	return p.err
}

// Transactions 依時間順序輸出帳戶的所有交易。
func (p *Printer) Transactions(a *bank.Account) error {
	for tx := range a.History().All() {
		p.transactionLine(tx)
	}
	return p.err
}

// User 輸出使用者資料，接著依開戶順序輸出每個帳戶的資訊與交易紀錄。
func (p *Printer) User(u *bank.User) error {
	prof := u.Profile()
	p.printf("USER #: %d | NAME: %s | EMAIL: %s | PHONE: %s\n", u.ID(), u.FullName(), prof.Email, prof.Phone)
	for _, a := range u.Accounts() {
		s := a.Snapshot()
		p.accountLine(s)
		for _, tx := range s.Transactions {
			p.transactionLine(tx)
		}
	}
	return p.err
}

// All 依建立順序輸出所有使用者。
func (p *Printer) All(users iter.Seq[*bank.User]) error {
	for u := range users {
		if err := p.User(u); err != nil {
			return err
		}
		p.printf("\n")
	}
	return p.err
}

func (p *Printer) accountLine(s bank.AccountSnapshot) {
	p.printf("ACCOUNT #: %d | TYPE: %s | BALANCE: %s\n", s.ID, s.Kind, p.money.Format(s.Balance))
}

func (p *Printer) transactionLine(tx bank.Transaction) {
	p.printf("ACCOUNT #: %d | AMOUNT: %s | DESC: %s | TIME: %s\n",
		tx.AccountID, p.money.Format(tx.Amount), tx.Description, tx.Timestamp.In(p.loc).Format(TimeLayout))
}
