// internal/report/statement.go
//
// 對帳單（Statement）為單一使用者在某時間點的結構化報表：
// Meta 記錄格式、版本與產生時間，其後為使用者資料與每個帳戶的快照。
// 對帳單只供輸出給呼叫端（HTTP 下載），不會被讀回。

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"personalledger/internal/bank"
	"personalledger/internal/money"
)

// StatementVersion 為對帳單結構版本號。
const StatementVersion = 1

// Meta 為對帳單中繼資料。
type Meta struct {
	Format      string    `json:"format"`
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
}

// StatementUser 為對帳單中的使用者資料。
type StatementUser struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
	bank.Profile
}

// Statement 為單一使用者的對帳單。
type Statement struct {
	Meta     Meta                   `json:"_meta"`
	User     StatementUser          `json:"user"`
	Accounts []bank.AccountSnapshot `json:"accounts"`
}

// BuildStatement 依開戶順序取得每個帳戶的快照。
func BuildStatement(u *bank.User, now time.Time) Statement {
	st := Statement{
		Meta: Meta{Format: "statement", Version: StatementVersion, GeneratedAt: now},
		User: StatementUser{ID: u.ID(), Name: u.FullName(), Profile: u.Profile()},
	}
	for _, a := range u.Accounts() {
		st.Accounts = append(st.Accounts, a.Snapshot())
	}
	return st
}

// WriteJSON 以縮排 JSON 輸出對帳單。
func WriteJSON(w io.Writer, st Statement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("encode statement: %w", err)
	}
	return nil
}

var csvHeader = []string{"account", "type", "amount_cents", "amount", "description", "time"}

// WriteCSV 每筆交易一列，依帳戶與時間順序排列。
func WriteCSV(w io.Writer, st Statement, f *money.Formatter, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range st.Accounts {
		for _, tx := range a.Transactions {
			row := []string{
				strconv.FormatUint(uint64(tx.AccountID), 10),
				string(a.Kind),
				strconv.FormatInt(tx.Amount, 10),
				f.Format(tx.Amount),
				tx.Description,
				tx.Timestamp.In(loc).Format(TimeLayout),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX 產生活頁簿：Summary 工作表列出帳戶餘額，每個帳戶另有一張交易明細工作表。
func WriteXLSX(w io.Writer, st Statement, f *money.Formatter, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	x := excelize.NewFile()
	defer x.Close()

	const summary = "Summary"
	if err := x.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	rows := [][]any{
		{"User", st.User.ID, st.User.Name},
		{"Generated", st.Meta.GeneratedAt.In(loc).Format(TimeLayout)},
		{},
		{"Account", "Type", "Balance"},
	}
	for _, a := range st.Accounts {
		rows = append(rows, []any{a.ID, string(a.Kind), f.Format(a.Balance)})
	}
	if err := writeRows(x, summary, rows); err != nil {
		return err
	}
	_ = x.SetColWidth(summary, "A", "C", 16)

	for _, a := range st.Accounts {
		sheet := strconv.FormatUint(uint64(a.ID), 10)
		if _, err := x.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}
		detail := [][]any{{"Amount (cents)", "Amount", "Description", "Time"}}
		for _, tx := range a.Transactions {
			detail = append(detail, []any{tx.Amount, f.Format(tx.Amount), tx.Description, tx.Timestamp.In(loc).Format(TimeLayout)})
		}
		if err := writeRows(x, sheet, detail); err != nil {
			return err
		}
		_ = x.SetColWidth(sheet, "A", "D", 20)
	}

	if err := x.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRows(x *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := x.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
