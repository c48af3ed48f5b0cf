// internal/money/money.go

// Package money 負責金額字串與最小貨幣單位（分）之間的轉換與顯示。
// 不屬於帳本正確性的一部分，只服務輸入解析與報表輸出。
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidAmount 代表無法解析的金額字串。
var ErrInvalidAmount = errors.New("invalid amount")

// dollarPattern 為去除正負號與貨幣符號後允許的格式：
// 純數字或正確的千分位分組，可帶小數；不接受指數與第二個正負號。
var dollarPattern = regexp.MustCompile(`^(\d+|\d{1,3}(,\d{3})+)?(\.\d*)?$`)

// ParseDollars 將 "12.345"、"$1,200.50"、"-3" 之類的字串轉成分，
// 以四捨五入（遠離零）處理小數第三位以後。
func ParseDollars(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	neg := strings.HasPrefix(clean, "-")
	clean = strings.TrimPrefix(clean, "-")
	clean = strings.TrimPrefix(clean, "$")
	if !dollarPattern.MatchString(clean) || !strings.ContainsAny(clean, "0123456789") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	clean = strings.ReplaceAll(clean, ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if neg {
		d = d.Neg()
	}
	cents := d.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, s)
	}
	return cents.IntPart(), nil
}

// Formatter 依地區設定輸出帶千分位的金額，例如 "-$1,234.56"。
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter 以 BCP 47 地區標籤（如 "en-US"）與貨幣符號建立 Formatter。
// 無法解析的標籤退回 en-US。
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	if symbol == "" {
		symbol = "$"
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Format 將分轉為帶正負號的貨幣字串。
func (f *Formatter) Format(cents int64) string {
	d := decimal.New(cents, -2)
	abs := d.Abs()
	whole := abs.IntPart()
	frac := abs.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()

	sign := ""
	if cents < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, f.symbol, f.printer.Sprintf("%d", whole), frac)
}
