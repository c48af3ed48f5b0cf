// internal/bank/transaction.go
//
// Transaction 為單筆餘額異動的不可變紀錄。

package bank

import "time"

// 交易描述，由金額正負號推導。
const (
	DescDeposit  = "Deposit"
	DescWithdraw = "Withdraw"
)

// Transaction 記錄一次存入（Amount > 0）或提出（Amount < 0），金額單位為分。
// 以值型別傳遞；寫入 History 之後不會再被修改。
type Transaction struct {
	AccountID   uint32    `json:"account_id"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// newTransaction 建立交易並推導描述；時間精度截到秒。
// 金額為 0 屬於呼叫端的程式錯誤（Account 會先拒絕），此處直接 panic。
func newTransaction(accountID uint32, amount int64, at time.Time) Transaction {
	if amount == 0 {
		panic("bank: zero-amount transaction")
	}
	desc := DescDeposit
	if amount < 0 {
		desc = DescWithdraw
	}
	return Transaction{
		AccountID:   accountID,
		Amount:      amount,
		Description: desc,
		Timestamp:   at.Truncate(time.Second),
	}
}

// IsDeposit 回報此筆交易是否為存入。
func (t Transaction) IsDeposit() bool { return t.Amount > 0 }
