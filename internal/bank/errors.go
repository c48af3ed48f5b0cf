// internal/bank/errors.go
//
// 本檔集中定義帳本核心的領域錯誤（domain errors）。
// 所有「被拒絕」的操作都保證沒有任何狀態變更；上層（HTTP handler、互動式主控台）
// 以 errors.Is 判斷類別並轉換成對應的狀態碼或提示訊息。

package bank

import (
	"errors"
	"fmt"
)

var (
	// ErrBadAmount 代表金額非法（<= 0、開戶餘額為負，或會使餘額超出 int64 範圍）。
	// 對應 HTTP 狀態碼 400 Bad Request。
	ErrBadAmount = errors.New("bad amount")

	// ErrBalanceCap 代表存入後會超過帳戶的餘額上限。
	// 對應 HTTP 狀態碼 409 Conflict。
	ErrBalanceCap = errors.New("balance cap exceeded")

	// ErrTransferReverted 代表轉帳的入帳端失敗，已將扣款存回來源帳戶。
	// 來源帳戶餘額不變，但交易紀錄會多出一筆提款與一筆沖回存款。
	ErrTransferReverted = errors.New("transfer reverted")

	// ErrBadSelection 代表帳戶序號超出範圍。
	ErrBadSelection = errors.New("account selection out of range")

	// ErrUserNotFound 代表使用者不存在。
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound 代表帳戶不存在。
	ErrAccountNotFound = errors.New("account not found")

	// errOverflow 為 ErrBadAmount 的一種：異動後餘額會超出 int64 範圍。
	errOverflow = fmt.Errorf("%w: balance would overflow", ErrBadAmount)

	// ErrIDSpaceExhausted 代表某類別的識別碼區間已全部發放完畢。
	ErrIDSpaceExhausted = errors.New("identifier space exhausted")
)
