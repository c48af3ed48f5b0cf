// internal/bank/ids_test.go

package bank

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// TestIDRanges 驗證產生的識別碼落在各自的區間且不重複。
func TestIDRanges(t *testing.T) {
	g := NewIDGenerator(rand.NewPCG(1, 2))

	seen := make(map[uint32]bool)
	for i := 0; i < 2000; i++ {
		id, err := g.NextUserID()
		if err != nil {
			t.Fatal(err)
		}
		if id < 100000 || id > 999999 {
			t.Fatalf("user id %d out of range", id)
		}
		if seen[id] {
			t.Fatalf("duplicate user id %d", id)
		}
		seen[id] = true
	}

	for i := 0; i < 2000; i++ {
		id, err := g.NextAccountID()
		if err != nil {
			t.Fatal(err)
		}
		if id < 100000000 || id > 999999999 {
			t.Fatalf("account id %d out of range", id)
		}
	}
}

// TestIDExhaustion 以極小區間驗證發放完畢時回傳錯誤而非無窮迴圈。
func TestIDExhaustion(t *testing.T) {
	g := NewIDGenerator(rand.NewPCG(3, 4))
	tiny := idRange{name: "tiny", min: 10, max: 14}

	seen := make(map[uint32]bool)
	for i := 0; i < tiny.size(); i++ {
		id, err := g.next(tiny)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if _, err := g.next(tiny); !errors.Is(err, ErrIDSpaceExhausted) {
		t.Fatalf("want ErrIDSpaceExhausted, got %v", err)
	}
	// 其他類別不受影響
	if _, err := g.NextUserID(); err != nil {
		t.Fatalf("user ids should still be available: %v", err)
	}
}
