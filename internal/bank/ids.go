// internal/bank/ids.go
//
// IDGenerator 發放行程內唯一的隨機識別碼。
// 帳戶與使用者各自維護已發放集合；區間有限，全部用完時回傳 ErrIDSpaceExhausted。

package bank

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// idRange 為閉區間 [min, max]。
type idRange struct {
	name     string
	min, max uint32
}

func (r idRange) size() int { return int(r.max-r.min) + 1 }

var (
	accountIDs = idRange{name: "account", min: 100000000, max: 999999999}
	userIDs    = idRange{name: "user", min: 100000, max: 999999}
)

// IDGenerator 由單一實例持有已發放集合，建立後傳給需要開戶或建立使用者的元件。
type IDGenerator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	issued map[string]map[uint32]struct{}
}

// NewIDGenerator 建立識別碼產生器；src 為 nil 時以目前時間作為種子。
func NewIDGenerator(src rand.Source) *IDGenerator {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	return &IDGenerator{
		rnd:    rand.New(src),
		issued: make(map[string]map[uint32]struct{}),
	}
}

// NextAccountID 回傳 [100000000, 999999999] 內未曾發放的帳戶識別碼。
func (g *IDGenerator) NextAccountID() (uint32, error) {
	return g.next(accountIDs)
}

// NextUserID 回傳 [100000, 999999] 內未曾發放的使用者識別碼。
func (g *IDGenerator) NextUserID() (uint32, error) {
	return g.next(userIDs)
}

// next 隨機抽取直到取得未發放的值。
func (g *IDGenerator) next(r idRange) (uint32, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seen := g.issued[r.name]
	if seen == nil {
		seen = make(map[uint32]struct{})
		g.issued[r.name] = seen
	}
	if len(seen) >= r.size() {
		return 0, fmt.Errorf("%s ids: %w", r.name, ErrIDSpaceExhausted)
	}
	for {
		id := r.min + g.rnd.Uint32N(r.max-r.min+1)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		return id, nil
	}
}
