package invoice

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
)

// NumberStrategy hands out invoice numbers. The two implementations differ in
// what they guarantee and are kept apart on purpose.
type NumberStrategy interface {
	Next(ctx context.Context) (string, error)
}

const (
	RandomPrefix     = "INV-"
	SequentialPrefix = "REC-"
)

const numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomNumberer produces INV-YYYYMMDD-XXXX. Collisions are not checked here;
// the unique index on invoice_number catches the rare repeat.
type RandomNumberer struct {
	loc *time.Location
	now func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomNumberer(loc *time.Location, now func() time.Time, rnd *rand.Rand) *RandomNumberer {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomNumberer{loc: loc, now: now, rnd: rnd}
}

func (n *RandomNumberer) Next(context.Context) (string, error) {
	var suffix [4]byte
	n.mu.Lock()
	for i := range suffix {
		suffix[i] = numberAlphabet[n.rnd.IntN(len(numberAlphabet))]
	}
	n.mu.Unlock()
	return fmt.Sprintf("%s%s-%s", RandomPrefix, n.now().In(n.loc).Format("20060102"), suffix[:]), nil
}

type numberStore interface {
	NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)
}

// SequentialNumberer produces REC-000001, REC-000002, ... one past the
// highest number already stored. Two concurrent callers can get the same
// number; the loser hits the unique index and asks again.
type SequentialNumberer struct {
	store  numberStore
	prefix string
}

func NewSequentialNumberer(store numberStore) *SequentialNumberer {
	return &SequentialNumberer{store: store, prefix: SequentialPrefix}
}

func (n *SequentialNumberer) Next(ctx context.Context) (string, error) {
	existing, err := n.store.NumbersWithPrefix(ctx, n.prefix)
	if err != nil {
		return "", err
	}
	var last int64
	for _, num := range existing {
		seq, err := strconv.ParseInt(strings.TrimPrefix(num, n.prefix), 10, 64)
		if err != nil {
			continue
		}
		if seq > last {
			last = seq
		}
	}
	return fmt.Sprintf("%s%06d", n.prefix, last+1), nil
}
