package docstore

import (
	"context"
	"sync"
)

type Op string

const (
	OpList   Op = "list"
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Faulty wraps a Store, counts calls per operation and fails operations on demand.
// Tests use it to observe remote traffic and to simulate backend failures.
type Faulty struct {
	Store

	mu    sync.Mutex
	calls map[Op]int
	fail  map[Op]error
}

func NewFaulty(inner Store) *Faulty {
	return &Faulty{
		Store: inner,
		calls: make(map[Op]int),
		fail:  make(map[Op]error),
	}
}

// Fail makes every subsequent call of op return err. A nil err clears it.
func (f *Faulty) Fail(op Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

func (f *Faulty) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *Faulty) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *Faulty) enter(op Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.fail[op]
}

func (f *Faulty) List(ctx context.Context, collection string) ([]Document, error) {
	if err := f.enter(OpList); err != nil {
		return nil, err
	}
	return f.Store.List(ctx, collection)
}

func (f *Faulty) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	if err := f.enter(OpAdd); err != nil {
		return "", err
	}
	return f.Store.Add(ctx, collection, fields)
}

func (f *Faulty) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := f.enter(OpUpdate); err != nil {
		return err
	}
	return f.Store.Update(ctx, collection, id, fields)
}

func (f *Faulty) Delete(ctx context.Context, collection, id string) error {
	if err := f.enter(OpDelete); err != nil {
		return err
	}
	return f.Store.Delete(ctx, collection, id)
}
