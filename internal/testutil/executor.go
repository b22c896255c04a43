package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// FakeResult is a canned query result.
type FakeResult struct {
	Columns []core.ColumnDescriptor
	Rows    []core.RawRow
	Err     error
}

type fakeRule struct {
	match  string
	result FakeResult
}

// FakeExecutor is an in-memory core.Executor, core.InfoSource and
// core.Reconnector. Statements are matched by substring against rules in the
// order they were added.
type FakeExecutor struct {
	mu         sync.Mutex
	rules      []fakeRule
	info       map[core.InfoKey]string
	statements []string
	reconnects int
}

// NewFakeExecutor creates a fake answering GetInfo from info.
func NewFakeExecutor(info map[core.InfoKey]string) *FakeExecutor {
	if info == nil {
		info = map[core.InfoKey]string{}
	}
	return &FakeExecutor{info: info}
}

// On registers the result for statements containing match.
func (f *FakeExecutor) On(match string, result FakeResult) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, fakeRule{match: match, result: result})
	return f
}

// Fail registers an error for statements containing match.
func (f *FakeExecutor) Fail(match string, err error) *FakeExecutor {
	return f.On(match, FakeResult{Err: err})
}

func (f *FakeExecutor) lookup(sql string) FakeResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statements = append(f.statements, sql)
	for _, r := range f.rules {
		if strings.Contains(sql, r.match) {
			return r.result
		}
	}
	return FakeResult{}
}

// Execute records the statement.
func (f *FakeExecutor) Execute(_ context.Context, sql string) error {
	return f.lookup(sql).Err
}

// FetchRows records the statement and returns the matching result.
func (f *FakeExecutor) FetchRows(_ context.Context, sql string) ([]core.ColumnDescriptor, []core.RawRow, error) {
	r := f.lookup(sql)
	if r.Err != nil {
		return nil, nil, r.Err
	}
	return r.Columns, r.Rows, nil
}

// GetInfo returns the configured capability string.
func (f *FakeExecutor) GetInfo(_ context.Context, key core.InfoKey) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.info[key], nil
}

// Reconnect counts reconnects.
func (f *FakeExecutor) Reconnect(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reconnects++
	return nil
}

// Statements returns every statement seen, in order.
func (f *FakeExecutor) Statements() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.statements...)
}

// Reconnects returns how many times Reconnect was called.
func (f *FakeExecutor) Reconnects() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reconnects
}

// Reset forgets recorded statements.
func (f *FakeExecutor) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statements = nil
}
