package wallet

import (
	"sync"

	"github.com/namesweep/namesweep/pkg/types"
)

// PageSize is the fixed number of accounts per directory page.
const PageSize = 10

// Directory presents the derived account sequence in fixed-size pages.
// Paging never derives anything and re-paging is idempotent.
type Directory struct {
	mu       sync.RWMutex
	accounts []*Account
	page     int
}

// NewDirectory wraps derived material, starting on page 1.
func NewDirectory(m *Material) *Directory {
	return &Directory{accounts: m.Accounts, page: 1}
}

// Total returns the number of derived accounts.
func (d *Directory) Total() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}

// Pages returns the page count, ceil(total/PageSize).
func (d *Directory) Pages() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pagesLocked()
}

func (d *Directory) pagesLocked() int {
	n := (len(d.accounts) + PageSize - 1) / PageSize
	if n < 1 {
		n = 1
	}
	return n
}

// Page returns the current page number, starting at 1.
func (d *Directory) Page() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.page
}

// SetPage moves to page n, clamped to [1, Pages].
func (d *Directory) SetPage(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if max := d.pagesLocked(); n > max {
		n = max
	}
	d.page = n
}

// Active returns the accounts on the current page.
func (d *Directory) Active() []*Account {
	d.mu.RLock()
	defer d.mu.RUnlock()
	start := (d.page - 1) * PageSize
	if start >= len(d.accounts) {
		return nil
	}
	end := start + PageSize
	if end > len(d.accounts) {
		end = len(d.accounts)
	}
	return d.accounts[start:end]
}

// Account returns the account at the given derivation index.
func (d *Directory) Account(index uint32) (*Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if int(index) >= len(d.accounts) {
		return nil, false
	}
	return d.accounts[index], true
}

// AddressOf returns the address at the given derivation index. It reads the
// derived sequence and never triggers new derivation.
func (d *Directory) AddressOf(index uint32) (types.Address, bool) {
	acc, ok := d.Account(index)
	if !ok {
		return types.Address{}, false
	}
	return acc.Address, true
}

// SetUsername annotates an account with a resolved display name.
func (d *Directory) SetUsername(index uint32, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(index) < len(d.accounts) {
		d.accounts[index].Username = name
	}
}
