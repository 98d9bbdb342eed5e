package wallet

import "testing"

func testDirectory(t *testing.T, total int) *Directory {
	t.Helper()
	m := testMaterial(t)
	if err := m.ExtendTo(total); err != nil {
		t.Fatal(err)
	}
	return NewDirectory(m)
}

func TestDirectory_Pages(t *testing.T) {
	tests := []struct {
		total, pages int
	}{
		{1, 1},
		{9, 1},
		{10, 1},
		{11, 2},
		{20, 2},
		{21, 3},
	}
	for _, tt := range tests {
		d := testDirectory(t, tt.total)
		if got := d.Pages(); got != tt.pages {
			t.Errorf("total %d: pages = %d, want %d", tt.total, got, tt.pages)
		}
		if d.Total() != tt.total {
			t.Errorf("total = %d, want %d", d.Total(), tt.total)
		}
	}
}

func TestDirectory_SetPageClamps(t *testing.T) {
	d := testDirectory(t, 25) // 3 pages

	d.SetPage(0)
	if d.Page() != 1 {
		t.Errorf("page = %d, want clamp to 1", d.Page())
	}
	d.SetPage(99)
	if d.Page() != 3 {
		t.Errorf("page = %d, want clamp to 3", d.Page())
	}
	d.SetPage(2)
	if d.Page() != 2 {
		t.Errorf("page = %d, want 2", d.Page())
	}
}

func TestDirectory_ActiveSlices(t *testing.T) {
	d := testDirectory(t, 25)

	if got := len(d.Active()); got != PageSize {
		t.Errorf("page 1 has %d accounts, want %d", got, PageSize)
	}
	d.SetPage(3)
	active := d.Active()
	if len(active) != 5 {
		t.Fatalf("page 3 has %d accounts, want 5", len(active))
	}
	if active[0].Index != 20 {
		t.Errorf("page 3 starts at index %d, want 20", active[0].Index)
	}
}

func TestDirectory_RepagingIdempotent(t *testing.T) {
	d := testDirectory(t, 25)
	d.SetPage(2)
	first := d.Active()
	d.SetPage(2)
	second := d.Active()
	if len(first) != len(second) || first[0] != second[0] {
		t.Error("re-paging should return the same slice contents")
	}
	if d.Total() != 25 {
		t.Error("paging must not change the account count")
	}
}

func TestDirectory_AddressOf(t *testing.T) {
	d := testDirectory(t, 12)
	addr, ok := d.AddressOf(11)
	if !ok || addr.IsZero() {
		t.Error("index 11 should resolve to a non-zero address")
	}
	if _, ok := d.AddressOf(12); ok {
		t.Error("index past the end should not resolve")
	}
}

func TestDirectory_SetUsername(t *testing.T) {
	d := testDirectory(t, 3)
	d.SetUsername(2, "alice.ns")
	acc, ok := d.Account(2)
	if !ok || acc.Username != "alice.ns" {
		t.Error("username decoration should stick")
	}
	// Address unchanged by decoration.
	if acc.Address.IsZero() {
		t.Error("decoration must not touch the address")
	}
}
