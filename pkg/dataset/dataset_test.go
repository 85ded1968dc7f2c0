package dataset

import "testing"

func TestCreateAndGet(t *testing.T) {
	m := NewManager()
	ds, err := m.Create("scan-001", DefaultQuota())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := m.Get("scan-001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != ds {
		t.Error("Get returned a different dataset than Create returned")
	}
}

func TestCreateDuplicateFails(t *testing.T) {
	m := NewManager()
	if _, err := m.Create("a", DefaultQuota()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Create("a", DefaultQuota()); err == nil {
		t.Error("expected duplicate Create to fail")
	}
}

func TestCheckPointQuotaExceeded(t *testing.T) {
	ds := &Dataset{Name: "x", Quota: Quota{MaxPoints: 100}}
	ds.IncrementPointCount(90)
	if err := ds.CheckPointQuota(20); err == nil {
		t.Error("expected quota exceeded error")
	}
	if err := ds.CheckPointQuota(5); err != nil {
		t.Errorf("expected quota to allow 5 more points, got %v", err)
	}
}

func TestCheckDimensionQuota(t *testing.T) {
	ds := &Dataset{Name: "x", Quota: Quota{MaxDimensions: 3}}
	if err := ds.CheckDimensionQuota(4); err == nil {
		t.Error("expected dimension quota exceeded error")
	}
	if err := ds.CheckDimensionQuota(3); err != nil {
		t.Errorf("expected dimension 3 to be allowed, got %v", err)
	}
}

func TestUnlimitedQuotaNeverRejects(t *testing.T) {
	ds := &Dataset{Name: "x", Quota: UnlimitedQuota()}
	ds.IncrementPointCount(1_000_000_000)
	if err := ds.CheckPointQuota(1_000_000_000); err != nil {
		t.Errorf("unlimited quota should never reject, got %v", err)
	}
}

func TestDeleteAndList(t *testing.T) {
	m := NewManager()
	m.Create("a", DefaultQuota())
	m.Create("b", DefaultQuota())
	if len(m.List()) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(m.List()))
	}
	if err := m.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(m.List()) != 1 {
		t.Errorf("expected 1 dataset after delete, got %d", len(m.List()))
	}
}
