// Package dataset is a named-collection registry for point clouds, with
// per-dataset quotas and usage tracking, the way a multi-tenant service
// tracks a named, quota-bounded unit of work per tenant.
package dataset

import (
	"fmt"
	"sync"
	"time"
)

// Quota bounds a dataset's resource usage. A non-positive field disables
// that bound.
type Quota struct {
	MaxPoints     int64
	MaxDimensions int
	RateLimitQPS  int
}

// DefaultQuota is a generous default suitable for interactive use.
func DefaultQuota() Quota {
	return Quota{MaxPoints: 10_000_000, MaxDimensions: 4, RateLimitQPS: 100}
}

// UnlimitedQuota disables every bound.
func UnlimitedQuota() Quota {
	return Quota{MaxPoints: -1, MaxDimensions: -1, RateLimitQPS: -1}
}

// usage tracks a dataset's current point count and query-rate window.
type usage struct {
	pointCount    int64
	lastQueryTime time.Time
	queryCount    int64
}

// Dataset is a named point-cloud collection with an enforced quota. The
// point buffer itself is not owned here; Dataset tracks counts and
// metadata, while the caller's pkg/pointcloud.Buffer (or plain [][]float64)
// holds the actual coordinates.
type Dataset struct {
	ID        string
	Name      string
	Quota     Quota
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool

	mu    sync.RWMutex
	usage usage
}

// Manager owns the registry of datasets by name.
type Manager struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
}

// NewManager creates an empty dataset registry.
func NewManager() *Manager {
	return &Manager{datasets: make(map[string]*Dataset)}
}

// Create registers a new dataset under name with the given quota.
func (m *Manager) Create(name string, quota Quota) (*Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.datasets[name]; exists {
		return nil, fmt.Errorf("dataset: %q already exists", name)
	}
	ds := &Dataset{
		ID:        fmt.Sprintf("ds_%s_%d", name, time.Now().UnixNano()),
		Name:      name,
		Quota:     quota,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Active:    true,
	}
	m.datasets[name] = ds
	return ds, nil
}

// Get returns the dataset registered under name.
func (m *Manager) Get(name string) (*Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ds, exists := m.datasets[name]
	if !exists {
		return nil, fmt.Errorf("dataset: %q not found", name)
	}
	return ds, nil
}

// Delete removes a dataset from the registry.
func (m *Manager) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.datasets[name]; !exists {
		return fmt.Errorf("dataset: %q not found", name)
	}
	delete(m.datasets, name)
	return nil
}

// List returns every registered dataset.
func (m *Manager) List() []*Dataset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Dataset, 0, len(m.datasets))
	for _, ds := range m.datasets {
		out = append(out, ds)
	}
	return out
}

// CheckPointQuota reports whether adding count points would exceed quota.
func (d *Dataset) CheckPointQuota(count int64) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.Quota.MaxPoints > 0 && d.usage.pointCount+count > d.Quota.MaxPoints {
		return fmt.Errorf("dataset %q: point quota exceeded (current=%d requested=%d max=%d)",
			d.Name, d.usage.pointCount, count, d.Quota.MaxPoints)
	}
	return nil
}

// CheckDimensionQuota reports whether dim exceeds the dataset's dimension cap.
func (d *Dataset) CheckDimensionQuota(dim int) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.Quota.MaxDimensions > 0 && dim > d.Quota.MaxDimensions {
		return fmt.Errorf("dataset %q: dimension quota exceeded (requested=%d max=%d)",
			d.Name, dim, d.Quota.MaxDimensions)
	}
	return nil
}

// CheckRateLimit enforces a fixed one-second query-rate window, which
// restarts at the first query after the previous window has elapsed.
func (d *Dataset) CheckRateLimit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Quota.RateLimitQPS <= 0 {
		return nil
	}
	now := time.Now()
	if now.Sub(d.usage.lastQueryTime) < time.Second {
		if d.usage.queryCount >= int64(d.Quota.RateLimitQPS) {
			return fmt.Errorf("dataset %q: rate limit exceeded (%d qps, max %d)",
				d.Name, d.usage.queryCount, d.Quota.RateLimitQPS)
		}
	} else {
		d.usage.queryCount = 0
		d.usage.lastQueryTime = now
	}
	d.usage.queryCount++
	return nil
}

// IncrementPointCount adjusts the dataset's tracked point count.
func (d *Dataset) IncrementPointCount(count int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.usage.pointCount += count
	if d.usage.pointCount < 0 {
		d.usage.pointCount = 0
	}
	d.UpdatedAt = time.Now()
}

// PointCount returns the dataset's currently tracked point count.
func (d *Dataset) PointCount() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.usage.pointCount
}

// SetActive toggles a dataset's active flag, used to soft-disable a
// dataset without removing its registration.
func (d *Dataset) SetActive(active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Active = active
	d.UpdatedAt = time.Now()
}
