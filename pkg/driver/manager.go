package driver

import (
	"fmt"
	"sort"
	"sync"
)

// FilterFn is being used to decide if a driver should be included in the
// query result.
type FilterFn func(Driver) bool

// FilterVideoRecorder return a filter function to get a list of registered VideoRecorders
func FilterVideoRecorder() FilterFn {
	return func(d Driver) bool {
		_, ok := d.(VideoRecorder)
		return ok
	}
}

// FilterID return a filter function to get registered drivers which have given ID
func FilterID(id string) FilterFn {
	return func(d Driver) bool {
		return d.ID() == id
	}
}

// FilterLabel return a filter function to get registered drivers which have given label
func FilterLabel(label string) FilterFn {
	return func(d Driver) bool {
		return d.Info().Label == label
	}
}

// FilterDeviceType returns a filter function to match a driver by a device type
func FilterDeviceType(t DeviceType) FilterFn {
	return func(d Driver) bool {
		return d.Info().DeviceType == t
	}
}

// FilterNot returns a filter function to negate a filter.
func FilterNot(filter FilterFn) FilterFn {
	return func(d Driver) bool {
		return !filter(d)
	}
}

// FilterAnd returns a filter function to take logical conjunction of given filters.
func FilterAnd(filters ...FilterFn) FilterFn {
	return func(d Driver) bool {
		for _, f := range filters {
			if !f(d) {
				return false
			}
		}
		return true
	}
}

// Manager is a singleton to manage multiple drivers and their states
type Manager struct {
	mu      sync.Mutex
	drivers map[string]Driver
}

var manager = NewManager()

// NewManager creates an empty Manager. Most callers use GetManager.
func NewManager() *Manager {
	return &Manager{drivers: make(map[string]Driver)}
}

// GetManager gets manager singleton instance
func GetManager() *Manager {
	return manager
}

// Register registers adapter to be discoverable by Query
func (m *Manager) Register(a Adapter, info Info) error {
	if a == nil {
		return fmt.Errorf("adapter can't be nil")
	}

	d := wrapAdapter(a, info)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[d.ID()] = d
	return nil
}

// Query queries by using f to filter drivers, and simply return the filtered results.
// The results are ordered by label.
func (m *Manager) Query(f FilterFn) []Driver {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]Driver, 0)
	for _, d := range m.drivers {
		if ok := f(d); ok {
			results = append(results, d)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].Info().Label, results[j].Info().Label
		if a != b {
			return a < b
		}
		return results[i].ID() < results[j].ID()
	})
	return results
}
