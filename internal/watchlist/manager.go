package watchlist

import (
	"log"
	"sort"
	"strings"
	"sync"
)

// Manager guards watchlist state behind a mutex so the scheduler's tasks
// and ad-hoc CLI runs can share one instance.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager loads the watchlist from disk, seeding and persisting the
// default list when the file is missing or empty.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	m := &Manager{state: state, filePath: filePath}
	if len(state.Sectors) == 0 && len(state.Universe) == 0 {
		m.state = DefaultState()
		m.save()
	}
	return m, nil
}

// Tickers returns the tickers for one sector, or all sectors flattened
// when sector is empty. The result is deduplicated and sorted.
func (m *Manager) Tickers(sector string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var raw []string
	if sector == "" {
		for _, list := range m.state.Sectors {
			raw = append(raw, list...)
		}
	} else {
		raw = append(raw, m.state.Sectors[strings.ToLower(sector)]...)
	}
	return dedupSorted(raw)
}

// Sectors returns the configured sector names, sorted.
func (m *Manager) Sectors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.state.Sectors))
	for name := range m.state.Sectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Universe returns the discovery universe, deduplicated and sorted.
func (m *Manager) Universe() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return dedupSorted(m.state.Universe)
}

// Add appends tickers to a sector (creating the sector if needed),
// persists the change, and reports how many were actually new.
func (m *Manager) Add(sector string, tickers ...string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	sector = strings.ToLower(strings.TrimSpace(sector))
	if sector == "" || len(tickers) == 0 {
		return 0
	}
	if m.state.Sectors == nil {
		m.state.Sectors = make(map[string][]string)
	}
	existing := make(map[string]bool, len(m.state.Sectors[sector]))
	for _, t := range m.state.Sectors[sector] {
		existing[t] = true
	}
	added := 0
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || existing[t] {
			continue
		}
		m.state.Sectors[sector] = append(m.state.Sectors[sector], t)
		existing[t] = true
		added++
	}
	if added > 0 {
		m.save()
	}
	return added
}

// MergeUniverse adds new tickers to the discovery universe and reports how
// many were actually new.
func (m *Manager) MergeUniverse(tickers ...string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]bool, len(m.state.Universe))
	for _, t := range m.state.Universe {
		existing[t] = true
	}
	added := 0
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || existing[t] {
			continue
		}
		m.state.Universe = append(m.state.Universe, t)
		existing[t] = true
		added++
	}
	if added > 0 {
		m.save()
	}
	return added
}

func (m *Manager) save() {
	if err := SaveState(m.filePath, m.state); err != nil {
		log.Printf("[ERROR] failed to save watchlist state: %v", err)
	}
}

func dedupSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
