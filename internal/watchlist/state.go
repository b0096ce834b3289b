package watchlist

import (
	"encoding/json"
	"os"
	"time"
)

// State is the persisted watchlist: sector-grouped tickers to scan plus a
// wider universe used by mid-cap discovery.
type State struct {
	Sectors   map[string][]string `json:"sectors"`
	Universe  []string            `json:"universe"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// LoadState reads the watchlist from a JSON file. Returns a zero state if
// the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the watchlist to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

// DefaultState seeds a fresh watchlist with starter sector lists and a
// wider candidate pool for discovery, so the agent is useful before any
// operator curation.
func DefaultState() *State {
	return &State{
		Sectors: map[string][]string{
			"tech":       {"PLTR", "SNOW", "CRWD", "NET", "DDOG", "ZS"},
			"healthcare": {"TDOC", "VEEV", "HIMS"},
			"finance":    {"SOFI", "UPST", "AFRM"},
		},
		Universe: []string{
			"PLTR", "SNOW", "CRWD", "NET", "DDOG", "ZS", "OKTA", "FTNT",
			"PANW", "MDB", "TEAM", "WDAY", "DOCU", "TWLO", "SHOP",
			"SQ", "UBER", "LYFT", "COIN", "RBLX", "U", "PATH",
			"BILL", "PCTY", "HUBS", "ZM", "ESTC", "CFLT", "S", "FROG",
		},
	}
}
