package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Campaigns is the campaign label configuration: for each test case
// dimension (without the x prefix), the human label of each dimension
// value. Loaded once at startup and read-only afterwards.
type Campaigns map[string]map[string]string

// LoadCampaigns reads the campaign label configuration, typically
// campaigns.json next to the pipeline binary.
func LoadCampaigns(path string) (Campaigns, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}
	var c Campaigns
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("load campaigns %s: %w", path, err)
	}
	return c, nil
}

// Label resolves the human label of one dimension value.
func (c Campaigns) Label(dim string, value int) (string, error) {
	m, ok := c[dim]
	if !ok {
		return "", fmt.Errorf("campaigns: unknown dimension %q", dim)
	}
	l, ok := m[strconv.Itoa(value)]
	if !ok {
		return "", fmt.Errorf("campaigns: dimension %q has no label for %d", dim, value)
	}
	return l, nil
}
