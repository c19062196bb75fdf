package roles

import "fmt"

// Tier maps a win threshold to the role granted at that threshold.
type Tier struct {
	Threshold int    `yaml:"threshold"`
	RoleID    string `yaml:"role_id"`
}

// Table is an ordered list of tiers, highest threshold first.
type Table []Tier

// Validate checks that thresholds are positive, distinct and strictly
// decreasing, and that every tier names a role.
func (t Table) Validate() error {
	for i, tier := range t {
		if tier.Threshold <= 0 {
			return fmt.Errorf("tier %d: threshold must be positive, got %d", i, tier.Threshold)
		}
		if tier.RoleID == "" {
			return fmt.Errorf("tier %d: missing role id for threshold %d", i, tier.Threshold)
		}
		if i > 0 && tier.Threshold >= t[i-1].Threshold {
			return fmt.Errorf("tier %d: threshold %d is not strictly below %d", i, tier.Threshold, t[i-1].Threshold)
		}
	}
	return nil
}

// Qualifying returns the role IDs of every tier whose threshold the counter
// meets. The result grows monotonically with the counter.
func (t Table) Qualifying(counter int) []string {
	var ids []string
	for _, tier := range t {
		if counter >= tier.Threshold {
			ids = append(ids, tier.RoleID)
		}
	}
	return ids
}
