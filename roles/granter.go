package roles

import (
	"fmt"

	logger "github.com/Dopachen/wisk-bot/log"
)

// MemberRoles is the slice of the Discord API the granter needs.
type MemberRoles interface {
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
}

// GrantResult reports how a tier reconciliation went. Granting a role the
// member already holds is a no-op on Discord's side, so Granted counts
// qualifying tiers, not newly acquired ones.
type GrantResult struct {
	Granted int
	Failed  int
	RoleIDs []string
}

// Granter applies threshold tables to guild members.
type Granter struct {
	Members MemberRoles
}

func NewGranter(members MemberRoles) *Granter {
	return &Granter{Members: members}
}

// GrantTier grants every role the counter qualifies for. A failure on one
// role is logged and counted but does not stop the remaining grants.
func (g *Granter) GrantTier(guildID, userID string, counter int, table Table) GrantResult {
	var res GrantResult
	for _, roleID := range table.Qualifying(counter) {
		if err := g.Members.AddRole(guildID, userID, roleID); err != nil {
			logger.Error(fmt.Sprintf("granting tier role %s to %s", roleID, userID), err)
			res.Failed++
			continue
		}
		res.Granted++
		res.RoleIDs = append(res.RoleIDs, roleID)
	}
	return res
}

// SwapBase removes the unverified role and adds every access role. This
// always runs on a successful verification, independent of the tier table.
func (g *Granter) SwapBase(guildID, userID, unverifiedRoleID string, accessRoleIDs []string) error {
	if unverifiedRoleID != "" {
		if err := g.Members.RemoveRole(guildID, userID, unverifiedRoleID); err != nil {
			logger.Error(fmt.Sprintf("removing unverified role from %s", userID), err)
		}
	}
	for _, roleID := range accessRoleIDs {
		if err := g.Members.AddRole(guildID, userID, roleID); err != nil {
			return fmt.Errorf("adding access role %s: %w", roleID, err)
		}
	}
	return nil
}
