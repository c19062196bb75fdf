package roles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMembers struct {
	added     []string
	removed   []string
	failAdd   map[string]error
	failRemov map[string]error
}

func (f *fakeMembers) AddRole(guildID, userID, roleID string) error {
	if err := f.failAdd[roleID]; err != nil {
		return err
	}
	f.added = append(f.added, roleID)
	return nil
}

func (f *fakeMembers) RemoveRole(guildID, userID, roleID string) error {
	if err := f.failRemov[roleID]; err != nil {
		return err
	}
	f.removed = append(f.removed, roleID)
	return nil
}

func TestGrantTier_AllQualifying(t *testing.T) {
	members := &fakeMembers{}
	g := NewGranter(members)

	res := g.GrantTier("g1", "u1", 743, testTable())

	assert.Equal(t, 2, res.Granted)
	assert.Zero(t, res.Failed)
	assert.Equal(t, []string{"r500", "r100"}, res.RoleIDs)
	assert.Equal(t, []string{"r500", "r100"}, members.added)
}

func TestGrantTier_NoQualifyingTiers(t *testing.T) {
	members := &fakeMembers{}
	g := NewGranter(members)

	res := g.GrantTier("g1", "u1", 50, testTable())

	assert.Zero(t, res.Granted)
	assert.Zero(t, res.Failed)
	assert.Empty(t, members.added)
}

func TestGrantTier_PartialFailureContinues(t *testing.T) {
	members := &fakeMembers{failAdd: map[string]error{"r1000": errors.New("missing permissions")}}
	g := NewGranter(members)

	res := g.GrantTier("g1", "u1", 5000, testTable())

	assert.Equal(t, 3, res.Granted)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{"r5000", "r500", "r100"}, res.RoleIDs)
}

func TestSwapBase(t *testing.T) {
	members := &fakeMembers{}
	g := NewGranter(members)

	err := g.SwapBase("g1", "u1", "unverified", []string{"member", "color"})

	require.NoError(t, err)
	assert.Equal(t, []string{"unverified"}, members.removed)
	assert.Equal(t, []string{"member", "color"}, members.added)
}

func TestSwapBase_RemoveFailureIsNotFatal(t *testing.T) {
	members := &fakeMembers{failRemov: map[string]error{"unverified": errors.New("unknown role")}}
	g := NewGranter(members)

	err := g.SwapBase("g1", "u1", "unverified", []string{"member"})

	require.NoError(t, err)
	assert.Equal(t, []string{"member"}, members.added)
}

func TestSwapBase_AddFailureIsFatal(t *testing.T) {
	members := &fakeMembers{failAdd: map[string]error{"member": errors.New("missing permissions")}}
	g := NewGranter(members)

	err := g.SwapBase("g1", "u1", "", []string{"member"})

	assert.Error(t, err)
}
