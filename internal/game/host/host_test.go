package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoVehrs/limitbreak/internal/game/host"
)

func TestHandle_String(t *testing.T) {
	assert.Equal(t, "actor:3", host.ActorHandle(3).String())
	assert.Equal(t, "monster:7", host.MonsterHandle(7).String())
	assert.True(t, host.ActorHandle(1).IsActor())
	assert.False(t, host.MonsterHandle(1).IsActor())
}

func TestAction_IsBasicAttack(t *testing.T) {
	tests := []struct {
		name   string
		action host.Action
		want   bool
	}{
		{"attack", host.Action{Kind: host.ActionBasic, Basic: host.BasicAttack}, true},
		{"double attack", host.Action{Kind: host.ActionBasic, Basic: host.BasicDoubleAttack}, true},
		{"defend", host.Action{Kind: host.ActionBasic, Basic: host.BasicDefend}, false},
		{"escape", host.Action{Kind: host.ActionBasic, Basic: host.BasicEscape}, false},
		{"skill", host.Action{Kind: host.ActionSkill, SkillID: 12}, false},
		{"item", host.Action{Kind: host.ActionItem}, false},
		{"zero value", host.Action{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.action.IsBasicAttack())
		})
	}
}

func TestAction_SwapToSkill(t *testing.T) {
	a := host.Action{Kind: host.ActionBasic, Basic: host.BasicAttack, TargetID: 2}
	a.SwapToSkill(42)
	assert.Equal(t, host.ActionSkill, a.Kind)
	assert.Equal(t, host.BasicNone, a.Basic)
	assert.Equal(t, 42, a.SkillID)
	assert.Equal(t, 2, a.TargetID, "target carries over")
}

func TestMemoryVariables_IgnoresNonPositiveKeys(t *testing.T) {
	v := host.NewMemoryVariables()
	v.Set(0, 5)
	v.Set(-3, 5)
	v.Set(10, 5)
	assert.Equal(t, 0, v.Get(0))
	assert.Equal(t, 0, v.Get(-3))
	assert.Equal(t, 5, v.Get(10))
}

func TestMemoryVariables_SnapshotAndReplace(t *testing.T) {
	v := host.NewMemoryVariables()
	v.Set(1, 10)
	v.Set(2, 20)

	snap := v.Snapshot()
	require.Len(t, snap, 2)

	v.Replace(map[int]int{3: 30, 0: 99})
	assert.Equal(t, 0, v.Get(1))
	assert.Equal(t, 30, v.Get(3))
	assert.Equal(t, 0, v.Get(0))
}

func TestMemoryBattlefield_EnumerationAndLookup(t *testing.T) {
	f := host.NewMemoryBattlefield()
	f.AddActor(2, 150)
	f.AddActor(1, 200)
	f.AddMonster(5, 400)

	assert.Equal(t, []int{1, 2}, f.Actors())
	assert.Equal(t, []int{5}, f.Monsters())

	hp, ok := f.HP(host.ActorHandle(1))
	require.True(t, ok)
	assert.Equal(t, 200, hp)

	_, ok = f.HP(host.ActorHandle(9))
	assert.False(t, ok)

	f.Remove(host.MonsterHandle(5))
	_, ok = f.MaxHP(host.MonsterHandle(5))
	assert.False(t, ok)
}

func TestMemoryBattlefield_PartySlots(t *testing.T) {
	f := host.NewMemoryBattlefield()
	f.Party = [4]int{4, 0, 2, 0}

	id, ok := f.PartyMember(0)
	require.True(t, ok)
	assert.Equal(t, 4, id)

	_, ok = f.PartyMember(1)
	assert.False(t, ok)
	_, ok = f.PartyMember(-1)
	assert.False(t, ok)
	_, ok = f.PartyMember(4)
	assert.False(t, ok)
}
