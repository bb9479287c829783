package limit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/MoVehrs/limitbreak/internal/game/host"
	"github.com/MoVehrs/limitbreak/internal/game/limit"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want limit.Mode
	}{
		{"stoic", limit.ModeStoic},
		{"warrior", limit.ModeWarrior},
		{"comrade", limit.ModeComrade},
		{"healer", limit.ModeHealer},
		{"knight", limit.ModeKnight},
		{"disabled", limit.ModeDisabled},
	}
	for _, tc := range tests {
		got, err := limit.ParseMode(tc.in)
		require.NoError(t, err, "mode %q", tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := limit.ParseMode("berserker")
	assert.Error(t, err)
}

func testProfiles() limit.ProfileSet {
	return limit.ProfileSet{
		1: {
			ActorID:              1,
			GaugeSlot:            101,
			ModeSlot:             201,
			DefaultMode:          limit.ModeStoic,
			BreakSkillSlot:       301,
			DefaultBreakSkillID:  90,
			UltimateBreakSkillID: 99,
		},
		2: {
			ActorID:             2,
			GaugeSlot:           102,
			ModeSlot:            202,
			DefaultMode:         limit.ModeWarrior,
			DefaultBreakSkillID: 91,
		},
	}
}

func TestProfileSet_ResolveMode(t *testing.T) {
	ps := testProfiles()
	vars := host.NewMemoryVariables()

	// selector in range wins over the default
	vars.Set(201, int(limit.ModeHealer))
	assert.Equal(t, limit.ModeHealer, ps.ResolveMode(1, vars))

	// negative selector disables
	vars.Set(201, -1)
	assert.Equal(t, limit.ModeDisabled, ps.ResolveMode(1, vars))

	// out-of-range selector falls back to the default
	vars.Set(201, 99)
	assert.Equal(t, limit.ModeStoic, ps.ResolveMode(1, vars))

	// unconfigured actor is disabled
	assert.Equal(t, limit.ModeDisabled, ps.ResolveMode(7, vars))
}

func TestProfileSet_BreakSkillID(t *testing.T) {
	ps := testProfiles()
	vars := host.NewMemoryVariables()

	// no override set: static default
	assert.Equal(t, 90, ps.BreakSkillID(1, vars))

	// positive override wins
	vars.Set(301, 55)
	assert.Equal(t, 55, ps.BreakSkillID(1, vars))

	// non-positive override falls back
	vars.Set(301, 0)
	assert.Equal(t, 90, ps.BreakSkillID(1, vars))

	// actor without an override slot always uses the default
	assert.Equal(t, 91, ps.BreakSkillID(2, vars))

	// unconfigured actor
	assert.Equal(t, 0, ps.BreakSkillID(9, vars))
}

func TestMultiplierTable_For(t *testing.T) {
	table := limit.MultiplierTable{
		11: 0.5,
		12: -0.25,
		13: -2.0,
	}

	assert.InDelta(t, 1.0, table.For(nil), 1e-9)
	assert.InDelta(t, 1.5, table.For([]int{11}), 1e-9)
	assert.InDelta(t, 1.25, table.For([]int{11, 12}), 1e-9)
	// unknown items and empty slots contribute nothing
	assert.InDelta(t, 1.5, table.For([]int{11, 0, -3, 999}), 1e-9)
	// heavily cursed gear floors at zero
	assert.InDelta(t, 0.0, table.For([]int{13}), 1e-9)
}

func TestMultiplierTable_Property_NeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		table := limit.MultiplierTable{}
		n := rapid.IntRange(0, 6).Draw(rt, "items")
		equipped := make([]int, n)
		for i := 0; i < n; i++ {
			id := i + 1
			table[id] = rapid.Float64Range(-3, 3).Draw(rt, "offset")
			equipped[i] = id
		}
		assert.GreaterOrEqual(rt, table.For(equipped), 0.0)
	})
}
