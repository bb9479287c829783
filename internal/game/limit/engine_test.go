package limit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/MoVehrs/limitbreak/internal/game/host"
	"github.com/MoVehrs/limitbreak/internal/game/limit"
)

type engineFixture struct {
	engine *limit.Engine
	ps     limit.ProfileSet
	field  *host.MemoryBattlefield
	vars   *host.MemoryVariables
	notify *host.CountingNotifier
}

func newEngineFixture(t *testing.T, settings limit.Settings) *engineFixture {
	t.Helper()
	ps := limit.ProfileSet{
		1: {ActorID: 1, GaugeSlot: 101, ModeSlot: 201, DefaultMode: limit.ModeStoic, DefaultBreakSkillID: 90, UltimateBreakSkillID: 99},
		2: {ActorID: 2, GaugeSlot: 102, ModeSlot: 202, DefaultMode: limit.ModeWarrior, DefaultBreakSkillID: 91},
		3: {ActorID: 3, GaugeSlot: 103, ModeSlot: 203, DefaultMode: limit.ModeHealer, DefaultBreakSkillID: 92},
	}
	mults := limit.MultiplierTable{11: 0.5}
	field := host.NewMemoryBattlefield()
	field.AddActor(1, 200)
	field.AddActor(2, 150)
	field.AddActor(3, 100)
	field.Party = [4]int{1, 2, 3, 0}
	field.AddMonster(1, 400)
	vars := host.NewMemoryVariables()
	notify := &host.CountingNotifier{}
	eng := limit.NewEngine(ps, mults, settings, field, vars, notify, zap.NewNop())
	return &engineFixture{engine: eng, ps: ps, field: field, vars: vars, notify: notify}
}

func defaultSettings() limit.Settings {
	return limit.Settings{
		LimitCommandID:    testLimitCommand,
		UltimateCommandID: testUltimateCommand,
		UltimateGaugeSlot: testUltimateSlot,
	}
}

// tick runs one in-battle frame.
func (f *engineFixture) tick() { f.engine.OnTick(host.SceneBattle) }

func TestEngine_StoicGainFromMonsterAction(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.tick() // enter battle

	f.engine.OnActionStarting(host.MonsterHandle(1))
	f.engine.OnActionCompleted(host.MonsterHandle(1), true)
	f.field.ActorState[1].HP -= 40 // 40*30/200 = 6
	f.tick()

	assert.Equal(t, 6, f.vars.Get(101))
}

func TestEngine_ComradeGainFromAlliesDamage(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.vars.Set(201, int(limit.ModeComrade))
	f.tick()

	f.engine.OnActionStarting(host.MonsterHandle(1))
	f.engine.OnActionCompleted(host.MonsterHandle(1), true)
	f.field.ActorState[2].HP -= 50
	f.field.ActorState[3].HP -= 25
	f.tick()

	// actor 1 took nothing but gains from the 75 others took: 75*20/200 = 7
	assert.Equal(t, 7, f.vars.Get(101))
}

func TestEngine_WarriorGainFromActorAction(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.field.Equipped[2] = []int{11} // +0.5 multiplier
	f.tick()

	f.engine.OnActionStarting(host.ActorHandle(2))
	f.engine.OnActionCompleted(host.ActorHandle(2), true)
	f.field.MonsterState[1].HP -= 200 // min(16, 200*30/400=15) = 15, *1.5 = 22
	f.tick()

	assert.Equal(t, 22, f.vars.Get(102))
}

func TestEngine_WarriorMultiHitAccruesPerHit(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.tick()

	f.engine.OnActionStarting(host.ActorHandle(2))
	f.engine.OnActionCompleted(host.ActorHandle(2), true)
	f.field.MonsterState[1].HP -= 100 // 100*30/400 = 7
	f.tick()
	f.field.MonsterState[1].HP -= 100 // second hit measured on its own
	f.tick()

	assert.Equal(t, 14, f.vars.Get(102))
}

func TestEngine_HealerGainExcludesSelfHeal(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.field.ActorState[1].HP = 100
	f.field.ActorState[3].HP = 50
	f.tick()

	f.engine.OnActionStarting(host.ActorHandle(3))
	f.engine.OnActionCompleted(host.ActorHandle(3), true)
	f.field.ActorState[1].HP += 50 // 50*16/200 = 4
	f.field.ActorState[3].HP += 50 // self heal, no credit
	f.tick()

	assert.Equal(t, 4, f.vars.Get(103))
}

func TestEngine_NoGainWithoutCompletedAction(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.tick()

	f.engine.OnActionStarting(host.MonsterHandle(1))
	f.engine.OnActionCompleted(host.MonsterHandle(1), false) // missed
	f.field.ActorState[1].HP -= 40
	f.tick()

	assert.Equal(t, 0, f.vars.Get(101))
}

func TestEngine_DisabledModeGainsNothing(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.vars.Set(201, -1)
	f.tick()

	f.engine.OnActionStarting(host.MonsterHandle(1))
	f.engine.OnActionCompleted(host.MonsterHandle(1), true)
	f.field.ActorState[1].HP -= 40
	f.tick()

	assert.Equal(t, 0, f.vars.Get(101))
}

func TestEngine_GaugeClampsAt100(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.vars.Set(101, 98)
	f.tick()

	f.engine.OnActionStarting(host.MonsterHandle(1))
	f.engine.OnActionCompleted(host.MonsterHandle(1), true)
	f.field.ActorState[1].HP -= 100 // would add 15
	f.tick()

	assert.Equal(t, 100, f.vars.Get(101))
}

func TestEngine_SwapOnActionStartingRefreshesCommands(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	f.tick()
	f.vars.Set(101, 100)
	f.field.Commands[1] = testLimitCommand
	a := &host.Action{Kind: host.ActionBasic, Basic: host.BasicAttack}
	f.field.Actions[host.ActorHandle(1)] = a

	f.engine.OnActionStarting(host.ActorHandle(1))

	assert.Equal(t, host.ActionSkill, a.Kind)
	assert.Equal(t, 90, a.SkillID)
	assert.Equal(t, 0, f.vars.Get(101))
	assert.Equal(t, 1, f.notify.Refreshes)
}

func TestEngine_BarFilledFiresOncePerRise(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	for id := 1; id <= 3; id++ {
		f.vars.Set(100+id, 100)
	}
	f.tick() // entry recompute drives the bar to 100
	require.Equal(t, 100, f.engine.Ultimate().Value())
	assert.Equal(t, 1, f.notify.Fills)

	f.tick()
	f.tick()
	assert.Equal(t, 1, f.notify.Fills, "signal must not repeat while full")

	// drop below 100 and refill: signal re-arms
	f.vars.Set(101, 0)
	f.engine.OnActionStarting(host.MonsterHandle(1))
	f.engine.OnActionCompleted(host.MonsterHandle(1), true)
	f.tick()
	require.Less(t, f.engine.Ultimate().Value(), 100)

	f.vars.Set(101, 100)
	f.engine.OnActionStarting(host.MonsterHandle(1))
	f.engine.OnActionCompleted(host.MonsterHandle(1), true)
	f.tick()
	assert.Equal(t, 2, f.notify.Fills)
}

func TestEngine_SceneExitResetsUltimateAndMonitoring(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	for id := 1; id <= 3; id++ {
		f.vars.Set(100+id, 100)
	}
	f.tick()
	require.Equal(t, 100, f.vars.Get(testUltimateSlot))

	f.engine.OnActionStarting(host.MonsterHandle(1))
	f.engine.OnActionCompleted(host.MonsterHandle(1), true)
	f.engine.OnTick(host.SceneMap)

	assert.Equal(t, 0, f.vars.Get(testUltimateSlot))
	// individual gauges persist across battles
	assert.Equal(t, 100, f.vars.Get(101))

	// damage landing after the exit is never credited
	f.field.ActorState[1].HP -= 40
	f.tick()
	assert.Equal(t, 100, f.vars.Get(101))
}

func TestEngine_NewBattleRearmsFilledSignal(t *testing.T) {
	f := newEngineFixture(t, defaultSettings())
	for id := 1; id <= 3; id++ {
		f.vars.Set(100+id, 100)
	}
	f.tick()
	assert.Equal(t, 1, f.notify.Fills)

	f.engine.OnTick(host.SceneMap)
	f.tick() // next battle, gauges still full
	assert.Equal(t, 2, f.notify.Fills)
}

func TestEngine_Property_GaugeMonotoneAndBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newEngineFixture(t, defaultSettings())
		f.tick()
		prev := f.vars.Get(101)
		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			f.engine.OnActionStarting(host.MonsterHandle(1))
			f.engine.OnActionCompleted(host.MonsterHandle(1), true)
			dmg := rapid.IntRange(0, 120).Draw(rt, "dmg")
			if f.field.ActorState[1].HP < dmg {
				f.field.ActorState[1].HP = f.field.ActorState[1].MaxHP
				f.tick()
				f.engine.OnActionStarting(host.MonsterHandle(1))
				f.engine.OnActionCompleted(host.MonsterHandle(1), true)
			}
			f.field.ActorState[1].HP -= dmg
			f.tick()
			g := f.vars.Get(101)
			assert.GreaterOrEqual(rt, g, prev)
			assert.LessOrEqual(rt, g, 100)
			prev = g
		}
	})
}
