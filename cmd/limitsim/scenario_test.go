package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MoVehrs/limitbreak/internal/game/host"
	"github.com/MoVehrs/limitbreak/internal/game/limit"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseHandle(t *testing.T) {
	h, err := parseHandle("actor:3")
	require.NoError(t, err)
	assert.Equal(t, host.ActorHandle(3), h)

	h, err = parseHandle("monster:12")
	require.NoError(t, err)
	assert.Equal(t, host.MonsterHandle(12), h)

	for _, bad := range []string{"actor", "actor:", "actor:0", "actor:-1", "npc:1", "actor:x"} {
		_, err := parseHandle(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseScene(t *testing.T) {
	s, err := parseScene("battle")
	require.NoError(t, err)
	assert.Equal(t, host.SceneBattle, s)

	_, err = parseScene("shop")
	assert.Error(t, err)
}

func TestLoadScenario_BuildsBattlefield(t *testing.T) {
	path := writeScenario(t, `
name: test
actors:
  - id: 1
    max_hp: 200
    equipped: [11]
    party_slot: 1
    first_command: 7
monsters:
  - id: 1
    max_hp: 400
variables:
  201: 1
steps:
  - ticks: 1
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "test", s.Name)

	field, err := s.Battlefield()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, field.Actors())
	assert.Equal(t, []int{1}, field.Monsters())
	assert.Equal(t, []int{11}, field.Equipment(1))
	id, ok := field.PartyMember(0)
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestLoadScenario_RejectsEmptyAndUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: empty
steps:
  - ticks: 1
`)
	_, err := LoadScenario(path)
	assert.Error(t, err)

	path = writeScenario(t, `
name: typo
actors:
  - id: 1
    max_hp: 200
    hitpoints: 5
`)
	_, err = LoadScenario(path)
	assert.Error(t, err)
}

func TestRunner_ReplaysGains(t *testing.T) {
	path := writeScenario(t, `
name: replay
actors:
  - id: 1
    max_hp: 200
    party_slot: 1
    first_command: 7
monsters:
  - id: 1
    max_hp: 400
variables:
  201: 0
steps:
  - act:
      initiator: monster:1
      hits:
        - target: actor:1
          amount: 40
  - scene: map
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	field, err := s.Battlefield()
	require.NoError(t, err)

	ps := limit.ProfileSet{
		1: {ActorID: 1, GaugeSlot: 101, ModeSlot: 201, DefaultMode: limit.ModeStoic, DefaultBreakSkillID: 90},
	}
	vars := host.NewMemoryVariables()
	for slot, value := range s.Variables {
		vars.Set(slot, value)
	}
	engine := limit.NewEngine(ps, nil, limit.Settings{LimitCommandID: 7}, field, vars, &host.CountingNotifier{}, zap.NewNop())

	require.NoError(t, NewRunner(s, engine, field, zap.NewNop()).Run())
	assert.Equal(t, 6, vars.Get(101)) // 40*30/200
}
