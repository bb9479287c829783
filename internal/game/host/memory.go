package host

import "sort"

// MemoryVariables is an in-memory Variables implementation. It backs the
// simulator and tests, and is the staging store the persistence layer loads
// into and flushes from.
type MemoryVariables struct {
	values map[int]int
}

// NewMemoryVariables returns an empty variable bank.
//
// Postcondition: Get returns 0 for every key.
func NewMemoryVariables() *MemoryVariables {
	return &MemoryVariables{values: make(map[int]int)}
}

// Get returns the value stored at key, or 0 when unset.
func (m *MemoryVariables) Get(key int) int { return m.values[key] }

// Set stores value at key. Keys <= 0 are ignored.
func (m *MemoryVariables) Set(key int, value int) {
	if key <= 0 {
		return
	}
	m.values[key] = value
}

// Snapshot returns a copy of every stored variable, for persistence.
func (m *MemoryVariables) Snapshot() map[int]int {
	out := make(map[int]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Replace discards the current contents and installs values.
//
// Precondition: values may be nil (treated as empty).
func (m *MemoryVariables) Replace(values map[int]int) {
	m.values = make(map[int]int, len(values))
	for k, v := range values {
		if k > 0 {
			m.values[k] = v
		}
	}
}

// MemoryCombatant is one combatant's mutable state inside a MemoryBattlefield.
type MemoryCombatant struct {
	HP    int
	MaxHP int
}

// MemoryBattlefield is an in-memory Battlefield implementation for the
// simulator and tests. Fields are exported so scenarios can mutate state
// directly between frames.
type MemoryBattlefield struct {
	// ActorState and MonsterState hold combatants by engine ID. A nil
	// entry or a removed key models a combatant leaving play.
	ActorState   map[int]*MemoryCombatant
	MonsterState map[int]*MemoryCombatant
	// Equipped maps actor ID to equipped item IDs (up to five slots).
	Equipped map[int][]int
	// Party holds actor IDs by battle position; 0 means an empty slot.
	Party [4]int
	// Commands maps actor ID to the command ID in the first command slot.
	Commands map[int]int
	// Actions maps actor or monster handles to their pending action.
	Actions map[Handle]*Action
}

// NewMemoryBattlefield returns an empty battlefield with initialised maps.
func NewMemoryBattlefield() *MemoryBattlefield {
	return &MemoryBattlefield{
		ActorState:   make(map[int]*MemoryCombatant),
		MonsterState: make(map[int]*MemoryCombatant),
		Equipped:     make(map[int][]int),
		Commands:     make(map[int]int),
		Actions:      make(map[Handle]*Action),
	}
}

// AddActor registers an actor at full health.
func (f *MemoryBattlefield) AddActor(id, maxHP int) {
	f.ActorState[id] = &MemoryCombatant{HP: maxHP, MaxHP: maxHP}
}

// AddMonster registers a monster at full health.
func (f *MemoryBattlefield) AddMonster(id, maxHP int) {
	f.MonsterState[id] = &MemoryCombatant{HP: maxHP, MaxHP: maxHP}
}

// Remove takes the combatant out of play; subsequent HP reads report ok=false.
func (f *MemoryBattlefield) Remove(h Handle) {
	if h.Kind == KindActor {
		delete(f.ActorState, h.ID)
		return
	}
	delete(f.MonsterState, h.ID)
}

func (f *MemoryBattlefield) lookup(h Handle) *MemoryCombatant {
	if h.Kind == KindActor {
		return f.ActorState[h.ID]
	}
	return f.MonsterState[h.ID]
}

// Actors returns all actor IDs in ascending order.
func (f *MemoryBattlefield) Actors() []int { return sortedKeys(f.ActorState) }

// Monsters returns all monster IDs in ascending order.
func (f *MemoryBattlefield) Monsters() []int { return sortedKeys(f.MonsterState) }

// HP returns current hit points for h.
func (f *MemoryBattlefield) HP(h Handle) (int, bool) {
	c := f.lookup(h)
	if c == nil {
		return 0, false
	}
	return c.HP, true
}

// MaxHP returns maximum hit points for h.
func (f *MemoryBattlefield) MaxHP(h Handle) (int, bool) {
	c := f.lookup(h)
	if c == nil {
		return 0, false
	}
	return c.MaxHP, true
}

// Equipment returns the actor's equipped item IDs.
func (f *MemoryBattlefield) Equipment(actorID int) []int { return f.Equipped[actorID] }

// PartyMember returns the actor occupying battle position slot.
func (f *MemoryBattlefield) PartyMember(slot int) (int, bool) {
	if slot < 0 || slot >= len(f.Party) || f.Party[slot] == 0 {
		return 0, false
	}
	return f.Party[slot], true
}

// FirstCommand returns the actor's first battle command ID.
func (f *MemoryBattlefield) FirstCommand(actorID int) int { return f.Commands[actorID] }

// PendingAction returns the pending action for h, or nil.
func (f *MemoryBattlefield) PendingAction(h Handle) *Action { return f.Actions[h] }

func sortedKeys(m map[int]*MemoryCombatant) []int {
	out := make([]int, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// CountingNotifier records received signals; used by the simulator and tests.
type CountingNotifier struct {
	Refreshes int
	Fills     int
}

// RefreshCommands increments the refresh counter.
func (n *CountingNotifier) RefreshCommands() { n.Refreshes++ }

// BarFilled increments the fill counter.
func (n *CountingNotifier) BarFilled() { n.Fills++ }
