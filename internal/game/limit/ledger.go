package limit

import (
	"sort"

	"github.com/MoVehrs/limitbreak/internal/game/host"
)

// Delta is one combatant's HP change observed during a monitoring window.
// Amount is always positive; direction is carried by which Events bucket
// the delta lands in.
type Delta struct {
	Handle host.Handle
	Amount int
	MaxHP  int
}

// Events partitions one frame's HP deltas by who changed and in which
// direction. Monster healing is not tracked; nothing gains from it.
type Events struct {
	MonsterDamage []Delta
	ActorDamage   []Delta
	ActorHealing  []Delta
}

// Empty reports whether no delta of any kind was observed.
func (e Events) Empty() bool {
	return len(e.MonsterDamage) == 0 && len(e.ActorDamage) == 0 && len(e.ActorHealing) == 0
}

// Ledger tracks pre-action HP of combatants and diffs it against current HP
// while a monitoring window is open. Exactly one live snapshot exists at a
// time; it is replaced, never merged.
type Ledger struct {
	field      host.Battlefield
	before     map[host.Handle]int
	monitoring bool
}

// NewLedger creates a Ledger reading from field.
//
// Precondition: field must be non-nil.
func NewLedger(field host.Battlefield) *Ledger {
	return &Ledger{field: field, before: make(map[host.Handle]int)}
}

// Snapshot replaces the live snapshot with current HP of every actor, and of
// every monster when the initiating combatant is an actor. Monitoring is not
// started here; it begins only once the host reports the action completed.
func (l *Ledger) Snapshot(initiatorIsActor bool) {
	l.before = make(map[host.Handle]int)
	for _, id := range l.field.Actors() {
		h := host.ActorHandle(id)
		if hp, ok := l.field.HP(h); ok {
			l.before[h] = hp
		}
	}
	if initiatorIsActor {
		for _, id := range l.field.Monsters() {
			h := host.MonsterHandle(id)
			if hp, ok := l.field.HP(h); ok {
				l.before[h] = hp
			}
		}
	}
}

// BeginMonitoring opens the monitoring window. Called once per successfully
// completed action.
func (l *Ledger) BeginMonitoring() { l.monitoring = true }

// StopMonitoring closes the monitoring window; called when a new action
// begins or the battle scene is left.
func (l *Ledger) StopMonitoring() { l.monitoring = false }

// Monitoring reports whether the monitoring window is open.
func (l *Ledger) Monitoring() bool { return l.monitoring }

// DiffOnce compares current HP against the snapshot for every tracked
// combatant and returns the observed deltas. Combatants that have left play
// since the snapshot contribute nothing. After any non-empty diff the
// snapshot is replaced with current readings so later hits of a multi-hit
// action are measured incrementally, not cumulatively.
//
// Postcondition: Returned delta slices are sorted by combatant ID.
func (l *Ledger) DiffOnce() Events {
	var ev Events
	current := make(map[host.Handle]int, len(l.before))
	for h, before := range l.before {
		after, ok := l.field.HP(h)
		if !ok {
			continue
		}
		current[h] = after
		maxHP, _ := l.field.MaxHP(h)
		switch {
		case after < before:
			d := Delta{Handle: h, Amount: before - after, MaxHP: maxHP}
			if h.Kind == host.KindMonster {
				ev.MonsterDamage = append(ev.MonsterDamage, d)
			} else {
				ev.ActorDamage = append(ev.ActorDamage, d)
			}
		case after > before && h.Kind == host.KindActor:
			ev.ActorHealing = append(ev.ActorHealing, Delta{Handle: h, Amount: after - before, MaxHP: maxHP})
		}
	}
	if !ev.Empty() {
		l.before = current
	}
	sortDeltas(ev.MonsterDamage)
	sortDeltas(ev.ActorDamage)
	sortDeltas(ev.ActorHealing)
	return ev
}

func sortDeltas(ds []Delta) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Handle.ID < ds[j].Handle.ID })
}
