package limit

import "github.com/MoVehrs/limitbreak/internal/game/host"

// maxPartySlots is the engine's fixed party capacity.
const maxPartySlots = 4

// Aggregator recomputes the party-wide ultimate value from the individual
// gauges of the actors occupying the battle party. A gauge slot of 0
// disables the ultimate system entirely.
type Aggregator struct {
	profiles ProfileSet
	field    host.Battlefield
	vars     host.Variables
	slot     int
	required int
}

// NewAggregator creates an Aggregator writing to the given variable slot.
//
// Precondition: requiredPartySize is 3 or 4; slot <= 0 disables the system.
func NewAggregator(profiles ProfileSet, field host.Battlefield, vars host.Variables, slot, requiredPartySize int) *Aggregator {
	return &Aggregator{
		profiles: profiles,
		field:    field,
		vars:     vars,
		slot:     slot,
		required: requiredPartySize,
	}
}

// Enabled reports whether the ultimate system is configured.
func (a *Aggregator) Enabled() bool { return a.slot > 0 }

// Value returns the currently stored ultimate value, 0 when disabled.
func (a *Aggregator) Value() int {
	if !a.Enabled() {
		return 0
	}
	return a.vars.Get(a.slot)
}

// Reset forces the stored ultimate value to 0.
func (a *Aggregator) Reset() {
	if a.Enabled() {
		a.vars.Set(a.slot, 0)
	}
}

// Recompute derives the ultimate value from the party's gauges and stores it.
//
// Rules, in order:
//   - party occupancy below the required size forces 0 (hard reset);
//   - otherwise the gauges of the occupants of the first requiredPartySize
//     battle positions are summed (unconfigured occupants count 0) and
//     floor-divided by the required size — always the required size, never
//     the count of configured actors;
//   - the result is overridden to exactly 100 iff every required slot holds
//     a configured actor and every one of those gauges equals 100;
//   - the result is clamped to [0, 100].
//
// Postcondition: Returns the stored value; 0 when the system is disabled.
func (a *Aggregator) Recompute() int {
	if !a.Enabled() {
		return 0
	}

	occupied := 0
	for slot := 0; slot < maxPartySlots; slot++ {
		if _, ok := a.field.PartyMember(slot); ok {
			occupied++
		}
	}
	if occupied < a.required {
		a.vars.Set(a.slot, 0)
		return 0
	}

	total := 0
	configured := 0
	allFull := true
	for slot := 0; slot < a.required; slot++ {
		actorID, ok := a.field.PartyMember(slot)
		if !ok {
			continue
		}
		p, ok := a.profiles[actorID]
		if !ok {
			continue
		}
		configured++
		g := a.vars.Get(p.GaugeSlot)
		total += g
		if g < 100 {
			allFull = false
		}
	}

	value := total / a.required
	if allFull && configured == a.required {
		value = 100
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	a.vars.Set(a.slot, value)
	return value
}
