package limit

import "github.com/MoVehrs/limitbreak/internal/game/host"

// SwapResult describes the outcome of a pre-action swap check.
type SwapResult int

const (
	SwapNone SwapResult = iota
	SwapLimit
	SwapUltimate
)

// String returns the human-readable swap result name.
func (r SwapResult) String() string {
	switch r {
	case SwapNone:
		return "none"
	case SwapLimit:
		return "limit"
	case SwapUltimate:
		return "ultimate"
	default:
		return "unknown"
	}
}

// Swapper rewrites pending basic attacks into break-skill casts when the
// relevant gauge is full. It holds no multi-frame state of its own; every
// Check reads and writes only the external gauge values.
type Swapper struct {
	profiles          ProfileSet
	field             host.Battlefield
	vars              host.Variables
	agg               *Aggregator
	limitCommandID    int
	ultimateCommandID int
	partySize         int
}

// NewSwapper creates a Swapper for the given command IDs.
//
// Precondition: agg must be non-nil; partySize is 3 or 4.
func NewSwapper(profiles ProfileSet, field host.Battlefield, vars host.Variables, agg *Aggregator, limitCommandID, ultimateCommandID, partySize int) *Swapper {
	return &Swapper{
		profiles:          profiles,
		field:             field,
		vars:              vars,
		agg:               agg,
		limitCommandID:    limitCommandID,
		ultimateCommandID: ultimateCommandID,
		partySize:         partySize,
	}
}

// Check evaluates the actor's selected first battle command against the
// full-gauge rules and rewrites the pending action in place when they are
// met. The checks are mutually exclusive: a command slot matches either the
// limit command or the ultimate command, never both.
//
// The limit path requires the actor's own gauge at 100; on swap the gauge
// resets to 0 and the ultimate value is recomputed. The ultimate path
// requires the ultimate value at 100 and a non-zero ultimate break skill;
// on swap the ultimate value and every configured party member's gauge
// reset to 0.
//
// Postcondition: Returns SwapNone when no rewrite happened; otherwise the
// pending action is a skill cast and the relevant gauges are reset.
func (s *Swapper) Check(actorID int) SwapResult {
	action := s.field.PendingAction(host.ActorHandle(actorID))
	if action == nil || !action.IsBasicAttack() {
		return SwapNone
	}
	switch first := s.field.FirstCommand(actorID); {
	case first == s.limitCommandID:
		return s.checkLimit(actorID, action)
	case s.ultimateCommandID > 0 && first == s.ultimateCommandID:
		return s.checkUltimate(actorID, action)
	default:
		return SwapNone
	}
}

func (s *Swapper) checkLimit(actorID int, action *host.Action) SwapResult {
	p, ok := s.profiles[actorID]
	if !ok {
		return SwapNone
	}
	if s.vars.Get(p.GaugeSlot) < 100 {
		return SwapNone
	}
	action.SwapToSkill(s.profiles.BreakSkillID(actorID, s.vars))
	s.vars.Set(p.GaugeSlot, 0)
	s.agg.Recompute()
	return SwapLimit
}

func (s *Swapper) checkUltimate(actorID int, action *host.Action) SwapResult {
	p, ok := s.profiles[actorID]
	if !ok || p.UltimateBreakSkillID <= 0 {
		return SwapNone
	}
	if !s.agg.Enabled() || s.agg.Value() < 100 {
		return SwapNone
	}
	action.SwapToSkill(p.UltimateBreakSkillID)
	s.agg.Reset()
	for slot := 0; slot < s.partySize; slot++ {
		memberID, ok := s.field.PartyMember(slot)
		if !ok {
			continue
		}
		if mp, ok := s.profiles[memberID]; ok {
			s.vars.Set(mp.GaugeSlot, 0)
		}
	}
	s.agg.Recompute()
	return SwapUltimate
}
