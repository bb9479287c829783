// Package limit implements the limit break gauge engine: per-actor gain
// accrual over post-action damage windows, party-wide ultimate aggregation,
// and the full-gauge command-to-skill action swap.
package limit

import (
	"fmt"

	"github.com/MoVehrs/limitbreak/internal/game/host"
)

// Mode selects which battle events translate into gauge gain for an actor.
type Mode int

const (
	ModeStoic   Mode = iota // gains from damage taken
	ModeWarrior             // gains from damage dealt to monsters
	ModeComrade             // gains from damage taken by other actors
	ModeHealer              // gains from healing other actors
	ModeKnight              // Stoic and Warrior combined
	// ModeDisabled suppresses all gain for the actor. Selector values < 0
	// resolve to it.
	ModeDisabled Mode = -1
)

// String returns the human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeStoic:
		return "stoic"
	case ModeWarrior:
		return "warrior"
	case ModeComrade:
		return "comrade"
	case ModeHealer:
		return "healer"
	case ModeKnight:
		return "knight"
	case ModeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name from content files into a Mode.
//
// Postcondition: Returns a Mode in [ModeStoic, ModeKnight] or ModeDisabled,
// or an error for unrecognised names.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "stoic":
		return ModeStoic, nil
	case "warrior":
		return ModeWarrior, nil
	case "comrade":
		return ModeComrade, nil
	case "healer":
		return ModeHealer, nil
	case "knight":
		return ModeKnight, nil
	case "disabled":
		return ModeDisabled, nil
	default:
		return ModeDisabled, fmt.Errorf("unknown gain mode %q", name)
	}
}

// Profile is the static per-actor configuration. Constructed once at load
// time and immutable thereafter.
type Profile struct {
	// ActorID is the engine-assigned actor identifier.
	ActorID int
	// GaugeSlot is the variable key holding the actor's 0-100 gauge.
	GaugeSlot int
	// ModeSlot is the variable key holding the actor's mode selector.
	ModeSlot int
	// DefaultMode is used when the selector is above the valid range.
	DefaultMode Mode
	// BreakSkillSlot is the variable key holding a break-skill override;
	// 0 means the default is always used.
	BreakSkillSlot int
	// DefaultBreakSkillID is the skill cast on break when the override
	// slot is unset or non-positive.
	DefaultBreakSkillID int
	// UltimateBreakSkillID is the skill cast on ultimate activation;
	// 0 means this actor cannot trigger the ultimate.
	UltimateBreakSkillID int
}

// ProfileSet maps actor ID to Profile. An actor absent from the set never
// participates in limit gain; every lookup treats absence as a silent skip.
type ProfileSet map[int]Profile

// ResolveMode returns the actor's active gain mode: selector < 0 disables,
// a selector in the valid range is used directly, anything above falls back
// to the profile default. Unconfigured actors and out-of-range defaults
// resolve to ModeDisabled.
func (ps ProfileSet) ResolveMode(actorID int, vars host.Variables) Mode {
	p, ok := ps[actorID]
	if !ok {
		return ModeDisabled
	}
	sel := vars.Get(p.ModeSlot)
	switch {
	case sel < 0:
		return ModeDisabled
	case sel <= int(ModeKnight):
		return Mode(sel)
	default:
		if p.DefaultMode < ModeStoic || p.DefaultMode > ModeKnight {
			return ModeDisabled
		}
		return p.DefaultMode
	}
}

// BreakSkillID resolves the skill cast when the actor's gauge breaks: the
// override slot's value when positive, otherwise the static default.
// Unconfigured actors resolve to 0.
func (ps ProfileSet) BreakSkillID(actorID int, vars host.Variables) int {
	p, ok := ps[actorID]
	if !ok {
		return 0
	}
	if p.BreakSkillSlot > 0 {
		if id := vars.Get(p.BreakSkillSlot); id > 0 {
			return id
		}
	}
	return p.DefaultBreakSkillID
}

// Gauge returns the actor's stored gauge value, or 0 for unconfigured actors.
func (ps ProfileSet) Gauge(actorID int, vars host.Variables) int {
	p, ok := ps[actorID]
	if !ok {
		return 0
	}
	return vars.Get(p.GaugeSlot)
}
