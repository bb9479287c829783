package host

// ActionKind identifies the top-level category of a pending battle action.
// The zero value (ActionNone) means no action is pending.
type ActionKind int

const (
	ActionNone  ActionKind = iota // zero value; no pending action
	ActionBasic                   // basic command: attack, defend, escape
	ActionSkill                   // skill cast
	ActionItem                    // item use
)

// String returns the human-readable name of the ActionKind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionBasic:
		return "basic"
	case ActionSkill:
		return "skill"
	case ActionItem:
		return "item"
	default:
		return "unknown"
	}
}

// BasicKind identifies the sub-kind of a basic action.
type BasicKind int

const (
	BasicNone BasicKind = iota
	BasicAttack
	BasicDoubleAttack
	BasicDefend
	BasicEscape
)

// String returns the human-readable name of the BasicKind.
func (b BasicKind) String() string {
	switch b {
	case BasicNone:
		return "none"
	case BasicAttack:
		return "attack"
	case BasicDoubleAttack:
		return "double_attack"
	case BasicDefend:
		return "defend"
	case BasicEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// Action is the mutable pending-action object owned by the engine. The limit
// break subsystem rewrites it in place when a full gauge converts a basic
// attack into a break skill cast.
type Action struct {
	Kind    ActionKind
	Basic   BasicKind
	SkillID int
	// TargetID is the engine ID of the action's current target. The swap
	// keeps the target as selected.
	TargetID int
}

// IsBasicAttack reports whether the action is a plain physical attack,
// single or double. Only these are eligible for a break-skill swap.
//
// Postcondition: Returns true iff Kind == ActionBasic and Basic is
// BasicAttack or BasicDoubleAttack.
func (a *Action) IsBasicAttack() bool {
	return a.Kind == ActionBasic && (a.Basic == BasicAttack || a.Basic == BasicDoubleAttack)
}

// SwapToSkill rewrites the action into a cast of skillID, clearing the basic
// sub-kind. The target is left untouched.
//
// Precondition: skillID > 0.
// Postcondition: Kind == ActionSkill, SkillID == skillID, Basic == BasicNone.
func (a *Action) SwapToSkill(skillID int) {
	a.Kind = ActionSkill
	a.Basic = BasicNone
	a.SkillID = skillID
}
