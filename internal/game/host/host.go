// Package host defines the narrow surface of the RPG engine consumed by the
// limit break subsystem: combatant stat reads, party enumeration, the shared
// integer variable bank, pending battle actions, and UI-facing signals.
//
// The subsystem never owns engine state. Everything here is either a read
// view (Battlefield), an externally persisted store (Variables), or an
// outbound signal (Notifier). All calls happen synchronously on the engine's
// frame loop; implementations must not block.
package host

import "fmt"

// Kind distinguishes actor combatants from monster combatants.
type Kind int

const (
	KindActor Kind = iota
	KindMonster
)

// String returns "actor" or "monster".
func (k Kind) String() string {
	switch k {
	case KindActor:
		return "actor"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// Handle is a tagged reference to one combatant: the Kind tag plus the
// engine-assigned ID identify a combatant without downcasting between
// actor and monster engine structures.
type Handle struct {
	Kind Kind
	ID   int
}

// ActorHandle returns a Handle for the actor with the given engine ID.
func ActorHandle(id int) Handle { return Handle{Kind: KindActor, ID: id} }

// MonsterHandle returns a Handle for the monster with the given engine ID.
func MonsterHandle(id int) Handle { return Handle{Kind: KindMonster, ID: id} }

// IsActor reports whether the handle refers to an actor.
// Postcondition: Returns true iff Kind == KindActor.
func (h Handle) IsActor() bool { return h.Kind == KindActor }

// String returns "kind:id", e.g. "actor:3".
func (h Handle) String() string { return fmt.Sprintf("%s:%d", h.Kind, h.ID) }

// Battlefield is the engine's read surface for the current battle.
// All lookups are frame-consistent: a combatant that has left play (death,
// escape, scene teardown) reports ok=false rather than stale values.
type Battlefield interface {
	// Actors returns the engine IDs of all actors currently loaded.
	Actors() []int
	// Monsters returns the engine IDs of all monsters in the current battle.
	Monsters() []int
	// HP returns current hit points for h, or ok=false when the combatant
	// is no longer present.
	HP(h Handle) (hp int, ok bool)
	// MaxHP returns maximum hit points for h, or ok=false when the
	// combatant is no longer present.
	MaxHP(h Handle) (maxHP int, ok bool)
	// Equipment returns the item IDs in the actor's equipment slots
	// (weapon, shield, armor, helmet, accessory). Zero entries mean an
	// empty slot. Unknown actors return nil.
	Equipment(actorID int) []int
	// PartyMember returns the actor occupying battle position slot (0-3),
	// or ok=false when the slot is empty.
	PartyMember(slot int) (actorID int, ok bool)
	// FirstCommand returns the battle command ID in the actor's first
	// command slot, or 0 when the actor has no commands.
	FirstCommand(actorID int) int
	// PendingAction returns the mutable action h is about to perform, or
	// nil when no action is pending. Mutations are visible to the engine.
	PendingAction(h Handle) *Action
}

// Variables is the engine's integer variable bank. Values written here live
// in the engine's own persisted storage and survive save/load without any
// serialization on this side.
type Variables interface {
	// Get returns the value stored at key, or 0 when the key has never
	// been written.
	Get(key int) int
	// Set stores value at key. Keys <= 0 are ignored.
	Set(key int, value int)
}

// Notifier receives UI-facing signals from the limit break subsystem.
type Notifier interface {
	// RefreshCommands asks the engine to redraw displayed battle commands
	// after an action swap reset a gauge.
	RefreshCommands()
	// BarFilled fires once each time the ultimate bar rises to 100.
	BarFilled()
}

// Scene identifies the engine's current top-level scene, delivered once per
// frame to the subsystem's tick entry point.
type Scene int

const (
	SceneMap Scene = iota
	SceneBattle
	SceneMenu
	SceneTitle
	SceneGameOver
)

// String returns a human-readable scene label.
func (s Scene) String() string {
	switch s {
	case SceneMap:
		return "map"
	case SceneBattle:
		return "battle"
	case SceneMenu:
		return "menu"
	case SceneTitle:
		return "title"
	case SceneGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
