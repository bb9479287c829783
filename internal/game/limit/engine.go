package limit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MoVehrs/limitbreak/internal/game/host"
)

// Settings holds battle-wide tuning from configuration.
type Settings struct {
	// LimitCommandID is the battle command whose selection arms the limit
	// break swap.
	LimitCommandID int
	// UltimateCommandID arms the ultimate swap; 0 disables that path.
	UltimateCommandID int
	// UltimateGaugeSlot is the variable key holding the aggregate value;
	// 0 disables the ultimate system.
	UltimateGaugeSlot int
	// FourActorUltimate selects a required party size of 4 instead of 3.
	FourActorUltimate bool
}

// RequiredPartySize returns 4 when FourActorUltimate is set, else 3.
func (s Settings) RequiredPartySize() int {
	if s.FourActorUltimate {
		return 4
	}
	return 3
}

// Engine owns one battle session's limit break state: the damage ledger, the
// action initiator, scene tracking, and the one-shot bar-filled flag. The
// host calls its three entry points synchronously from the frame loop;
// nothing here blocks or spawns work.
type Engine struct {
	profiles ProfileSet
	mults    MultiplierTable
	field    host.Battlefield
	vars     host.Variables
	notify   host.Notifier
	logger   *zap.Logger

	ledger  *Ledger
	agg     *Aggregator
	swapper *Swapper

	sessionID    string
	initiator    host.Handle
	hasInitiator bool
	inBattle     bool
	wasAt100     bool
}

// NewEngine creates an Engine over the given host surface.
//
// Precondition: field, vars, notify, and logger must be non-nil; profiles
// and mults may be empty (all actors then silently never gain).
func NewEngine(profiles ProfileSet, mults MultiplierTable, settings Settings, field host.Battlefield, vars host.Variables, notify host.Notifier, logger *zap.Logger) *Engine {
	agg := NewAggregator(profiles, field, vars, settings.UltimateGaugeSlot, settings.RequiredPartySize())
	return &Engine{
		profiles: profiles,
		mults:    mults,
		field:    field,
		vars:     vars,
		notify:   notify,
		logger:   logger,
		ledger:   NewLedger(field),
		agg:      agg,
		swapper: NewSwapper(profiles, field, vars, agg,
			settings.LimitCommandID, settings.UltimateCommandID, settings.RequiredPartySize()),
	}
}

// Ultimate exposes the aggregator for callers that display the bar.
func (e *Engine) Ultimate() *Aggregator { return e.agg }

// OnActionStarting handles the host's pre-action callback: it closes any
// open monitoring window (the previous action's multi-hit window is over by
// definition), records the initiator, runs the swap check for actors, and
// takes the pre-action HP snapshot.
func (e *Engine) OnActionStarting(h host.Handle) {
	e.ledger.StopMonitoring()
	e.initiator = h
	e.hasInitiator = true

	if h.IsActor() {
		if res := e.swapper.Check(h.ID); res != SwapNone {
			e.notify.RefreshCommands()
			e.logger.Info("pending attack swapped to break skill",
				zap.String("session", e.sessionID),
				zap.Int("actor_id", h.ID),
				zap.Stringer("path", res),
			)
		}
	}

	e.ledger.Snapshot(h.IsActor())
}

// OnActionCompleted handles the host's post-action callback: a successful
// action opens the monitoring window; failed actions leave no window and
// the stale snapshot is simply replaced by the next action's.
func (e *Engine) OnActionCompleted(h host.Handle, success bool) {
	if !success {
		return
	}
	e.ledger.BeginMonitoring()
	e.agg.Recompute()
}

// OnTick handles the host's per-frame callback. Outside the battle scene it
// closes the monitoring window and, on the battle-exit transition, zeroes
// the ultimate value. In battle it diffs the ledger while monitoring,
// applies gains, recomputes the ultimate value, and manages the one-shot
// bar-filled signal.
func (e *Engine) OnTick(scene host.Scene) {
	if scene != host.SceneBattle {
		e.ledger.StopMonitoring()
		if e.inBattle {
			e.agg.Reset()
			e.wasAt100 = false
			e.logger.Debug("battle left, session closed",
				zap.String("session", e.sessionID),
				zap.Stringer("scene", scene),
			)
			e.inBattle = false
		}
		return
	}

	if !e.inBattle {
		e.sessionID = uuid.NewString()
		e.inBattle = true
		e.wasAt100 = false
		e.agg.Recompute()
		e.logger.Debug("battle entered, session opened",
			zap.String("session", e.sessionID),
		)
	}

	if e.ledger.Monitoring() {
		if ev := e.ledger.DiffOnce(); !ev.Empty() {
			e.applyGains(ev)
			e.agg.Recompute()
		}
	}

	e.syncFilledSignal()
}

// applyGains dispatches one frame's deltas to the formulas appropriate for
// the initiator's side.
func (e *Engine) applyGains(ev Events) {
	if !e.hasInitiator {
		return
	}
	if e.initiator.IsActor() {
		e.applyActorActionGains(e.initiator.ID, ev)
		return
	}
	e.applyMonsterActionGains(ev)
}

// applyActorActionGains credits the initiating actor only: Warrior/Knight
// for monster damage, Healer for healing done to other actors.
func (e *Engine) applyActorActionGains(actorID int, ev Events) {
	mode := e.profiles.ResolveMode(actorID, e.vars)
	if mode == ModeDisabled {
		return
	}
	mult := e.mults.For(e.field.Equipment(actorID))

	switch mode {
	case ModeWarrior, ModeKnight:
		if g := WarriorGain(ev.MonsterDamage, mult); g > 0 {
			e.addGauge(actorID, mode, g)
		}
	case ModeHealer:
		totalHealing, healedMaxHP := 0, 0
		for _, d := range ev.ActorHealing {
			if d.Handle.ID == actorID || d.MaxHP <= 0 {
				continue
			}
			totalHealing += d.Amount
			healedMaxHP += d.MaxHP
		}
		if g := HealerGain(totalHealing, healedMaxHP, mult); g > 0 {
			e.addGauge(actorID, mode, g)
		}
	}
}

// applyMonsterActionGains credits every configured actor: Stoic and Knight
// for damage they took themselves, Comrade for damage other actors took.
func (e *Engine) applyMonsterActionGains(ev Events) {
	totalDamage := 0
	damageBy := make(map[int]int, len(ev.ActorDamage))
	for _, d := range ev.ActorDamage {
		totalDamage += d.Amount
		damageBy[d.Handle.ID] = d.Amount
	}

	for _, actorID := range e.field.Actors() {
		mode := e.profiles.ResolveMode(actorID, e.vars)
		if mode == ModeDisabled {
			continue
		}
		maxHP, ok := e.field.MaxHP(host.ActorHandle(actorID))
		if !ok || maxHP <= 0 {
			continue
		}
		mult := e.mults.For(e.field.Equipment(actorID))
		own := damageBy[actorID]

		switch mode {
		case ModeStoic, ModeKnight:
			if g := StoicGain(own, maxHP, mult); g > 0 {
				e.addGauge(actorID, mode, g)
			}
		case ModeComrade:
			if g := ComradeGain(totalDamage-own, maxHP, mult); g > 0 {
				e.addGauge(actorID, mode, g)
			}
		}
	}
}

// addGauge applies a non-negative gain to the actor's gauge, clamped to
// [0, 100]. Unconfigured actors are a silent no-op.
func (e *Engine) addGauge(actorID int, mode Mode, gain int) {
	p, ok := e.profiles[actorID]
	if !ok {
		return
	}
	old := e.vars.Get(p.GaugeSlot)
	next := old + gain
	if next > 100 {
		next = 100
	}
	if next < 0 {
		next = 0
	}
	e.vars.Set(p.GaugeSlot, next)
	e.logger.Debug("limit gain applied",
		zap.String("session", e.sessionID),
		zap.Int("actor_id", actorID),
		zap.Stringer("mode", mode),
		zap.Int("gain", gain),
		zap.Int("gauge_before", old),
		zap.Int("gauge_after", next),
	)
}

// syncFilledSignal fires the bar-filled notification exactly once per rise
// to 100 and re-arms when the value drops below 100.
func (e *Engine) syncFilledSignal() {
	if !e.agg.Enabled() {
		return
	}
	v := e.agg.Value()
	switch {
	case v >= 100 && !e.wasAt100:
		e.wasAt100 = true
		e.notify.BarFilled()
	case v < 100:
		e.wasAt100 = false
	}
}
