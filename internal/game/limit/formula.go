package limit

// Gain factors fixed by the original balance. All formulas truncate toward
// zero (never round) and guard max HP <= 0 by contributing nothing for that
// term.
const (
	stoicFactor   = 30
	warriorFactor = 30
	comradeFactor = 20
	healerFactor  = 16

	// warriorTargetCap bounds each monster's contribution before the
	// equipment multiplier is applied.
	warriorTargetCap = 16
)

// StoicGain is the gauge gain for damage the actor took itself:
// trunc(damageTaken * 30 / maxHP * multiplier). Knight uses the same term
// for its defensive half.
//
// Postcondition: Returns >= 0.
func StoicGain(damageTaken, maxHP int, multiplier float64) int {
	if damageTaken <= 0 || maxHP <= 0 {
		return 0
	}
	return truncate(float64(damageTaken) * stoicFactor / float64(maxHP) * multiplier)
}

// WarriorGain is the gauge gain for damage dealt to monsters. Each target
// contributes min(16, trunc(damage * 30 / targetMaxHP)) as an integer; the
// capped contributions are summed and the multiplier is applied once at the
// end with a single final truncation. The cap is per target, not per action.
// Knight uses the same term for its offensive half.
//
// Postcondition: Returns >= 0.
func WarriorGain(hits []Delta, multiplier float64) int {
	sum := 0
	for _, hit := range hits {
		if hit.Amount <= 0 || hit.MaxHP <= 0 {
			continue
		}
		c := truncate(float64(hit.Amount) * warriorFactor / float64(hit.MaxHP))
		if c > warriorTargetCap {
			c = warriorTargetCap
		}
		sum += c
	}
	if sum == 0 {
		return 0
	}
	return truncate(float64(sum) * multiplier)
}

// ComradeGain is the gauge gain for damage taken by other party members:
// trunc(othersDamage * 20 / selfMaxHP * multiplier). It fires even when the
// actor itself was untouched.
//
// Postcondition: Returns >= 0.
func ComradeGain(othersDamage, selfMaxHP int, multiplier float64) int {
	if othersDamage <= 0 || selfMaxHP <= 0 {
		return 0
	}
	return truncate(float64(othersDamage) * comradeFactor / float64(selfMaxHP) * multiplier)
}

// HealerGain is the gauge gain for net healing done to other actors:
// trunc(totalHealing * 16 / sumOfHealedMaxHP * multiplier). Each healed
// target's max HP is summed once.
//
// Postcondition: Returns >= 0.
func HealerGain(totalHealing, healedMaxHP int, multiplier float64) int {
	if totalHealing <= 0 || healedMaxHP <= 0 {
		return 0
	}
	return truncate(float64(totalHealing) * healerFactor / float64(healedMaxHP) * multiplier)
}

// truncate converts toward zero, clamping negative intermediates to 0.
func truncate(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(v)
}
