package limit

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// profileEntry is the YAML shape of one actor's configuration.
type profileEntry struct {
	ActorID              int    `yaml:"actor_id"`
	GaugeSlot            int    `yaml:"gauge_slot"`
	ModeSlot             int    `yaml:"mode_slot"`
	DefaultMode          string `yaml:"default_mode"`
	BreakSkillSlot       int    `yaml:"break_skill_slot"`
	DefaultBreakSkillID  int    `yaml:"default_break_skill_id"`
	UltimateBreakSkillID int    `yaml:"ultimate_break_skill_id"`
}

type profileFile struct {
	Actors []profileEntry `yaml:"actors"`
}

// multiplierEntry is the YAML shape of one equipment multiplier row.
type multiplierEntry struct {
	ItemID int     `yaml:"item_id"`
	Offset float64 `yaml:"offset"`
}

type multiplierFile struct {
	Equipment []multiplierEntry `yaml:"equipment"`
}

// LoadProfiles reads the actor profile file at path. Malformed entries are
// excluded with a warning rather than failing the whole load; an actor the
// file misconfigures simply never gains, matching the behavior of an actor
// the file omits.
//
// Postcondition: Returns a non-nil ProfileSet, or an error if the file
// itself cannot be read or parsed.
func LoadProfiles(path string, logger *zap.Logger) (ProfileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles %q: %w", path, err)
	}
	var file profileFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing profiles %q: %w", path, err)
	}

	set := make(ProfileSet, len(file.Actors))
	for _, e := range file.Actors {
		if err := e.validate(); err != nil {
			logger.Warn("actor profile excluded",
				zap.Int("actor_id", e.ActorID),
				zap.Error(err),
			)
			continue
		}
		if _, dup := set[e.ActorID]; dup {
			logger.Warn("duplicate actor profile excluded",
				zap.Int("actor_id", e.ActorID),
			)
			continue
		}
		mode, _ := ParseMode(e.DefaultMode)
		set[e.ActorID] = Profile{
			ActorID:              e.ActorID,
			GaugeSlot:            e.GaugeSlot,
			ModeSlot:             e.ModeSlot,
			DefaultMode:          mode,
			BreakSkillSlot:       e.BreakSkillSlot,
			DefaultBreakSkillID:  e.DefaultBreakSkillID,
			UltimateBreakSkillID: e.UltimateBreakSkillID,
		}
	}
	return set, nil
}

func (e profileEntry) validate() error {
	if e.ActorID <= 0 {
		return fmt.Errorf("actor_id %d must be positive", e.ActorID)
	}
	if e.GaugeSlot <= 0 {
		return fmt.Errorf("gauge_slot %d must be positive", e.GaugeSlot)
	}
	if e.ModeSlot <= 0 {
		return fmt.Errorf("mode_slot %d must be positive", e.ModeSlot)
	}
	if _, err := ParseMode(e.DefaultMode); err != nil {
		return err
	}
	if e.DefaultBreakSkillID <= 0 {
		return fmt.Errorf("default_break_skill_id %d must be positive", e.DefaultBreakSkillID)
	}
	if e.BreakSkillSlot < 0 {
		return fmt.Errorf("break_skill_slot %d must not be negative", e.BreakSkillSlot)
	}
	if e.UltimateBreakSkillID < 0 {
		return fmt.Errorf("ultimate_break_skill_id %d must not be negative", e.UltimateBreakSkillID)
	}
	return nil
}

// LoadMultipliers reads the equipment multiplier file at path. Rows with a
// non-positive item ID are excluded with a warning; negative offsets are
// legal (cursed gear reduces gain).
//
// Postcondition: Returns a non-nil MultiplierTable, or an error if the file
// itself cannot be read or parsed.
func LoadMultipliers(path string, logger *zap.Logger) (MultiplierTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading multipliers %q: %w", path, err)
	}
	var file multiplierFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing multipliers %q: %w", path, err)
	}

	table := make(MultiplierTable, len(file.Equipment))
	for _, e := range file.Equipment {
		if e.ItemID <= 0 {
			logger.Warn("equipment multiplier excluded",
				zap.Int("item_id", e.ItemID),
			)
			continue
		}
		if _, dup := table[e.ItemID]; dup {
			logger.Warn("duplicate equipment multiplier excluded",
				zap.Int("item_id", e.ItemID),
			)
			continue
		}
		table[e.ItemID] = e.Offset
	}
	return table, nil
}
