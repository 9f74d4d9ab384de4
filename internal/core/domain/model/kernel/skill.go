package kernel

import "fieldops/internal/pkg/errs"

const (
	// MinSkillLevel is the lowest valid skill level.
	MinSkillLevel SkillLevel = 1
	// MaxSkillLevel is the highest valid skill level.
	MaxSkillLevel SkillLevel = 5
)

// SkillLevel is the ordinal 1..5 competence scale shared by jobs (required
// level) and engineers (held level). The zero value is invalid.
type SkillLevel int

// NewSkillLevel creates a validated skill level.
func NewSkillLevel(level int) (SkillLevel, error) {
	s := SkillLevel(level)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// Validate checks that the level lies within [MinSkillLevel, MaxSkillLevel].
func (s SkillLevel) Validate() error {
	if s < MinSkillLevel || s > MaxSkillLevel {
		return errs.NewValueIsOutOfRangeError("skill level", int(s), int(MinSkillLevel), int(MaxSkillLevel))
	}
	return nil
}

// AtLeast reports whether the level meets the given requirement.
func (s SkillLevel) AtLeast(required SkillLevel) bool {
	return s >= required
}
