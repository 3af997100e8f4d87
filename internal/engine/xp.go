package engine

import "habitex/internal/storage"

const (
	// XPPerLevel scales the threshold: reaching level L+1 takes L*XPPerLevel xp.
	XPPerLevel = 200

	// LevelUpStatBonus is added to strength, intelligence and charisma on level up.
	LevelUpStatBonus = 2

	habitBaseCoins = 5
	habitBaseXP    = 10
	// A streak bonus step is granted every habitStreakStep consecutive completions.
	habitStreakStep = 3
)

// MaxXPForLevel returns the xp needed to leave the given level.
func MaxXPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * XPPerLevel
}

// GainXP adds xp to the user and applies every level up it causes. It returns
// the number of levels gained.
func GainXP(u *storage.UserRecord, xp int) int {
	if xp <= 0 {
		return 0
	}
	if u.MaxXP <= 0 {
		u.MaxXP = MaxXPForLevel(u.Level)
	}
	u.XP += xp
	gained := 0
	for u.XP >= u.MaxXP {
		u.XP -= u.MaxXP
		u.Level++
		u.MaxXP = MaxXPForLevel(u.Level)
		u.Stats.Strength += LevelUpStatBonus
		u.Stats.Intelligence += LevelUpStatBonus
		u.Stats.Charisma += LevelUpStatBonus
		gained++
	}
	return gained
}

// LoseXP removes up to xp from the current level's progress. Levels are never
// taken away.
func LoseXP(u *storage.UserRecord, xp int) int {
	if xp <= 0 {
		return 0
	}
	if xp > u.XP {
		xp = u.XP
	}
	u.XP -= xp
	return xp
}

// HabitReward is what completing a habit grants once its streak has reached
// streak.
type HabitReward struct {
	Coins int
	XP    int
}

func HabitRewardFor(streak int) HabitReward {
	bonus := 0
	if streak > 0 {
		bonus = streak / habitStreakStep
	}
	return HabitReward{
		Coins: habitBaseCoins + bonus,
		XP:    habitBaseXP + bonus*2,
	}
}
