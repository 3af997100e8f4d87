package engine

import (
	"context"

	"habitex/internal/storage"
)

// AchievementChecker measures progress toward every achievement.
type AchievementChecker struct {
	user   *storage.UserRecord
	habits []storage.Habit
	quests []storage.Quest
}

func NewAchievementChecker(user *storage.UserRecord, habits []storage.Habit, quests []storage.Quest) *AchievementChecker {
	return &AchievementChecker{user: user, habits: habits, quests: quests}
}

// GetAchievements returns all achievements with their current progress.
func (c *AchievementChecker) GetAchievements() []storage.Achievement {
	return []storage.Achievement{
		progress("first_steps", "First Steps", "Create your first habit", "habits", c.user.Stats.HabitsCreated, 1),
		progress("habit_streak", "Habit Streak", "Keep a habit going for 7 days", "habits", c.bestStreak(), 7),
		progress("quest_novice", "Quest Novice", "Complete your first quest", "quests", c.completedQuests(), 1),
		progress("coin_hoarder", "Coin Hoarder", "Hold 1000 coins", "economy", c.user.Currency, 1000),
		progress("collector", "Collector", "Own 10 items", "inventory", c.itemCount(), 10),
		progress("legend", "Legend", "Own a legendary item", "inventory", c.legendaryCount(), 1),
	}
}

// CountUnlocked returns how many achievements are currently met.
func (c *AchievementChecker) CountUnlocked() int {
	n := 0
	for _, a := range c.GetAchievements() {
		if a.Unlocked {
			n++
		}
	}
	return n
}

func progress(id, name, desc, category string, have, want int) storage.Achievement {
	if have > want {
		have = want
	}
	if have < 0 {
		have = 0
	}
	return storage.Achievement{
		ID:          id,
		Name:        name,
		Description: desc,
		Category:    category,
		Unlocked:    have >= want,
		Progress:    have,
		MaxProgress: want,
	}
}

func (c *AchievementChecker) bestStreak() int {
	best := 0
	for _, h := range c.habits {
		if h.Streak > best {
			best = h.Streak
		}
	}
	return best
}

func (c *AchievementChecker) completedQuests() int {
	n := 0
	for _, q := range c.quests {
		if q.Completed {
			n++
		}
	}
	return n
}

func (c *AchievementChecker) itemCount() int {
	n := 0
	for _, it := range c.user.Inventory {
		n += it.Quantity
	}
	return n
}

func (c *AchievementChecker) legendaryCount() int {
	n := 0
	for _, it := range c.user.Inventory {
		if Rarity(it.Rarity) == RarityLegendary {
			n++
		}
	}
	return n
}

// MergeAchievements folds freshly computed progress into the stored list.
// Unlocked achievements stay unlocked. It returns the merged list and the
// achievements unlocked for the first time.
func MergeAchievements(stored, current []storage.Achievement) (merged, unlocked []storage.Achievement) {
	prev := make(map[string]storage.Achievement, len(stored))
	for _, a := range stored {
		prev[a.ID] = a
	}
	merged = make([]storage.Achievement, 0, len(current))
	for _, a := range current {
		old, seen := prev[a.ID]
		if seen && old.Unlocked {
			a.Unlocked = true
			a.Progress = a.MaxProgress
		}
		if a.Unlocked && !(seen && old.Unlocked) {
			unlocked = append(unlocked, a)
		}
		merged = append(merged, a)
	}
	return merged, unlocked
}

// Achievements returns the persisted achievements merged with current
// progress.
func (s *Service) Achievements(ctx context.Context) ([]storage.Achievement, error) {
	var c change
	if err := s.loadState(ctx, &c); err != nil {
		return nil, err
	}
	stored, err := s.content.Achievements(ctx)
	if err != nil {
		return nil, err
	}
	merged, _ := MergeAchievements(stored, NewAchievementChecker(c.u, c.habits, c.quests).GetAchievements())
	return merged, nil
}

// loadState fills whatever part of the user, habits and quests c has not
// changed.
func (s *Service) loadState(ctx context.Context, c *change) error {
	var err error
	if c.u == nil {
		if c.u, err = s.users.GetOrCreate(ctx); err != nil {
			return err
		}
	}
	if c.habits == nil {
		if c.habits, err = s.habits.ListAll(ctx); err != nil {
			return err
		}
	}
	if c.quests == nil {
		if c.quests, err = s.quests.ListAll(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) refreshAchievements(ctx context.Context, c *change) error {
	if err := s.loadState(ctx, c); err != nil {
		return err
	}
	stored, err := s.content.Achievements(ctx)
	if err != nil {
		return err
	}
	merged, unlocked := MergeAchievements(stored, NewAchievementChecker(c.u, c.habits, c.quests).GetAchievements())
	if len(unlocked) == 0 && len(stored) == len(merged) && sameProgress(stored, merged) {
		return nil
	}
	c.m.Set(storage.KeyAchievements, merged)
	for _, a := range unlocked {
		s.log.Printf("achievement unlocked: %s", a.Name)
		c.events = append(c.events, Event{Kind: EventAchievements, Detail: a.Name})
	}
	return nil
}

func sameProgress(a, b []storage.Achievement) bool {
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Progress != b[i].Progress || a[i].Unlocked != b[i].Unlocked {
			return false
		}
	}
	return true
}
