package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"habitex/internal/storage"
)

const dateLayout = "2006-01-02"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid habit frequency: %q", input)
	}
	return f, nil
}

// NextDue returns the first date on which a habit completed on last resets.
// Unknown frequencies reset daily.
func NextDue(last time.Time, f Frequency) time.Time {
	switch f {
	case FrequencyWeekly:
		return last.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return last.AddDate(0, 1, 0)
	default:
		return last.AddDate(0, 0, 1)
	}
}

// ToggleHabit flips h. Completing bumps the streak and stamps today;
// un-completing drops the streak by one, never below zero.
func ToggleHabit(h *storage.Habit, today string) {
	if h.Completed {
		h.Completed = false
		if h.Streak > 0 {
			h.Streak--
		}
		return
	}
	h.Completed = true
	h.Streak++
	h.LastCompleted = today
}

// RolloverHabits clears the completion of habits that are due again on today.
// It reports whether anything changed.
func RolloverHabits(habits []storage.Habit, today string) bool {
	day, err := time.Parse(dateLayout, today)
	if err != nil {
		return false
	}
	changed := false
	for i := range habits {
		h := &habits[i]
		if !h.Completed || h.LastCompleted == "" {
			continue
		}
		last, err := time.Parse(dateLayout, h.LastCompleted)
		if err != nil {
			continue
		}
		if !day.Before(NextDue(last, Frequency(h.Frequency))) {
			h.Completed = false
			changed = true
		}
	}
	return changed
}

type HabitStats struct {
	Completed    int
	Total        int
	Percentage   int
	PointsEarned int
}

func DeriveStats(habits []storage.Habit) HabitStats {
	st := HabitStats{Total: len(habits)}
	for _, h := range habits {
		if h.Completed {
			st.Completed++
			st.PointsEarned += h.Points
		}
	}
	if st.Total > 0 {
		st.Percentage = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// Habits returns every habit after applying the rollover for today.
func (s *Service) Habits(ctx context.Context) ([]storage.Habit, error) {
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if RolloverHabits(habits, s.today()) {
		s.log.Printf("habits rolled over for %s", s.today())
		if err := s.habits.SaveAll(ctx, habits); err != nil {
			return nil, err
		}
		s.events.Publish(Event{Kind: EventHabits, Detail: "rollover"})
	}
	return habits, nil
}

func (s *Service) HabitStats(ctx context.Context) (HabitStats, error) {
	habits, err := s.Habits(ctx)
	if err != nil {
		return HabitStats{}, err
	}
	return DeriveStats(habits), nil
}

type AddHabitInput struct {
	Name        string
	Description string
	Category    string
	Frequency   Frequency
	Points      int
}

func (s *Service) AddHabit(ctx context.Context, in AddHabitInput) (*storage.Habit, error) {
	name, err := normalizeTitle(in.Name)
	if err != nil {
		return nil, err
	}
	freq := in.Frequency
	if freq == "" {
		freq = FrequencyDaily
	}
	if !freq.IsValid() {
		return nil, fmt.Errorf("invalid habit frequency: %q", freq)
	}
	points := in.Points
	if points <= 0 {
		points = 10
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "general"
	}

	habits, err := s.Habits(ctx)
	if err != nil {
		return nil, err
	}
	h := storage.Habit{
		ID:          s.newUUID(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Frequency:   string(freq),
		Points:      points,
	}
	habits = append(habits, h)
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	u.Stats.HabitsCreated++

	var c change
	c.setHabits(habits)
	c.setUser(u, EventStats)
	if err := s.commit(ctx, &c); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	habits, err := s.Habits(ctx)
	if err != nil {
		return err
	}
	idx := findHabit(habits, id)
	if idx < 0 {
		return NotFoundError{Kind: "habit", ID: id}
	}
	habits = append(habits[:idx], habits[idx+1:]...)

	var c change
	c.setHabits(habits)
	return s.commit(ctx, &c)
}

type ToggleResult struct {
	Habit storage.Habit
	// Coins and XP are negative when a completion was undone.
	Coins    int
	XP       int
	LevelUps int
}

// ToggleHabit flips a habit. Completing it pays HabitRewardFor the new streak;
// undoing it takes back what the completion paid, without going below zero
// coins or losing a level.
func (s *Service) ToggleHabit(ctx context.Context, id string) (*ToggleResult, error) {
	habits, err := s.Habits(ctx)
	if err != nil {
		return nil, err
	}
	idx := findHabit(habits, id)
	if idx < 0 {
		return nil, NotFoundError{Kind: "habit", ID: id}
	}
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	h := &habits[idx]
	prevStreak := h.Streak
	ToggleHabit(h, s.today())

	res := &ToggleResult{}
	if h.Completed {
		r := HabitRewardFor(h.Streak)
		u.Currency += r.Coins
		res.LevelUps = GainXP(u, r.XP)
		u.Stats.HabitsCompleted++
		res.Coins, res.XP = r.Coins, r.XP
	} else {
		r := HabitRewardFor(prevStreak)
		coins := r.Coins
		if coins > u.Currency {
			coins = u.Currency
		}
		u.Currency -= coins
		res.XP = -LoseXP(u, r.XP)
		res.Coins = -coins
		if u.Stats.HabitsCompleted > 0 {
			u.Stats.HabitsCompleted--
		}
	}
	res.Habit = *h

	var c change
	c.setHabits(habits)
	c.setUser(u, EventUser, EventStats)
	c.ledger(LedgerHabit, h.Name, h.ID, res.Coins)
	if err := s.commit(ctx, &c); err != nil {
		return nil, err
	}
	return res, nil
}

func findHabit(habits []storage.Habit, id string) int {
	for i := range habits {
		if habits[i].ID == id {
			return i
		}
	}
	return -1
}
