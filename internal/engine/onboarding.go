package engine

import (
	"context"
	"strings"

	"habitex/internal/storage"
)

type OnboardInput struct {
	DisplayName string
	// Attributes replaces the starting attributes when non-nil.
	Attributes *storage.Attributes
}

// Onboard seeds the starter habits and quests for a new user. It reports
// false without writing anything when the user was already onboarded.
func (s *Service) Onboard(ctx context.Context, in OnboardInput) (bool, error) {
	done, err := s.content.Onboarded(ctx)
	if err != nil {
		return false, err
	}
	if done {
		return false, nil
	}
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return false, err
	}
	if name := strings.TrimSpace(in.DisplayName); name != "" {
		u.DisplayName = name
	}
	if in.Attributes != nil {
		u.Attributes = *in.Attributes
	}

	// Stored habits and quests are extended, never replaced.
	habits, err := s.Habits(ctx)
	if err != nil {
		return false, err
	}
	quests, err := s.quests.ListAll(ctx)
	if err != nil {
		return false, err
	}
	titles := make(map[string]bool, len(quests))
	for _, q := range quests {
		titles[q.Title] = true
	}
	for _, def := range builtinTemplates()[:2] {
		if titles[def.Title] {
			continue
		}
		quests = append(quests, storage.Quest{
			ID:          s.newUUID(),
			Title:       def.Title,
			Description: def.Description,
			Total:       def.Total,
			Reward:      def.Reward,
			Category:    def.Category,
		})
	}

	var c change
	c.setUser(u, EventUser)
	c.setHabits(habits)
	c.setQuests(quests)
	c.m.Set(storage.KeyOnboarded, true)
	if err := s.commit(ctx, &c); err != nil {
		return false, err
	}
	s.log.Printf("onboarded %s", u.DisplayName)
	return true, nil
}
