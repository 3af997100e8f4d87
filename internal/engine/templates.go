package engine

import (
	"context"
	"fmt"
	"strings"

	"habitex/internal/storage"
)

type TemplateStatus string

const (
	TemplateLocked    TemplateStatus = "locked"
	TemplateAvailable TemplateStatus = "available"
	TemplateActive    TemplateStatus = "active"
)

// QuestTemplate is a ready-made quest the user can accept once it unlocks.
type QuestTemplate struct {
	Code        string
	Title       string
	Description string
	Category    string
	Total       int
	Reward      string

	Unlock func(u *storage.UserRecord, habits []storage.Habit, quests []storage.Quest) bool
}

func always(*storage.UserRecord, []storage.Habit, []storage.Quest) bool { return true }

func builtinTemplates() []QuestTemplate {
	return []QuestTemplate{
		{
			Code:        "early_riser",
			Title:       "Early Riser",
			Description: "Wake up at the same time for 5 days",
			Category:    "wellness",
			Total:       5,
			Reward:      "100 XP + Rare Loot Box",
			Unlock:      always,
		},
		{
			Code:        "digital_detox",
			Title:       "Digital Detox Challenge",
			Description: "Reduce screen time and improve your relationship with technology",
			Category:    "wellness",
			Total:       3,
			Reward:      "75 XP + Common Loot Box",
			Unlock:      always,
		},
		{
			Code:        "streak_keeper",
			Title:       "Streak Keeper",
			Description: "Keep any habit alive for 14 days",
			Category:    "challenge",
			Total:       14,
			Reward:      "150 XP + Epic Loot Box",
			Unlock: func(_ *storage.UserRecord, habits []storage.Habit, _ []storage.Quest) bool {
				for _, h := range habits {
					if h.Streak >= 3 {
						return true
					}
				}
				return false
			},
		},
		{
			Code:        "quest_veteran",
			Title:       "Quest Veteran",
			Description: "Finish five more quests",
			Category:    "challenge",
			Total:       5,
			Reward:      "250 XP + Legendary Loot Box",
			Unlock: func(u *storage.UserRecord, _ []storage.Habit, _ []storage.Quest) bool {
				return u.Stats.QuestsCompleted >= 3
			},
		},
	}
}

// QuestTemplateByCode returns the built-in template with the given code.
func QuestTemplateByCode(code string) *QuestTemplate {
	c := strings.TrimSpace(strings.ToLower(code))
	for _, t := range builtinTemplates() {
		if t.Code == c {
			return &t
		}
	}
	return nil
}

type TemplateView struct {
	QuestTemplate
	Status TemplateStatus
}

// QuestTemplates lists every template with its status for the current user.
// A template is active while an unfinished quest with its title exists.
func (s *Service) QuestTemplates(ctx context.Context) ([]TemplateView, error) {
	var c change
	if err := s.loadState(ctx, &c); err != nil {
		return nil, err
	}
	defs := builtinTemplates()
	out := make([]TemplateView, 0, len(defs))
	for _, def := range defs {
		out = append(out, TemplateView{QuestTemplate: def, Status: templateStatus(def, &c)})
	}
	return out, nil
}

func templateStatus(def QuestTemplate, c *change) TemplateStatus {
	for _, q := range c.quests {
		if q.Title == def.Title && !q.Completed {
			return TemplateActive
		}
	}
	if def.Unlock(c.u, c.habits, c.quests) {
		return TemplateAvailable
	}
	return TemplateLocked
}

// AcceptQuestTemplate starts a quest from an available template.
func (s *Service) AcceptQuestTemplate(ctx context.Context, code string) (*storage.Quest, error) {
	def := QuestTemplateByCode(code)
	if def == nil {
		return nil, NotFoundError{Kind: "quest template", ID: code}
	}
	var c change
	if err := s.loadState(ctx, &c); err != nil {
		return nil, err
	}
	if st := templateStatus(*def, &c); st != TemplateAvailable {
		return nil, fmt.Errorf("quest template %s is not available (status=%s)", def.Code, st)
	}
	return s.AddQuest(ctx, AddQuestInput{
		Title:       def.Title,
		Description: def.Description,
		Total:       def.Total,
		Reward:      def.Reward,
		Category:    def.Category,
	})
}
