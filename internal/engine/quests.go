package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"habitex/internal/storage"
)

var (
	rewardXPPattern  = regexp.MustCompile(`(\d+) XP`)
	rewardBoxPattern = regexp.MustCompile(`(\w+)\s+Loot\s+Box`)
)

// ParseRewardXP returns the xp named in a quest's reward text, or 0.
func ParseRewardXP(reward string) int {
	m := rewardXPPattern.FindStringSubmatch(reward)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ParseRewardBox returns the loot box tier named in a quest's reward text.
func ParseRewardBox(reward string) (Rarity, bool) {
	m := rewardBoxPattern.FindStringSubmatch(reward)
	if m == nil {
		return "", false
	}
	tier, err := ParseTier(m[1])
	if err != nil {
		return "", false
	}
	return tier, true
}

// AdvanceQuest adds one step of progress. It reports whether this call
// completed the quest. Completed quests are left untouched.
func AdvanceQuest(q *storage.Quest) bool {
	if q.Completed {
		return false
	}
	q.Progress++
	if q.Progress >= q.Total {
		q.Progress = q.Total
		q.Completed = true
		return true
	}
	return false
}

// LootBoxItem is the inventory item a quest grants for a box of tier.
func LootBoxItem(tier Rarity, id string) storage.RewardItem {
	name := strings.ToUpper(string(tier[:1])) + string(tier[1:]) + " Loot Box"
	return storage.RewardItem{
		ID:          id,
		Name:        name,
		Description: fmt.Sprintf("Open it for %d %s-or-better rewards", RewardCount(tier), tier),
		Type:        string(RewardLootbox),
		Rarity:      string(tier),
		Quantity:    1,
		Image:       "lootbox",
	}
}

func (s *Service) Quests(ctx context.Context) ([]storage.Quest, error) {
	return s.quests.ListAll(ctx)
}

type AddQuestInput struct {
	Title       string
	Description string
	Total       int
	Reward      string
	Category    string
}

func (s *Service) AddQuest(ctx context.Context, in AddQuestInput) (*storage.Quest, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	total := in.Total
	if total <= 0 {
		total = 1
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "challenge"
	}

	quests, err := s.quests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	q := storage.Quest{
		ID:          s.newUUID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Total:       total,
		Reward:      strings.TrimSpace(in.Reward),
		Category:    category,
	}
	quests = append(quests, q)

	var c change
	c.setQuests(quests)
	if err := s.commit(ctx, &c); err != nil {
		return nil, err
	}
	return &q, nil
}

type AdvanceResult struct {
	Quest     storage.Quest
	Completed bool
	XP        int
	LevelUps  int
	LootBox   *storage.RewardItem
}

// AdvanceQuest records one step on a quest. Completing it grants the xp and
// loot box its reward text names. Advancing a completed quest does nothing.
func (s *Service) AdvanceQuest(ctx context.Context, id string) (*AdvanceResult, error) {
	quests, err := s.quests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range quests {
		if quests[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	q := &quests[idx]
	if q.Completed {
		return &AdvanceResult{Quest: *q}, nil
	}

	res := &AdvanceResult{Completed: AdvanceQuest(q)}
	res.Quest = *q

	var c change
	c.setQuests(quests)
	if res.Completed {
		u, err := s.users.GetOrCreate(ctx)
		if err != nil {
			return nil, err
		}
		res.XP = ParseRewardXP(q.Reward)
		res.LevelUps = GainXP(u, res.XP)
		u.Stats.QuestsCompleted++
		if tier, ok := ParseRewardBox(q.Reward); ok {
			box := LootBoxItem(tier, fmt.Sprintf("lootbox-%s-%s", tier, s.newUUID()))
			u.Inventory = append(u.Inventory, box)
			res.LootBox = &box
			c.emit(EventInventory)
		}
		c.setUser(u, EventUser, EventStats)
		c.ledger(LedgerQuest, q.Title, q.ID, 0)
	}
	if err := s.commit(ctx, &c); err != nil {
		return nil, err
	}
	return res, nil
}
