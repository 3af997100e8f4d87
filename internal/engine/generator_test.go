package engine

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitex/internal/storage"
)

func fixedClock() time.Time { return testNow }

func TestGenerateCountsAndFirstRarity(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		gen := NewGenerator(rand.New(rand.NewSource(seed)), fixedClock)
		for _, tier := range Rarities {
			rewards, err := gen.Generate(tier)
			require.NoError(t, err)
			require.Len(t, rewards, RewardCount(tier), "seed %d tier %s", seed, tier)
			if tier != RarityCommon {
				assert.Equal(t, string(tier), rewards[0].Rarity, "seed %d tier %s", seed, tier)
			}
			eligible := map[string]bool{}
			for _, r := range EligiblePools(tier) {
				eligible[string(r)] = true
			}
			for _, r := range rewards {
				assert.True(t, eligible[r.Rarity], "seed %d tier %s drew %s", seed, tier, r.Rarity)
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := NewGenerator(rand.New(rand.NewSource(99)), fixedClock).Generate(RarityLegendary)
	require.NoError(t, err)
	b, err := NewGenerator(rand.New(rand.NewSource(99)), fixedClock).Generate(RarityLegendary)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateRewritesIDs(t *testing.T) {
	rewards, err := NewGenerator(rand.New(rand.NewSource(3)), fixedClock).Generate(RarityEpic)
	require.NoError(t, err)
	for i, r := range rewards {
		parts := strings.Split(r.ID, "-")
		require.Len(t, parts, 3)
		assert.Equal(t, "1773133200000", parts[1])
		assert.Equal(t, []string{"0", "1", "2"}[i], parts[2])
	}
}

func TestGenerateUnknownTier(t *testing.T) {
	_, err := NewGenerator(rand.New(rand.NewSource(1)), fixedClock).Generate(Rarity("uncommon"))
	var tierErr UnknownTierError
	require.ErrorAs(t, err, &tierErr)
}

func TestRewardCount(t *testing.T) {
	tests := []struct {
		tier Rarity
		want int
	}{
		{RarityCommon, 1},
		{RarityRare, 2},
		{RarityEpic, 3},
		{RarityLegendary, 4},
		{Rarity("bogus"), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RewardCount(tt.tier), tt.tier)
	}
}

func TestGainXPMultipleLevels(t *testing.T) {
	u := &storage.UserRecord{Level: 1, XP: 150, MaxXP: 200}
	gained := GainXP(u, 500)
	// 650 -> level 2 (450 left, max 400) -> level 3 (50 left, max 600).
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, u.Level)
	assert.Equal(t, 50, u.XP)
	assert.Equal(t, 600, u.MaxXP)
	assert.Equal(t, 4, u.Stats.Strength)
	assert.Equal(t, 4, u.Stats.Intelligence)
	assert.Equal(t, 4, u.Stats.Charisma)

	assert.Equal(t, 50, LoseXP(u, 80))
	assert.Equal(t, 0, u.XP)
	assert.Equal(t, 3, u.Level)
}

func TestHabitRewardFor(t *testing.T) {
	assert.Equal(t, HabitReward{Coins: 5, XP: 10}, HabitRewardFor(1))
	assert.Equal(t, HabitReward{Coins: 6, XP: 12}, HabitRewardFor(3))
	assert.Equal(t, HabitReward{Coins: 7, XP: 14}, HabitRewardFor(7))
}

func TestSlotFor(t *testing.T) {
	tests := []struct {
		item storage.RewardItem
		want Slot
	}{
		{storage.RewardItem{Name: "Anything", Slot: "skin"}, SlotSkin},
		{storage.RewardItem{Name: "Golden Frame"}, SlotFrame},
		{storage.RewardItem{Name: "Dragon Skin"}, SlotSkin},
		{storage.RewardItem{Name: "Starry Sky"}, SlotBackground},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlotFor(tt.item), tt.item.Name)
	}
}

func TestEquipKeepsPreviousOccupant(t *testing.T) {
	u := &storage.UserRecord{Inventory: []storage.RewardItem{
		{ID: "a", Name: "Basic Frame", Type: string(RewardCosmetic), Quantity: 1},
		{ID: "b", Name: "Fancy Frame", Type: string(RewardCosmetic), Quantity: 1},
	}}
	_, err := EquipCosmetic(u, "a")
	require.NoError(t, err)
	res, err := EquipCosmetic(u, "b")
	require.NoError(t, err)
	require.NotNil(t, res.Replaced)
	assert.Equal(t, "a", res.Replaced.ID)
	assert.Equal(t, "b", u.EquippedCosmetics["frame"].ID)
	assert.Len(t, u.Inventory, 2)
}

func TestPurchaseRejectsNegativePrice(t *testing.T) {
	u := &storage.UserRecord{Currency: 10}
	_, err := Purchase(u, storage.RewardItem{ID: "x", Type: string(RewardPowerup)}, -5, "x-1")
	var priceErr InvalidPriceError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, 10, u.Currency)
	assert.Empty(t, u.Inventory)
}

func TestUseItemDecrementsQuantity(t *testing.T) {
	u := &storage.UserRecord{Stats: storage.Stats{Strength: 10}, Inventory: []storage.RewardItem{
		{ID: "s", Type: string(RewardPowerup), Quantity: 2, Effect: &storage.Effect{Stat: StatStrength, Value: 5}},
	}}
	res, err := UseItem(u, "s")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, 15, u.Stats.Strength)
	require.Len(t, u.Inventory, 1)
	assert.Equal(t, 1, u.Inventory[0].Quantity)
}

func TestNotifierOrder(t *testing.T) {
	n := NewNotifier()
	var got []string
	n.Subscribe(func(ev Event) { got = append(got, "a:"+string(ev.Kind)) })
	n.Subscribe(func(ev Event) { got = append(got, "b:"+string(ev.Kind)) })
	n.Publish(Event{Kind: EventUser}, Event{Kind: EventQuests})
	assert.Equal(t, []string{"a:user", "b:user", "a:quests", "b:quests"}, got)
}
