package engine

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitex/internal/storage"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	svc   *Service
	store storage.Store
	now   time.Time
}

func newTestService(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	env := &testEnv{store: storage.NewRecordStore(db, nil), now: testNow}
	ids := 0
	env.svc = NewService(env.store,
		WithRand(rand.New(rand.NewSource(7))),
		WithClock(func() time.Time { return env.now }),
		WithIDs(func() string {
			ids++
			return fmt.Sprintf("id%d", ids)
		}),
	)
	return env
}

func (e *testEnv) setUser(t *testing.T, fn func(u *storage.UserRecord)) {
	t.Helper()
	ctx := context.Background()
	users := storage.NewUserRepo(e.store)
	u, err := users.GetOrCreate(ctx)
	require.NoError(t, err)
	fn(u)
	require.NoError(t, users.Save(ctx, u))
}

func (e *testEnv) user(t *testing.T) *storage.UserRecord {
	t.Helper()
	u, err := e.svc.User(context.Background())
	require.NoError(t, err)
	return u
}

func TestCurrencyNeverNegative(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	catalog, err := env.svc.Catalog(ctx)
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		before := env.user(t).Currency
		var price int
		if rng.Intn(2) == 0 {
			entry := catalog[rng.Intn(len(catalog))]
			price = entry.Price
			_, err = env.svc.Purchase(ctx, entry.Item, price)
		} else {
			tier := Rarities[rng.Intn(len(Rarities))]
			price = BoxPrices[tier]
			var rewards []storage.RewardItem
			rewards, err = env.svc.OpenBox(ctx, tier, price)
			if err == nil && rng.Intn(3) == 0 {
				// Confirming adds coins back, so only check the charge itself.
				_, cerr := env.svc.ConfirmBoxRewards(ctx, rewards)
				require.NoError(t, cerr)
				before = -1
			}
		}

		after := env.user(t).Currency
		require.GreaterOrEqual(t, after, 0)
		if before < 0 {
			continue
		}
		if before < price {
			var funds InsufficientFundsError
			require.ErrorAs(t, err, &funds)
			assert.Equal(t, before, after)
		} else {
			require.NoError(t, err)
			assert.Equal(t, before-price, after)
		}
	}
}

func TestOpenCommonBoxSpendsLastCoins(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	env.setUser(t, func(u *storage.UserRecord) { u.Currency = 50 })

	rewards, err := env.svc.OpenBox(ctx, RarityCommon, 50)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, 0, env.user(t).Currency)
	assert.Empty(t, env.user(t).Inventory, "rewards stay pending until confirmed")

	suffix := fmt.Sprintf("-%d-0", testNow.UnixMilli())
	assert.Regexp(t, `^c[123]`+suffix+`$`, rewards[0].ID)

	credited, err := env.svc.ConfirmBoxRewards(ctx, rewards)
	require.NoError(t, err)

	u := env.user(t)
	if RewardType(rewards[0].Type) == RewardCurrency {
		assert.Equal(t, 50, credited)
		assert.Equal(t, 50, u.Currency)
		assert.Empty(t, u.Inventory)
	} else {
		assert.Equal(t, 0, credited)
		require.Len(t, u.Inventory, 1)
		assert.Equal(t, rewards[0].ID, u.Inventory[0].ID)
	}
}

func TestOpenBoxInsufficientFunds(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	env.setUser(t, func(u *storage.UserRecord) { u.Currency = 40 })

	rewards, err := env.svc.OpenBox(ctx, RarityCommon, 50)
	var funds InsufficientFundsError
	require.ErrorAs(t, err, &funds)
	assert.Equal(t, InsufficientFundsError{Have: 40, Need: 50}, funds)
	assert.Nil(t, rewards)
	assert.Equal(t, 40, env.user(t).Currency)

	entries, err := env.svc.Ledger(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenBoxRejectsUnknownTier(t *testing.T) {
	env := newTestService(t)
	_, err := env.svc.OpenBox(context.Background(), Rarity("mythic"), 10)
	var tierErr UnknownTierError
	require.ErrorAs(t, err, &tierErr)
	assert.Equal(t, 500, env.user(t).Currency)
}

func TestBuyAppendsDistinctEntries(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	first, err := env.svc.Buy(ctx, "health-potion")
	require.NoError(t, err)
	second, err := env.svc.Buy(ctx, "health-potion")
	require.NoError(t, err)
	assert.Equal(t, "health-potion-id1", first.ID)
	assert.Equal(t, "health-potion-id2", second.ID)

	u := env.user(t)
	assert.Equal(t, 420, u.Currency)
	require.Len(t, u.Inventory, 2)
	assert.Equal(t, 1, u.Inventory[0].Quantity)

	_, err = env.svc.Buy(ctx, "nope")
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)

	entries, err := env.svc.Ledger(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, LedgerPurchase, entries[0].Kind)
	assert.Equal(t, -40, entries[0].CurrencyDelta)
}

func TestUseItemAppliesEffect(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	potion, err := env.svc.Buy(ctx, "health-potion")
	require.NoError(t, err)

	res, err := env.svc.UseItem(ctx, potion.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEffect, res.Outcome)
	assert.Equal(t, 0, res.Remaining)

	u := env.user(t)
	assert.Equal(t, 120, u.Stats.Health)
	assert.Empty(t, u.Inventory)

	_, err = env.svc.UseItem(ctx, potion.ID)
	var nf ItemNotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUseItemUnknownStatMutatesNothing(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	env.setUser(t, func(u *storage.UserRecord) {
		u.Inventory = append(u.Inventory, storage.RewardItem{
			ID: "charm", Name: "Lucky Charm", Type: string(RewardPowerup), Rarity: string(RarityRare),
			Quantity: 1, Effect: &storage.Effect{Stat: "luck", Value: 3},
		})
	})

	_, err := env.svc.UseItem(ctx, "charm")
	var statErr UnknownStatError
	require.ErrorAs(t, err, &statErr)
	assert.Equal(t, "luck", statErr.Stat)

	u := env.user(t)
	require.Len(t, u.Inventory, 1)
	assert.Equal(t, 1, u.Inventory[0].Quantity)
}

func TestUseItemPowerupAndCosmetic(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	boost, err := env.svc.Buy(ctx, "mp1")
	require.NoError(t, err)
	skin, err := env.svc.Buy(ctx, "mp3")
	require.NoError(t, err)

	res, err := env.svc.UseItem(ctx, boost.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeActivated, res.Outcome)

	_, err = env.svc.UseItem(ctx, skin.ID)
	var notUsable NotUsableError
	require.ErrorAs(t, err, &notUsable)

	u := env.user(t)
	require.Len(t, u.ActivePowerups, 1)
	assert.Equal(t, "Energy Boost", u.ActivePowerups[0].Name)
	require.Len(t, u.Inventory, 1)
	assert.Equal(t, skin.ID, u.Inventory[0].ID)
}

func TestEquipAndUnequip(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	skin, err := env.svc.Buy(ctx, "mp3")
	require.NoError(t, err)
	potion, err := env.svc.Buy(ctx, "health-potion")
	require.NoError(t, err)

	res, err := env.svc.EquipCosmetic(ctx, skin.ID)
	require.NoError(t, err)
	assert.Equal(t, SlotSkin, res.Slot)
	assert.Nil(t, res.Replaced)

	_, err = env.svc.EquipCosmetic(ctx, potion.ID)
	var notUsable NotUsableError
	require.ErrorAs(t, err, &notUsable)

	u := env.user(t)
	assert.Equal(t, skin.ID, u.EquippedCosmetics[string(SlotSkin)].ID)
	assert.Len(t, u.Inventory, 2, "equipping keeps the item in the inventory")

	removed, err := env.svc.UnequipCosmetic(ctx, SlotSkin)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = env.svc.UnequipCosmetic(ctx, SlotSkin)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, env.user(t).EquippedCosmetics)
}

func TestToggleHabitIsSymmetric(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	before := env.user(t)

	on, err := env.svc.ToggleHabit(ctx, "1")
	require.NoError(t, err)
	assert.True(t, on.Habit.Completed)
	assert.Equal(t, 1, on.Habit.Streak)
	assert.Equal(t, "2026-03-10", on.Habit.LastCompleted)
	assert.Equal(t, 5, on.Coins)
	assert.Equal(t, 10, on.XP)

	mid := env.user(t)
	assert.Equal(t, before.Currency+5, mid.Currency)
	assert.Equal(t, before.XP+10, mid.XP)
	assert.Equal(t, 1, mid.Stats.HabitsCompleted)

	off, err := env.svc.ToggleHabit(ctx, "1")
	require.NoError(t, err)
	assert.False(t, off.Habit.Completed)
	assert.Equal(t, 0, off.Habit.Streak)

	after := env.user(t)
	assert.Equal(t, before.Currency, after.Currency)
	assert.Equal(t, before.XP, after.XP)
	assert.Equal(t, 0, after.Stats.HabitsCompleted)

	_, err = env.svc.ToggleHabit(ctx, "missing")
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestToggleHabitOffClampsAtZero(t *testing.T) {
	h := storage.Habit{ID: "x", Completed: true, Streak: 0}
	ToggleHabit(&h, "2026-03-10")
	assert.False(t, h.Completed)
	assert.Equal(t, 0, h.Streak)
}

func TestHabitsRollOverNextDay(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	_, err := env.svc.ToggleHabit(ctx, "2")
	require.NoError(t, err)

	env.now = testNow.AddDate(0, 0, 1)
	habits, err := env.svc.Habits(ctx)
	require.NoError(t, err)
	h := habits[findHabit(habits, "2")]
	assert.False(t, h.Completed)
	assert.Equal(t, 1, h.Streak, "rollover keeps the streak")
}

func TestDeriveStats(t *testing.T) {
	assert.Equal(t, HabitStats{}, DeriveStats(nil))

	got := DeriveStats([]storage.Habit{
		{Points: 10, Completed: true},
		{Points: 20},
		{Points: 5, Completed: true},
	})
	assert.Equal(t, HabitStats{Completed: 2, Total: 3, Percentage: 67, PointsEarned: 15}, got)
}

func TestAdvanceQuestCompletesOnce(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	q, err := env.svc.AddQuest(ctx, AddQuestInput{Title: "Sprint", Total: 2, Reward: "50 XP + Rare Loot Box"})
	require.NoError(t, err)

	first, err := env.svc.AdvanceQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.False(t, first.Completed)
	assert.Equal(t, 1, first.Quest.Progress)

	done, err := env.svc.AdvanceQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, 50, done.XP)
	require.NotNil(t, done.LootBox)
	assert.Equal(t, string(RarityRare), done.LootBox.Rarity)

	u := env.user(t)
	assert.Equal(t, 500, u.XP)
	assert.Equal(t, 1, u.Stats.QuestsCompleted)
	require.Len(t, u.Inventory, 1)

	again, err := env.svc.AdvanceQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.False(t, again.Completed)
	assert.Equal(t, 2, again.Quest.Progress)
	assert.Equal(t, 500, env.user(t).XP)
	assert.Equal(t, 1, env.user(t).Stats.QuestsCompleted)
}

func TestQuestLootBoxOpensForFree(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	q, err := env.svc.AddQuest(ctx, AddQuestInput{Title: "Quick win", Total: 1, Reward: "Epic Loot Box"})
	require.NoError(t, err)
	done, err := env.svc.AdvanceQuest(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, done.LootBox)

	res, err := env.svc.UseItem(ctx, done.LootBox.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOpened, res.Outcome)
	assert.Equal(t, RarityEpic, res.Tier)
	require.Len(t, res.Pending, 3)
	assert.Equal(t, string(RarityEpic), res.Pending[0].Rarity)

	u := env.user(t)
	assert.Equal(t, 500, u.Currency)
	assert.Empty(t, u.Inventory)
}

func TestUncommonLootBoxGrantsNothing(t *testing.T) {
	_, ok := ParseRewardBox("75 XP + Uncommon Loot Box")
	assert.False(t, ok)
	assert.Equal(t, 75, ParseRewardXP("75 XP + Uncommon Loot Box"))
	assert.Equal(t, 0, ParseRewardXP("a shiny badge"))
	assert.Equal(t, 0, ParseRewardXP("50XP"))
	assert.Equal(t, 0, ParseRewardXP("50  XP"))
	assert.Equal(t, 50, ParseRewardXP("Bonus: 50 XP"))
}

func TestAchievementsStayUnlocked(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	var unlocked []string
	cancel := env.svc.Events().Subscribe(func(ev Event) {
		if ev.Kind == EventAchievements {
			unlocked = append(unlocked, ev.Detail)
		}
	})
	defer cancel()

	env.setUser(t, func(u *storage.UserRecord) { u.Currency = 995 })
	_, err := env.svc.ToggleHabit(ctx, "1")
	require.NoError(t, err)
	assert.Contains(t, unlocked, "Coin Hoarder")
	assert.NotContains(t, unlocked, "First Steps", "starter habits are not the user's own")

	_, err = env.svc.AddHabit(ctx, AddHabitInput{Name: "Stretch"})
	require.NoError(t, err)
	assert.Contains(t, unlocked, "First Steps")

	_, err = env.svc.OpenBox(ctx, RarityLegendary, BoxPrices[RarityLegendary])
	require.NoError(t, err)

	list, err := env.svc.Achievements(ctx)
	require.NoError(t, err)
	byID := map[string]storage.Achievement{}
	for _, a := range list {
		byID[a.ID] = a
	}
	assert.True(t, byID["coin_hoarder"].Unlocked)
	assert.Equal(t, 1000, byID["coin_hoarder"].Progress)
	assert.False(t, byID["quest_novice"].Unlocked)
	assert.Equal(t, 1, byID["habit_streak"].Progress)
}

func TestNotifierCancel(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	var kinds []EventKind
	cancel := env.svc.Events().Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	_, err := env.svc.Buy(ctx, "mp1")
	require.NoError(t, err)
	assert.Contains(t, kinds, EventInventory)
	assert.Contains(t, kinds, EventUser)

	cancel()
	n := len(kinds)
	_, err = env.svc.Buy(ctx, "mp1")
	require.NoError(t, err)
	assert.Len(t, kinds, n)
}

func TestAcceptQuestTemplate(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	q, err := env.svc.AcceptQuestTemplate(ctx, "digital_detox")
	require.NoError(t, err)
	assert.Equal(t, "Digital Detox Challenge", q.Title)
	assert.Equal(t, 3, q.Total)

	_, err = env.svc.AcceptQuestTemplate(ctx, "digital_detox")
	require.Error(t, err, "an active template cannot be accepted twice")

	_, err = env.svc.AcceptQuestTemplate(ctx, "quest_veteran")
	require.Error(t, err, "locked templates cannot be accepted")

	views, err := env.svc.QuestTemplates(ctx)
	require.NoError(t, err)
	status := map[string]TemplateStatus{}
	for _, v := range views {
		status[v.Code] = v.Status
	}
	assert.Equal(t, TemplateActive, status["digital_detox"])
	assert.Equal(t, TemplateAvailable, status["early_riser"])
	assert.Equal(t, TemplateLocked, status["quest_veteran"])
}

func TestOnboardRunsOnce(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	done, err := env.svc.Onboard(ctx, OnboardInput{DisplayName: "Mira"})
	require.NoError(t, err)
	assert.True(t, done)

	quests, err := env.svc.Quests(ctx)
	require.NoError(t, err)
	assert.Len(t, quests, len(DefaultQuests())+2)
	assert.Equal(t, "Mira", env.user(t).DisplayName)

	done, err = env.svc.Onboard(ctx, OnboardInput{DisplayName: "Other"})
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "Mira", env.user(t).DisplayName)
}

func TestOnboardKeepsEarlierProgress(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()

	_, err := env.svc.AddHabit(ctx, AddHabitInput{Name: "Mine"})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = env.svc.AdvanceQuest(ctx, "3")
		require.NoError(t, err)
	}
	xp := env.user(t).XP
	level := env.user(t).Level

	done, err := env.svc.Onboard(ctx, OnboardInput{DisplayName: "Mira"})
	require.NoError(t, err)
	assert.True(t, done)

	habits, err := env.svc.Habits(ctx)
	require.NoError(t, err)
	assert.Len(t, habits, len(DefaultHabits())+1)
	assert.Equal(t, "Mine", habits[len(habits)-1].Name)

	quests, err := env.svc.Quests(ctx)
	require.NoError(t, err)
	assert.Len(t, quests, len(DefaultQuests())+2)
	var bookworm storage.Quest
	for _, q := range quests {
		if q.ID == "3" {
			bookworm = q
		}
	}
	assert.True(t, bookworm.Completed)
	assert.Equal(t, 5, bookworm.Progress)

	res, err := env.svc.AdvanceQuest(ctx, "3")
	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Zero(t, res.XP)
	assert.Equal(t, xp, env.user(t).XP)
	assert.Equal(t, level, env.user(t).Level)
	assert.Equal(t, 1, env.user(t).Stats.QuestsCompleted)
}

func TestPurchaseStoresCurrencyItems(t *testing.T) {
	u := storage.DefaultUser(testNow)
	bundle := storage.RewardItem{ID: "c1", Name: "Coin Pouch", Type: string(RewardCurrency), Rarity: string(RarityCommon), Quantity: 25}

	bought, err := Purchase(&u, bundle, 40, "c1-x")
	require.NoError(t, err)
	assert.Equal(t, 460, u.Currency)
	require.Len(t, u.Inventory, 1)
	assert.Equal(t, "c1-x", u.Inventory[0].ID)
	assert.Equal(t, 1, bought.Quantity)
}

func TestServiceOnUnavailableStore(t *testing.T) {
	svc := NewService(storage.Unavailable(), WithRand(rand.New(rand.NewSource(1))))
	ctx := context.Background()

	rewards, err := svc.OpenBox(ctx, RarityRare, 150)
	require.NoError(t, err)
	assert.Len(t, rewards, 2)

	u, err := svc.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500, u.Currency, "writes are dropped")

	habits, err := svc.Habits(ctx)
	require.NoError(t, err)
	assert.Len(t, habits, len(DefaultHabits()))
}

func TestAdvice(t *testing.T) {
	err := fmt.Errorf("open box: %w", InsufficientFundsError{Have: 40, Need: 50})
	assert.Equal(t, "Not enough coins! You need 50 coins but only have 40.", Advice(err))
	assert.Equal(t, "Item not found in inventory.", Advice(ItemNotFoundError{ID: "x"}))
	assert.Equal(t, "That cosmetic can't be used.", Advice(NotUsableError{ID: "x", Type: "cosmetic", Action: "use"}))
	assert.Equal(t, "", Advice(nil))
}
