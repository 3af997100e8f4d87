package engine

import "habitex/internal/storage"

// BoxPrices are the coin prices of each box tier in the shop.
var BoxPrices = map[Rarity]int{
	RarityCommon:    50,
	RarityRare:      150,
	RarityEpic:      300,
	RarityLegendary: 500,
}

func reward(id, name, desc string, typ RewardType, rarity Rarity, image string) storage.RewardItem {
	return storage.RewardItem{
		ID:          id,
		Name:        name,
		Description: desc,
		Type:        string(typ),
		Rarity:      string(rarity),
		Quantity:    1,
		Image:       image,
	}
}

func coins(id, name string, rarity Rarity, amount int) storage.RewardItem {
	it := reward(id, name, "", RewardCurrency, rarity, "coins")
	it.Description = "Gain coins"
	it.Quantity = amount
	return it
}

func cosmetic(id, name, desc string, rarity Rarity, slot Slot, image string) storage.RewardItem {
	it := reward(id, name, desc, RewardCosmetic, rarity, image)
	it.Slot = string(slot)
	return it
}

func potion(id, name, desc, stat string, value int) storage.RewardItem {
	it := reward(id, name, desc, RewardPowerup, RarityCommon, id)
	it.Effect = &storage.Effect{Stat: stat, Value: value}
	return it
}

// DefaultRewardPools returns the loot table keyed by rarity.
func DefaultRewardPools() map[Rarity][]storage.RewardItem {
	return map[Rarity][]storage.RewardItem{
		RarityCommon: {
			reward("c1", "Energy Boost", "Skip one daily habit without breaking your streak", RewardPowerup, RarityCommon, "energy"),
			coins("c2", "Small Coin Pouch", RarityCommon, 50),
			cosmetic("c3", "Basic Character Frame", "A simple frame for your character", RarityCommon, SlotFrame, "frame"),
		},
		RarityRare: {
			reward("r1", "Double Points", "Earn double points for all habits for 24 hours", RewardPowerup, RarityRare, "double"),
			coins("r2", "Medium Coin Pouch", RarityRare, 150),
			reward("r3", "Streak Shield", "Protect your streaks for 48 hours if you miss habits", RewardPowerup, RarityRare, "shield"),
			cosmetic("r4", "Animated Character Frame", "An animated frame for your character", RarityRare, SlotFrame, "frame-animated"),
		},
		RarityEpic: {
			reward("e1", "Triple Points", "Earn triple points for all habits for 24 hours", RewardPowerup, RarityEpic, "triple"),
			coins("e2", "Large Coin Pouch", RarityEpic, 300),
			cosmetic("e3", "Epic Character Skin", "A special appearance for your character", RarityEpic, SlotSkin, "skin"),
			cosmetic("e4", "Custom Background", "A special background for your profile", RarityEpic, SlotBackground, "background"),
		},
		RarityLegendary: {
			cosmetic("l1", "Legendary Character Skin", "A legendary appearance for your character", RarityLegendary, SlotSkin, "skin-legendary"),
			coins("l2", "Treasure Chest", RarityLegendary, 500),
			reward("l3", "Ultimate Shield", "Protect all your streaks for 7 days", RewardPowerup, RarityLegendary, "shield-ultimate"),
			cosmetic("l4", "Legendary Background", "A legendary background for your profile", RarityLegendary, SlotBackground, "background-legendary"),
		},
	}
}

// DefaultCatalog is the marketplace served when none is stored.
func DefaultCatalog() []storage.CatalogItem {
	return []storage.CatalogItem{
		{Price: 100, Item: reward("mp1", "Energy Boost", "Skip one daily habit without breaking your streak", RewardPowerup, RarityCommon, "energy")},
		{Price: 200, Item: reward("mp2", "Streak Shield", "Protect your streaks for 48 hours if you miss habits", RewardPowerup, RarityRare, "shield")},
		{Price: 300, Item: cosmetic("mp3", "Premium Character Skin", "A special appearance for your character", RarityEpic, SlotSkin, "skin")},
		{Price: 250, Item: cosmetic("mp4", "Custom Background", "A special background for your profile", RarityEpic, SlotBackground, "background")},
		{Price: 150, Item: reward("mp5", "Double XP", "Earn double XP for 24 hours", RewardPowerup, RarityRare, "double")},
		{Price: 200, Item: cosmetic("mp6", "Animated Profile Frame", "An animated frame for your profile", RarityRare, SlotFrame, "frame-animated")},
		{Price: 40, Item: potion("health-potion", "Health Potion", "Restores 20 health points", StatHealth, 20)},
		{Price: 60, Item: potion("strength-elixir", "Strength Elixir", "Increases strength by 5 points", StatStrength, 5)},
		{Price: 60, Item: potion("intelligence-scroll", "Intelligence Scroll", "Increases intelligence by 5 points", StatIntelligence, 5)},
		{Price: 60, Item: potion("charisma-charm", "Charisma Charm", "Increases charisma by 5 points", StatCharisma, 5)},
	}
}

func DefaultHabits() []storage.Habit {
	return []storage.Habit{
		{ID: "1", Name: "Morning Meditation", Description: "10 minutes of mindfulness to start the day", Category: "wellness", Frequency: "daily", Points: 15},
		{ID: "2", Name: "Workout Session", Description: "30 minutes of strength training or cardio", Category: "fitness", Frequency: "daily", Points: 25},
		{ID: "3", Name: "Read a Book", Description: "Read at least 20 pages", Category: "learning", Frequency: "daily", Points: 20},
		{ID: "4", Name: "Drink 8 Glasses of Water", Description: "Stay hydrated throughout the day", Category: "wellness", Frequency: "daily", Points: 15},
		{ID: "5", Name: "Practice Coding", Description: "Work on a personal project for 1 hour", Category: "learning", Frequency: "daily", Points: 30},
	}
}

func DefaultQuests() []storage.Quest {
	return []storage.Quest{
		{ID: "1", Title: "Morning Routine Master", Description: "Complete your morning routine for 7 consecutive days", Total: 7, Reward: "50 XP + Rare Loot Box", Category: "daily"},
		{ID: "2", Title: "Fitness Enthusiast", Description: "Complete 10 workout sessions", Total: 10, Reward: "100 XP + Epic Loot Box", Category: "challenge"},
		{ID: "3", Title: "Bookworm", Description: "Read for at least 30 minutes for 5 days", Total: 5, Reward: "75 XP + Uncommon Loot Box", Category: "weekly"},
	}
}

func DefaultTestimonials() []storage.Testimonial {
	return []storage.Testimonial{
		{ID: "1", Name: "Alex K.", Title: "Level 12 Adventurer", Quote: "I've tried dozens of habit trackers, but this is the only one that kept me engaged for more than a week."},
		{ID: "2", Name: "Sarah M.", Title: "Level 8 Explorer", Quote: "The quest system makes it fun to tackle bigger goals by breaking them down into manageable steps."},
		{ID: "3", Name: "Jordan T.", Title: "Level 15 Warrior", Quote: "It's like playing a game, but I'm actually improving my real life in the process."},
		{ID: "4", Name: "Olivia S.", Title: "Level 9 Rogue", Quote: "The reward marketplace gives me something to look forward to."},
	}
}
