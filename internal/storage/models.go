package storage

import "time"

type Attributes struct {
	Physical   int `json:"physical"`
	Mental     int `json:"mental"`
	Emotional  int `json:"emotional"`
	Social     int `json:"social"`
	Creativity int `json:"creativity"`
}

type Stats struct {
	Health          int `json:"health"`
	Strength        int `json:"strength"`
	Intelligence    int `json:"intelligence"`
	Charisma        int `json:"charisma"`
	DailyStreak     int `json:"dailyStreak"`
	QuestsCompleted int `json:"questsCompleted"`
	HabitsCompleted int `json:"habitsCompleted"`
	HabitsCreated   int `json:"habitsCreated"`
}

type Effect struct {
	Stat  string `json:"stat"`
	Value int    `json:"value"`
}

type RewardItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Rarity      string  `json:"rarity,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	Slot        string  `json:"slot,omitempty"`
	Effect      *Effect `json:"effect,omitempty"`
	Image       string  `json:"image,omitempty"`
}

type UserRecord struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`

	Currency int `json:"currency"`
	Level    int `json:"level"`
	XP       int `json:"xp"`
	MaxXP    int `json:"maxXp"`

	Attributes Attributes `json:"attributes"`
	Stats      Stats      `json:"stats"`

	Inventory         []RewardItem          `json:"inventory"`
	ActivePowerups    []RewardItem          `json:"activePowerups"`
	EquippedCosmetics map[string]RewardItem `json:"equippedCosmetics"`

	CreatedAt time.Time `json:"createdAt"`
}

type Habit struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Frequency     string `json:"frequency"`
	Points        int    `json:"points"`
	Streak        int    `json:"streak"`
	Completed     bool   `json:"completed"`
	LastCompleted string `json:"lastCompleted,omitempty"` // YYYY-MM-DD
}

type Quest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Total       int    `json:"total"`
	Completed   bool   `json:"completed"`
	Reward      string `json:"reward"`
	Category    string `json:"category"`
}

// CatalogItem is a marketplace listing.
type CatalogItem struct {
	Item  RewardItem `json:"item"`
	Price int        `json:"price"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"maxProgress"`
}

type Testimonial struct {
	ID    string `json:"id"`
	Quote string `json:"quote"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type LedgerEntry struct {
	ID            int64
	Kind          string
	Detail        string
	ItemID        *string
	CurrencyDelta int
	CreatedAt     time.Time
}
