package engine

// Rarity classifies reward items and loot boxes. A box tier is a Rarity.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every rarity from lowest to highest.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

type RewardType string

const (
	RewardPowerup  RewardType = "powerup"
	RewardCosmetic RewardType = "cosmetic"
	RewardCurrency RewardType = "currency"
	RewardLootbox  RewardType = "lootbox"
)

func (t RewardType) IsValid() bool {
	switch t {
	case RewardPowerup, RewardCosmetic, RewardCurrency, RewardLootbox:
		return true
	default:
		return false
	}
}

// Slot is a cosmetic equip slot. At most one item occupies each slot.
type Slot string

const (
	SlotFrame      Slot = "frame"
	SlotSkin       Slot = "skin"
	SlotBackground Slot = "background"
)

func (s Slot) IsValid() bool {
	switch s {
	case SlotFrame, SlotSkin, SlotBackground:
		return true
	default:
		return false
	}
}

// Stat names accepted by item effects.
const (
	StatHealth       = "health"
	StatStrength     = "strength"
	StatIntelligence = "intelligence"
	StatCharisma     = "charisma"
	StatExperience   = "experience"
	StatGold         = "gold"
	StatPhysical     = "physical"
	StatMental       = "mental"
	StatEmotional    = "emotional"
	StatSocial       = "social"
	StatCreativity   = "creativity"
)
