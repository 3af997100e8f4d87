package engine

import (
	"fmt"
	"math/rand"
	"time"

	"habitex/internal/storage"
)

// RewardCount returns how many rewards a box of the given tier yields.
func RewardCount(tier Rarity) int {
	switch tier {
	case RarityCommon:
		return 1
	case RarityRare:
		return 2
	case RarityEpic:
		return 3
	case RarityLegendary:
		return 4
	default:
		return 0
	}
}

// EligiblePools returns the rarities a box of the given tier draws from.
// Pools are cumulative: a tier draws from itself and every lower rarity.
func EligiblePools(tier Rarity) []Rarity {
	for i, r := range Rarities {
		if r == tier {
			return append([]Rarity(nil), Rarities[:i+1]...)
		}
	}
	return nil
}

// Generator draws loot-box rewards.
//
// Given the same rand source state, clock and tier, Generate produces the
// same rewards in the same order.
type Generator struct {
	rng   *rand.Rand
	now   func() time.Time
	pools map[Rarity][]storage.RewardItem
}

func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now, pools: DefaultRewardPools()}
}

// Generate returns exactly RewardCount(tier) rewards.
//
// The first draw of a rare, epic or legendary box is taken from the tier's
// own pool. Every other draw picks one of the eligible pools uniformly, then
// an item uniformly within it. Reward ids are rewritten to
// {baseId}-{unixMillis}-{drawIndex}.
func (g *Generator) Generate(tier Rarity) ([]storage.RewardItem, error) {
	if !tier.IsValid() {
		return nil, UnknownTierError{Tier: string(tier)}
	}

	eligible := EligiblePools(tier)
	count := RewardCount(tier)
	stamp := g.now().UnixMilli()

	out := make([]storage.RewardItem, 0, count)
	for i := 0; i < count; i++ {
		pool := tier
		if i > 0 || tier == RarityCommon {
			pool = eligible[g.rng.Intn(len(eligible))]
		}
		items := g.pools[pool]
		item := items[g.rng.Intn(len(items))]
		if item.Effect != nil {
			eff := *item.Effect
			item.Effect = &eff
		}
		item.ID = fmt.Sprintf("%s-%d-%d", item.ID, stamp, i)
		out = append(out, item)
	}
	return out, nil
}
