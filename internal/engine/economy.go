package engine

import (
	"habitex/internal/storage"
)

// charge deducts price from the user's balance, or fails without mutating.
func charge(u *storage.UserRecord, price int) error {
	if price < 0 {
		return InvalidPriceError{Price: price}
	}
	if u.Currency < price {
		return InsufficientFundsError{Have: u.Currency, Need: price}
	}
	u.Currency -= price
	return nil
}

// Purchase charges price and appends a copy of item under newID.
func Purchase(u *storage.UserRecord, item storage.RewardItem, price int, newID string) (storage.RewardItem, error) {
	if err := charge(u, price); err != nil {
		return storage.RewardItem{}, err
	}
	bought := cloneItem(item)
	bought.ID = newID
	bought.Quantity = 1
	u.Inventory = append(u.Inventory, bought)
	return bought, nil
}

// ConfirmBoxRewards commits rewards generated by a paid box opening. It
// returns the coins credited.
func ConfirmBoxRewards(u *storage.UserRecord, rewards []storage.RewardItem) int {
	credited := 0
	for _, r := range rewards {
		if RewardType(r.Type) == RewardCurrency {
			if r.Quantity > 0 {
				u.Currency += r.Quantity
				credited += r.Quantity
			}
			continue
		}
		item := cloneItem(r)
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		u.Inventory = append(u.Inventory, item)
	}
	return credited
}

// UseOutcome describes what using an item did.
type UseOutcome string

const (
	OutcomeEffect    UseOutcome = "effect"
	OutcomeActivated UseOutcome = "activated"
	OutcomeOpened    UseOutcome = "opened"
)

type UseResult struct {
	Item    storage.RewardItem
	Outcome UseOutcome
	// Remaining is the quantity left in the inventory after use.
	Remaining int
	// Tier is set when a loot box was opened.
	Tier Rarity
	// Pending holds the unconfirmed rewards of an opened loot box.
	Pending []storage.RewardItem
}

// UseItem consumes one unit of the inventory entry with the given id.
//
// Items with an effect add its value to the named stat. Powerups without an
// effect move to the active powerups. Loot boxes report their tier so the
// caller can generate their contents. Cosmetics cannot be used.
func UseItem(u *storage.UserRecord, itemID string) (*UseResult, error) {
	idx := findItem(u.Inventory, itemID)
	if idx < 0 {
		return nil, ItemNotFoundError{ID: itemID}
	}
	item := u.Inventory[idx]

	res := &UseResult{Item: cloneItem(item)}
	switch {
	case item.Effect != nil:
		if err := applyEffect(u, *item.Effect); err != nil {
			return nil, err
		}
		res.Outcome = OutcomeEffect
	case RewardType(item.Type) == RewardPowerup:
		active := cloneItem(item)
		active.Quantity = 1
		u.ActivePowerups = append(u.ActivePowerups, active)
		res.Outcome = OutcomeActivated
	case RewardType(item.Type) == RewardLootbox:
		tier := Rarity(item.Rarity)
		if !tier.IsValid() {
			return nil, UnknownTierError{Tier: item.Rarity}
		}
		res.Outcome = OutcomeOpened
		res.Tier = tier
	default:
		return nil, NotUsableError{ID: item.ID, Type: item.Type, Action: "use"}
	}

	res.Remaining = decrement(u, idx)
	return res, nil
}

// EquipResult reports the slot filled and the item it replaced, if any.
type EquipResult struct {
	Slot     Slot
	Item     storage.RewardItem
	Replaced *storage.RewardItem
}

// EquipCosmetic puts an inventory cosmetic into its slot. The item stays in
// the inventory, and so does any item it replaces.
func EquipCosmetic(u *storage.UserRecord, itemID string) (*EquipResult, error) {
	idx := findItem(u.Inventory, itemID)
	if idx < 0 {
		return nil, ItemNotFoundError{ID: itemID}
	}
	item := u.Inventory[idx]
	if RewardType(item.Type) != RewardCosmetic {
		return nil, NotUsableError{ID: item.ID, Type: item.Type, Action: "equip"}
	}

	slot := SlotFor(item)
	res := &EquipResult{Slot: slot, Item: cloneItem(item)}
	if prev, ok := u.EquippedCosmetics[string(slot)]; ok {
		res.Replaced = &prev
	}
	if u.EquippedCosmetics == nil {
		u.EquippedCosmetics = map[string]storage.RewardItem{}
	}
	u.EquippedCosmetics[string(slot)] = res.Item
	return res, nil
}

// UnequipCosmetic clears a slot and reports whether it was occupied.
func UnequipCosmetic(u *storage.UserRecord, slot Slot) bool {
	if _, ok := u.EquippedCosmetics[string(slot)]; !ok {
		return false
	}
	delete(u.EquippedCosmetics, string(slot))
	return true
}

func applyEffect(u *storage.UserRecord, eff storage.Effect) error {
	switch eff.Stat {
	case StatHealth:
		u.Stats.Health += eff.Value
	case StatStrength:
		u.Stats.Strength += eff.Value
	case StatIntelligence:
		u.Stats.Intelligence += eff.Value
	case StatCharisma:
		u.Stats.Charisma += eff.Value
	case StatPhysical:
		u.Attributes.Physical += eff.Value
	case StatMental:
		u.Attributes.Mental += eff.Value
	case StatEmotional:
		u.Attributes.Emotional += eff.Value
	case StatSocial:
		u.Attributes.Social += eff.Value
	case StatCreativity:
		u.Attributes.Creativity += eff.Value
	case StatExperience:
		if eff.Value >= 0 {
			GainXP(u, eff.Value)
		} else {
			LoseXP(u, -eff.Value)
		}
	case StatGold:
		u.Currency += eff.Value
		if u.Currency < 0 {
			u.Currency = 0
		}
	default:
		return UnknownStatError{Stat: eff.Stat}
	}
	return nil
}

// decrement removes one unit of the entry at idx, dropping it at zero, and
// returns the quantity left.
func decrement(u *storage.UserRecord, idx int) int {
	u.Inventory[idx].Quantity--
	left := u.Inventory[idx].Quantity
	if left <= 0 {
		u.Inventory = append(u.Inventory[:idx], u.Inventory[idx+1:]...)
		return 0
	}
	return left
}

func findItem(items []storage.RewardItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItem(it storage.RewardItem) storage.RewardItem {
	if it.Effect != nil {
		eff := *it.Effect
		it.Effect = &eff
	}
	return it
}
