package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"habitex/internal/storage"
)

// Ledger kinds.
const (
	LedgerPurchase = "purchase"
	LedgerOpenBox  = "open_box"
	LedgerConfirm  = "confirm_box"
	LedgerUse      = "use_item"
	LedgerEquip    = "equip"
	LedgerUnequip  = "unequip"
	LedgerHabit    = "habit"
	LedgerQuest    = "quest"
)

func newUUID() string { return uuid.NewString() }

// Purchase buys item at price. The stored copy gets id {item.ID}-{uuid}.
func (s *Service) Purchase(ctx context.Context, item storage.RewardItem, price int) (*storage.RewardItem, error) {
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	bought, err := Purchase(u, item, price, fmt.Sprintf("%s-%s", item.ID, s.newUUID()))
	if err != nil {
		return nil, err
	}

	var c change
	c.setUser(u, EventUser, EventInventory)
	c.ledger(LedgerPurchase, bought.Name, bought.ID, -price)
	if err := s.commit(ctx, &c); err != nil {
		return nil, err
	}
	return &bought, nil
}

// Buy purchases a catalog entry by its id.
func (s *Service) Buy(ctx context.Context, catalogID string) (*storage.RewardItem, error) {
	catalog, err := s.content.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range catalog {
		if entry.Item.ID == catalogID {
			return s.Purchase(ctx, entry.Item, entry.Price)
		}
	}
	return nil, NotFoundError{Kind: "catalog item", ID: catalogID}
}

// OpenBox charges price and returns the generated rewards. They are pending
// until passed to ConfirmBoxRewards.
func (s *Service) OpenBox(ctx context.Context, tier Rarity, price int) ([]storage.RewardItem, error) {
	if !tier.IsValid() {
		return nil, UnknownTierError{Tier: string(tier)}
	}
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	if err := charge(u, price); err != nil {
		return nil, err
	}
	rewards, err := s.gen.Generate(tier)
	if err != nil {
		return nil, err
	}

	var c change
	c.setUser(u, EventUser)
	c.ledger(LedgerOpenBox, string(tier), "", -price)
	if err := s.commit(ctx, &c); err != nil {
		return nil, err
	}
	s.log.Printf("opened %s box: %d rewards", tier, len(rewards))
	return rewards, nil
}

// ConfirmBoxRewards adds pending rewards to the user. It returns the coins
// credited.
func (s *Service) ConfirmBoxRewards(ctx context.Context, rewards []storage.RewardItem) (int, error) {
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return 0, err
	}
	credited := ConfirmBoxRewards(u, rewards)

	var c change
	c.setUser(u, EventUser, EventInventory)
	c.ledger(LedgerConfirm, fmt.Sprintf("%d rewards", len(rewards)), "", credited)
	if err := s.commit(ctx, &c); err != nil {
		return 0, err
	}
	return credited, nil
}

// UseItem consumes one unit of an inventory item. Loot boxes are opened for
// free and their contents returned in UseResult.Pending.
func (s *Service) UseItem(ctx context.Context, itemID string) (*UseResult, error) {
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	before := u.Currency
	res, err := UseItem(u, itemID)
	if err != nil {
		return nil, err
	}
	if res.Outcome == OutcomeOpened {
		res.Pending, err = s.gen.Generate(res.Tier)
		if err != nil {
			return nil, err
		}
	}

	var c change
	c.setUser(u, EventUser, EventInventory)
	if res.Outcome == OutcomeEffect {
		c.emit(EventStats)
	}
	c.ledger(LedgerUse, res.Item.Name, res.Item.ID, u.Currency-before)
	if err := s.commit(ctx, &c); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) EquipCosmetic(ctx context.Context, itemID string) (*EquipResult, error) {
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	res, err := EquipCosmetic(u, itemID)
	if err != nil {
		return nil, err
	}

	var c change
	c.setUser(u, EventUser)
	c.ledger(LedgerEquip, string(res.Slot), res.Item.ID, 0)
	if err := s.commit(ctx, &c); err != nil {
		return nil, err
	}
	return res, nil
}

// UnequipCosmetic clears slot. It reports false, and writes nothing, when the
// slot was already empty.
func (s *Service) UnequipCosmetic(ctx context.Context, slot Slot) (bool, error) {
	if !slot.IsValid() {
		return false, UnknownSlotError{Slot: string(slot)}
	}
	u, err := s.users.GetOrCreate(ctx)
	if err != nil {
		return false, err
	}
	if !UnequipCosmetic(u, slot) {
		return false, nil
	}

	var c change
	c.setUser(u, EventUser)
	c.ledger(LedgerUnequip, string(slot), "", 0)
	if err := s.commit(ctx, &c); err != nil {
		return false, err
	}
	return true, nil
}
