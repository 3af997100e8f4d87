package engine

import (
	"strings"

	"habitex/internal/storage"
)

// ParseTier parses a box tier name.
func ParseTier(input string) (Rarity, error) {
	r := Rarity(strings.TrimSpace(strings.ToLower(input)))
	if !r.IsValid() {
		return "", UnknownTierError{Tier: input}
	}
	return r, nil
}

// ParseSlot parses a cosmetic slot name.
func ParseSlot(input string) (Slot, error) {
	s := Slot(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", UnknownSlotError{Slot: input}
	}
	return s, nil
}

// SlotFor returns the slot a cosmetic occupies. Items written before slots
// were explicit fall back to matching their name.
func SlotFor(item storage.RewardItem) Slot {
	if s := Slot(item.Slot); s.IsValid() {
		return s
	}
	name := strings.ToLower(item.Name)
	switch {
	case strings.Contains(name, "frame"):
		return SlotFrame
	case strings.Contains(name, "skin"):
		return SlotSkin
	default:
		return SlotBackground
	}
}
