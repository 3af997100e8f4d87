package engine

import (
	"errors"
	"fmt"
)

// InsufficientFundsError is returned when a purchase or box costs more than
// the user's balance. No state is mutated.
type InsufficientFundsError struct {
	Have int
	Need int
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: have %d, need %d", e.Have, e.Need)
}

// ItemNotFoundError is returned when an inventory id does not exist.
type ItemNotFoundError struct {
	ID string
}

func (e ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s not found in inventory", e.ID)
}

// NotFoundError is returned for unknown habits, quests and catalog entries.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

type NotUsableError struct {
	ID     string
	Type   string
	Action string
}

func (e NotUsableError) Error() string {
	return fmt.Sprintf("cannot %s item %s of type %q", e.Action, e.ID, e.Type)
}

type UnknownStatError struct {
	Stat string
}

func (e UnknownStatError) Error() string {
	return fmt.Sprintf("unknown stat %q", e.Stat)
}

type UnknownTierError struct {
	Tier string
}

func (e UnknownTierError) Error() string {
	return fmt.Sprintf("unknown box tier %q (want common|rare|epic|legendary)", e.Tier)
}

type UnknownSlotError struct {
	Slot string
}

func (e UnknownSlotError) Error() string {
	return fmt.Sprintf("unknown cosmetic slot %q (want frame|skin|background)", e.Slot)
}

type InvalidPriceError struct {
	Price int
}

func (e InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price %d", e.Price)
}

var errTitleRequired = errors.New("title is required")

// Advice converts an error into a short message fit for the user.
func Advice(err error) string {
	if err == nil {
		return ""
	}
	var (
		funds    InsufficientFundsError
		item     ItemNotFoundError
		notFound NotFoundError
		usable   NotUsableError
		stat     UnknownStatError
		tier     UnknownTierError
		slot     UnknownSlotError
		price    InvalidPriceError
	)
	switch {
	case errors.As(err, &funds):
		return fmt.Sprintf("Not enough coins! You need %d coins but only have %d.", funds.Need, funds.Have)
	case errors.As(err, &item):
		return "Item not found in inventory."
	case errors.As(err, &notFound):
		return fmt.Sprintf("No %s with id %q.", notFound.Kind, notFound.ID)
	case errors.As(err, &usable):
		return fmt.Sprintf("That %s can't be %s.", usable.Type, pastTense(usable.Action))
	case errors.As(err, &stat):
		return fmt.Sprintf("This item boosts %q, which your character doesn't have.", stat.Stat)
	case errors.As(err, &tier):
		return "Pick a box tier: common, rare, epic or legendary."
	case errors.As(err, &slot):
		return "Pick a cosmetic slot: frame, skin or background."
	case errors.As(err, &price):
		return "Prices can't be negative."
	default:
		return err.Error()
	}
}

func pastTense(action string) string {
	switch action {
	case "use":
		return "used"
	case "equip":
		return "equipped"
	default:
		return action + "ed"
	}
}
