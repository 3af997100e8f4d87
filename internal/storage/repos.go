package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record keys.
const (
	KeyUser         = "habitex-user"
	KeyHabits       = "habitex-habits"
	KeyQuests       = "habitex-quests"
	KeyRewards      = "habitex-rewards"
	KeyAchievements = "habitex-achievements"
	KeyTestimonials = "habitex-testimonials"
	KeyOnboarded    = "habitex-onboarded"
)

// DefaultUser is the record served when none is stored yet.
func DefaultUser(now time.Time) UserRecord {
	return UserRecord{
		ID:          uuid.NewString(),
		Username:    "default",
		Email:       "user@example.com",
		DisplayName: "Pixel Warrior",
		Currency:    500,
		Level:       5,
		XP:          450,
		MaxXP:       1000,
		Attributes: Attributes{
			Physical:   10,
			Mental:     10,
			Emotional:  10,
			Social:     10,
			Creativity: 10,
		},
		Stats: Stats{
			Health:       100,
			Strength:     10,
			Intelligence: 10,
			Charisma:     10,
		},
		Inventory:         []RewardItem{},
		ActivePowerups:    []RewardItem{},
		EquippedCosmetics: map[string]RewardItem{},
		CreatedAt:         now.UTC(),
	}
}

type UserRepo struct {
	store Store
}

func NewUserRepo(store Store) *UserRepo {
	return &UserRepo{store: store}
}

// GetOrCreate returns the stored user, creating the default one if absent.
func (r *UserRepo) GetOrCreate(ctx context.Context) (*UserRecord, error) {
	var u UserRecord
	ok, err := r.store.Get(ctx, KeyUser, &u)
	if err != nil {
		return nil, err
	}
	if !ok {
		u = DefaultUser(time.Now())
		if err := r.store.Put(ctx, KeyUser, u); err != nil {
			return nil, fmt.Errorf("user create: %w", err)
		}
	}
	normalizeUser(&u)
	return &u, nil
}

func (r *UserRepo) Save(ctx context.Context, u *UserRecord) error {
	if err := r.store.Put(ctx, KeyUser, u); err != nil {
		return fmt.Errorf("user save: %w", err)
	}
	return nil
}

func normalizeUser(u *UserRecord) {
	if u.Inventory == nil {
		u.Inventory = []RewardItem{}
	}
	if u.ActivePowerups == nil {
		u.ActivePowerups = []RewardItem{}
	}
	if u.EquippedCosmetics == nil {
		u.EquippedCosmetics = map[string]RewardItem{}
	}
	for i := range u.Inventory {
		if u.Inventory[i].Quantity <= 0 {
			u.Inventory[i].Quantity = 1
		}
	}
	if u.Currency < 0 {
		u.Currency = 0
	}
}

type HabitRepo struct {
	store    Store
	defaults []Habit
}

func NewHabitRepo(store Store, defaults []Habit) *HabitRepo {
	return &HabitRepo{store: store, defaults: defaults}
}

func (r *HabitRepo) ListAll(ctx context.Context) ([]Habit, error) {
	var out []Habit
	ok, err := r.store.Get(ctx, KeyHabits, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]Habit(nil), r.defaults...), nil
	}
	return out, nil
}

func (r *HabitRepo) SaveAll(ctx context.Context, habits []Habit) error {
	if err := r.store.Put(ctx, KeyHabits, habits); err != nil {
		return fmt.Errorf("habits save: %w", err)
	}
	return nil
}

type QuestRepo struct {
	store    Store
	defaults []Quest
}

func NewQuestRepo(store Store, defaults []Quest) *QuestRepo {
	return &QuestRepo{store: store, defaults: defaults}
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	var out []Quest
	ok, err := r.store.Get(ctx, KeyQuests, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]Quest(nil), r.defaults...), nil
	}
	return out, nil
}

// ContentRepo serves the catalog, achievements, testimonials and the
// onboarding flag.
type ContentRepo struct {
	store        Store
	catalog      []CatalogItem
	testimonials []Testimonial
}

func NewContentRepo(store Store, catalog []CatalogItem, testimonials []Testimonial) *ContentRepo {
	return &ContentRepo{store: store, catalog: catalog, testimonials: testimonials}
}

func (r *ContentRepo) Catalog(ctx context.Context) ([]CatalogItem, error) {
	var out []CatalogItem
	ok, err := r.store.Get(ctx, KeyRewards, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]CatalogItem(nil), r.catalog...), nil
	}
	return out, nil
}

func (r *ContentRepo) Achievements(ctx context.Context) ([]Achievement, error) {
	var out []Achievement
	if _, err := r.store.Get(ctx, KeyAchievements, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ContentRepo) Testimonials(ctx context.Context) ([]Testimonial, error) {
	var out []Testimonial
	ok, err := r.store.Get(ctx, KeyTestimonials, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]Testimonial(nil), r.testimonials...), nil
	}
	return out, nil
}

func (r *ContentRepo) Onboarded(ctx context.Context) (bool, error) {
	var v bool
	if _, err := r.store.Get(ctx, KeyOnboarded, &v); err != nil {
		return false, err
	}
	return v, nil
}
