package engine

import (
	"context"
	"io"
	"log"
	"math/rand"
	"strings"
	"time"

	"habitex/internal/storage"
)

type Service struct {
	store   storage.Store
	users   *storage.UserRepo
	habits  *storage.HabitRepo
	quests  *storage.QuestRepo
	content *storage.ContentRepo
	gen     *Generator
	events  *Notifier
	now     func() time.Time
	log     *log.Logger
	newUUID func() string
	rng     *rand.Rand
}

type Option func(*Service)

// WithRand fixes the source loot boxes draw from.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithIDs replaces the generator of purchase id suffixes.
func WithIDs(fn func() string) Option {
	return func(s *Service) { s.newUUID = fn }
}

func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		users:   storage.NewUserRepo(store),
		habits:  storage.NewHabitRepo(store, DefaultHabits()),
		quests:  storage.NewQuestRepo(store, DefaultQuests()),
		content: storage.NewContentRepo(store, DefaultCatalog(), DefaultTestimonials()),
		events:  NewNotifier(),
		now:     time.Now,
		newUUID: newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	s.gen = NewGenerator(s.rng, s.now)
	return s
}

func (s *Service) Events() *Notifier { return s.events }

func (s *Service) User(ctx context.Context) (*storage.UserRecord, error) {
	return s.users.GetOrCreate(ctx)
}

func (s *Service) Catalog(ctx context.Context) ([]storage.CatalogItem, error) {
	return s.content.Catalog(ctx)
}

func (s *Service) Testimonials(ctx context.Context) ([]storage.Testimonial, error) {
	return s.content.Testimonials(ctx)
}

// Ledger returns the most recent ledger entries, newest first.
func (s *Service) Ledger(ctx context.Context, limit int) ([]storage.LedgerEntry, error) {
	return s.store.ListLedger(ctx, limit)
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errTitleRequired
	}
	return t, nil
}

// change accumulates the writes and events of one operation.
type change struct {
	m      storage.Mutation
	events []Event

	u      *storage.UserRecord
	habits []storage.Habit
	quests []storage.Quest
}

func (c *change) setUser(u *storage.UserRecord, kinds ...EventKind) {
	c.u = u
	c.m.Set(storage.KeyUser, u)
	c.emit(kinds...)
}

func (c *change) setHabits(habits []storage.Habit) {
	c.habits = habits
	c.m.Set(storage.KeyHabits, habits)
	c.emit(EventHabits)
}

func (c *change) setQuests(quests []storage.Quest) {
	c.quests = quests
	c.m.Set(storage.KeyQuests, quests)
	c.emit(EventQuests)
}

func (c *change) emit(kinds ...EventKind) {
	for _, k := range kinds {
		c.events = append(c.events, Event{Kind: k})
	}
}

func (c *change) ledger(kind, detail, itemID string, delta int) {
	e := storage.LedgerEntry{Kind: kind, Detail: detail, CurrencyDelta: delta}
	if itemID != "" {
		id := itemID
		e.ItemID = &id
	}
	c.m.Record(e)
}

// commit refreshes achievements, persists the change and notifies observers.
func (s *Service) commit(ctx context.Context, c *change) error {
	if err := s.refreshAchievements(ctx, c); err != nil {
		return err
	}
	if err := s.store.Commit(ctx, c.m); err != nil {
		return err
	}
	s.events.Publish(c.events...)
	return nil
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}
