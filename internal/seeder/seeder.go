package seeder

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/database"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Startup additionally runs the menu seed during application start, so a
// fresh database serves a usable menu without a separate bootstrap step.
var Startup = fx.Options(
	Module,
	fx.Invoke(func(lc fx.Lifecycle, s *Seeder) {
		lc.Append(fx.Hook{OnStart: s.Menu})
	}),
)

// Seeder inserts the baseline reference data so the system is usable out of
// the box.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

type seedItem struct {
	name        string
	description string
	price       int64
	category    string
	calories    int
	cookingTime int
}

var seedCategories = []entity.Category{
	{Name: "Pizza", Description: "Italian thin-crust pizza"},
	{Name: "Sushi & Rolls", Description: "Japanese cuisine"},
	{Name: "Drinks", Description: "Hot and cold drinks"},
	{Name: "Desserts", Description: "Sweet treats"},
}

var seedItems = []seedItem{
	{"Margherita", "Tomato sauce, mozzarella, basil", 450, "Pizza", 800, 15},
	{"Pepperoni", "Tomato sauce, pepperoni, mozzarella", 550, "Pizza", 950, 20},
	{"Philadelphia", "Salmon, cream cheese, cucumber", 320, "Sushi & Rolls", 420, 10},
	{"California", "Crab mix, avocado, cucumber, caviar", 280, "Sushi & Rolls", 380, 10},
	{"Cola", "Coca-Cola 0.5l", 120, "Drinks", 210, 2},
	{"Orange Juice", "Freshly squeezed juice 0.3l", 150, "Drinks", 120, 3},
	{"Cheesecake", "Classic New York cheesecake", 200, "Desserts", 350, 5},
	{"Tiramisu", "Italian dessert", 250, "Desserts", 280, 5},
}

// Menu seeds the default categories and menu items, but only when the
// category table is empty, so repeated runs never duplicate data.
func (s *Seeder) Menu(ctx context.Context) error {
	count, err := s.db.NewSelect().Model((*entity.Category)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("seed skipped, categories already present", zap.Int("count", count))
		return nil
	}

	categoryIDs := make(map[string]int64, len(seedCategories))
	for i := range seedCategories {
		category := seedCategories[i]
		if _, err := s.db.NewInsert().Model(&category).Exec(ctx); err != nil {
			return err
		}
		categoryIDs[category.Name] = category.ID
	}

	for _, seed := range seedItems {
		calories := seed.calories
		cookingTime := seed.cookingTime
		item := entity.MenuItem{
			Name:               seed.name,
			Description:        seed.description,
			Price:              decimal.NewFromInt(seed.price),
			CategoryID:         categoryIDs[seed.category],
			IsAvailable:        true,
			Calories:           &calories,
			CookingTimeMinutes: &cookingTime,
		}
		if _, err := s.db.NewInsert().Model(&item).Exec(ctx); err != nil {
			return err
		}
	}

	s.logger.Info("seeded menu",
		zap.Int("categories", len(seedCategories)),
		zap.Int("items", len(seedItems)),
	)
	return nil
}
