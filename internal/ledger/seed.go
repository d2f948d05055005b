package ledger

import (
	"context"
	"fmt"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/store"
)

// defaultCategories is the starter set every new account receives.
type seedCategory struct {
	name string
	typ  core.TransactionType
}

var defaultCategories = []seedCategory{
	{"Зарплата", core.TypeIncome},
	{"Подработка", core.TypeIncome},
	{"Инвестиции", core.TypeIncome},

	{"Продукты", core.TypeExpense},
	{"Транспорт", core.TypeExpense},
	{"Развлечения", core.TypeExpense},
	{"Здоровье", core.TypeExpense},
	{"Образование", core.TypeExpense},
	{"Одежда", core.TypeExpense},
	{"Коммунальные услуги", core.TypeExpense},
	{"Другое", core.TypeExpense},
}

// CategorySeeder creates the default category set for a user.
type CategorySeeder struct {
	categories store.CategoryStore
	changes    store.ChangeSink
	logger     *log.Logger
}

func NewCategorySeeder(categories store.CategoryStore, changes store.ChangeSink, logger *log.Logger) *CategorySeeder {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentSeeding)
	}
	return &CategorySeeder{categories: categories, changes: changes, logger: logger}
}

// SeedDefaultCategories creates the default set for the user unless the
// user already has any category at all. That existence check is the
// whole idempotence guarantee: it does not deduplicate by name, so a
// partial earlier seeding stays partial and running twice concurrently
// can still double up. Callers treat failures as non-fatal.
func (s *CategorySeeder) SeedDefaultCategories(ctx context.Context, userID string) error {
	existing, err := s.categories.ListCategories(ctx, userID)
	if err != nil {
		return fmt.Errorf("check existing categories: %w", err)
	}
	if len(existing) > 0 {
		s.logger.DebugContext(ctx, "Categories already present, skipping seed",
			log.FieldUserID, userID,
			"count", len(existing))
		return nil
	}

	for _, sc := range defaultCategories {
		created, err := s.categories.CreateCategory(ctx, core.Category{
			Name:   sc.name,
			Type:   sc.typ,
			UserID: userID,
		})
		if err != nil {
			// Partial seeding is tolerated; the next call will see the
			// created ones and skip.
			return fmt.Errorf("seed category %q: %w", sc.name, err)
		}
		if s.changes != nil {
			if perr := s.changes.Publish(ctx, store.NewChange(store.CollectionCategories, store.OpCreate, userID, created.ID)); perr != nil {
				s.logger.WarnContext(ctx, "Failed to publish seed change event",
					log.FieldUserID, userID,
					log.FieldError, perr.Error())
			}
		}
	}

	s.logger.InfoContext(ctx, "Seeded default categories",
		log.FieldOperation, log.OpSeed,
		log.FieldUserID, userID,
		"count", len(defaultCategories))
	return nil
}
