package ledger

import (
	"context"
	"testing"

	"budget/internal/core"
	"budget/internal/store/memory"
)

func TestSeedDefaultCategories(t *testing.T) {
	st := memory.New()
	seeder := NewCategorySeeder(st, &recordingSink{}, nil)
	ctx := context.Background()

	if err := seeder.SeedDefaultCategories(ctx, "u1"); err != nil {
		t.Fatalf("SeedDefaultCategories() error = %v", err)
	}

	cats, err := st.ListCategories(ctx, "u1")
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(cats) != len(defaultCategories) {
		t.Fatalf("seeded %d categories, want %d", len(cats), len(defaultCategories))
	}

	var income, expense int
	for _, c := range cats {
		switch c.Type {
		case core.TypeIncome:
			income++
		case core.TypeExpense:
			expense++
		}
	}
	if income != 3 || expense != 8 {
		t.Errorf("income = %d expense = %d, want 3 and 8", income, expense)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	st := memory.New()
	seeder := NewCategorySeeder(st, &recordingSink{}, nil)
	ctx := context.Background()

	if err := seeder.SeedDefaultCategories(ctx, "u1"); err != nil {
		t.Fatalf("first seed error = %v", err)
	}
	if err := seeder.SeedDefaultCategories(ctx, "u1"); err != nil {
		t.Fatalf("second seed error = %v", err)
	}

	cats, _ := st.ListCategories(ctx, "u1")
	if len(cats) != len(defaultCategories) {
		t.Errorf("categories = %d after double seed, want %d", len(cats), len(defaultCategories))
	}
}

func TestSeedSkipsWhenAnyCategoryExists(t *testing.T) {
	st := memory.New()
	seeder := NewCategorySeeder(st, &recordingSink{}, nil)
	ctx := context.Background()

	// Existence is checked per user, not per name: one category of any
	// kind suppresses the whole default set.
	if _, err := st.CreateCategory(ctx, core.Category{Name: "Кофе", Type: core.TypeExpense, UserID: "u1"}); err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}

	if err := seeder.SeedDefaultCategories(ctx, "u1"); err != nil {
		t.Fatalf("SeedDefaultCategories() error = %v", err)
	}

	cats, _ := st.ListCategories(ctx, "u1")
	if len(cats) != 1 {
		t.Errorf("categories = %d, want the pre-existing one only", len(cats))
	}
}

func TestSeedIsPerUser(t *testing.T) {
	st := memory.New()
	seeder := NewCategorySeeder(st, &recordingSink{}, nil)
	ctx := context.Background()

	if err := seeder.SeedDefaultCategories(ctx, "u1"); err != nil {
		t.Fatalf("seed u1 error = %v", err)
	}
	if err := seeder.SeedDefaultCategories(ctx, "u2"); err != nil {
		t.Fatalf("seed u2 error = %v", err)
	}

	for _, userID := range []string{"u1", "u2"} {
		cats, _ := st.ListCategories(ctx, userID)
		if len(cats) != len(defaultCategories) {
			t.Errorf("user %s has %d categories, want %d", userID, len(cats), len(defaultCategories))
		}
	}
}
