package seed

import (
	"context"
	"fmt"

	"github.com/HelloTanvir/scan-and-dine/internal/database"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
	"github.com/HelloTanvir/scan-and-dine/internal/services/menu"
	"github.com/HelloTanvir/scan-and-dine/internal/services/table"
)

// Run inserts sample menu items and tables. Each data set is seeded only
// when its table is empty, so repeated startups never duplicate rows.
func Run(ctx context.Context, db *database.DB, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	if err := seedMenu(ctx, db, log, requestID); err != nil {
		return fmt.Errorf("failed to seed menu items: %w", err)
	}
	if err := seedTables(ctx, db, log, requestID); err != nil {
		return fmt.Errorf("failed to seed tables: %w", err)
	}
	return nil
}

func seedMenu(ctx context.Context, db *database.DB, log *logger.Logger, requestID string) error {
	var count int
	if err := db.QueryRow(ctx, database.CountMenuItemsSQL).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Debug("seed_skipped", "Menu items already present, skipping seed", requestID, map[string]interface{}{
			"count": count,
		})
		return nil
	}

	repo := menu.NewPostgresRepository(db)
	for _, item := range sampleMenuItems() {
		if err := repo.Insert(ctx, &item); err != nil {
			return err
		}
	}

	log.Info("seed_completed", "Sample menu items inserted", requestID, map[string]interface{}{
		"count": len(sampleMenuItems()),
	})
	return nil
}

func seedTables(ctx context.Context, db *database.DB, log *logger.Logger, requestID string) error {
	var count int
	if err := db.QueryRow(ctx, database.CountTablesSQL).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Debug("seed_skipped", "Tables already present, skipping seed", requestID, map[string]interface{}{
			"count": count,
		})
		return nil
	}

	repo := table.NewPostgresRepository(db)
	for _, t := range sampleTables() {
		if err := repo.Insert(ctx, &t); err != nil {
			return err
		}
	}

	log.Info("seed_completed", "Sample tables inserted", requestID, map[string]interface{}{
		"count": len(sampleTables()),
	})
	return nil
}

func sampleMenuItems() []models.MenuItem {
	return []models.MenuItem{
		{
			Name:                   "Bruschetta",
			Description:            strPtr("Grilled bread with tomatoes, garlic and basil"),
			Price:                  6.50,
			Category:               models.CategoryAppetizer,
			IsAvailable:            true,
			Ingredients:            []string{"bread", "tomato", "garlic", "basil", "olive oil"},
			DietaryTags:            []string{"vegetarian"},
			PreparationTimeMinutes: intPtr(10),
		},
		{
			Name:                   "Margherita Pizza",
			Description:            strPtr("Tomato, mozzarella and fresh basil"),
			Price:                  11.90,
			Category:               models.CategoryMainCourse,
			IsAvailable:            true,
			IsFeatured:             true,
			Ingredients:            []string{"dough", "tomato", "mozzarella", "basil"},
			Allergens:              []string{"gluten", "dairy"},
			DietaryTags:            []string{"vegetarian"},
			PreparationTimeMinutes: intPtr(20),
		},
		{
			Name:                   "Grilled Salmon",
			Description:            strPtr("Salmon fillet with lemon butter and seasonal vegetables"),
			Price:                  18.50,
			Category:               models.CategoryMainCourse,
			IsAvailable:            true,
			IsFeatured:             true,
			Ingredients:            []string{"salmon", "lemon", "butter", "vegetables"},
			Allergens:              []string{"fish", "dairy"},
			PreparationTimeMinutes: intPtr(25),
		},
		{
			Name:                   "Caesar Salad",
			Description:            strPtr("Romaine lettuce, parmesan, croutons and caesar dressing"),
			Price:                  9.00,
			Category:               models.CategorySalad,
			IsAvailable:            true,
			Ingredients:            []string{"romaine", "parmesan", "croutons", "dressing"},
			Allergens:              []string{"gluten", "dairy", "egg"},
			PreparationTimeMinutes: intPtr(10),
		},
		{
			Name:                   "Tomato Soup",
			Description:            strPtr("Creamy tomato soup with basil oil"),
			Price:                  5.50,
			Category:               models.CategorySoup,
			IsAvailable:            true,
			Ingredients:            []string{"tomato", "cream", "basil"},
			Allergens:              []string{"dairy"},
			DietaryTags:            []string{"vegetarian"},
			PreparationTimeMinutes: intPtr(12),
		},
		{
			Name:                   "Tiramisu",
			Description:            strPtr("Classic mascarpone dessert with espresso"),
			Price:                  7.00,
			Category:               models.CategoryDessert,
			IsAvailable:            true,
			IsFeatured:             true,
			Ingredients:            []string{"mascarpone", "espresso", "ladyfingers", "cocoa"},
			Allergens:              []string{"gluten", "dairy", "egg"},
			PreparationTimeMinutes: intPtr(5),
		},
		{
			Name:        "Fresh Lemonade",
			Description: strPtr("House-made lemonade with mint"),
			Price:       3.50,
			Category:    models.CategoryBeverage,
			IsAvailable: true,
			Ingredients: []string{"lemon", "sugar", "mint", "water"},
			DietaryTags: []string{"vegan"},
		},
		{
			Name:        "Espresso",
			Price:       2.50,
			Category:    models.CategoryBeverage,
			IsAvailable: true,
		},
	}
}

func sampleTables() []models.Table {
	tables := make([]models.Table, 0, 10)
	locations := []string{"Window", "Window", "Center", "Center", "Center", "Patio", "Patio", "Bar", "Bar", "Private"}
	capacities := []int{2, 2, 4, 4, 6, 4, 4, 2, 2, 8}

	for i := 0; i < 10; i++ {
		number := fmt.Sprintf("T%02d", i+1)
		tables = append(tables, models.Table{
			Number:   number,
			Capacity: capacities[i],
			Status:   models.TableAvailable,
			Location: strPtr(locations[i]),
		})
	}
	return tables
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
