package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
)

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	CategoryAppetizer  MenuCategory = "APPETIZER"
	CategoryMainCourse MenuCategory = "MAIN_COURSE"
	CategoryDessert    MenuCategory = "DESSERT"
	CategoryBeverage   MenuCategory = "BEVERAGE"
	CategorySalad      MenuCategory = "SALAD"
	CategorySoup       MenuCategory = "SOUP"
	CategorySideDish   MenuCategory = "SIDE_DISH"
	CategoryBreakfast  MenuCategory = "BREAKFAST"
	CategoryLunch      MenuCategory = "LUNCH"
	CategoryDinner     MenuCategory = "DINNER"
	CategorySnack      MenuCategory = "SNACK"
)

// DefaultPrepTimeMinutes is assumed for items without an explicit preparation time
const DefaultPrepTimeMinutes = 15

// MenuItem represents an item on the restaurant menu
type MenuItem struct {
	ID                     uuid.UUID    `json:"id"`
	Name                   string       `json:"name"`
	Description            *string      `json:"description,omitempty"`
	Price                  float64      `json:"price"`
	Category               MenuCategory `json:"category"`
	ImageURL               *string      `json:"image_url,omitempty"`
	IsAvailable            bool         `json:"is_available"`
	IsFeatured             bool         `json:"is_featured"`
	Ingredients            []string     `json:"ingredients,omitempty"`
	Allergens              []string     `json:"allergens,omitempty"`
	DietaryTags            []string     `json:"dietary_tags,omitempty"`
	PreparationTimeMinutes *int         `json:"preparation_time_minutes,omitempty"`
	Calories               *int         `json:"calories,omitempty"`
	SpiceLevel             *string      `json:"spice_level,omitempty"`
	Rating                 *float64     `json:"rating,omitempty"`
	ReviewCount            *int         `json:"review_count,omitempty"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// PrepTimeMinutes returns the item's preparation time, falling back to the default
func (m *MenuItem) PrepTimeMinutes() int {
	if m.PreparationTimeMinutes != nil {
		return *m.PreparationTimeMinutes
	}
	return DefaultPrepTimeMinutes
}

// CreateMenuItemRequest represents the request to create a menu item
type CreateMenuItemRequest struct {
	Name                   string   `json:"name"`
	Description            *string  `json:"description,omitempty"`
	Price                  float64  `json:"price"`
	Category               string   `json:"category"`
	ImageURL               *string  `json:"image_url,omitempty"`
	IsAvailable            *bool    `json:"is_available,omitempty"`
	IsFeatured             bool     `json:"is_featured"`
	Ingredients            []string `json:"ingredients,omitempty"`
	Allergens              []string `json:"allergens,omitempty"`
	DietaryTags            []string `json:"dietary_tags,omitempty"`
	PreparationTimeMinutes *int     `json:"preparation_time_minutes,omitempty"`
	Calories               *int     `json:"calories,omitempty"`
	SpiceLevel             *string  `json:"spice_level,omitempty"`
}

// Validate checks the create menu item request
func (req *CreateMenuItemRequest) Validate() error {
	if req.Name == "" {
		return apperrors.InvalidInput("name is required")
	}
	if len(req.Name) > 100 {
		return apperrors.InvalidInput("name must not exceed 100 characters")
	}
	if req.Price <= 0 {
		return apperrors.InvalidInput("price must be positive")
	}
	if _, err := ParseMenuCategory(req.Category); err != nil {
		return err
	}
	if req.PreparationTimeMinutes != nil && *req.PreparationTimeMinutes <= 0 {
		return apperrors.InvalidInput("preparation_time_minutes must be positive")
	}
	return nil
}

// UpdateMenuItemRequest represents a partial menu item update; nil
// fields keep their current value
type UpdateMenuItemRequest struct {
	Name                   *string  `json:"name,omitempty"`
	Description            *string  `json:"description,omitempty"`
	Price                  *float64 `json:"price,omitempty"`
	Category               *string  `json:"category,omitempty"`
	ImageURL               *string  `json:"image_url,omitempty"`
	IsAvailable            *bool    `json:"is_available,omitempty"`
	IsFeatured             *bool    `json:"is_featured,omitempty"`
	Ingredients            []string `json:"ingredients,omitempty"`
	Allergens              []string `json:"allergens,omitempty"`
	DietaryTags            []string `json:"dietary_tags,omitempty"`
	PreparationTimeMinutes *int     `json:"preparation_time_minutes,omitempty"`
	Calories               *int     `json:"calories,omitempty"`
	SpiceLevel             *string  `json:"spice_level,omitempty"`
}

// Validate checks the update menu item request
func (req *UpdateMenuItemRequest) Validate() error {
	if req.Name != nil {
		if *req.Name == "" {
			return apperrors.InvalidInput("name must not be empty")
		}
		if len(*req.Name) > 100 {
			return apperrors.InvalidInput("name must not exceed 100 characters")
		}
	}
	if req.Price != nil && *req.Price <= 0 {
		return apperrors.InvalidInput("price must be positive")
	}
	if req.Category != nil {
		if _, err := ParseMenuCategory(*req.Category); err != nil {
			return err
		}
	}
	if req.PreparationTimeMinutes != nil && *req.PreparationTimeMinutes <= 0 {
		return apperrors.InvalidInput("preparation_time_minutes must be positive")
	}
	return nil
}

// UpdateMenuAvailabilityRequest toggles a menu item's availability
type UpdateMenuAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// ParseMenuCategory validates and converts a category string
func ParseMenuCategory(s string) (MenuCategory, error) {
	switch MenuCategory(s) {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage,
		CategorySalad, CategorySoup, CategorySideDish, CategoryBreakfast,
		CategoryLunch, CategoryDinner, CategorySnack:
		return MenuCategory(s), nil
	default:
		return "", apperrors.InvalidInput("invalid menu category: %s", s)
	}
}

// MenuFilter holds optional predicates for menu listing
type MenuFilter struct {
	Name        string
	Category    *MenuCategory
	IsAvailable *bool
	IsFeatured  *bool
}
