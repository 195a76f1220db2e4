package menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
)

// Repository abstracts menu item persistence
type Repository interface {
	Insert(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	GetByName(ctx context.Context, name string) (*models.MenuItem, error)
	List(ctx context.Context, filter models.MenuFilter, page models.Page) ([]models.MenuItem, error)
	ListByCategory(ctx context.Context, category models.MenuCategory) ([]models.MenuItem, error)
	ListAvailable(ctx context.Context) ([]models.MenuItem, error)
	ListFeatured(ctx context.Context) ([]models.MenuItem, error)
	UpdateWithLock(ctx context.Context, id uuid.UUID, mutate func(*models.MenuItem) error) (*models.MenuItem, error)
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service implements the menu catalog operations
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new menu service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create adds a new menu item; the name must be unique
func (s *Service) Create(ctx context.Context, req *models.CreateMenuItemRequest, requestID string) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Duplicate("menu item already exists with name: %s", req.Name)
	}

	category, _ := models.ParseMenuCategory(req.Category)
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item := &models.MenuItem{
		Name:                   req.Name,
		Description:            req.Description,
		Price:                  req.Price,
		Category:               category,
		ImageURL:               req.ImageURL,
		IsAvailable:            available,
		IsFeatured:             req.IsFeatured,
		Ingredients:            req.Ingredients,
		Allergens:              req.Allergens,
		DietaryTags:            req.DietaryTags,
		PreparationTimeMinutes: req.PreparationTimeMinutes,
		Calories:               req.Calories,
		SpiceLevel:             req.SpiceLevel,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.log.Info("menu_item_created", "menu item created", requestID, map[string]interface{}{
		"menu_item_id": item.ID.String(),
		"name":         item.Name,
		"category":     string(item.Category),
	})
	return item, nil
}

// Get returns one menu item by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName returns one menu item by its unique name
func (s *Service) GetByName(ctx context.Context, name string) (*models.MenuItem, error) {
	return s.repo.GetByName(ctx, name)
}

// List returns menu items matching the filter
func (s *Service) List(ctx context.Context, filter models.MenuFilter, page models.Page) ([]models.MenuItem, error) {
	if page.Limit <= 0 {
		page.Limit = 50
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return s.repo.List(ctx, filter, page)
}

// ListByCategory returns all items in the given category
func (s *Service) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	parsed, err := models.ParseMenuCategory(category)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(ctx, parsed)
}

// ListAvailable returns all currently orderable items
func (s *Service) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListAvailable(ctx)
}

// ListFeatured returns all featured items
func (s *Service) ListFeatured(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListFeatured(ctx)
}

// Update applies a partial update; a renamed item must keep the name unique
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateMenuItemRequest, requestID string) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Name != nil {
		exists, err := s.repo.NameExists(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Duplicate("menu item already exists with name: %s", *req.Name)
		}
	}

	item, err := s.repo.UpdateWithLock(ctx, id, func(item *models.MenuItem) error {
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Description != nil {
			item.Description = req.Description
		}
		if req.Price != nil {
			item.Price = *req.Price
		}
		if req.Category != nil {
			category, _ := models.ParseMenuCategory(*req.Category)
			item.Category = category
		}
		if req.ImageURL != nil {
			item.ImageURL = req.ImageURL
		}
		if req.IsAvailable != nil {
			item.IsAvailable = *req.IsAvailable
		}
		if req.IsFeatured != nil {
			item.IsFeatured = *req.IsFeatured
		}
		if req.Ingredients != nil {
			item.Ingredients = req.Ingredients
		}
		if req.Allergens != nil {
			item.Allergens = req.Allergens
		}
		if req.DietaryTags != nil {
			item.DietaryTags = req.DietaryTags
		}
		if req.PreparationTimeMinutes != nil {
			item.PreparationTimeMinutes = req.PreparationTimeMinutes
		}
		if req.Calories != nil {
			item.Calories = req.Calories
		}
		if req.SpiceLevel != nil {
			item.SpiceLevel = req.SpiceLevel
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("menu_item_updated", "menu item updated", requestID, map[string]interface{}{
		"menu_item_id": item.ID.String(),
	})
	return item, nil
}

// UpdateAvailability toggles whether the item can be ordered
func (s *Service) UpdateAvailability(ctx context.Context, id uuid.UUID, available bool, requestID string) (*models.MenuItem, error) {
	item, err := s.repo.UpdateWithLock(ctx, id, func(item *models.MenuItem) error {
		item.IsAvailable = available
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("menu_item_availability_updated", "menu item availability updated", requestID, map[string]interface{}{
		"menu_item_id": item.ID.String(),
		"is_available": available,
	})
	return item, nil
}

// Delete removes a menu item; items referenced by order lines cannot be removed
func (s *Service) Delete(ctx context.Context, id uuid.UUID, requestID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("menu_item_deleted", "menu item deleted", requestID, map[string]interface{}{
		"menu_item_id": id.String(),
	})
	return nil
}
