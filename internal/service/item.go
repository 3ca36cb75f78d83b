package service

import (
	"context"
	"fmt"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/repository"
)

type itemService struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

func NewItemService(itemRepo repository.ItemRepository, userRepo repository.UserRepository) ItemService {
	return &itemService{itemRepo: itemRepo, userRepo: userRepo}
}

func (s *itemService) AddItem(ctx context.Context, item *domain.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrValidation)
	}
	if !domain.ValidCategory(item.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, item.Category)
	}
	// Lenders must be payable before they can list anything.
	owner, err := s.userRepo.GetByID(ctx, item.OwnerID)
	if err != nil {
		return err
	}
	if owner.UPI == "" {
		return fmt.Errorf("%w: add a UPI handle to your profile before listing items", domain.ErrValidation)
	}
	if item.MaxBorrowDays <= 0 {
		item.MaxBorrowDays = 7
	}
	if item.Condition == "" {
		item.Condition = domain.ItemConditionGood
	}
	item.Status = domain.ItemStatusAvailable
	return s.itemRepo.Create(ctx, item)
}

func (s *itemService) GetItem(ctx context.Context, id int32) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *itemService) UpdateItem(ctx context.Context, ownerID, itemID int32, description string, condition domain.ItemCondition, status domain.ItemStatus, maxBorrowDays int32) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: only the owner can edit this item", domain.ErrForbidden)
	}
	if description != "" {
		item.Description = description
	}
	if condition != "" {
		item.Condition = condition
	}
	if maxBorrowDays > 0 {
		item.MaxBorrowDays = maxBorrowDays
	}
	if status != "" {
		// borrowed is owned by the borrow lifecycle, never set by hand.
		if status == domain.ItemStatusBorrowed || item.Status == domain.ItemStatusBorrowed {
			return nil, fmt.Errorf("%w: item status is managed by its active borrow", domain.ErrInvalidState)
		}
		item.Status = status
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, ownerID, itemID int32) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return fmt.Errorf("%w: only the owner can delete this item", domain.ErrForbidden)
	}
	if item.Status == domain.ItemStatusBorrowed {
		return fmt.Errorf("%w: item is out on a borrow", domain.ErrInvalidState)
	}
	return s.itemRepo.Delete(ctx, itemID)
}

func (s *itemService) SearchItems(ctx context.Context, category, query string, limit int32) ([]domain.Item, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.itemRepo.Search(ctx, category, query, limit)
}

func (s *itemService) NearbyItems(ctx context.Context, lat, lon, radiusKm float64, category string, limit int32) ([]domain.Item, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.itemRepo.ListNearby(ctx, lat, lon, radiusKm, category, limit)
}
