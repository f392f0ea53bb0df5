// services/items_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Gin_memory_redis_rental_catalog/apperr"
	"Gin_memory_redis_rental_catalog/db"
	"Gin_memory_redis_rental_catalog/models"
	"Gin_memory_redis_rental_catalog/util/dateutil"

	"github.com/google/uuid"
)

// Locker serialises rent/return on one item. Unlock must be safe to call once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type ItemsService struct {
	catalog db.Catalog
	locker  Locker
	now     func() time.Time
	newID   func() string
}

type Option func(*ItemsService)

func WithClock(now func() time.Time) Option { return func(s *ItemsService) { s.now = now } }

func WithIDGenerator(newID func() string) Option { return func(s *ItemsService) { s.newID = newID } }

func NewItemsService(catalog db.Catalog, locker Locker, opts ...Option) *ItemsService {
	s := &ItemsService{
		catalog: catalog,
		locker:  locker,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type AddItemInput struct {
	ID          string
	Name        string
	Description string
	Price       *float64
}

type RentResult struct {
	Item     *models.Item
	RentalID string
}

// 目录层错误 → apperr
func catalogErr(err error) error {
	switch {
	case errors.Is(err, db.ErrItemNotFound):
		return apperr.NotFound("Item not found")
	case errors.Is(err, db.ErrDuplicateItem):
		return apperr.Conflict("An item with this id already exists")
	default:
		return apperr.Unexpected(err)
	}
}

// AddItem validates the candidate and stores it as available with no rentals.
func (s *ItemsService) AddItem(ctx context.Context, in AddItemInput) (*models.Item, error) {
	var missing []string
	if strings.TrimSpace(in.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(fmt.Sprintf("Missing required fields (%s)", strings.Join(missing, ", ")))
	}
	if len(in.ID) > models.MaxItemIDLen {
		return nil, apperr.Validation(fmt.Sprintf("id cannot be longer than %d characters", models.MaxItemIDLen))
	}
	if *in.Price < 0 {
		return nil, apperr.Validation("price cannot be negative")
	}

	if _, err := s.catalog.FindByID(ctx, in.ID); err == nil {
		return nil, apperr.Conflict("An item with this id already exists")
	} else if !errors.Is(err, db.ErrItemNotFound) {
		return nil, apperr.Unexpected(err)
	}

	it := &models.Item{
		ID:            in.ID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         *in.Price,
		Availability:  true,
		RentalPeriods: []models.RentalPeriod{},
	}
	if err := s.catalog.Insert(ctx, it); err != nil {
		return nil, catalogErr(err)
	}
	return it, nil
}

// SearchItems ANDs every provided filter and keeps catalog order.
func (s *ItemsService) SearchItems(ctx context.Context, f models.SearchFilter) ([]models.Item, error) {
	all, err := s.catalog.All(ctx)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	name := strings.ToLower(f.Name)
	out := make([]models.Item, 0, len(all))
	for _, it := range all {
		if name != "" && !strings.Contains(strings.ToLower(it.Name), name) {
			continue
		}
		// 写成 >= / <=：NaN 边界不匹配任何物品
		if f.MinPrice != nil && !(it.Price >= *f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && !(it.Price <= *f.MaxPrice) {
			continue
		}
		out = append(out, it)
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("No items could be found matching your filters")
	}
	return out, nil
}

func (s *ItemsService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	it, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return nil, catalogErr(err)
	}
	return it, nil
}

// RentItem books [startDate, endDate] on the item unless a rented period overlaps it.
func (s *ItemsService) RentItem(ctx context.Context, itemID, startDate, endDate string) (*RentResult, error) {
	if strings.TrimSpace(startDate) == "" || strings.TrimSpace(endDate) == "" {
		return nil, apperr.Validation("Missing required fields (startDate, endDate)")
	}
	start, err := dateutil.ParseDate(startDate)
	if err != nil {
		return nil, apperr.Validation("Invalid date format.")
	}
	end, err := dateutil.ParseDate(endDate)
	if err != nil {
		return nil, apperr.Validation("Invalid date format.")
	}
	if start.After(end) {
		return nil, apperr.Validation("startDate cannot be after endDate")
	}

	unlock, err := s.locker.Lock(ctx, itemID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	defer unlock()

	it, err := s.catalog.FindByID(ctx, itemID)
	if err != nil {
		return nil, catalogErr(err)
	}

	conflict, err := hasConflict(it, start, end)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if conflict {
		return nil, apperr.Conflict("This item is already rented for the requested date range")
	}

	rentalID := s.newID()
	it.RentalPeriods = append(it.RentalPeriods, models.RentalPeriod{
		ID:        rentalID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.RentalStatusRented,
	})
	it.Availability = false
	if err := s.catalog.Save(ctx, it); err != nil {
		return nil, catalogErr(err)
	}
	return &RentResult{Item: it, RentalID: rentalID}, nil
}

// 只有 rented 状态的租期参与冲突判断
func hasConflict(it *models.Item, start, end time.Time) (bool, error) {
	for _, p := range it.RentalPeriods {
		if p.Status != models.RentalStatusRented {
			continue
		}
		ps, err := dateutil.ParseDate(p.StartDate)
		if err != nil {
			return false, fmt.Errorf("rental %s start %q: %w", p.ID, p.StartDate, err)
		}
		pe, err := dateutil.ParseDate(p.EndDate)
		if err != nil {
			return false, fmt.Errorf("rental %s end %q: %w", p.ID, p.EndDate, err)
		}
		if dateutil.Overlaps(start, end, ps, pe) {
			return true, nil
		}
	}
	return false, nil
}

// ReturnItem closes the rental. A rental that is already returned is left as it was.
func (s *ItemsService) ReturnItem(ctx context.Context, itemID, rentalID string) (*models.Item, error) {
	unlock, err := s.locker.Lock(ctx, itemID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	defer unlock()

	it, err := s.catalog.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, db.ErrItemNotFound) {
			return nil, apperr.NotFound("Item not found.")
		}
		return nil, apperr.Unexpected(err)
	}
	if len(it.RentalPeriods) == 0 {
		return nil, apperr.NotFound("No rental periods found for this item.")
	}
	rental := it.FindRental(rentalID)
	if rental == nil {
		return nil, apperr.NotFound("No matching rental period found with that ID.")
	}
	if rental.Status == models.RentalStatusReturned {
		return it, nil
	}

	rental.Status = models.RentalStatusReturned
	rental.ReturnedDate = dateutil.FormatDate(s.now())
	it.Availability = !it.HasActiveRental()
	if err := s.catalog.Save(ctx, it); err != nil {
		return nil, catalogErr(err)
	}
	return it, nil
}
