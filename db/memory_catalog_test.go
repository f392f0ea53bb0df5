package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Gin_memory_redis_rental_catalog/db"
	"Gin_memory_redis_rental_catalog/models"
)

func Test_MemoryCatalog_InsertFindAll(t *testing.T) {
	ctx := context.Background()
	c := db.NewMemoryCatalog(models.Item{ID: "firstItem", Name: "Test Item", Price: 55})

	require.NoError(t, c.Insert(ctx, &models.Item{ID: "chair1", Name: "Chair", Price: 20}))
	require.NoError(t, c.Insert(ctx, &models.Item{ID: "desk1", Name: "Desk", Price: 80}))

	all, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"firstItem", "chair1", "desk1"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.NotNil(t, all[0].RentalPeriods)

	it, err := c.FindByID(ctx, "chair1")
	require.NoError(t, err)
	assert.Equal(t, "Chair", it.Name)

	_, err = c.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, db.ErrItemNotFound)
}

func Test_MemoryCatalog_RejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	c := db.NewMemoryCatalog()

	require.NoError(t, c.Insert(ctx, &models.Item{ID: "chair1", Name: "Chair"}))
	err := c.Insert(ctx, &models.Item{ID: "chair1", Name: "Other"})

	assert.ErrorIs(t, err, db.ErrDuplicateItem)
	it, _ := c.FindByID(ctx, "chair1")
	assert.Equal(t, "Chair", it.Name)
}

func Test_MemoryCatalog_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := db.NewMemoryCatalog()
	require.NoError(t, c.Insert(ctx, &models.Item{ID: "chair1", Name: "Chair", RentalPeriods: []models.RentalPeriod{}}))

	it, err := c.FindByID(ctx, "chair1")
	require.NoError(t, err)
	it.Name = "mutated"
	it.RentalPeriods = append(it.RentalPeriods, models.RentalPeriod{ID: "r1", Status: models.RentalStatusRented})

	again, err := c.FindByID(ctx, "chair1")
	require.NoError(t, err)
	assert.Equal(t, "Chair", again.Name)
	assert.Empty(t, again.RentalPeriods)
}

func Test_MemoryCatalog_SaveReplacesRentalState(t *testing.T) {
	ctx := context.Background()
	c := db.NewMemoryCatalog(models.Item{ID: "chair1", Name: "Chair", Availability: true})

	it, err := c.FindByID(ctx, "chair1")
	require.NoError(t, err)
	it.Availability = false
	it.Name = "ignored"
	it.RentalPeriods = append(it.RentalPeriods, models.RentalPeriod{ID: "r1", StartDate: "2024-06-01", EndDate: "2024-06-03", Status: models.RentalStatusRented})
	require.NoError(t, c.Save(ctx, it))

	got, err := c.FindByID(ctx, "chair1")
	require.NoError(t, err)
	assert.False(t, got.Availability)
	assert.Equal(t, "Chair", got.Name)
	require.Len(t, got.RentalPeriods, 1)
	assert.Equal(t, "r1", got.RentalPeriods[0].ID)

	err = c.Save(ctx, &models.Item{ID: "ghost"})
	assert.ErrorIs(t, err, db.ErrItemNotFound)
}
