package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/service"
	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

func TestMileageService_Create(t *testing.T) {
	var stored domain.MileageSession
	svc := service.NewMileageService(&mockMileageRepo{
		create: func(_ context.Context, s domain.MileageSession) (domain.MileageSession, error) {
			stored = s
			s.ID = 5
			return s, nil
		},
	})

	got, err := svc.Create(context.Background(), validate.Fields{
		"date":         "2024-06-01",
		"startMileage": "1000",
		"vehicle":      " ",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.True(t, got.IsOpen())
	assert.Equal(t, domain.DefaultVehicle, stored.Vehicle)
}

func TestMileageService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewMileageService(&mockMileageRepo{})

	_, err := svc.Create(context.Background(), validate.Fields{
		"date":         "2024-06-01",
		"startMileage": "1000",
		"endMileage":   "900",
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func openSession() domain.MileageSession {
	return domain.MileageSession{ID: 9, Date: day(2024, 6, 1), StartMileage: dec("1000"), Vehicle: "A"}
}

func TestMileageService_Close(t *testing.T) {
	var written decimal.Decimal
	svc := service.NewMileageService(&mockMileageRepo{
		getByID: func(context.Context, int64) (domain.MileageSession, error) { return openSession(), nil },
		updateEndMileage: func(_ context.Context, id int64, end decimal.Decimal) (domain.MileageSession, error) {
			written = end
			s := openSession()
			s.EndMileage = decimal.NewNullDecimal(end)
			return s, nil
		},
	})

	got, err := svc.Close(context.Background(), 9, validate.Fields{"endMileage": "1042.34"})

	require.NoError(t, err)
	assert.Equal(t, "1042.3", written.String(), "end reading is rounded before it is written")
	assert.Equal(t, "42.3", got.TotalDistance().Decimal.String())
}

func TestMileageService_Close_EndBeforeStartWritesNothing(t *testing.T) {
	svc := service.NewMileageService(&mockMileageRepo{
		getByID: func(context.Context, int64) (domain.MileageSession, error) { return openSession(), nil },
		// updateEndMileage left nil: calling it would panic.
	})

	_, err := svc.Close(context.Background(), 9, validate.Fields{"endMileage": "999"})

	require.ErrorIs(t, err, domain.ErrConflict)
	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "End mileage cannot be less than start mileage", cerr.Message)
}

func TestMileageService_Close_NotFound(t *testing.T) {
	svc := service.NewMileageService(&mockMileageRepo{
		getByID: func(context.Context, int64) (domain.MileageSession, error) {
			return domain.MileageSession{}, domain.ErrNotFound
		},
	})

	_, err := svc.Close(context.Background(), 404, validate.Fields{"endMileage": "10"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMileageService_Close_MissingEndMileage(t *testing.T) {
	svc := service.NewMileageService(&mockMileageRepo{})

	_, err := svc.Close(context.Background(), 9, validate.Fields{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMileageService_ListPage_Empty(t *testing.T) {
	svc := service.NewMileageService(&mockMileageRepo{
		list: func(context.Context) ([]domain.MileageSession, error) { return nil, nil },
	})

	page, err := svc.ListPage(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.Equal(t, 0, page.DisplayPage())
	assert.Equal(t, 1, page.TotalPages)
	assert.NotNil(t, page.Items)
}

func TestMileageService_Delete(t *testing.T) {
	var deleted int64
	svc := service.NewMileageService(&mockMileageRepo{
		delete: func(_ context.Context, id int64) error { deleted = id; return nil },
	})

	require.NoError(t, svc.Delete(context.Background(), 12))
	assert.Equal(t, int64(12), deleted)
}
