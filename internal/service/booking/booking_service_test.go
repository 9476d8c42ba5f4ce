package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"flightbook/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) ExistsForFlightEmail(ctx context.Context, flightID, email string) (bool, error) {
	args := m.Called(ctx, flightID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountActiveByFlight(ctx context.Context, flightID string) (int, error) {
	args := m.Called(ctx, flightID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, params domain.SearchParams) ([]domain.Flight, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) UpdateSeats(ctx context.Context, id string, seatsAvailable int) error {
	args := m.Called(ctx, id, seatsAvailable)
	return args.Error(0)
}

func (m *MockFlightRepository) Add(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService(bookings *MockBookingRepository, flights *MockFlightRepository, cache *MockCache, producer *MockProducer, opts ...BookingServiceOption) *BookingService {
	return NewBookingService(bookings, flights, cache, producer, "booking-events", zerolog.Nop(), opts...)
}

func TestBookingService_Create_Success(t *testing.T) {
	bookings := &MockBookingRepository{}
	flights := &MockFlightRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := newTestService(bookings, flights, cache, producer)

	ctx := context.Background()
	bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*domain.Booking)
			b.ID = "b1"
			b.BookingDate = time.Now().UTC()
		}).
		Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", "b1", mock.Anything).Return(nil).Once()

	created, err := service.Create(ctx, CreateBookingInput{
		FlightID:      "f1",
		PassengerName: "Asha Rao",
		Email:         "asha@example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "b1", created.ID)
	assert.Equal(t, domain.BookingStatusPending, created.Status)

	bookings.AssertExpectations(t)
	cache.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_Create_Validation(t *testing.T) {
	service := newTestService(&MockBookingRepository{}, &MockFlightRepository{}, &MockCache{}, &MockProducer{})
	ctx := context.Background()

	_, err := service.Create(ctx, CreateBookingInput{PassengerName: "A", Email: "a@x.com"})
	assert.Error(t, err)

	_, err = service.Create(ctx, CreateBookingInput{FlightID: "f1", Email: "a@x.com"})
	assert.Error(t, err)

	_, err = service.Create(ctx, CreateBookingInput{FlightID: "f1", PassengerName: "A"})
	assert.Error(t, err)

	_, err = service.Create(ctx, CreateBookingInput{FlightID: "f1", PassengerName: "A", Email: "a@x.com", Status: "expired"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = service.Create(ctx, CreateBookingInput{FlightID: "f1", PassengerName: "A", Email: "a@x.com", Status: domain.BookingStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBookingService_Create_DuplicateRejected(t *testing.T) {
	bookings := &MockBookingRepository{}
	service := newTestService(bookings, &MockFlightRepository{}, &MockCache{}, &MockProducer{},
		WithDuplicateRejection(true))

	ctx := context.Background()
	bookings.On("ExistsForFlightEmail", ctx, "f1", "a@x.com").Return(true, nil).Once()

	_, err := service.Create(ctx, CreateBookingInput{FlightID: "f1", PassengerName: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateBooking)

	bookings.AssertExpectations(t)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_Create_DuplicateAllowedWhenDisabled(t *testing.T) {
	bookings := &MockBookingRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := newTestService(bookings, &MockFlightRepository{}, cache, producer)

	ctx := context.Background()
	bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Booking).ID = "b2" }).
		Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", "b2", mock.Anything).Return(nil).Once()

	_, err := service.Create(ctx, CreateBookingInput{FlightID: "f1", PassengerName: "A", Email: "a@x.com"})
	require.NoError(t, err)

	bookings.AssertNotCalled(t, "ExistsForFlightEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Create_NoSeats(t *testing.T) {
	bookings := &MockBookingRepository{}
	service := newTestService(bookings, &MockFlightRepository{}, &MockCache{}, &MockProducer{})

	ctx := context.Background()
	bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(domain.ErrNoSeats).Once()

	_, err := service.Create(ctx, CreateBookingInput{FlightID: "f1", PassengerName: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrNoSeats)
}

func TestBookingService_Create_PublishFailureIsNotFatal(t *testing.T) {
	bookings := &MockBookingRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := newTestService(bookings, &MockFlightRepository{}, cache, producer)

	ctx := context.Background()
	bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Booking).ID = "b3" }).
		Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", "b3", mock.Anything).Return(errors.New("kafka down")).Once()

	created, err := service.Create(ctx, CreateBookingInput{FlightID: "f1", PassengerName: "A", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "b3", created.ID)
}

func TestBookingService_UpdateStatus_PendingToConfirmed(t *testing.T) {
	bookings := &MockBookingRepository{}
	producer := &MockProducer{}
	service := newTestService(bookings, &MockFlightRepository{}, &MockCache{}, producer)

	ctx := context.Background()
	current := &domain.Booking{ID: "b1", FlightID: "f1", Status: domain.BookingStatusPending}
	confirmed := &domain.Booking{ID: "b1", FlightID: "f1", Status: domain.BookingStatusConfirmed}

	bookings.On("GetByID", ctx, "b1").Return(current, nil).Once()
	bookings.On("UpdateStatus", ctx, "b1", domain.BookingStatusConfirmed).Return(confirmed, nil).Once()
	producer.On("Publish", ctx, "booking-events", "b1", mock.Anything).Return(nil).Once()

	updated, err := service.UpdateStatus(ctx, "b1", domain.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)

	bookings.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_UpdateStatus_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.BookingStatus
	}{
		{domain.BookingStatusConfirmed, domain.BookingStatusPending},
		{domain.BookingStatusCancelled, domain.BookingStatusPending},
		{domain.BookingStatusCancelled, domain.BookingStatusConfirmed},
	}
	for _, tc := range cases {
		bookings := &MockBookingRepository{}
		service := newTestService(bookings, &MockFlightRepository{}, &MockCache{}, &MockProducer{})

		ctx := context.Background()
		bookings.On("GetByID", ctx, "b1").Return(&domain.Booking{ID: "b1", Status: tc.from}, nil).Once()

		_, err := service.UpdateStatus(ctx, "b1", tc.to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestBookingService_UpdateStatus_InvalidStatus(t *testing.T) {
	service := newTestService(&MockBookingRepository{}, &MockFlightRepository{}, &MockCache{}, &MockProducer{})

	_, err := service.UpdateStatus(context.Background(), "b1", "expired")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestBookingService_UpdateStatus_AbsentID(t *testing.T) {
	bookings := &MockBookingRepository{}
	service := newTestService(bookings, &MockFlightRepository{}, &MockCache{}, &MockProducer{})

	ctx := context.Background()
	bookings.On("GetByID", ctx, "missing").Return(nil, nil).Once()

	updated, err := service.UpdateStatus(ctx, "missing", domain.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestBookingService_UpdateStatus_ToCancelledRestoresSeat(t *testing.T) {
	bookings := &MockBookingRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := newTestService(bookings, &MockFlightRepository{}, cache, producer)

	ctx := context.Background()
	pending := &domain.Booking{ID: "b1", FlightID: "f1", Status: domain.BookingStatusPending}
	cancelled := &domain.Booking{ID: "b1", FlightID: "f1", Status: domain.BookingStatusCancelled}

	bookings.On("GetByID", ctx, "b1").Return(pending, nil).Twice()
	bookings.On("Cancel", ctx, "b1").Return(cancelled, nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", "b1", mock.Anything).Return(nil).Once()

	updated, err := service.UpdateStatus(ctx, "b1", domain.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, updated.Status)

	bookings.AssertExpectations(t)
}

func TestBookingService_Cancel_Idempotent(t *testing.T) {
	bookings := &MockBookingRepository{}
	service := newTestService(bookings, &MockFlightRepository{}, &MockCache{}, &MockProducer{})

	ctx := context.Background()
	already := &domain.Booking{ID: "b1", FlightID: "f1", Status: domain.BookingStatusCancelled}
	bookings.On("GetByID", ctx, "b1").Return(already, nil).Once()

	got, err := service.Cancel(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, got.Status)

	bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestBookingService_Cancel_Absent(t *testing.T) {
	bookings := &MockBookingRepository{}
	service := newTestService(bookings, &MockFlightRepository{}, &MockCache{}, &MockProducer{})

	ctx := context.Background()
	bookings.On("GetByID", ctx, "missing").Return(nil, nil).Once()

	got, err := service.Cancel(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookingService_Reconcile(t *testing.T) {
	bookings := &MockBookingRepository{}
	flights := &MockFlightRepository{}
	cache := &MockCache{}
	service := newTestService(bookings, flights, cache, &MockProducer{})

	ctx := context.Background()
	flights.On("List", ctx).Return([]domain.Flight{
		{ID: "f1", TotalSeats: 10, SeatsAvailable: 9},
		{ID: "f2", TotalSeats: 10, SeatsAvailable: 8},
	}, nil).Once()
	// f1 drifted: one seat free claimed, but three active bookings exist.
	bookings.On("CountActiveByFlight", ctx, "f1").Return(3, nil).Once()
	bookings.On("CountActiveByFlight", ctx, "f2").Return(2, nil).Once()
	flights.On("UpdateSeats", ctx, "f1", 7).Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()

	corrected, err := service.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)

	flights.AssertExpectations(t)
	bookings.AssertExpectations(t)
	cache.AssertExpectations(t)
}
