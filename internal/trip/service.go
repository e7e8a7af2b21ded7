package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/packwise/packwise/internal/api/models"
)

// Validation constants.
const (
	MaxDestinationLength = 200
	MaxItineraryLength   = 10000
)

// Service provides trip operations.
type Service struct {
	repo Repository
}

// NewService creates a new trip service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves all trips for a user.
func (s *Service) List(ctx context.Context, userID string, limit int) (*models.PagedTrips, error) {
	result, err := s.repo.List(ctx, userID, ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	items := make([]models.Trip, 0, len(result.Items))
	for _, t := range result.Items {
		items = append(items, toAPITrip(t))
	}

	var nextCursor *string
	if result.NextCursor != "" {
		nextCursor = &result.NextCursor
	}

	return &models.PagedTrips{
		Items: items,
		Meta: models.PagedResponseMeta{
			Limit:      limit,
			NextCursor: nextCursor,
		},
	}, nil
}

// Get retrieves a trip by ID for a user.
func (s *Service) Get(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	t, err := s.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	result := toAPITrip(t)
	return &result, nil
}

// GetTrip retrieves the domain trip, for callers that generate plans from it.
func (s *Service) GetTrip(ctx context.Context, userID, tripID string) (*Trip, error) {
	t, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("getting trip: %w", err)
	}
	return t, nil
}

// Create creates a new trip for a user.
func (s *Service) Create(ctx context.Context, userID string, input *models.TripCreateRequest) (*models.Trip, error) {
	if fieldErrors := validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	luggage := input.LuggageType
	if luggage == LuggageOther {
		luggage = strings.TrimSpace(input.CustomLuggageType)
	}

	now := time.Now()
	start := input.StartDate.Time()
	end := input.EndDate.Time()

	t := &Trip{
		ID:                  "trp_" + uuid.New().String()[:22],
		UserID:              userID,
		Destination:         strings.TrimSpace(input.Destination),
		Country:             strings.TrimSpace(input.Country),
		StartDate:           start,
		EndDate:             end,
		DurationDays:        DurationBetween(start, end),
		Purposes:            toPurposes(input.TripPurposes),
		OtherPurpose:        strings.TrimSpace(input.OtherPurpose),
		Accommodations:      toAccommodations(input.Accommodations),
		CustomAccommodation: strings.TrimSpace(input.CustomAccommodation),
		LuggageType:         luggage,
		Itinerary:           input.Itinerary,
		Gender:              ParseGender(input.Gender),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating trip: %w", err)
	}

	result := toAPITrip(t)
	return &result, nil
}

// Update applies a partial update to a trip.
func (s *Service) Update(ctx context.Context, userID, tripID string, input *models.TripUpdateRequest) (*models.Trip, error) {
	t, err := s.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if input.Destination != nil {
		t.Destination = strings.TrimSpace(*input.Destination)
	}
	if input.Country != nil {
		t.Country = strings.TrimSpace(*input.Country)
	}
	if input.StartDate != nil {
		t.StartDate = input.StartDate.Time()
	}
	if input.EndDate != nil {
		t.EndDate = input.EndDate.Time()
	}
	if input.TripPurposes != nil {
		t.Purposes = toPurposes(input.TripPurposes)
	}
	if input.OtherPurpose != nil {
		t.OtherPurpose = strings.TrimSpace(*input.OtherPurpose)
	}
	if input.Accommodations != nil {
		t.Accommodations = toAccommodations(input.Accommodations)
	}
	if input.CustomAccommodation != nil {
		t.CustomAccommodation = strings.TrimSpace(*input.CustomAccommodation)
	}
	luggage := t.LuggageType
	if input.LuggageType != nil {
		luggage = *input.LuggageType
	}
	if input.Itinerary != nil {
		t.Itinerary = *input.Itinerary
	}
	if input.Gender != nil {
		t.Gender = ParseGender(*input.Gender)
	}

	// Re-validate the merged trip, not just the patch.
	merged := &models.TripCreateRequest{
		Destination:         t.Destination,
		Country:             t.Country,
		StartDate:           models.Date(t.StartDate),
		EndDate:             models.Date(t.EndDate),
		TripPurposes:        purposeStrings(t.Purposes),
		OtherPurpose:        t.OtherPurpose,
		Accommodations:      accommodationStrings(t.Accommodations),
		CustomAccommodation: t.CustomAccommodation,
		LuggageType:         luggage,
		Itinerary:           t.Itinerary,
	}
	if input.CustomLuggageType != nil {
		merged.CustomLuggageType = *input.CustomLuggageType
	}
	if input.Gender != nil {
		merged.Gender = *input.Gender
	}
	if fieldErrors := validateCreateInput(merged); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	t.LuggageType = luggage
	if luggage == LuggageOther {
		t.LuggageType = strings.TrimSpace(merged.CustomLuggageType)
	}
	t.DurationDays = DurationBetween(t.StartDate, t.EndDate)
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating trip: %w", err)
	}

	result := toAPITrip(t)
	return &result, nil
}

// Delete deletes a trip for a user.
func (s *Service) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := s.GetTrip(ctx, userID, tripID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, tripID)
}

func validateCreateInput(input *models.TripCreateRequest) []models.FieldError {
	var errs []models.FieldError

	if strings.TrimSpace(input.Destination) == "" {
		errs = append(errs, models.FieldError{Field: "destination", Message: "is required", Code: models.CodeRequired})
	} else if len(input.Destination) > MaxDestinationLength {
		errs = append(errs, models.FieldError{Field: "destination", Message: "must be at most 200 characters", Code: models.CodeTooLong})
	}

	if strings.TrimSpace(input.Country) == "" {
		errs = append(errs, models.FieldError{Field: "country", Message: "is required", Code: models.CodeRequired})
	}

	if input.StartDate.IsZero() {
		errs = append(errs, models.FieldError{Field: "startDate", Message: "is required", Code: models.CodeRequired})
	}
	if input.EndDate.IsZero() {
		errs = append(errs, models.FieldError{Field: "endDate", Message: "is required", Code: models.CodeRequired})
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() &&
		DurationBetween(input.StartDate.Time(), input.EndDate.Time()) < 1 {
		errs = append(errs, models.FieldError{Field: "endDate", Message: "must be after startDate", Code: models.CodeInvalidRange})
	}

	if len(input.TripPurposes) == 0 {
		errs = append(errs, models.FieldError{Field: "tripPurposes", Message: "is required", Code: models.CodeRequired})
	} else if contains(input.TripPurposes, string(PurposeOther)) && strings.TrimSpace(input.OtherPurpose) == "" {
		errs = append(errs, models.FieldError{Field: "otherPurpose", Message: "is required when tripPurposes contains other", Code: models.CodeRequired})
	}

	if len(input.Accommodations) == 0 {
		errs = append(errs, models.FieldError{Field: "accommodations", Message: "is required", Code: models.CodeRequired})
	} else if contains(input.Accommodations, string(AccommodationOther)) && strings.TrimSpace(input.CustomAccommodation) == "" {
		errs = append(errs, models.FieldError{Field: "customAccommodation", Message: "is required when accommodations contains other", Code: models.CodeRequired})
	}

	if input.LuggageType == LuggageOther && strings.TrimSpace(input.CustomLuggageType) == "" {
		errs = append(errs, models.FieldError{Field: "customLuggageType", Message: "is required when luggageType is other", Code: models.CodeRequired})
	}

	if input.Gender != "" && ParseGender(input.Gender) == GenderNeutral &&
		!strings.EqualFold(strings.TrimSpace(input.Gender), string(GenderNeutral)) {
		errs = append(errs, models.FieldError{Field: "gender", Message: "must be one of male, female, neutral", Code: models.CodeInvalid})
	}

	if len(input.Itinerary) > MaxItineraryLength {
		errs = append(errs, models.FieldError{Field: "itinerary", Message: "must be at most 10000 characters", Code: models.CodeTooLong})
	}

	return errs
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}

func toPurposes(values []string) []Purpose {
	out := make([]Purpose, 0, len(values))
	for _, v := range values {
		out = append(out, Purpose(strings.ToLower(strings.TrimSpace(v))))
	}
	return out
}

func toAccommodations(values []string) []Accommodation {
	out := make([]Accommodation, 0, len(values))
	for _, v := range values {
		out = append(out, Accommodation(strings.ToLower(strings.TrimSpace(v))))
	}
	return out
}

func toAPITrip(t *Trip) models.Trip {
	return models.Trip{
		ID:                  t.ID,
		Destination:         t.Destination,
		Country:             t.Country,
		StartDate:           models.Date(t.StartDate),
		EndDate:             models.Date(t.EndDate),
		DurationDays:        t.DurationDays,
		TripPurposes:        purposeStrings(t.Purposes),
		OtherPurpose:        t.OtherPurpose,
		Accommodations:      accommodationStrings(t.Accommodations),
		CustomAccommodation: t.CustomAccommodation,
		LuggageType:         t.LuggageType,
		Itinerary:           t.Itinerary,
		Gender:              string(t.Gender),
		CreatedAt:           models.Timestamp(t.CreatedAt),
		UpdatedAt:           models.Timestamp(t.UpdatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
