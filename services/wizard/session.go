package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyago/models"
	"voyago/utils"
)

// NewCustomDestinationRef builds a reference for a map pin that is not in
// the catalogue. The synthetic ID prefix lets downstream logic recognise
// that no authoritative routing data exists for it.
func NewCustomDestinationRef(name, location string, coords models.GeoPoint) models.DestinationRef {
	return models.DestinationRef{
		ID:          models.CustomDestinationPrefix + uuid.New().String(),
		Name:        name,
		Location:    location,
		Coordinates: coords,
	}
}

// InitiateSession starts a wizard run for the given destination. Catalogue
// destinations are verified against the repository; custom pins are taken
// as provided.
func (s *DefaultWizardService) InitiateSession(ctx context.Context, userID string, dest models.DestinationRef) (*models.WizardSession, error) {
	if dest.ID == "" {
		return nil, utils.NewValidationError(map[string]string{"destination": "destination is required"})
	}

	if !models.IsCustomDestination(dest.ID) {
		record, err := s.DestRepo.GetByID(dest.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify destination: %w", err)
		}
		if record == nil {
			return nil, utils.NewNotFoundError(fmt.Sprintf("destination %s not found", dest.ID))
		}
		dest = record.Ref()
	}

	now := time.Now()
	session := &models.WizardSession{
		SessionID:   uuid.New().String(),
		UserID:      userID,
		Step:        models.StepDestination,
		Destination: &dest,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.Logger.Info("wizard session initiated",
		zap.String("sessionID", session.SessionID),
		zap.String("destination", dest.ID))
	return session, nil
}

// GetSession returns the current session state.
func (s *DefaultWizardService) GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// CancelSession abandons a wizard run and drops its state.
func (s *DefaultWizardService) CancelSession(ctx context.Context, sessionID string) error {
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to cancel wizard session: %w", err)
	}
	s.Logger.Info("wizard session cancelled", zap.String("sessionID", sessionID))
	return nil
}

// load fetches the session or reports the destination step as missing when
// the session is gone, so callers land back at the start of the flow.
func (s *DefaultWizardService) load(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	if sessionID == "" {
		return nil, missingStep(models.StepDestination, "no booking session")
	}
	return s.Store.Get(ctx, sessionID)
}

func (s *DefaultWizardService) save(ctx context.Context, session *models.WizardSession) error {
	session.UpdatedAt = time.Now()
	return s.Store.Save(ctx, session)
}
