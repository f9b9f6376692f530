package parcel

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainParcel "casillero-backend/internal/domain/parcel"
	domainUser "casillero-backend/internal/domain/user"
	"casillero-backend/internal/logger"
	"casillero-backend/internal/notification"
	appErrors "casillero-backend/pkg/errors"
	"casillero-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the package ledger use cases
type Service struct {
	parcelRepo   domainParcel.Repository
	userRepo     domainUser.Repository
	dispatcher   notification.Dispatcher
	opsMailbox   string
	enforceOrder bool
}

// NewService creates a new parcel service
func NewService(
	parcelRepo domainParcel.Repository,
	userRepo domainUser.Repository,
	dispatcher notification.Dispatcher,
	opsMailbox string,
	enforceOrder bool,
) *Service {
	return &Service{
		parcelRepo:   parcelRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		opsMailbox:   opsMailbox,
		enforceOrder: enforceOrder,
	}
}

// CreateByAdmin registers a received package against a known user.
func (s *Service) CreateByAdmin(ctx context.Context, req *CreateByAdminRequest) (*ParcelResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	status, err := domainParcel.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, domainParcel.ErrUnknownOwner
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	if err := s.checkTrackingAvailable(ctx, req.TrackingNumber); err != nil {
		return nil, err
	}

	p := &domainParcel.Parcel{
		OwnerID:        req.OwnerID,
		Name:           req.Name,
		Price:          req.Price,
		TrackingNumber: req.TrackingNumber,
		Weight:         req.Weight,
		Status:         status,
		PreAlert:       false,
		Consolidate:    false,
		ReceivedAt:     req.ReceivedAt,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.parcelRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Parcel created by admin",
		zap.String("parcel_id", p.ID.String()),
		zap.String("owner_id", p.OwnerID.String()),
		zap.String("tracking_number", p.TrackingNumber),
		zap.String("status", string(p.Status)),
		zap.String("event", "parcel_created"),
	)

	return ToParcelResponse(p), nil
}

// CreatePreAlert registers a customer's self-reported inbound package and
// notifies the operational mailbox. The warning string is non-empty when the
// notification could not be delivered; the created record stands regardless.
func (s *Service) CreatePreAlert(ctx context.Context, ownerID uuid.UUID, req *CreatePreAlertRequest) (*ParcelResponse, string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	status := domainParcel.DefaultStatus
	if req.Status != "" {
		parsed, err := domainParcel.ParseStatus(req.Status)
		if err != nil {
			return nil, "", err
		}
		status = parsed
	}

	if err := s.checkTrackingAvailable(ctx, req.TrackingNumber); err != nil {
		return nil, "", err
	}

	p := &domainParcel.Parcel{
		OwnerID:        ownerID,
		Name:           req.Name,
		Price:          req.Price,
		TrackingNumber: req.TrackingNumber,
		Weight:         req.Weight,
		Status:         status,
		PreAlert:       true,
		Consolidate:    false,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.parcelRepo.Create(ctx, p); err != nil {
		return nil, "", err
	}

	logger.Info("Pre-alert registered",
		zap.String("parcel_id", p.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("tracking_number", p.TrackingNumber),
		zap.String("event", "prealert_created"),
	)

	var warning string
	if owner, err := s.userRepo.GetByID(ctx, ownerID); err == nil && s.opsMailbox != "" {
		delivered, diagnostic := s.dispatcher.Send(ctx,
			notification.PreAlertAdminSubject(),
			s.opsMailbox,
			notification.PreAlertAdminBody(owner.FirstName, owner.LastName, owner.Email, p.Name, p.TrackingNumber),
			false,
		)
		if !delivered {
			logger.Warn("Failed to notify pre-alert",
				zap.String("parcel_id", p.ID.String()),
				zap.String("diagnostic", diagnostic),
			)
			warning = "pre-alert created, but the notification could not be sent"
		}
	}

	return ToParcelResponse(p), warning, nil
}

// UpdateStatusAndDetails commits status and detail fields atomically, then
// mails the owner about the status change. The previous status is captured
// before the write so the notification carries both values; a failed
// notification never rolls the update back.
func (s *Service) UpdateStatusAndDetails(ctx context.Context, parcelID uuid.UUID, req *UpdateStatusAndDetailsRequest) (*ParcelResponse, string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	p, err := s.parcelRepo.GetByID(ctx, parcelID)
	if err != nil {
		return nil, "", err
	}

	previousStatus := p.Status

	newStatus, err := domainParcel.ParseStatus(req.NewStatus)
	if err != nil {
		return nil, "", err
	}
	if err := domainParcel.ValidateTransition(previousStatus, newStatus, s.enforceOrder); err != nil {
		return nil, "", err
	}

	if req.TrackingNumber != p.TrackingNumber {
		if err := s.checkTrackingAvailable(ctx, req.TrackingNumber); err != nil {
			return nil, "", err
		}
	}

	p.Status = newStatus
	p.Name = req.Name
	p.Price = req.Price
	p.TrackingNumber = req.TrackingNumber
	p.Weight = req.Weight
	if req.ReceivedAt != nil {
		p.ReceivedAt = req.ReceivedAt
	}
	if req.ClearPreAlert {
		p.PreAlert = false
	}

	if err := s.parcelRepo.Update(ctx, p); err != nil {
		return nil, "", err
	}

	logger.Info("Parcel status updated",
		zap.String("parcel_id", p.ID.String()),
		zap.String("previous_status", string(previousStatus)),
		zap.String("new_status", string(newStatus)),
		zap.String("event", "parcel_status_updated"),
	)

	var warning string
	owner, err := s.userRepo.GetByID(ctx, p.OwnerID)
	if err != nil {
		logger.Warn("Owner not found for status notification",
			zap.String("parcel_id", p.ID.String()),
			zap.Error(err),
		)
	} else {
		delivered, diagnostic := s.dispatcher.Send(ctx,
			notification.StatusChangeSubject(p.Name),
			owner.Email,
			notification.StatusChangeBody(owner.FirstName, p.Name, p.TrackingNumber,
				string(previousStatus), newStatus.Label()),
			true,
		)
		if !delivered {
			logger.Warn("Failed to notify status change",
				zap.String("parcel_id", p.ID.String()),
				zap.String("recipient", owner.Email),
				zap.String("diagnostic", diagnostic),
			)
			warning = "status updated, but the notification could not be sent"
		}
	}

	return ToParcelResponse(p), warning, nil
}

// SetConsolidate toggles the customer's batch-shipping request. Only the
// owner may flip the flag.
func (s *Service) SetConsolidate(ctx context.Context, parcelID, requesterID uuid.UUID, consolidate bool) (*ParcelResponse, error) {
	p, err := s.parcelRepo.GetByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	if p.OwnerID != requesterID {
		return nil, appErrors.ErrForbidden
	}

	if err := s.parcelRepo.UpdateConsolidate(ctx, parcelID, consolidate); err != nil {
		return nil, err
	}
	p.Consolidate = consolidate

	logger.Info("Consolidate flag updated",
		zap.String("parcel_id", p.ID.String()),
		zap.Bool("consolidate", consolidate),
		zap.String("event", "parcel_consolidate_updated"),
	)

	return ToParcelResponse(p), nil
}

func (s *Service) Delete(ctx context.Context, parcelID uuid.UUID) error {
	if err := s.parcelRepo.Delete(ctx, parcelID); err != nil {
		return err
	}

	logger.Info("Parcel deleted",
		zap.String("parcel_id", parcelID.String()),
		zap.String("event", "parcel_deleted"),
	)

	return nil
}

// Track is the anonymous lookup gating package details behind knowledge of
// the (email, tracking number) pair. The email is resolved first; a caller
// who only knows the tracking number learns nothing.
func (s *Service) Track(ctx context.Context, req *TrackRequest) (*ParcelResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	owner, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	p, err := s.parcelRepo.GetByTrackingAndOwner(ctx, req.TrackingNumber, owner.ID)
	if err != nil {
		return nil, err
	}

	return ToParcelResponse(p), nil
}

func (s *Service) GetParcel(ctx context.Context, parcelID uuid.UUID) (*ParcelResponse, error) {
	p, err := s.parcelRepo.GetByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	return ToParcelResponse(p), nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ParcelResponse, error) {
	parcels, err := s.parcelRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToParcelResponseList(parcels), nil
}

func (s *Service) ListAll(ctx context.Context) ([]*ParcelResponse, error) {
	parcels, err := s.parcelRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToParcelResponseList(parcels), nil
}

// checkTrackingAvailable rejects a tracking number already present in the
// ledger, regardless of owner.
func (s *Service) checkTrackingAvailable(ctx context.Context, trackingNumber string) error {
	existing, err := s.parcelRepo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil && !errors.Is(err, domainParcel.ErrParcelNotFound) {
		return fmt.Errorf("failed to check tracking number: %w", err)
	}
	if existing != nil {
		return domainParcel.ErrDuplicateTrackingNumber
	}
	return nil
}
