package services

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/constants"
	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/storage"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/* ------------------------------------------------------------------
   Service
------------------------------------------------------------------ */

// AttachmentService owns upload semantics for both service and ticket
// attachments: size limits, disk placement, and the metadata rows.
// Uploads are two sequential steps (file write, then insert); an upload
// failing size validation performs neither.
type AttachmentService struct {
	store       *storage.Store
	svcAttRepo  repositories.ServiceAttachmentRepository
	tickAttRepo repositories.TicketAttachmentRepository
	serviceRepo repositories.PropertyServiceRepository
	ticketRepo  repositories.TicketRepository
}

func NewAttachmentService(
	store *storage.Store,
	svcAttRepo repositories.ServiceAttachmentRepository,
	tickAttRepo repositories.TicketAttachmentRepository,
	serviceRepo repositories.PropertyServiceRepository,
	ticketRepo repositories.TicketRepository,
) *AttachmentService {
	return &AttachmentService{
		store:       store,
		svcAttRepo:  svcAttRepo,
		tickAttRepo: tickAttRepo,
		serviceRepo: serviceRepo,
		ticketRepo:  ticketRepo,
	}
}

/* ------------------------------------------------------------------
   Service attachments (3 MB limit)
------------------------------------------------------------------ */

func (s *AttachmentService) UploadServiceAttachment(ctx context.Context, serviceID uuid.UUID, fileName, contentType string, r io.Reader, uploadedBy string) (*models.ServiceAttachment, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.ErrNotFound
	}

	rel, size, err := s.store.SaveServiceAttachment(svc.PropertyID, serviceID, fileName, r, constants.MaxServiceAttachmentBytes)
	if err != nil {
		return nil, err
	}

	att := &models.ServiceAttachment{
		ID:          uuid.New(),
		ServiceID:   serviceID,
		FileName:    storage.SanitizeFileName(fileName),
		FilePath:    rel,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  uploadedBy,
	}
	if err := s.svcAttRepo.Create(ctx, att); err != nil {
		// Keep disk and database consistent when the insert fails.
		_ = s.store.Remove(rel)
		return nil, err
	}
	return att, nil
}

func (s *AttachmentService) ListServiceAttachments(ctx context.Context, serviceID uuid.UUID) ([]*models.ServiceAttachment, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.ErrNotFound
	}
	return s.svcAttRepo.ListByServiceID(ctx, serviceID)
}

// OpenServiceAttachment returns the metadata row and an open file
// handle. When restrictToProperty is set (owner requests), attachments
// on other properties' services come back as forbidden. The caller
// closes the file.
func (s *AttachmentService) OpenServiceAttachment(ctx context.Context, attachmentID uuid.UUID, restrictToProperty *uuid.UUID) (*models.ServiceAttachment, *os.File, error) {
	att, err := s.svcAttRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	if att == nil {
		return nil, nil, utils.ErrNotFound
	}

	if restrictToProperty != nil {
		svc, err := s.serviceRepo.GetByID(ctx, att.ServiceID)
		if err != nil {
			return nil, nil, err
		}
		if svc == nil || svc.PropertyID != *restrictToProperty {
			return nil, nil, utils.ErrForbidden
		}
	}

	f, err := s.store.Open(att.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return att, f, nil
}

func (s *AttachmentService) DeleteServiceAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	att, err := s.svcAttRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if att == nil {
		return utils.ErrNotFound
	}
	if err := s.svcAttRepo.Delete(ctx, attachmentID); err != nil {
		return err
	}
	return s.store.Remove(att.FilePath)
}

/* ------------------------------------------------------------------
   Ticket attachments (5 MB limit)
------------------------------------------------------------------ */

// UploadTicketAttachment stores a file against a ticket. When
// restrictToOwner is set, uploads to tickets raised by someone else are
// forbidden.
func (s *AttachmentService) UploadTicketAttachment(ctx context.Context, ticketID uuid.UUID, restrictToOwner *uuid.UUID, fileName, contentType string, r io.Reader, uploadedBy string) (*models.TicketAttachment, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, utils.ErrNotFound
	}
	if restrictToOwner != nil && ticket.OwnerID != *restrictToOwner {
		return nil, utils.ErrForbidden
	}

	rel, size, err := s.store.SaveTicketAttachment(ticketID, fileName, r, constants.MaxTicketAttachmentBytes)
	if err != nil {
		return nil, err
	}

	att := &models.TicketAttachment{
		ID:          uuid.New(),
		TicketID:    ticketID,
		FileName:    storage.SanitizeFileName(fileName),
		FilePath:    rel,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  uploadedBy,
	}
	if err := s.tickAttRepo.Create(ctx, att); err != nil {
		_ = s.store.Remove(rel)
		return nil, err
	}
	return att, nil
}

func (s *AttachmentService) ListTicketAttachments(ctx context.Context, ticketID uuid.UUID) ([]*models.TicketAttachment, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, utils.ErrNotFound
	}
	return s.tickAttRepo.ListByTicketID(ctx, ticketID)
}

func (s *AttachmentService) OpenTicketAttachment(ctx context.Context, attachmentID uuid.UUID, restrictToOwner *uuid.UUID) (*models.TicketAttachment, *os.File, error) {
	att, err := s.tickAttRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	if att == nil {
		return nil, nil, utils.ErrNotFound
	}

	if restrictToOwner != nil {
		ticket, err := s.ticketRepo.GetByID(ctx, att.TicketID)
		if err != nil {
			return nil, nil, err
		}
		if ticket == nil || ticket.OwnerID != *restrictToOwner {
			return nil, nil, utils.ErrForbidden
		}
	}

	f, err := s.store.Open(att.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return att, f, nil
}

func (s *AttachmentService) DeleteTicketAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	att, err := s.tickAttRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if att == nil {
		return utils.ErrNotFound
	}
	if err := s.tickAttRepo.Delete(ctx, attachmentID); err != nil {
		return err
	}
	return s.store.Remove(att.FilePath)
}
