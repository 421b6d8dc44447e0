package usecase

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
)

// AttachPropertyImageUseCase is the upload pipeline behind a listing's
// gallery: it re-runs the content gate (size, allow-list, magic bytes)
// over an already authenticated request, then stores the object and
// records its public URL. The request carries a verified identity, so the
// credential checks of the standalone validator do not apply here.
type AttachPropertyImageUseCase struct {
	storage port.PropertyStoragePort
	objects port.ObjectStoragePort
}

func NewAttachPropertyImageUseCase(storage port.PropertyStoragePort, objects port.ObjectStoragePort) *AttachPropertyImageUseCase {
	return &AttachPropertyImageUseCase{storage: storage, objects: objects}
}

func (uc *AttachPropertyImageUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID, upload domain.ImageUpload) (string, *domain.ImageValidationResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "AttachPropertyImage",
		"property_id": propertyID,
		"user_id":     userID,
	})

	p, err := uc.storage.GetByID(ctx, propertyID)
	if err != nil {
		logger.Error("Failed to load property", err, nil)
		return "", nil, err
	}
	if p.OwnerID != userID {
		logger.Warn("Rejected image upload by non-owner", port.Fields{"owner_id": p.OwnerID})
		return "", nil, domain.ErrNotOwner
	}

	if verdict := checkImageContent(upload); !verdict.Valid {
		logger.Warn("Image rejected by content gate", port.Fields{"reason": verdict.Error})
		return "", verdict, nil
	}

	data, err := readAll(upload)
	if err != nil {
		logger.Error("Failed to read upload", err, nil)
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}

	key := path.Join("properties", propertyID.String(), uuid.New().String()+extensionFor(upload.DeclaredType))
	if err := uc.objects.Upload(ctx, key, upload.DeclaredType, data); err != nil {
		logger.Error("Failed to store image object", err, nil)
		return "", nil, fmt.Errorf("failed to store image object: %w", err)
	}

	url := uc.objects.PublicURL(key)
	if err := uc.storage.AddImage(ctx, propertyID, url); err != nil {
		logger.Error("Failed to record image URL", err, nil)
		return "", nil, fmt.Errorf("failed to record image URL: %w", err)
	}

	logger.Info("Image attached", port.Fields{"key": key})
	return url, &domain.ImageValidationResult{Valid: true, DetectedType: upload.DeclaredType}, nil
}

// checkImageContent applies the same content rules as the standalone
// validator, minus authentication.
func checkImageContent(upload domain.ImageUpload) *domain.ImageValidationResult {
	if !upload.HasFile {
		return &domain.ImageValidationResult{Failure: domain.FailureMissingFile, Error: "No file provided"}
	}
	if upload.Size > domain.MaxImageSize {
		return &domain.ImageValidationResult{
			Failure: domain.FailureFileTooLarge,
			Error:   fmt.Sprintf("File exceeds maximum size of %dMB", domain.MaxImageSize/1024/1024),
		}
	}
	if !domain.IsAllowedImageType(upload.DeclaredType) {
		return &domain.ImageValidationResult{
			Failure: domain.FailureUnsupportedType,
			Error:   fmt.Sprintf("Invalid file type: %s", upload.DeclaredType),
		}
	}

	head, err := readHead(upload)
	if err != nil {
		return &domain.ImageValidationResult{Failure: domain.FailureInternal, Error: "Internal server error"}
	}
	if !domain.MatchesImageSignature(head, upload.DeclaredType) {
		detected := domain.DetectImageType(head)
		return &domain.ImageValidationResult{
			Failure:      domain.FailureContentMismatch,
			Error:        fmt.Sprintf("File content does not match declared type. Detected: %s", orUnknown(detected)),
			DetectedType: detected,
		}
	}
	return &domain.ImageValidationResult{Valid: true}
}

func readAll(upload domain.ImageUpload) ([]byte, error) {
	f, err := upload.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, domain.MaxImageSize))
}

func extensionFor(mime string) string {
	switch mime {
	case domain.MimeJPEG:
		return ".jpg"
	case domain.MimePNG:
		return ".png"
	case domain.MimeWEBP:
		return ".webp"
	case domain.MimeGIF:
		return ".gif"
	default:
		return ""
	}
}
