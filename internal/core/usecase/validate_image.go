package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
)

// signatureProbeSize is how much of the file is read for magic-byte
// inspection. The longest check (WEBP fourcc) ends at offset 12.
const signatureProbeSize = 512

// ValidateImageUseCase is a stateless gate over one upload attempt: it
// rejects anything unauthenticated, oversized, of a disallowed declared
// type, or whose binary signature contradicts the declared type. It never
// writes to storage; a separate upload step consults its verdict.
type ValidateImageUseCase struct {
	auth        port.AuthPort
	authTimeout time.Duration
}

func NewValidateImageUseCase(auth port.AuthPort, authTimeout time.Duration) *ValidateImageUseCase {
	if authTimeout <= 0 {
		authTimeout = 10 * time.Second
	}
	return &ValidateImageUseCase{auth: auth, authTimeout: authTimeout}
}

// Execute runs the checks cheapest-first and fails closed. The order is
// contractual: authentication, payload presence, size, declared-type
// allow-list, magic bytes.
func (uc *ValidateImageUseCase) Execute(ctx context.Context, upload domain.ImageUpload) *domain.ImageValidationResult {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ValidateImage"})

	if upload.AuthToken == "" {
		logger.Warn("Upload attempt without credentials", nil)
		return &domain.ImageValidationResult{Failure: domain.FailureUnauthorized, Error: "Unauthorized"}
	}

	authCtx, cancel := context.WithTimeout(ctx, uc.authTimeout)
	defer cancel()
	identity, err := uc.auth.GetUser(authCtx, upload.AuthToken)
	if err != nil || identity == nil {
		logger.Warn("Identity exchange failed", port.Fields{"error": errString(err)})
		return &domain.ImageValidationResult{Failure: domain.FailureInvalidAuth, Error: "Invalid authentication"}
	}

	if !upload.HasFile {
		return &domain.ImageValidationResult{Failure: domain.FailureMissingFile, Error: "No file provided"}
	}

	logger.Debug("Validating file", port.Fields{
		"filename":      upload.Filename,
		"declared_type": upload.DeclaredType,
		"size":          upload.Size,
	})

	// Size is known from the multipart header, so oversized payloads are
	// rejected before any content is read.
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
		logger.Error("Failed to read file content", err, nil)
		return &domain.ImageValidationResult{Failure: domain.FailureInternal, Error: "Internal server error"}
	}

	matches := domain.MatchesImageSignature(head, upload.DeclaredType)
	detected := domain.DetectImageType(head)

	if !matches {
		logger.Warn("Magic bytes mismatch", port.Fields{
			"declared_type": upload.DeclaredType,
			"detected_type": orUnknown(detected),
		})
		return &domain.ImageValidationResult{
			Failure:      domain.FailureContentMismatch,
			Error:        fmt.Sprintf("File content does not match declared type. Detected: %s", orUnknown(detected)),
			DetectedType: detected,
		}
	}

	logger.Info("File validated successfully", port.Fields{
		"filename": upload.Filename,
		"type":     detected,
	})

	if detected == "" {
		detected = upload.DeclaredType
	}
	return &domain.ImageValidationResult{Valid: true, DetectedType: detected}
}

func readHead(upload domain.ImageUpload) ([]byte, error) {
	f, err := upload.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, signatureProbeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}

func orUnknown(detected string) string {
	if detected == "" {
		return "unknown"
	}
	return detected
}

func errString(err error) string {
	if err == nil {
		return "no identity returned"
	}
	return err.Error()
}
