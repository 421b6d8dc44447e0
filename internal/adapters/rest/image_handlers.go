package rest

import (
	"io"
	"net/http"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
	"nhadat-service/internal/core/port/usecases_port"
)

// maxUploadBody bounds the whole multipart body. It is deliberately larger
// than the per-file ceiling so an oversized file is still parsed far enough
// to be rejected with a proper verdict instead of a truncated-body error.
const maxUploadBody = 2*domain.MaxImageSize + 1<<20

// ImageHandler serves the standalone upload validator.
type ImageHandler struct {
	validateUC usecases_port.ValidateImageUseCasePort
}

func NewImageHandler(validateUC usecases_port.ValidateImageUseCasePort) *ImageHandler {
	return &ImageHandler{validateUC: validateUC}
}

// ValidateImage handles POST /api/v1/images/validate. Every rejection is a
// structured verdict; only transport-level failures surface as 500.
func (h *ImageHandler) ValidateImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ValidateImage"})

	upload, err := uploadFromRequest(w, r)
	if err != nil {
		logger.Error("Failed to parse multipart request", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	upload.AuthToken = bearerToken(r)

	result := h.validateUC.Execute(r.Context(), upload)

	RespondWithJSON(w, statusForFailure(result.Failure), toImageValidationResponse(result))
}

// uploadFromRequest builds an ImageUpload from a multipart form with a
// "file" part and a "type" field carrying the declared MIME type. A request
// without a "file" part is a valid attempt with HasFile unset; a body that
// is not parseable multipart at all is a transport error.
func uploadFromRequest(w http.ResponseWriter, r *http.Request) (domain.ImageUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(domain.MaxImageSize + 1<<20); err != nil {
		return domain.ImageUpload{}, err
	}

	declaredType := r.FormValue("type")

	_, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return domain.ImageUpload{}, nil
		}
		return domain.ImageUpload{}, err
	}

	return domain.ImageUpload{
		HasFile:      true,
		Filename:     header.Filename,
		DeclaredType: declaredType,
		Size:         header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}, nil
}

// statusForFailure maps a verdict to the HTTP status the UI contract
// expects: auth failures are 401, content rejections 400, success 200.
func statusForFailure(failure domain.ImageFailure) int {
	switch failure {
	case domain.FailureNone:
		return http.StatusOK
	case domain.FailureUnauthorized, domain.FailureInvalidAuth:
		return http.StatusUnauthorized
	case domain.FailureInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
