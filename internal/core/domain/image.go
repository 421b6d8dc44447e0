package domain

import "io"

// ImageUpload is one upload-validation attempt, built from an inbound
// multipart request and consumed exactly once. Open is deferred so the
// cheaper checks (auth, size, declared type) run before any file content
// is read.
type ImageUpload struct {
	AuthToken    string
	HasFile      bool
	Filename     string
	DeclaredType string
	Size         int64
	Open         func() (io.ReadCloser, error)
}

// MaxImageSize is the upload ceiling for a single image file.
const MaxImageSize = 5 * 1024 * 1024 // 5 MiB

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeWEBP = "image/webp"
	MimeGIF  = "image/gif"
)

// AllowedImageTypes is the declared-type allow-list for uploads.
var AllowedImageTypes = []string{MimeJPEG, MimePNG, MimeWEBP, MimeGIF}

// IsAllowedImageType reports whether mime is on the upload allow-list.
func IsAllowedImageType(mime string) bool {
	for _, t := range AllowedImageTypes {
		if t == mime {
			return true
		}
	}
	return false
}

// ImageFailure classifies why an upload was rejected. Every failure is
// data carried back to the caller, never a panic across the API boundary.
type ImageFailure string

const (
	FailureNone             ImageFailure = ""
	FailureUnauthorized     ImageFailure = "unauthorized"
	FailureInvalidAuth      ImageFailure = "invalid_authentication"
	FailureMissingFile      ImageFailure = "missing_file"
	FailureFileTooLarge     ImageFailure = "file_too_large"
	FailureUnsupportedType  ImageFailure = "unsupported_declared_type"
	FailureContentMismatch  ImageFailure = "content_type_mismatch"
	FailureInternal         ImageFailure = "internal_error"
)

// ImageValidationResult is the outcome of one upload-validation attempt.
// DetectedType is inferred from the binary signature alone, independent of
// what the caller declared.
type ImageValidationResult struct {
	Valid        bool
	Failure      ImageFailure
	Error        string
	DetectedType string
}

func hasPrefix(data []byte, sig ...byte) bool {
	if len(data) < len(sig) {
		return false
	}
	for i, b := range sig {
		if data[i] != b {
			return false
		}
	}
	return true
}

// hasWebPFourCC checks the ASCII "WEBP" fourcc at offset 8 of a RIFF
// container. A file can be valid RIFF without being WebP (WAV, AVI).
func hasWebPFourCC(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P'
}

// MatchesImageSignature reports whether the leading bytes carry the magic
// signature of the declared type. The WebP case is explicit: RIFF header at
// offset 0 plus the WEBP fourcc at offset 8.
func MatchesImageSignature(data []byte, declaredType string) bool {
	switch declaredType {
	case MimeJPEG:
		return hasPrefix(data, 0xFF, 0xD8, 0xFF)
	case MimePNG:
		return hasPrefix(data, 0x89, 0x50, 0x4E, 0x47)
	case MimeGIF:
		return hasPrefix(data, 0x47, 0x49, 0x46, 0x38)
	case MimeWEBP:
		return hasPrefix(data, 0x52, 0x49, 0x46, 0x46) && hasWebPFourCC(data)
	default:
		return false
	}
}

// DetectImageType scans all known signatures and returns the type the
// content actually indicates, or "" when none match.
func DetectImageType(data []byte) string {
	for _, mime := range AllowedImageTypes {
		if MatchesImageSignature(data, mime) {
			return mime
		}
	}
	return ""
}
