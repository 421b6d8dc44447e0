package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/filter"
	"nhadat-service/internal/core/port"
	"nhadat-service/internal/core/port/usecases_port"
	"nhadat-service/internal/core/usecase"
)

type testLogger struct{}

func (testLogger) Info(string, port.Fields)         {}
func (testLogger) Warn(string, port.Fields)         {}
func (testLogger) Error(string, error, port.Fields) {}
func (testLogger) Debug(string, port.Fields)        {}
func (l testLogger) WithFields(port.Fields) port.LoggerPort {
	return l
}

type stubAuthPort struct {
	identity *port.Identity
	err      error
}

func (s *stubAuthPort) GetUser(context.Context, string) (*port.Identity, error) {
	return s.identity, s.err
}

type stubFindUC struct {
	result *domain.PaginatedProperties
	err    error
	state  filter.State
}

func (s *stubFindUC) Execute(_ context.Context, state filter.State, _, _ int) (*domain.PaginatedProperties, error) {
	s.state = state
	return s.result, s.err
}

type stubDetailsUC struct {
	property *domain.Property
	err      error
}

func (s *stubDetailsUC) Execute(context.Context, uuid.UUID) (*domain.Property, error) {
	return s.property, s.err
}

type stubSubmitUC struct {
	created *domain.Property
	err     error
	draft   *domain.Property
}

func (s *stubSubmitUC) Execute(_ context.Context, draft *domain.Property) (*domain.Property, error) {
	s.draft = draft
	return s.created, s.err
}

type stubUpdateUC struct {
	updated *domain.Property
	err     error
}

func (s *stubUpdateUC) Execute(context.Context, uuid.UUID, *domain.Property) (*domain.Property, error) {
	return s.updated, s.err
}

type stubAttachUC struct {
	url     string
	verdict *domain.ImageValidationResult
	err     error
	upload  domain.ImageUpload
}

func (s *stubAttachUC) Execute(_ context.Context, _, _ uuid.UUID, upload domain.ImageUpload) (string, *domain.ImageValidationResult, error) {
	s.upload = upload
	return s.url, s.verdict, s.err
}

type stubFavoritesUC struct {
	addErr error
}

func (s *stubFavoritesUC) Execute(context.Context, uuid.UUID, uuid.UUID) error { return s.addErr }

type stubRemoveFavoriteUC struct{ err error }

func (s *stubRemoveFavoriteUC) Execute(context.Context, uuid.UUID, uuid.UUID) error { return s.err }

type stubFavoriteIdsUC struct {
	ids []uuid.UUID
	err error
}

func (s *stubFavoriteIdsUC) Execute(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return s.ids, s.err
}

type stubFavoritePageUC struct {
	page *domain.PaginatedProperties
	err  error
}

func (s *stubFavoritePageUC) Execute(context.Context, uuid.UUID, int, int) (*domain.PaginatedProperties, error) {
	return s.page, s.err
}

type stubDictionariesUC struct{}

func (stubDictionariesUC) Execute(context.Context) *usecases_port.Dictionaries {
	return usecase.NewGetDictionariesUseCase().Execute(context.Background())
}

type routerDeps struct {
	auth      port.AuthPort
	validate  usecases_port.ValidateImageUseCasePort
	find      usecases_port.FindPropertiesUseCasePort
	details   usecases_port.GetPropertyDetailsUseCasePort
	submit    usecases_port.SubmitPropertyUseCasePort
	update    usecases_port.UpdatePropertyUseCasePort
	attach    usecases_port.AttachPropertyImageUseCasePort
	favAdd    usecases_port.AddToFavoritesUseCasePort
	favRemove usecases_port.RemoveFromFavoritesUseCasePort
	favPage   usecases_port.GetUserFavoritesUseCasePort
	favIds    usecases_port.GetUserFavoriteIdsUseCasePort
}

func newTestRouter(deps routerDeps) http.Handler {
	if deps.auth == nil {
		deps.auth = &stubAuthPort{identity: &port.Identity{ID: uuid.New().String()}}
	}
	if deps.validate == nil {
		deps.validate = usecase.NewValidateImageUseCase(&stubAuthPort{identity: &port.Identity{ID: uuid.New().String()}}, 0)
	}
	if deps.find == nil {
		deps.find = &stubFindUC{result: &domain.PaginatedProperties{Objects: []domain.Property{}}}
	}
	if deps.details == nil {
		deps.details = &stubDetailsUC{err: domain.ErrPropertyNotFound}
	}
	if deps.submit == nil {
		deps.submit = &stubSubmitUC{}
	}
	if deps.update == nil {
		deps.update = &stubUpdateUC{}
	}
	if deps.attach == nil {
		deps.attach = &stubAttachUC{verdict: &domain.ImageValidationResult{Valid: true}}
	}
	if deps.favAdd == nil {
		deps.favAdd = &stubFavoritesUC{}
	}
	if deps.favRemove == nil {
		deps.favRemove = &stubRemoveFavoriteUC{}
	}
	if deps.favPage == nil {
		deps.favPage = &stubFavoritePageUC{page: &domain.PaginatedProperties{Objects: []domain.Property{}}}
	}
	if deps.favIds == nil {
		deps.favIds = &stubFavoriteIdsUC{ids: []uuid.UUID{}}
	}

	return NewRouter(
		NewImageHandler(deps.validate),
		NewPropertyHandler(deps.find, deps.details, deps.submit, deps.update, deps.attach),
		NewFavoritesHandler(deps.favAdd, deps.favRemove, deps.favPage, deps.favIds),
		NewDictionaryHandler(stubDictionariesUC{}),
		deps.auth,
		testLogger{},
	)
}

// multipartUpload builds the request body a client sends: the binary under
// the "file" part plus the declared MIME type in the "type" field. The file
// part itself keeps the application/octet-stream header CreateFormFile
// stamps, as real browser clients do.
func multipartUpload(t *testing.T, declaredType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", "photo")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("type", declaredType))
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	router := newTestRouter(routerDeps{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/images/validate", nil)
	req.Header.Set("Origin", "https://nhadat.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Body.String(), "preflight must not reach the validator")
}

func TestValidateImageEndpoint_ValidJPEG(t *testing.T) {
	router := newTestRouter(routerDeps{})

	body, contentType := multipartUpload(t, "image/jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/validate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ImageValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "image/jpeg", resp.DetectedType)
	assert.Empty(t, resp.Error)
}

func TestValidateImageEndpoint_TypeFieldOverridesPartHeader(t *testing.T) {
	router := newTestRouter(routerDeps{})

	// The file part header contradicts the "type" field; the field is the
	// declared type of record.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="photo"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	require.NoError(t, err)
	require.NoError(t, w.WriteField("type", "image/jpeg"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/validate", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ImageValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "image/jpeg", resp.DetectedType)
}

func TestValidateImageEndpoint_MissingTypeField(t *testing.T) {
	router := newTestRouter(routerDeps{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "photo")
	require.NoError(t, err)
	_, err = part.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/validate", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ImageValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Error, "Invalid file type")
}

func TestValidateImageEndpoint_NonMultipartBody(t *testing.T) {
	router := newTestRouter(routerDeps{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/validate", strings.NewReader(`{"file": "nope"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ImageValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error)
}

func TestValidateImageEndpoint_MissingToken(t *testing.T) {
	router := newTestRouter(routerDeps{})

	body, contentType := multipartUpload(t, "image/jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/validate", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ImageValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "Unauthorized", resp.Error)
}

func TestValidateImageEndpoint_DeclaredTypeMismatch(t *testing.T) {
	router := newTestRouter(routerDeps{})

	// PNG signature declared as JPEG.
	body, contentType := multipartUpload(t, "image/jpeg", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/validate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ImageValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "image/png", resp.DetectedType)
	assert.Contains(t, resp.Error, "Detected: image/png")
}

func TestValidateImageEndpoint_NoFile(t *testing.T) {
	router := newTestRouter(routerDeps{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "no file here"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/validate", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ImageValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No file provided", resp.Error)
}

func TestFindPropertiesEndpoint_MetaReflectsFilters(t *testing.T) {
	find := &stubFindUC{result: &domain.PaginatedProperties{
		Objects: []domain.Property{{
			ID:           uuid.New(),
			Title:        "Bán căn hộ cao cấp",
			District:     "Thanh Xuân",
			DistrictSlug: "thanh-xuan",
			City:         "Hà Nội",
			PriceValue:   1500,
			AreaValue:    72,
			VipTier:      domain.VipTierDiamond,
		}},
		TotalCount: 1,
	}}
	router := newTestRouter(routerDeps{find: find})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?district=thanh-xuan&price_min=1000&price_max=3000&sort=price-desc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp FindPropertiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.ActiveFiltersCount)
	assert.Equal(t, "price-desc", resp.Meta.Sort)
	require.Len(t, resp.Meta.ActiveFilters, 2)
	assert.Equal(t, "Thanh Xuân", resp.Meta.ActiveFilters[0].Label)
	assert.Equal(t, "1 - 3 tỷ", resp.Meta.ActiveFilters[1].Label)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "1,5 tỷ", resp.Data[0].PriceLabel)
	assert.True(t, resp.Data[0].IsVip)
	assert.True(t, resp.Data[0].IsHot)

	// The handler must hand the parsed state through unchanged.
	assert.Equal(t, "thanh-xuan", find.state.District)
	require.NotNil(t, find.state.PriceMin)
	assert.EqualValues(t, 1000, *find.state.PriceMin)
}

func TestGetPropertyDetailsEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(routerDeps{details: &stubDetailsUC{err: domain.ErrPropertyNotFound}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitPropertyEndpoint_RequiresAuth(t *testing.T) {
	router := newTestRouter(routerDeps{auth: &stubAuthPort{err: errors.New("rejected")}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitPropertyEndpoint_SchemaRejectsBadPayload(t *testing.T) {
	router := newTestRouter(routerDeps{})

	// Missing the required fields.
	body := `{"title": "ok"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitPropertyEndpoint_Created(t *testing.T) {
	ownerID := uuid.New()
	submit := &stubSubmitUC{}
	router := newTestRouter(routerDeps{
		auth:   &stubAuthPort{identity: &port.Identity{ID: ownerID.String()}},
		submit: submit,
	})
	created := &domain.Property{ID: uuid.New(), Title: "Bán nhà riêng Cầu Giấy", DistrictSlug: "cau-giay"}
	submit.created = created

	body := `{
		"title": "Bán nhà riêng Cầu Giấy 45m2",
		"price": 3200,
		"area": 45,
		"district": "Cầu Giấy",
		"city": "Hà Nội",
		"propertyType": "nha-rieng"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, submit.draft)
	assert.Equal(t, ownerID, submit.draft.OwnerID)
	assert.Equal(t, "Cầu Giấy", submit.draft.District)
	assert.EqualValues(t, 3200, submit.draft.PriceValue)
}

func TestUpdatePropertyEndpoint_ForbiddenForNonOwner(t *testing.T) {
	router := newTestRouter(routerDeps{update: &stubUpdateUC{err: domain.ErrNotOwner}})

	body := `{
		"title": "Bán nhà riêng Cầu Giấy 45m2",
		"price": 3200,
		"area": 45,
		"district": "Cầu Giấy",
		"city": "Hà Nội",
		"propertyType": "nha-rieng"
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/properties/"+uuid.New().String(), strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttachPropertyImageEndpoint_DeclaredTypeFromTypeField(t *testing.T) {
	attach := &stubAttachUC{
		url:     "https://cdn.example.com/properties/x/photo",
		verdict: &domain.ImageValidationResult{Valid: true, DetectedType: "image/jpeg"},
	}
	router := newTestRouter(routerDeps{attach: attach})

	body, contentType := multipartUpload(t, "image/jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/"+uuid.New().String()+"/images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, attach.upload.HasFile)
	assert.Equal(t, "image/jpeg", attach.upload.DeclaredType)
	assert.Equal(t, "photo", attach.upload.Filename)
}

func TestAddFavoriteEndpoint(t *testing.T) {
	router := newTestRouter(routerDeps{})

	body := fmt.Sprintf(`{"propertyId": %q}`, uuid.New().String())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddFavoriteEndpoint_InvalidID(t *testing.T) {
	router := newTestRouter(routerDeps{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites", strings.NewReader(`{"propertyId": "not-a-uuid"}`))
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveFavoriteEndpoint_NoContent(t *testing.T) {
	router := newTestRouter(routerDeps{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/favorites/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDictionariesEndpoint(t *testing.T) {
	router := newTestRouter(routerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dictionaries", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, key := range []string{"districts", "propertyTypes", "legalStatuses", "interiorOptions", "directions", "sortOptions"} {
		assert.Contains(t, resp, key)
	}
}
