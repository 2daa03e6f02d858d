package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	companyapp "github.com/cajachica/backend/internal/application/company"
	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCompanyFixture(t *testing.T) (*gin.Engine, *MockCompanyRepository) {
	t.Helper()
	repo := new(MockCompanyRepository)
	service := companyapp.NewService(repo, shared.NewInProcessEventBus())
	engine := newTestEngine(t, NewCompanyHandler(service))
	return engine, repo
}

func companyRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, "/api/v1"+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCompanyHandler_Create(t *testing.T) {
	engine, repo := newCompanyFixture(t)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*company.Company")).Return(nil)

	req := companyRequest(t, http.MethodPost, "/companies", gin.H{
		"name":          "Inversiones del Sur SAC",
		"report_prefix": "INV",
	})
	rec := doRequest(engine, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec.Body)
	var created CompanyResponse
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Inversiones del Sur SAC", created.Name)
	assert.Equal(t, "INV", created.ReportPrefix)
	assert.Equal(t, 0, created.ReportSequence)
	assert.Equal(t, string(company.CompanyStatusActive), created.Status)
	repo.AssertExpectations(t)
}

func TestCompanyHandler_CreateRequiresName(t *testing.T) {
	engine, repo := newCompanyFixture(t)

	req := companyRequest(t, http.MethodPost, "/companies", gin.H{"report_prefix": "INV"})
	rec := doRequest(engine, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompanyHandler_GetNotFound(t *testing.T) {
	engine, repo := newCompanyFixture(t)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	req := companyRequest(t, http.MethodGet, "/companies/"+id.String(), nil)
	rec := doRequest(engine, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestCompanyHandler_GetRejectsMalformedID(t *testing.T) {
	engine, _ := newCompanyFixture(t)

	req := companyRequest(t, http.MethodGet, "/companies/not-a-uuid", nil)
	rec := doRequest(engine, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanyHandler_ListWithMeta(t *testing.T) {
	engine, repo := newCompanyFixture(t)

	first, err := company.NewCompany("Alfa SAC")
	require.NoError(t, err)
	second, err := company.NewCompany("Beta EIRL")
	require.NoError(t, err)

	repo.On("FindAll", mock.Anything, mock.Anything).Return([]company.Company{*first, *second}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(41), nil)

	req := companyRequest(t, http.MethodGet, "/companies?page=1&page_size=20", nil)
	rec := doRequest(engine, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    []CompanyResponse
		Meta    struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestCompanyHandler_UpdateVersionConflict(t *testing.T) {
	engine, repo := newCompanyFixture(t)

	c, err := company.NewCompany("Alfa SAC")
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, c.GetID()).Return(c, nil)
	repo.On("SaveWithLock", mock.Anything, mock.Anything).
		Return(shared.NewDomainError("VERSION_CONFLICT", "Company was modified concurrently"))

	req := companyRequest(t, http.MethodPut, "/companies/"+c.GetID().String(), gin.H{
		"name":          "Alfa Renovada SAC",
		"report_prefix": "ALF",
	})
	rec := doRequest(engine, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VERSION_CONFLICT", resp.Error.Code)
}

func TestCompanyHandler_DeactivateThenDelete(t *testing.T) {
	engine, repo := newCompanyFixture(t)

	c, err := company.NewCompany("Alfa SAC")
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, c.GetID()).Return(c, nil)
	repo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, c.GetID()).Return(nil)

	rec := doRequest(engine, companyRequest(t, http.MethodPost, "/companies/"+c.GetID().String()+"/deactivate", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec.Body)
	var updated CompanyResponse
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, string(company.CompanyStatusInactive), updated.Status)

	rec = doRequest(engine, companyRequest(t, http.MethodDelete, "/companies/"+c.GetID().String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertCalled(t, "Delete", mock.Anything, c.GetID())
}
