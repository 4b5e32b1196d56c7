package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reglens-inc/reglens-engine/pkg/catalog"
)

func newStandardsHandler(t *testing.T) *StandardsHandler {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return NewStandardsHandler(cat, zap.NewNop())
}

func TestStandardsHandler_List(t *testing.T) {
	handler := newStandardsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/standards", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)

	dataBytes, err := json.Marshal(response.Data)
	require.NoError(t, err)

	var list StandardListResponse
	require.NoError(t, json.Unmarshal(dataBytes, &list))
	assert.Equal(t, 3, list.Total)
	require.Len(t, list.Standards, 3)
	assert.Equal(t, catalog.StandardFDAQSR, list.Standards[0].ID)
}

func TestStandardsHandler_Get(t *testing.T) {
	handler := newStandardsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/standards/iso-13485", nil)
	req.SetPathValue("id", "iso-13485")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)
}

func TestStandardsHandler_Get_NotFound(t *testing.T) {
	handler := newStandardsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/standards/iec-62304", nil)
	req.SetPathValue("id", "iec-62304")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var response ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.False(t, response.Success)
	assert.Equal(t, "standard_not_found", response.Error)
}

func TestStandardsHandler_Search(t *testing.T) {
	handler := newStandardsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/standards/search?q=design", nil)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)

	dataBytes, err := json.Marshal(response.Data)
	require.NoError(t, err)

	var list StandardListResponse
	require.NoError(t, json.Unmarshal(dataBytes, &list))
	assert.NotEmpty(t, list.Standards)
	assert.Equal(t, len(list.Standards), list.Total)
}

// An empty query is an empty result, not the whole catalog.
func TestStandardsHandler_Search_EmptyQuery(t *testing.T) {
	handler := newStandardsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/standards/search", nil)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response ApiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)

	dataBytes, err := json.Marshal(response.Data)
	require.NoError(t, err)

	var list StandardListResponse
	require.NoError(t, json.Unmarshal(dataBytes, &list))
	assert.Equal(t, 0, list.Total)
	assert.NotNil(t, list.Standards)
	assert.Empty(t, list.Standards)
}
