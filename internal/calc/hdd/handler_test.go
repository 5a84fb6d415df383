package hdd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func postJSON(t *testing.T, h http.HandlerFunc, v any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{}
	rec := postJSON(t, h.Calc, Request{Pipe: referencePipe(), Path: referencePath()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InEpsilon(t, 80.8, resp.Result.EstimatedPullForceKN, 0.05)
	assert.Len(t, resp.Profile, 51)
	assert.Equal(t, "Entry", resp.Profile[0].Label)
}

func TestHandlerCalc_ValidationBody(t *testing.T) {
	h := &Handler{}
	pipe := referencePipe()
	pipe.SDR = 0.5
	rec := postJSON(t, h.Calc, Request{Pipe: pipe, Path: referencePath()})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string       `json:"error"`
		Fields []FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "sdr", body.Fields[0].Field)
}

func TestHandlerCalc_BadPayload(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerProfile(t *testing.T) {
	h := &Handler{}
	rec := postJSON(t, h.Profile, ProfileRequest{TotalLengthM: 200, DepthM: 10, EntryAngleDeg: 12, ExitAngleDeg: 10})
	require.Equal(t, http.StatusOK, rec.Code)

	var pts []ProfilePoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pts))
	assert.Len(t, pts, 51)

	rec = postJSON(t, h.Profile, ProfileRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerProfile_ReportsEachBadField(t *testing.T) {
	h := &Handler{}
	rec := postJSON(t, h.Profile, ProfileRequest{TotalLengthM: 200, DepthM: 10, EntryAngleDeg: 120, ExitAngleDeg: -5})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Fields []FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"entry_angle_deg", "exit_angle_deg"}, fieldNames(body.Fields))

	err := ProfileRequest{TotalLengthM: 200, DepthM: math.Inf(-1)}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"depth_m"}, fieldNames(verr.Fields))
}

func TestHandlerCalc_OverflowIsRejected(t *testing.T) {
	h := &Handler{}
	path := referencePath()
	path.SoilFriction = 500
	path.EntryAngleDeg = 90
	rec := postJSON(t, h.Calc, Request{Pipe: referencePipe(), Path: path})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Fields []FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, fieldNames(body.Fields), "soil_friction")
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, zap.NewNop(), math.Inf(1))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlerCatalog(t *testing.T) {
	c := DefaultConstants()
	c.ReamingRatio = 1.3
	calc, err := NewCalculator(c)
	require.NoError(t, err)
	h := &Handler{Calculator: calc}

	rec := httptest.NewRecorder()
	h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var cat Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
	assert.Equal(t, SDRCatalog, cat.SDR)
	assert.Len(t, cat.Soils, 4)
	assert.Equal(t, 1.3, cat.Constants.ReamingRatio)
}
