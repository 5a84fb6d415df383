package recommend

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"HDDPull/internal/calc/hdd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoilFriction(t *testing.T) {
	tests := []struct {
		soil     hdd.SoilType
		crossing hdd.CrossingType
		want     float64
		notes    int
	}{
		{hdd.SoilClay, hdd.CrossingStandard, 0.25, 1},
		{hdd.SoilSand, hdd.CrossingRiver, 0.35, 3},
		{hdd.SoilGravel, hdd.CrossingRoad, 0.45, 3},
		{hdd.SoilRock, "", 0.55, 1},
	}
	for _, tc := range tests {
		got, err := SoilFriction(SoilRecommendInput{SoilType: tc.soil, CrossingType: tc.crossing})
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.SoilFriction, tc.soil)
		assert.Len(t, got.Notes, tc.notes, tc.soil)
		assert.LessOrEqual(t, got.Range.Min, got.SoilFriction)
		assert.GreaterOrEqual(t, got.Range.Max, got.SoilFriction)
	}

	_, err := SoilFriction(SoilRecommendInput{SoilType: "Peat"})
	assert.Error(t, err)
}

func TestHandlerSoil(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).Soil(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"soil_type":"Sand","crossing_type":"River"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"soil_friction":0.35`)

	rec = httptest.NewRecorder()
	(&Handler{}).Soil(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"soil_type":"Peat"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
