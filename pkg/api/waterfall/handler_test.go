package waterfall

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "investment_waterfall/pkg/core/waterfall"
)

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleReport(t *testing.T) {
	h := NewHandler(StandardDefaults)

	rec := postJSON(t, h.HandleReport, `{
		"sale_price": 80000000,
		"carve_out_pct": 0.10,
		"initial_investment": 10000000,
		"holding_years": 5
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 72_000_000.0, resp.Deal.NetProceeds)
	assert.True(t, resp.Deal.PreferenceBinding)
	assert.Equal(t, 20_000_000.0, resp.Deal.InvestorProceeds)
	assert.InDelta(t, 1.72, resp.Fund.MOIC, 1e-9)
	require.NotNil(t, resp.Fund.IRR)
	assert.InDelta(t, 0.1146, *resp.Fund.IRR, 1e-3)
}

func TestHandleReport_UndefinedIRRSerializesAsNull(t *testing.T) {
	h := NewHandler(StandardDefaults)

	rec := postJSON(t, h.HandleReport, `{
		"sale_price": 80000000,
		"carve_out_pct": 0.10,
		"initial_investment": 10000000,
		"holding_years": 0
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	var fund map[string]interface{}
	require.NoError(t, json.Unmarshal(raw["fund"], &fund))
	assert.Nil(t, fund["irr"], "undefined IRR must serialize as null, not a number")
}

func TestHandleReport_ValidationRejected(t *testing.T) {
	h := NewHandler(StandardDefaults)

	rec := postJSON(t, h.HandleReport, `{
		"sale_price": -5,
		"carve_out_pct": 0.10,
		"initial_investment": 10000000,
		"holding_years": 5
	}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "sale_price")
}

func TestHandleReport_BadBody(t *testing.T) {
	h := NewHandler(StandardDefaults)
	rec := postJSON(t, h.HandleReport, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReport_MethodGate(t *testing.T) {
	h := NewHandler(StandardDefaults)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HandleReport(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	rec = httptest.NewRecorder()
	h.HandleReport(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleSensitivity_DefaultsApplied(t *testing.T) {
	h := NewHandler(StandardDefaults)

	rec := postJSON(t, h.HandleSensitivity, `{
		"carve_out_pct": 0.10,
		"initial_investment": 10000000,
		"holding_years": 5
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var points []core.SensitivityPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, StandardDefaults.SensitivitySteps)
	assert.Equal(t, StandardDefaults.SensitivityLow, points[0].SalePrice)
	assert.Equal(t, StandardDefaults.SensitivityHigh, points[len(points)-1].SalePrice)
}

func TestHandleSensitivity_ExplicitRange(t *testing.T) {
	h := NewHandler(StandardDefaults)

	rec := postJSON(t, h.HandleSensitivity, `{
		"carve_out_pct": 0.10,
		"initial_investment": 10000000,
		"holding_years": 5,
		"price_low": 100000000,
		"price_high": 200000000,
		"steps": 3
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var points []core.SensitivityPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 3)
	assert.Equal(t, 150_000_000.0, points[1].SalePrice)
}

func TestHandleThresholds(t *testing.T) {
	h := NewHandler(StandardDefaults)

	rec := postJSON(t, h.HandleThresholds, `{
		"carve_out_pct": 0.10,
		"initial_investment": 10000000,
		"holding_years": 5,
		"targets": [3.0, 20.0]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []core.ThresholdRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.False(t, rows[0].Unreachable)
	assert.InDelta(t, 320_000_000, rows[0].RequiredSalePrice, 2)
	assert.True(t, rows[1].Unreachable, "20x should be unreachable below the 1000M ceiling")
}
