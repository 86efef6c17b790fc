package backofficeserver

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	analyticsmapper "github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/http/mapper"
	analyticsdomain "github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	analyticsports "github.com/Apurer/shop-backoffice/internal/domains/analytics/ports"
)

// ContentTypeXLSX is the media type of spreadsheet exports.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsAPI serves the dashboard and revenue reports.
type AnalyticsAPI struct {
	service analyticsports.Service
	owner   int64
	now     func() time.Time
}

func NewAnalyticsAPI(service analyticsports.Service, owner int64, now func() time.Time) AnalyticsAPI {
	if now == nil {
		now = time.Now
	}
	return AnalyticsAPI{service: service, owner: owner, now: now}
}

// Get /api/analytics/dashboard
func (api *AnalyticsAPI) Dashboard(c *gin.Context) {
	now := api.now()
	dashboard, err := api.service.Dashboard(c.Request.Context(), api.owner, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyticsmapper.FromDashboard(dashboard, now))
}

// Get /api/analytics/product-revenue
func (api *AnalyticsAPI) ProductRevenue(c *gin.Context) {
	window, ok := parseWindow(c)
	if !ok {
		return
	}
	rows, err := api.service.ProductRevenue(c.Request.Context(), api.owner, window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyticsmapper.FromProductRevenue(rows))
}

// Get /api/analytics/product-revenue/export
func (api *AnalyticsAPI) ExportProductRevenue(c *gin.Context) {
	window, ok := parseWindow(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := api.service.ExportProductRevenue(c.Request.Context(), api.owner, window, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="product-revenue.xlsx"`)
	c.Data(http.StatusOK, ContentTypeXLSX, buf.Bytes())
}

// parseWindow reads the optional startDate and endDate query parameters. Both bounds are
// inclusive; a bare date means midnight UTC of that day.
func parseWindow(c *gin.Context) (analyticsdomain.Window, bool) {
	var w analyticsdomain.Window
	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{{"startDate", &w.Start}, {"endDate", &w.End}} {
		raw := strings.TrimSpace(c.Query(bound.name))
		if raw == "" {
			continue
		}
		t, err := parseTime(raw)
		if err != nil {
			respondBadRequest(c, fmt.Errorf("%s: %w", bound.name, err))
			return analyticsdomain.Window{}, false
		}
		*bound.dst = &t
	}
	return w, true
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 timestamp or YYYY-MM-DD date, got %q", raw)
	}
	return t, nil
}
