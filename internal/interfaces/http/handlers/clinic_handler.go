package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shallyquinn/Chatbot/internal/domain/clinic"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
)

// ClinicHandler serves clinic directory lookups.
type ClinicHandler struct {
	directory *clinic.Directory
	metrics   *prometheus.AppMetrics
}

// NewClinicHandler builds a ClinicHandler.  metrics may be nil.
func NewClinicHandler(directory *clinic.Directory, metrics *prometheus.AppMetrics) *ClinicHandler {
	return &ClinicHandler{directory: directory, metrics: metrics}
}

// ClinicsResponse is the body of GET /api/v1/clinics.
type ClinicsResponse struct {
	Clinics      []clinic.Record `json:"clinics"`
	ReferralText string          `json:"referral_text"`
	Degraded     bool            `json:"degraded,omitempty"`
}

// Clinics looks up clinics by exact (area, locality).  An empty list is a
// valid 200 response.
func (h *ClinicHandler) Clinics(c *gin.Context) {
	area := strings.TrimSpace(c.Query("area"))
	locality := strings.TrimSpace(c.Query("locality"))
	if area == "" {
		badRequest(c, "area query parameter is required")
		return
	}
	if locality == "" {
		badRequest(c, "locality query parameter is required")
		return
	}

	records := h.directory.FindClinics(area, locality)
	if h.metrics != nil {
		prometheus.RecordClinicLookup(h.metrics, "clinics", len(records) > 0)
	}

	c.JSON(http.StatusOK, ClinicsResponse{
		Clinics:      records,
		ReferralText: clinic.ReferralText(records),
		Degraded:     !h.directory.Loaded(),
	})
}

// LocalitiesResponse is the body of GET /api/v1/localities.
type LocalitiesResponse struct {
	Localities     []string `json:"localities"`
	LocalitiesText string   `json:"localities_text"`
	Degraded       bool     `json:"degraded,omitempty"`
}

// Localities lists the distinct localities for an area, sorted ascending.
func (h *ClinicHandler) Localities(c *gin.Context) {
	area := strings.TrimSpace(c.Query("area"))
	if area == "" {
		badRequest(c, "area query parameter is required")
		return
	}

	localities := h.directory.Localities(area)
	if h.metrics != nil {
		prometheus.RecordClinicLookup(h.metrics, "localities", len(localities) > 0)
	}

	c.JSON(http.StatusOK, LocalitiesResponse{
		Localities:     localities,
		LocalitiesText: clinic.NumberedList(localities),
		Degraded:       !h.directory.Loaded(),
	})
}
