package get_court_grid

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sessions/models"
	getCourtGrid "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_court_grid"
)

// GridResponse HTTP response model
type GridResponse struct {
	Facility    models.FacilityResponse   `json:"facility"`
	Date        string                    `json:"date"`
	Labels      []string                  `json:"labels"`
	Courts      []models.CourtRowResponse `json:"courts"`
	GeneratedAt string                    `json:"generatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCourtGrid.Response) *GridResponse {
	labels := make([]string, len(resp.Labels))
	for i, label := range resp.Labels {
		labels[i] = label.String()
	}

	courts := make([]models.CourtRowResponse, len(resp.Courts))
	for i, row := range resp.Courts {
		statuses := make([]string, len(row.Statuses))
		for j, status := range row.Statuses {
			statuses[j] = string(status)
		}
		courts[i] = models.CourtRowResponse{CourtID: row.CourtID, Statuses: statuses}
	}

	return &GridResponse{
		Facility:    models.FromDomainFacility(resp.Facility),
		Date:        resp.Date.Format(domain.DateFormat),
		Labels:      labels,
		Courts:      courts,
		GeneratedAt: resp.GeneratedAt.Format(time.RFC3339),
	}
}
