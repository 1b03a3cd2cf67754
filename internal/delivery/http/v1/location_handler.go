package v1

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationUC domain.LocationUsecase
}

func NewLocationHandler(public *gin.RouterGroup, locationUC domain.LocationUsecase) {
	handler := &LocationHandler{locationUC: locationUC}

	public.GET("/location", handler.GetOfficeLocation)
}

// GetOfficeLocation godoc
// @Summary      Office location
// @Description  Fixed coordinate and tile settings for the contact page map.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  domain.OfficeLocation
// @Router       /location [get]
func (h *LocationHandler) GetOfficeLocation(c *gin.Context) {
	response.Data(c, http.StatusOK, h.locationUC.GetOfficeLocation(c.Request.Context()))
}
