package usecase

import (
	"context"
	"fmt"
	"strings"

	"portfolio-backend/internal/domain"
)

const (
	officeMapZoom     = 14
	osmTileURL        = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	osmAttribution    = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	googleMapsSearch  = "https://www.google.com/maps/search/?api=1&query=%g,%g"
	officePopupText   = "Available for meetings"
	officePopupSuffix = "'s Office"
)

type locationUsecase struct {
	location domain.OfficeLocation
}

// NewLocationUsecase fixes the office marker shown on the contact map.
func NewLocationUsecase(ownerName, label string, lat, lng float64) domain.LocationUsecase {
	return &locationUsecase{
		location: domain.OfficeLocation{
			Latitude:        lat,
			Longitude:       lng,
			Zoom:            officeMapZoom,
			Label:           label,
			PopupTitle:      popupTitle(ownerName),
			PopupText:       officePopupText,
			TileURL:         osmTileURL,
			TileAttribution: osmAttribution,
			GoogleMapsURL:   fmt.Sprintf(googleMapsSearch, lat, lng),
		},
	}
}

func (u *locationUsecase) GetOfficeLocation(ctx context.Context) domain.OfficeLocation {
	return u.location
}

func popupTitle(ownerName string) string {
	parts := strings.Fields(ownerName)
	if len(parts) == 0 {
		return "Office"
	}
	return parts[0] + officePopupSuffix
}
