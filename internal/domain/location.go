package domain

import "context"

// OfficeLocation is what the contact page map needs to place its marker.
type OfficeLocation struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Zoom            int     `json:"zoom"`
	Label           string  `json:"label"`
	PopupTitle      string  `json:"popup_title"`
	PopupText       string  `json:"popup_text"`
	TileURL         string  `json:"tile_url"`
	TileAttribution string  `json:"tile_attribution"`
	GoogleMapsURL   string  `json:"google_maps_url"`
}

type LocationUsecase interface {
	GetOfficeLocation(ctx context.Context) OfficeLocation
}
