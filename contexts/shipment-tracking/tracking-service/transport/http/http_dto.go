package httptransport

type TrackingEventDTO struct {
	Status    string `json:"status"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
	Note      string `json:"note,omitempty"`
}

type ShipmentDTO struct {
	TrackingNumber string             `json:"tracking_number"`
	Origin         string             `json:"origin"`
	Destination    string             `json:"destination"`
	Recipient      string             `json:"recipient,omitempty"`
	CreatedAt      string             `json:"created_at"`
	Events         []TrackingEventDTO `json:"events"`
}

type CreateShipmentRequest struct {
	TrackingNumber string `json:"tracking_number,omitempty"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Recipient      string `json:"recipient,omitempty"`
}

type CreateShipmentResponse struct {
	Item ShipmentDTO `json:"item"`
}

type AddTrackingEventRequest struct {
	Status    string `json:"status"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Note      string `json:"note,omitempty"`
}

type GenerateTrackingNumberResponse struct {
	TrackingNumber string `json:"tracking_number"`
}

type GetShipmentResponse struct {
	Item ShipmentDTO `json:"item"`
}

type LatestTrackingEventResponse struct {
	Item TrackingEventDTO `json:"item"`
}

type ListShipmentsResponse struct {
	Items []ShipmentDTO `json:"items"`
}

type SeedShipmentsResponse struct {
	TrackingNumbers []string `json:"tracking_numbers"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
