package extract

// Field identifies one output slot of the extraction engine.
type Field string

const (
	FieldStatus      Field = "status"
	FieldETA         Field = "eta"
	FieldDeliveredAt Field = "deliveredAt"
	FieldSignedBy    Field = "signedBy"
	FieldOrigin      Field = "origin"
	FieldDestination Field = "destination"
)

// Status is the canonical vocabulary every carrier-specific status phrase is
// mapped into. StatusUnknown means a status phrase was present on the page but
// did not map cleanly; a nil Status pointer means no status information at all.
type Status string

const (
	StatusDelivered      Status = "delivered"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusInTransit      Status = "in_transit"
	StatusPickedUp       Status = "picked_up"
	StatusDelayed        Status = "delayed"
	StatusUnknown        Status = "unknown"
)

// Result holds the fields recovered from one tracking page. Fields are
// independently optional; a nil pointer means the page carried no
// recognisable value for that field.
type Result struct {
	Status      *Status `json:"status"`
	ETA         *string `json:"eta"`
	DeliveredAt *string `json:"deliveredAt"`
	SignedBy    *string `json:"signedBy"`
	Origin      *string `json:"origin"`
	Destination *string `json:"destination"`
}
