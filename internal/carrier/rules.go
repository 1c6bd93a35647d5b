package carrier

import (
	"regexp"

	"github.com/noah-isme/backend-track/internal/extract"
)

// Pattern fragment matching any date shape the locale parser recognises:
// numeric day-first, Spanish word months and English word months. Kept as a
// single capture group so it is always the final group of a candidate.
const datePat = `(\d{1,2}/\d{1,2}/\d{2,4}` +
	`|\d{1,2}(?:\s+de)?\s+[A-Za-zÁÉÍÓÚÑáéíóúñ.]+(?:\s+de)?,?\s+\d{2,4}` +
	`|[A-Za-zÁÉÍÓÚÑáéíóúñ.]{3,}\s+\d{1,2},?\s+\d{4})`

// Loose keyword fallback shared by every carrier's status rule. The labeled
// candidates run first; this one only fires when a page drops the label.
const statusKeywordPat = `(?i)\b(entregado|entregada|en tr[aá]nsito|en camino|en reparto` +
	`|listo para entrega|recogido|recolectado|demorado|retrasado` +
	`|delivered|in transit|out for delivery|picked up|delayed)\b`

func rule(field extract.Field, kind extract.Kind, patterns ...string) extract.Rule {
	candidates := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		candidates = append(candidates, regexp.MustCompile(pattern))
	}
	return extract.Rule{Field: field, Kind: kind, Candidates: candidates}
}

func dhlRules() []extract.Rule {
	return []extract.Rule{
		rule(extract.FieldStatus, extract.KindStatus,
			`(?i)(estado del env[ií]o|estado|delivery status|status)\s*:\s*([^\n]+)`,
			`(?m)^(Entregado|En camino|En reparto|Recogido|Demorado|Delivered|In transit|Out for delivery|Picked up|Delayed)\b`,
			statusKeywordPat,
		),
		rule(extract.FieldETA, extract.KindDate,
			`(?i)(entrega estimada|fecha estimada de entrega|entrega prevista|estimated delivery(?: date)?)\s*:?\s*`+datePat,
		),
		rule(extract.FieldDeliveredAt, extract.KindDate,
			`(?i)(entregado el|fecha de entrega|delivered on|delivery date)\s*:?\s*`+datePat,
		),
		rule(extract.FieldSignedBy, extract.KindText,
			`(?i)(firmado por|recibido por|signed by|received by)\s*:?\s*([A-Za-zÁÉÍÓÚÑáéíóúñ][A-Za-zÁÉÍÓÚÑáéíóúñ .'-]*)`,
		),
		rule(extract.FieldOrigin, extract.KindText,
			`(?i)\b(origen|origin)\s*:\s*([^\n]+)`,
		),
		// DHL renders an all-caps route banner. The delivered-state banner
		// outranks the in-transit banner when both are on the page.
		rule(extract.FieldDestination, extract.KindText,
			`(?m)^ENTREGADO[ -]+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ .,-]{2,})$`,
			`(?m)^EN CAMINO (?:A|HACIA)\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ .,-]{2,})$`,
			`(?i)\b(destino|destination)\s*:\s*([^\n]+)`,
		),
	}
}

func fedexRules() []extract.Rule {
	return []extract.Rule{
		rule(extract.FieldStatus, extract.KindStatus,
			`(?i)(estado de la entrega|delivery status)\s*:?\s*([^\n]+)`,
			statusKeywordPat,
		),
		rule(extract.FieldETA, extract.KindDate,
			`(?i)(entrega estimada|entrega prevista|estimated delivery(?: date)?)\s*:?\s*`+datePat,
		),
		rule(extract.FieldDeliveredAt, extract.KindDate,
			`(?i)(entregado el|se entreg[oó] el|delivered on|delivered)\s*:?\s*`+datePat,
		),
		rule(extract.FieldSignedBy, extract.KindText,
			`(?i)(firmado por|signed for by|signed by)\s*:?\s*([A-Za-zÁÉÍÓÚÑáéíóúñ][A-Za-zÁÉÍÓÚÑáéíóúñ .'-]*)`,
		),
		rule(extract.FieldOrigin, extract.KindText,
			`(?i)\b(de|origen|from)\s*:\s*([^\n]+)`,
		),
		rule(extract.FieldDestination, extract.KindText,
			`(?i)\b(para|destino|to)\s*:\s*([^\n]+)`,
		),
	}
}

func upsRules() []extract.Rule {
	return []extract.Rule{
		rule(extract.FieldStatus, extract.KindStatus,
			`(?i)(estado|status)\s*:\s*([^\n]+)`,
			`(?m)^(Entregado|En camino|En tr[aá]nsito|Delivered|On the way|In transit|Out for delivery)\b`,
			statusKeywordPat,
		),
		rule(extract.FieldETA, extract.KindDate,
			`(?i)(fecha de entrega estimada|entrega estimada|estimated delivery|scheduled delivery)\s*:?\s*`+datePat,
		),
		rule(extract.FieldDeliveredAt, extract.KindDate,
			`(?i)(entregado el|delivered on)\s*:?\s*`+datePat,
		),
		rule(extract.FieldSignedBy, extract.KindText,
			`(?i)(recibido por|firmado por|received by|signed by)\s*:?\s*([A-Za-zÁÉÍÓÚÑáéíóúñ][A-Za-zÁÉÍÓÚÑáéíóúñ .'-]*)`,
		),
		rule(extract.FieldOrigin, extract.KindText,
			`(?i)\b(origen|origin|shipped from)\s*:?\s*([^\n]+)`,
		),
		rule(extract.FieldDestination, extract.KindText,
			`(?i)(entregado en|delivered to)\s*:?\s*([^\n]+)`,
			`(?i)\b(destino|destination)\s*:\s*([^\n]+)`,
		),
	}
}

func deltaCargoRules() []extract.Rule {
	return []extract.Rule{
		rule(extract.FieldStatus, extract.KindStatus,
			`(?i)(shipment status|estado del embarque|estado)\s*:?\s*([^\n]+)`,
			statusKeywordPat,
		),
		rule(extract.FieldETA, extract.KindDate,
			`(?i)(estimated (?:time of )?arrival|eta|llegada estimada)\s*:?\s*`+datePat,
		),
		rule(extract.FieldDeliveredAt, extract.KindDate,
			`(?i)(delivered on|arrived on|entregado el|lleg[oó] el)\s*:?\s*`+datePat,
		),
		rule(extract.FieldSignedBy, extract.KindText,
			`(?i)(signed by|received by|recibido por)\s*:?\s*([A-Za-zÁÉÍÓÚÑáéíóúñ][A-Za-zÁÉÍÓÚÑáéíóúñ .'-]*)`,
		),
		// Air waybill pages identify stations by IATA code first.
		rule(extract.FieldOrigin, extract.KindText,
			`(?i)\b(origin|origen)\s*:?\s*([A-Z]{3})\b`,
			`(?i)\b(origin|origen)\s*:\s*([^\n]+)`,
		),
		rule(extract.FieldDestination, extract.KindText,
			`(?i)\b(destination|destino)\s*:?\s*([A-Z]{3})\b`,
			`(?i)\b(destination|destino)\s*:\s*([^\n]+)`,
		),
	}
}

func expeditorsRules() []extract.Rule {
	return []extract.Rule{
		rule(extract.FieldStatus, extract.KindStatus,
			`(?i)(shipment status|current status|estado)\s*:?\s*([^\n]+)`,
			statusKeywordPat,
		),
		rule(extract.FieldETA, extract.KindDate,
			`(?i)(estimated arrival|estimated delivery|llegada estimada)\s*:?\s*`+datePat,
		),
		rule(extract.FieldDeliveredAt, extract.KindDate,
			`(?i)(delivered(?: on)?|entregado el)\s*:?\s*`+datePat,
		),
		rule(extract.FieldSignedBy, extract.KindText,
			`(?i)(signed by|received by|proof of delivery)\s*:?\s*([A-Za-zÁÉÍÓÚÑáéíóúñ][A-Za-zÁÉÍÓÚÑáéíóúñ .'-]*)`,
		),
		rule(extract.FieldOrigin, extract.KindText,
			`(?i)\b(origin|origen)\s*:\s*([^\n]+)`,
		),
		rule(extract.FieldDestination, extract.KindText,
			`(?i)\b(destination|destino)\s*:\s*([^\n]+)`,
		),
	}
}
