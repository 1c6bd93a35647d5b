package extract

import "strings"

// Bilingual keyword lists mapping raw status phrases into the canonical
// vocabulary. Order matters: more specific phrases are checked before the
// generic ones they could otherwise shadow.
var statusKeywords = []struct {
	canon    Status
	keywords []string
}{
	{StatusOutForDelivery, []string{"out for delivery", "listo para entrega", "en reparto"}},
	{StatusDelivered, []string{"delivered", "entregado", "entregada"}},
	{StatusInTransit, []string{"in transit", "en tránsito", "en transito", "en camino"}},
	{StatusPickedUp, []string{"picked up", "recogido", "recolectado"}},
	{StatusDelayed, []string{"delayed", "demorado", "retrasado"}},
}

// CanonicalStatus maps a raw status phrase into the fixed vocabulary. A phrase
// that matched a status rule but contains no recognised keyword becomes
// StatusUnknown: the page reported a status, we just could not classify it.
func CanonicalStatus(raw string) Status {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	for _, entry := range statusKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.canon
			}
		}
	}
	return StatusUnknown
}
