package carrier

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/noah-isme/backend-track/internal/extract"
)

// Profile is the process-wide immutable description of one supported carrier:
// its canonical id, the official tracking URL template and the ordered
// extraction rules for its page layout. Profiles are built once at startup
// and never mutated.
type Profile struct {
	ID          string
	urlTemplate string
	Rules       []extract.Rule
}

// TrackingURL renders the carrier's official tracking page URL with the raw
// code percent-encoded. No other validation of the code shape is performed;
// carriers accept a wide range of code formats.
func (p *Profile) TrackingURL(code string) string {
	return fmt.Sprintf(p.urlTemplate, url.QueryEscape(strings.TrimSpace(code)))
}

// Registry resolves carrier identifiers to profiles, tolerating case and
// known aliases.
type Registry struct {
	profiles map[string]*Profile
	aliases  map[string]string
}

// NewRegistry constructs the registry with every supported carrier profile.
func NewRegistry() *Registry {
	r := &Registry{
		profiles: map[string]*Profile{},
		aliases: map[string]string{
			"delta":       "delta-cargo",
			"deltacargo":  "delta-cargo",
			"dhl-express": "dhl",
			"fed-ex":      "fedex",
		},
	}
	r.register(&Profile{
		ID:          "dhl",
		urlTemplate: "https://www.dhl.com/mx-es/home/rastreo.html?tracking-id=%s",
		Rules:       dhlRules(),
	})
	r.register(&Profile{
		ID:          "fedex",
		urlTemplate: "https://www.fedex.com/fedextrack/?trknbr=%s",
		Rules:       fedexRules(),
	})
	r.register(&Profile{
		ID:          "ups",
		urlTemplate: "https://www.ups.com/track?loc=es_MX&tracknum=%s",
		Rules:       upsRules(),
	})
	r.register(&Profile{
		ID:          "delta-cargo",
		urlTemplate: "https://www.deltacargo.com/Cargo/#/track?awb=%s",
		Rules:       deltaCargoRules(),
	})
	r.register(&Profile{
		ID:          "expeditors",
		urlTemplate: "https://expo.expeditors.com/exp-tracking/?search=%s",
		Rules:       expeditorsRules(),
	})
	return r
}

func (r *Registry) register(p *Profile) {
	r.profiles[p.ID] = p
}

// Resolve looks up a carrier by id. Matching is case-insensitive and known
// aliases map onto the same profile. An unsupported id is a not-found
// outcome, never an error.
func (r *Registry) Resolve(id string) (*Profile, bool) {
	key := strings.ToLower(strings.TrimSpace(id))
	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	profile, ok := r.profiles[key]
	return profile, ok
}

// IDs returns the canonical carrier ids in stable order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
