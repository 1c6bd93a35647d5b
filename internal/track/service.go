package track

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-track/internal/carrier"
	"github.com/noah-isme/backend-track/internal/extract"
	"github.com/noah-isme/backend-track/internal/obs"
)

var (
	// ErrMissingParams is returned when carrier or code is absent. A client
	// error, distinct from a null result.
	ErrMissingParams = errors.New("carrier and code are required")
	// ErrCarrierNotSupported is returned for carrier ids with no profile.
	// Distinguishable from "supported carrier, extraction found nothing".
	ErrCarrierNotSupported = errors.New("carrier not supported")
)

// Result is the normalized tracking snapshot returned to callers. Every field
// except Carrier and Code is independently optional; a result carrying only
// OfficialURL is the expected shape whenever scraping is disabled or fails.
type Result struct {
	Carrier     string          `json:"carrier"`
	Code        string          `json:"code"`
	OfficialURL *string         `json:"officialUrl"`
	Status      *extract.Status `json:"status"`
	ETA         *string         `json:"eta"`
	DeliveredAt *string         `json:"deliveredAt"`
	SignedBy    *string         `json:"signedBy"`
	Origin      *string         `json:"origin"`
	Destination *string         `json:"destination"`
	Title       *string         `json:"title"`
}

// Service orchestrates one tracking lookup: registry resolve, cache check,
// page fetch, normalization, extraction, cache write. Requests are stateless
// relative to each other; the cache is the only shared resource. Concurrent
// identical lookups may fetch twice, which costs a duplicated page load and
// nothing else, so there is no single-flight de-duplication.
type Service struct {
	Registry      *carrier.Registry
	Cache         *Cache
	Fetcher       PageFetcher
	ScrapeEnabled bool
	Log           zerolog.Logger
}

// Track resolves a carrier/code pair into a Result. Scrape failures never
// surface as request failures: every downstream fault degrades to a
// link-only result.
func (s *Service) Track(ctx context.Context, carrierID, code string) (Result, error) {
	carrierID = strings.TrimSpace(carrierID)
	code = strings.TrimSpace(code)
	if carrierID == "" || code == "" {
		return Result{}, ErrMissingParams
	}

	profile, ok := s.Registry.Resolve(carrierID)
	if !ok {
		obs.ObserveTrackRequest(strings.ToLower(carrierID), "unsupported")
		return Result{Carrier: strings.ToLower(carrierID), Code: code}, ErrCarrierNotSupported
	}

	official := profile.TrackingURL(code)
	result := Result{Carrier: profile.ID, Code: code, OfficialURL: &official}

	key := CacheKey(profile.ID, code)
	if s.Cache != nil {
		var cached Result
		found, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			s.Log.Warn().Err(err).Str("carrier", profile.ID).Msg("cache lookup failed")
		}
		if found {
			// The URL template may have changed since the entry was written,
			// so the official URL is recomputed rather than trusted.
			cached.Carrier = profile.ID
			cached.Code = code
			cached.OfficialURL = &official
			obs.ObserveCacheLookup("hit")
			obs.ObserveTrackRequest(profile.ID, "cache_hit")
			return cached, nil
		}
		obs.ObserveCacheLookup("miss")
	}

	if !s.ScrapeEnabled || s.Fetcher == nil {
		obs.ObserveTrackRequest(profile.ID, "link_only")
		return result, nil
	}

	start := time.Now()
	page, err := s.Fetcher.Fetch(ctx, official)
	obs.ObserveScrapeDuration(profile.ID, time.Since(start))
	if err != nil {
		s.Log.Warn().Err(err).Str("carrier", profile.ID).Str("code", code).Msg("tracking page fetch failed")
		obs.ObserveScrapeFailure(profile.ID)
		obs.ObserveTrackRequest(profile.ID, "link_only")
		return result, nil
	}

	fields := extract.Extract(profile.Rules, extract.Normalize(page.Body))
	result.Status = fields.Status
	result.ETA = fields.ETA
	result.DeliveredAt = fields.DeliveredAt
	result.SignedBy = fields.SignedBy
	result.Origin = fields.Origin
	result.Destination = fields.Destination
	if title := strings.TrimSpace(page.Title); title != "" {
		result.Title = &title
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, key, result); err != nil {
			s.Log.Warn().Err(err).Str("carrier", profile.ID).Msg("cache write failed")
		}
	}
	obs.ObserveTrackRequest(profile.ID, "scraped")
	return result, nil
}
