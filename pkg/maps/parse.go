package maps

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bentolink/bentolink-backend/pkg/types"
)

// ErrNoCoordinates signals a map URL that carries no extractable lat/lng pair.
var ErrNoCoordinates = errors.New("map url has no coordinates")

// ParseLatLng extracts a coordinate pair from Google Maps, OpenStreetMap, and
// Apple Maps share URLs. Anything else fails with ErrNoCoordinates.
func ParseLatLng(rawURL string) (*types.LatLng, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, ErrNoCoordinates
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parsing map url: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	query := parsed.Query()

	switch {
	case strings.Contains(host, "openstreetmap.org"):
		if ll := coordsFromPair(query.Get("mlat"), query.Get("mlon")); ll != nil {
			return ll, nil
		}
		// Fragment form: #map=zoom/lat/lon
		if frag, ok := strings.CutPrefix(parsed.Fragment, "map="); ok {
			parts := strings.Split(frag, "/")
			if len(parts) == 3 {
				if ll := coordsFromPair(parts[1], parts[2]); ll != nil {
					return ll, nil
				}
			}
		}

	case strings.Contains(host, "maps.apple.com"):
		if ll := coordsFromCSV(query.Get("ll")); ll != nil {
			return ll, nil
		}
		if ll := coordsFromCSV(query.Get("q")); ll != nil {
			return ll, nil
		}

	default:
		// Google Maps places coordinates in the path as /@lat,lng,zoom.
		if at := strings.Index(parsed.Path, "@"); at >= 0 {
			rest := parsed.Path[at+1:]
			if slash := strings.Index(rest, "/"); slash >= 0 {
				rest = rest[:slash]
			}
			if ll := coordsFromCSV(rest); ll != nil {
				return ll, nil
			}
		}
		if ll := coordsFromCSV(query.Get("q")); ll != nil {
			return ll, nil
		}
		if ll := coordsFromCSV(query.Get("query")); ll != nil {
			return ll, nil
		}
	}

	return nil, ErrNoCoordinates
}

// StaticPreviewURL returns the OpenStreetMap embed URL used to render a map
// preview without any API key.
func StaticPreviewURL(ll types.LatLng, zoom int) string {
	if zoom <= 0 || zoom > 19 {
		zoom = 14
	}
	span := 0.02
	bbox := fmt.Sprintf("%f,%f,%f,%f", ll.Lng-span, ll.Lat-span, ll.Lng+span, ll.Lat+span)
	return fmt.Sprintf(
		"https://www.openstreetmap.org/export/embed.html?bbox=%s&layer=mapnik&marker=%f,%f",
		url.QueryEscape(bbox), ll.Lat, ll.Lng,
	)
}

func coordsFromCSV(value string) *types.LatLng {
	parts := strings.SplitN(strings.TrimSpace(value), ",", 3)
	if len(parts) < 2 {
		return nil
	}
	return coordsFromPair(parts[0], parts[1])
}

func coordsFromPair(latRaw, lngRaw string) *types.LatLng {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &types.LatLng{Lat: lat, Lng: lng}
}
