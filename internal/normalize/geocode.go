package normalize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/netx"
)

// Place is a resolved location.
type Place struct {
	FormattedName string
	Latitude      float64
	Longitude     float64
}

// Geocoder resolves free text to a Place. Implementations return
// common.ErrLocationNotFound when nothing matches and common.ErrLookupFailure
// when the lookup itself could not be performed.
type Geocoder interface {
	Lookup(ctx context.Context, text string) (Place, error)
}

// RestCountries resolves country names against the restcountries.com v3.1 API.
type RestCountries struct {
	baseURL string
	client  *http.Client
}

func NewRestCountries(baseURL string, timeout time.Duration) *RestCountries {
	return &RestCountries{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type countryDTO struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	LatLng []float64 `json:"latlng"`
}

func (g *RestCountries) Lookup(ctx context.Context, text string) (Place, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Place{}, common.ErrLocationNotFound
	}

	var countries []countryDTO
	err := netx.GetJSON(ctx, g.client, g.baseURL+"/v3.1/name/"+url.PathEscape(text), &countries)
	if err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) && se.StatusCode >= http.StatusInternalServerError {
			return Place{}, fmt.Errorf("%w: %w", common.ErrLookupFailure, err)
		}
		if se != nil || errors.Is(err, netx.ErrDecode) {
			return Place{}, fmt.Errorf("%w: %q", common.ErrLocationNotFound, text)
		}
		return Place{}, fmt.Errorf("%w: %w", common.ErrLookupFailure, err)
	}

	if len(countries) == 0 || len(countries[0].LatLng) < 2 || countries[0].Name.Common == "" {
		return Place{}, fmt.Errorf("%w: %q", common.ErrLocationNotFound, text)
	}

	c := countries[0]
	return Place{
		FormattedName: c.Name.Common,
		Latitude:      c.LatLng[0],
		Longitude:     c.LatLng[1],
	}, nil
}

// NormalizeLocation trims text and resolves it with g. Errors that do not
// already belong to the normalization family are reported as lookup failures.
func NormalizeLocation(ctx context.Context, g Geocoder, text string) (Place, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Place{}, common.ErrLocationNotFound
	}

	p, err := g.Lookup(ctx, text)
	if err != nil {
		if errors.Is(err, common.ErrNormalization) {
			return Place{}, err
		}
		return Place{}, fmt.Errorf("%w: %w", common.ErrLookupFailure, err)
	}
	return p, nil
}
