package maps

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
)

// RouteDetails is the distance and fuel estimate for a trip between two
// coordinate pairs. The zero value means "no estimate available".
type RouteDetails struct {
	Distance float64 // kilometers
	Fuel     float64 // liters
}

// Service computes route details via the Routes API. The call is best
// effort: any transport failure, error status, or malformed response
// yields a zero-valued RouteDetails, never an error.
type Service interface {
	GetRouteDetails(ctx context.Context, slat, slong, dlat, dlong string) RouteDetails
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	http     *resty.Client
	endpoint string
	apiKey   string
}

// NewService wires a Routes API client against the given hostname. A
// hostname carrying an explicit scheme is used as-is.
func NewService(client *resty.Client, hostname, apiKey string) *ServiceImpl {
	client.SetTimeout(time.Second)
	base := hostname
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &ServiceImpl{
		http:     client,
		endpoint: base + "/directions/v2:computeRoutes",
		apiKey:   apiKey,
	}
}

const fieldMask = "routes.distanceMeters,routes.duration,routes.routeLabels,routes.routeToken,routes.travelAdvisory.fuelConsumptionMicroliters"

type latLng struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type computeRoutesRequest struct {
	Origin            waypoint `json:"origin"`
	Destination       waypoint `json:"destination"`
	RouteModifiers    any      `json:"routeModifiers"`
	TravelMode        string   `json:"travelMode"`
	RoutingPreference string   `json:"routingPreference"`
	ExtraComputations []string `json:"extraComputations"`
}

type computeRoutesResponse struct {
	Routes []struct {
		DistanceMeters int64 `json:"distanceMeters"`
		TravelAdvisory struct {
			FuelConsumptionMicroliters string `json:"fuelConsumptionMicroliters"`
		} `json:"travelAdvisory"`
	} `json:"routes"`
}

func (s *ServiceImpl) GetRouteDetails(ctx context.Context, slat, slong, dlat, dlong string) RouteDetails {
	body := computeRoutesRequest{
		RouteModifiers: map[string]any{
			"vehicleInfo": map[string]string{"emissionType": "GASOLINE"},
		},
		TravelMode:        "DRIVE",
		RoutingPreference: "TRAFFIC_AWARE_OPTIMAL",
		ExtraComputations: []string{"FUEL_CONSUMPTION"},
	}
	body.Origin.Location.LatLng = latLng{Latitude: slat, Longitude: slong}
	body.Destination.Location.LatLng = latLng{Latitude: dlat, Longitude: dlong}

	response := &computeRoutesResponse{}
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Goog-Api-Key", s.apiKey).
		SetHeader("X-Goog-FieldMask", fieldMask).
		SetBody(body).
		SetResult(response).
		Post(s.endpoint)
	if err != nil {
		log.Warn().Err(err).Msg("route details request failed")
		return RouteDetails{}
	}
	if resp.IsError() {
		log.Warn().Str("status", resp.Status()).Msg("route details request rejected")
		return RouteDetails{}
	}
	if len(response.Routes) == 0 {
		return RouteDetails{}
	}

	route := response.Routes[0]
	// The API reports fuel as an int64-in-a-string; a missing or garbled
	// value degrades to zero like every other failure here.
	microliters, err := strconv.ParseInt(route.TravelAdvisory.FuelConsumptionMicroliters, 10, 64)
	if err != nil {
		microliters = 0
	}
	return RouteDetails{
		Distance: float64(route.DistanceMeters) / 1000,
		Fuel:     float64(microliters) / (1000 * 1000),
	}
}
