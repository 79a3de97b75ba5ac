package places

// textSearchResponse is the JSON envelope of the Places Text Search API.
type textSearchResponse struct {
	Results []placeResult `json:"results"`
	Status  Status        `json:"status"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Vicinity         string   `json:"vicinity"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	Geometry         geometry `json:"geometry"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// geocodeResponse is the JSON envelope of the Geocoding API.
type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
	Status  Status          `json:"status"`
}

type geocodeResult struct {
	Geometry         geometry `json:"geometry"`
	FormattedAddress string   `json:"formatted_address"`
}

// Business is one raw search result record, in the provider's relevance
// order. Optional fields degrade to zero values when absent.
type Business struct {
	PlaceID     string
	Name        string
	Address     string
	Rating      float64
	ReviewCount int
	Latitude    float64
	Longitude   float64
}

// GeocodeResult is a successful geocoding lookup.
type GeocodeResult struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
}
