package domain

// Structured inputs and outputs for the hosted prompt-runner flows. The
// runner performs the actual inference; these types only pin the wire
// contract. Outputs carry validate tags because the model's JSON is not
// trusted to be well-formed.

type WeatherInsights struct {
	Summary         string `json:"summary" validate:"required"`
	Recommendations string `json:"recommendations" validate:"required"`
}

type SentimentRequest struct {
	Event string `json:"event" validate:"required"`
}

type SentimentReport struct {
	Sentiment string   `json:"sentiment" validate:"required,oneof=positive negative neutral"`
	Summary   string   `json:"summary" validate:"required"`
	Alerts    []string `json:"alerts"`
}

type GarbageAlertRequest struct {
	ZoneID            string `json:"zone_id" validate:"required"`
	CameraFeedDataURI string `json:"camera_feed_data_uri" validate:"required,startswith=data:"`
	Timestamp         string `json:"timestamp" validate:"required"`
}

type GarbageAlert struct {
	IsOverflowing bool   `json:"is_overflowing"`
	AlertMessage  string `json:"alert_message"`
}

type IncidentRoutingRequest struct {
	IncidentReport  string   `json:"incident_report" validate:"required"`
	AvailableAgents []string `json:"available_agents" validate:"required,min=1"`
	ZoneMap         string   `json:"zone_map,omitempty"`
}

type IncidentRouting struct {
	SuggestedRoute        string `json:"suggested_route" validate:"required"`
	AssignedAgent         string `json:"assigned_agent" validate:"required"`
	EstimatedResponseTime string `json:"estimated_response_time" validate:"required"`
	AdditionalNotes       string `json:"additional_notes,omitempty"`
}

type SmartLocationRequest struct {
	CurrentLocation      string   `json:"current_location" validate:"required"`
	CurrentWaitTime      int      `json:"current_wait_time" validate:"min=0"`
	CrowdDensity         string   `json:"crowd_density" validate:"required"`
	AlternativeLocations []string `json:"alternative_locations" validate:"required,min=1"`
}

type SmartLocation struct {
	SuggestedLocation string `json:"suggested_location" validate:"required"`
	Reason            string `json:"reason" validate:"required"`
}
