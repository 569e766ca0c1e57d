package domain

import "time"

// Incident types.
const (
	IncidentMedical   = "medical"
	IncidentSecurity  = "security"
	IncidentLostItem  = "lost_item"
	IncidentTechnical = "technical"
	IncidentOther     = "other"
)

// Incident severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Incident statuses.
const (
	IncidentNew           = "new"
	IncidentInvestigating = "investigating"
	IncidentResolved      = "resolved"
	IncidentClosed        = "closed"
)

type Incident struct {
	IncidentID    string    `json:"id" dynamodbav:"incident_id"`
	Type          string    `json:"type" dynamodbav:"type"`
	Severity      string    `json:"severity" dynamodbav:"severity"`
	Status        string    `json:"status" dynamodbav:"status"`
	ZoneID        string    `json:"zone_id" dynamodbav:"zone_id"`
	Description   string    `json:"description" dynamodbav:"description"`
	PhotoKey      string    `json:"photo_key,omitempty" dynamodbav:"photo_key"`
	AssignedAgent string    `json:"assigned_agent,omitempty" dynamodbav:"assigned_agent"`
	ReportedBy    string    `json:"reported_by" dynamodbav:"reported_by"`
	ReportedAt    time.Time `json:"reported_at" dynamodbav:"reported_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type ReportIncidentRequest struct {
	Type        string `json:"type" validate:"required,oneof=medical security lost_item technical other"`
	Severity    string `json:"severity" validate:"required,oneof=low medium high critical"`
	ZoneID      string `json:"zone_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	PhotoBase64 string `json:"photo_base64,omitempty"`
	PhotoName   string `json:"photo_name,omitempty"`
}

type UpdateIncidentRequest struct {
	Status        *string `json:"status" validate:"omitempty,oneof=new investigating resolved closed"`
	Severity      *string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	AssignedAgent *string `json:"assigned_agent"`
}
