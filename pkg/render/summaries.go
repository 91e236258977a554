package render

// familySummaries describes each NIST control family by its two-letter code.
var familySummaries = map[string]string{
	"ac": "Ensures appropriate access to systems and data based on roles.",
	"at": "Focuses on training and awareness for security and privacy.",
	"au": "Focuses on tracking and reviewing system activities for accountability.",
	"ca": "Deals with assessment, authorization, and monitoring of systems.",
	"cm": "Manages system configurations to maintain security and compliance.",
	"cp": "Ensures contingency planning for system recovery and continuity.",
	"ia": "Handles identification and authentication of users and devices.",
	"ir": "Manages incident response to security breaches and incidents.",
	"ma": "Covers maintenance activities to ensure system security and integrity.",
	"mp": "Protects media containing sensitive information.",
	"pe": "Ensures physical and environmental protection of systems and data.",
	"pl": "Involves planning for security and privacy in system development.",
	"pm": "Manages program-level security and privacy activities.",
	"ps": "Handles personnel security to ensure trustworthiness of staff.",
	"pt": "Deals with processing and transparency of personally identifiable information.",
	"ra": "Assesses risks to systems and data.",
	"sa": "Manages system and services acquisition to ensure security.",
	"sc": "Protects system and communications to maintain confidentiality and integrity.",
	"si": "Ensures system and information integrity through various controls.",
	"sr": "Manages supply chain risks to prevent security breaches.",
}

// controlSummaries holds per-control one-liners. Deliberately a subset; a
// control without an entry simply renders without a summary line.
var controlSummaries = map[string]string{
	"ac-1": "Ensures documented policies and procedures for managing access control.",
	"ac-2": "Manages user accounts to ensure proper access and accountability.",
	"au-1": "Requires policies for auditing system activities.",
	"au-2": "Ensures event logging for accountability and monitoring.",
}

// FamilySummary returns the description for a control family id, or "".
func FamilySummary(familyID string) string {
	return familySummaries[familyID]
}

// ControlSummary returns the one-line summary for a control id, or "".
func ControlSummary(controlID string) string {
	return controlSummaries[controlID]
}
