package types

// Stats is the payload of the upstream /api/stats endpoint.
type Stats struct {
	TotalAttacks    int    `json:"total_attacks"`
	AttacksToday    int    `json:"attacks_today"`
	UniqueAttackers int    `json:"unique_attackers"`
	HoneypotsActive int    `json:"honeypots_active"`
	ThreatLevel     string `json:"threat_level"`
}

// Summary feeds the stat cards. Some of its fields are estimates derived
// from TotalAttacks.
type Summary struct {
	TotalAttacks    int    `json:"totalAttacks"`
	BlockedIPs      int    `json:"blockedIPs"`
	ActiveHoneypots int    `json:"activeHoneypots"`
	ThreatLevel     string `json:"threatLevel"`
	AttacksToday    int    `json:"attacksToday"`
	UniqueAttackers int    `json:"uniqueAttackers"`
}

type AttackTypeStats struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type TimelinePoint struct {
	// formatted as HH:00
	Hour    string `json:"hour"`
	Attacks int    `json:"attacks"`
}

type Analytics struct {
	TotalAttacks    int               `json:"totalAttacks"`
	BlockedAttacks  int               `json:"blockedAttacks"`
	UniqueAttackers int               `json:"uniqueAttackers"`
	AttackTypes     []AttackTypeStats `json:"attackTypes"`
	Timeline        []TimelinePoint   `json:"timeline"`
}

type HoneypotStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Attacks int    `json:"attacks"`
}
