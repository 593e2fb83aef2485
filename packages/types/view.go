package types

import "time"

const (
	ViewAdmin     = "admin"
	ViewDashboard = "dashboard"

	APIStatusConnected = "connected"
	APIStatusDemo      = "demo"
)

// DashboardView is what the analyst dashboard shows: stat cards and the
// most recent attacks.
type DashboardView struct {
	Stats            Summary        `json:"stats"`
	RecentActivities []AttackRecord `json:"recentActivities"`
	APIStatus        string         `json:"apiStatus"`
}

// AdminView is the raw upstream data plus the per honeypot breakdown.
type AdminView struct {
	Stats     Stats            `json:"stats"`
	Attacks   []Attack         `json:"attacks"`
	Honeypots []HoneypotStatus `json:"honeypots"`
	APIStatus string           `json:"apiStatus"`
}

// Snapshot is one poll result of a view, as pushed to the transports.
type Snapshot struct {
	View string    `json:"view"`
	Time time.Time `json:"time"`
	Data any       `json:"data"`
}
