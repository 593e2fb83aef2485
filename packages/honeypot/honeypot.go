package honeypot

import (
	"strings"

	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
	"github.com/l3montree-dev/honeypot-dashboard/packages/utils"
)

const StatusActive = "active"

// Kind is a honeypot service the dashboard knows about. Attacks are
// attributed to it when their honeypot label contains Keyword.
type Kind struct {
	Name    string
	Keyword string
}

func Known() []Kind {
	return []Kind{
		{Name: "FTP Honeypot", Keyword: "ftp"},
		{Name: "HTTP Honeypot", Keyword: "http"},
		{Name: "SSH Honeypot", Keyword: "ssh"},
		{Name: "RDP Honeypot", Keyword: "rdp"},
		{Name: "MySQL Honeypot", Keyword: "mysql"},
	}
}

// Status counts attacks per known honeypot. An attack whose label matches
// several keywords counts for each of them.
func Status(attacks []types.Attack) []types.HoneypotStatus {
	return utils.Map(Known(), func(kind Kind) types.HoneypotStatus {
		matching := utils.Filter(attacks, func(attack types.Attack) bool {
			return strings.Contains(attack.Honeypot, kind.Keyword)
		})
		return types.HoneypotStatus{
			Name:    kind.Name,
			Status:  StatusActive,
			Attacks: len(matching),
		}
	})
}
