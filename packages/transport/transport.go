package transport

import "github.com/l3montree-dev/honeypot-dashboard/packages/types"

type Transport interface {
	// listen to view snapshots.
	// returns a channel to send snapshots to the transport
	Listen() chan<- types.Snapshot
}

// buffer of the listen channels, a slow transport drops snapshots beyond it
const listenBuffer = 16
