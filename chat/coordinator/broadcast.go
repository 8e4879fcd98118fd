package coordinator

// Transport delivers named events to live connections. It is implemented by
// the websocket hub; the coordinator never touches raw bytes.
type Transport interface {
	// Send delivers an event to one connection. Sending to an unknown or
	// closed connection is a no-op.
	Send(connID string, ev Event)

	// Alive reports whether the connection is still attached.
	Alive(connID string) bool
}

// outbound is one planned delivery: an event addressed to a set of
// connection IDs. Plans are built under the coordinator lock and flushed
// after it is released so no transport write happens inside the critical
// section.
type outbound struct {
	targets []string
	ev      Event
}

// broadcaster fans typed events out to connections via the transport.
type broadcaster struct {
	transport Transport
}

// toConn plans a delivery to a single connection.
func (b *broadcaster) toConn(plan *[]outbound, connID string, ev Event) {
	*plan = append(*plan, outbound{targets: []string{connID}, ev: ev})
}

// toMembers plans a delivery to every listed member, optionally excluding
// one connection (the sender). Pass except == "" to address everyone.
func (b *broadcaster) toMembers(plan *[]outbound, members []string, except string, ev Event) {
	targets := make([]string, 0, len(members))
	for _, id := range members {
		if id == except {
			continue
		}
		targets = append(targets, id)
	}
	if len(targets) == 0 {
		return
	}
	*plan = append(*plan, outbound{targets: targets, ev: ev})
}

// toPair plans a delivery to both sides of a pairing link.
func (b *broadcaster) toPair(plan *[]outbound, a, bID string, ev Event) {
	*plan = append(*plan, outbound{targets: []string{a, bID}, ev: ev})
}

// flush sends every planned delivery in order.
func (b *broadcaster) flush(plan []outbound) {
	for _, out := range plan {
		for _, id := range out.targets {
			b.transport.Send(id, out.ev)
		}
	}
}
