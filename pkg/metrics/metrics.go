package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MatchmakingMetrics counts ticket lifecycle activity across all handlers.
type MatchmakingMetrics interface {
	TicketCreated()
	TicketConflicted()
	TicketResolved(status string)
	TicketsPolled(count int)
	EventDropped(reason string)
}

// Ensure collection implements MatchmakingMetrics
var _ MatchmakingMetrics = (*collection)(nil)

type collection struct {
	ticketsCreated    prometheus.Counter
	ticketsConflicted prometheus.Counter
	ticketsResolved   *prometheus.CounterVec
	ticketsPolled     prometheus.Counter
	eventsDropped     *prometheus.CounterVec
}

func New(registry *prometheus.Registry) MatchmakingMetrics {
	c := &collection{
		ticketsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchmaking_tickets_created_total",
			Help: "Matchmaking tickets accepted and recorded",
		}),
		ticketsConflicted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchmaking_tickets_conflicted_total",
			Help: "Start game requests rejected because a ticket was already in flight",
		}),
		ticketsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaking_tickets_resolved_total",
			Help: "Tickets moved to a terminal status",
		}, []string{"status"}),
		ticketsPolled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchmaking_tickets_polled_total",
			Help: "Ticket statuses fetched by the reconciliation poll",
		}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaking_events_dropped_total",
			Help: "Async events logged and dropped without effect",
		}, []string{"reason"}),
	}

	registry.MustRegister(
		c.ticketsCreated,
		c.ticketsConflicted,
		c.ticketsResolved,
		c.ticketsPolled,
		c.eventsDropped,
	)

	return c
}

func (c *collection) TicketCreated() {
	c.ticketsCreated.Inc()
}

func (c *collection) TicketConflicted() {
	c.ticketsConflicted.Inc()
}

func (c *collection) TicketResolved(status string) {
	c.ticketsResolved.WithLabelValues(status).Inc()
}

func (c *collection) TicketsPolled(count int) {
	c.ticketsPolled.Add(float64(count))
}

func (c *collection) EventDropped(reason string) {
	c.eventsDropped.WithLabelValues(reason).Inc()
}
