package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "barber_booking"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)

	bookingsRequested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_requested_total",
			Help:      "Pending bookings created, by service type.",
		},
		[]string{"type"},
	)

	bookingsConfirmed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_confirmed_total",
			Help:      "Bookings confirmed through their token, by service type.",
		},
		[]string{"type"},
	)

	bookingsCancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Cancelled bookings by actor (self, admin).",
		},
		[]string{"actor"},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_conflicts_total",
			Help:      "Booking or confirmation attempts rejected for an occupied slot.",
		},
	)

	appointmentsSwept = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_swept_total",
			Help:      "Expired appointments removed by the sweep, by status.",
		},
		[]string{"status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			bookingsRequested,
			bookingsConfirmed,
			bookingsCancelled,
			slotConflicts,
			appointmentsSwept,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func IncHTTP(route, status string) {
	httpRequests.WithLabelValues(route, status).Inc()
}

func IncBookingRequested(serviceType string) {
	bookingsRequested.WithLabelValues(serviceType).Inc()
}

func IncBookingConfirmed(serviceType string) {
	bookingsConfirmed.WithLabelValues(serviceType).Inc()
}

func IncBookingCancelled(actor string) {
	bookingsCancelled.WithLabelValues(actor).Inc()
}

func IncSlotConflict() {
	slotConflicts.Inc()
}

func AddSwept(status string, n int) {
	appointmentsSwept.WithLabelValues(status).Add(float64(n))
}
