// Package receiver is the HTTP surface of the relay: one route per
// integration source, plus a healthcheck. It parses request options, runs
// the hooks pipeline and maps the decision to a response: Forward and Ignore
// are both success to the sender, only Reject is an error.
package receiver

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/weaveworks/webhook-relay/gateway"
	"github.com/weaveworks/webhook-relay/hooks"
)

const ratelimit = 100

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_requests_total",
		Help: "Number of incoming webhook requests.",
	}, []string{"source"})

	decisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_decisions_total",
		Help: "Number of dispatch decisions.",
	}, []string{"source", "outcome"})

	deliveryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_delivery_errors_total",
		Help: "Number of errors delivering forwarded messages to the gateway.",
	}, []string{"source"})

	rateLimitedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_webhook_requests_total",
		Help: "Number of incoming webhook requests not allowed because of rate limit.",
	}, []string{"method", "path"})
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		decisionsTotal,
		deliveryErrors,
		rateLimitedRequests,
	)
}

// Receiver routes webhook requests to their source tables.
type Receiver struct {
	sources map[string]*hooks.Source
	gateway gateway.Gateway
	limiter *rate.Limiter
}

// New creates a Receiver over the given sources and delivery gateway.
func New(sources []*hooks.Source, gw gateway.Gateway) *Receiver {
	bySource := make(map[string]*hooks.Source, len(sources))
	for _, s := range sources {
		bySource[s.Name] = s
	}
	return &Receiver{
		sources: bySource,
		gateway: gw,
		limiter: rate.NewLimiter(ratelimit, ratelimit),
	}
}

// Sources returns the receiver's sources keyed by name.
func (rcv *Receiver) Sources() map[string]*hooks.Source {
	return rcv.sources
}

// Register HTTP handlers
func (rcv *Receiver) Register(r *mux.Router) {
	for _, route := range []struct {
		name, method, path string
		handler            http.Handler
	}{
		{"create_webhook_event", "POST", "/api/webhooks/{instanceID}/{source}", rcv.rateLimited(http.HandlerFunc(rcv.handleWebhook))},
		{"health_check", "GET", "/api/webhooks/healthcheck", http.HandlerFunc(rcv.handleHealthCheck)},
	} {
		r.Handle(route.path, route.handler).Methods(route.method).Name(route.name)
	}
}

// rateLimited is rate limit middleware
func (rcv *Receiver) rateLimited(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rcv.limiter.Allow() {
			log.Warnf("too many %s requests to %s, request is not allowed", r.Method, r.URL.Path)
			rateLimitedRequests.With(prometheus.Labels{"method": r.Method, "path": r.URL.Path}).Inc()
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (rcv *Receiver) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	vars := mux.Vars(r)

	sourceName := vars["source"]
	src, ok := rcv.sources[sourceName]
	if !ok {
		log.Errorf("unknown webhook source %q in request %s", sourceName, r.URL)
		writeError(w, http.StatusNotFound, "unknown webhook source "+strconv.Quote(sourceName))
		return
	}
	requestsTotal.With(prometheus.Labels{"source": sourceName}).Inc()

	instanceID := vars["instanceID"]
	if instanceID == "" {
		writeError(w, http.StatusBadRequest, "instanceID is empty in request")
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		log.Errorf("cannot read body for request %s", r.URL)
		writeError(w, http.StatusBadRequest, "cannot read body")
		return
	}

	decision := src.Handle(body, optionsFromRequest(src, r))
	decisionsTotal.With(prometheus.Labels{"source": sourceName, "outcome": decision.Outcome.String()}).Inc()

	switch decision.Outcome {
	case hooks.Reject:
		log.WithField("source", sourceName).Infof("rejected webhook: %s", decision.Reason)
		writeError(w, http.StatusBadRequest, decision.Reason.Error())

	case hooks.Forward:
		rcv.deliver(r, sourceName, instanceID, decision.Message)
		writeOK(w)

	case hooks.Ignore:
		// Deliberately indistinguishable from Forward for the sender.
		writeOK(w)
	}
}

// deliver hands the rendered message to the gateway. Delivery failures are
// the gateway's concern; the sender already got its answer.
func (rcv *Receiver) deliver(r *http.Request, source, instanceID string, m *hooks.Message) {
	msg, err := gateway.NewMessage(m.Topic, m.Body, m.Label, instanceID)
	if err != nil {
		deliveryErrors.With(prometheus.Labels{"source": source}).Inc()
		log.Errorf("cannot build gateway message for %s event: %s", m.Label, err)
		return
	}
	if err := rcv.gateway.Send(r.Context(), msg); err != nil {
		deliveryErrors.With(prometheus.Labels{"source": source}).Inc()
		log.Errorf("cannot deliver %s event to gateway: %s", m.Label, err)
	}
}

// optionsFromRequest reads the source's declared boolean query params plus
// the generic event type hint.
func optionsFromRequest(src *hooks.Source, r *http.Request) hooks.Options {
	opts := hooks.Options{Hint: r.URL.Query().Get("hint")}
	for _, o := range src.Options {
		on := o.Default
		if raw := r.URL.Query().Get(o.Param); raw != "" {
			if v, err := strconv.ParseBool(raw); err == nil {
				on = v
			} else {
				log.Debugf("ignoring bad value %q for option %s", raw, o.Param)
			}
		}
		if on {
			opts.IgnoreKinds = append(opts.IgnoreKinds, o.Kind)
		}
	}
	return opts
}

func (rcv *Receiver) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
