// Package metrics expone las métricas Prometheus del panel.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector contadores de sesiones, operaciones de productos y categorías registradas.
// Implementa session.SignInRecorder y produto.OpRecorder.
type Collector struct {
	signIns     *prometheus.CounterVec
	produtoOps  *prometheus.CounterVec
	categories  prometheus.Gauge
	rateLimited prometheus.Counter
}

// NewCollector crea el Collector y lo registra en reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "estrategicos_sign_in_total",
			Help: "Intentos de inicio de sesión por resultado",
		}, []string{"result"}),
		produtoOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "estrategicos_produto_ops_total",
			Help: "Operaciones sobre la colección produtos por tipo y resultado",
		}, []string{"op", "result"}),
		categories: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "estrategicos_categories",
			Help: "Categorías registradas en el proceso",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "estrategicos_login_rate_limited_total",
			Help: "Intentos de login rechazados por límite de frecuencia",
		}),
	}
	reg.MustRegister(c.signIns, c.produtoOps, c.categories, c.rateLimited)
	return c
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// RecordSignIn registra un intento de inicio de sesión.
func (c *Collector) RecordSignIn(ok bool) {
	c.signIns.WithLabelValues(result(ok)).Inc()
}

// RecordProdutoOp registra una operación list/create/update/delete.
func (c *Collector) RecordProdutoOp(op string, ok bool) {
	c.produtoOps.WithLabelValues(op, result(ok)).Inc()
}

// SetCategories fija el número de categorías registradas.
func (c *Collector) SetCategories(n int) {
	c.categories.Set(float64(n))
}

// RecordRateLimited registra un login rechazado por el limitador.
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler handler HTTP para la scrape de Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
