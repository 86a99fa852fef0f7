package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/metrics"
)

func TestCollector_CuentaPorResultado(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordSignIn(true)
	c.RecordSignIn(false)
	c.RecordSignIn(false)
	c.RecordProdutoOp("create", true)
	c.RecordProdutoOp("delete", false)
	c.SetCategories(3)
	c.RecordRateLimited()

	mfs, err := reg.Gather()
	assert.NoError(t, err)
	values := map[string]float64{}
	series := map[string]int{}
	for _, mf := range mfs {
		series[mf.GetName()] = len(mf.GetMetric())
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2, series["estrategicos_sign_in_total"], "una serie por resultado")
	assert.Equal(t, 2, series["estrategicos_produto_ops_total"])
	assert.Equal(t, float64(3), values["estrategicos_sign_in_total"])
	assert.Equal(t, float64(3), values["estrategicos_categories"])
	assert.Equal(t, float64(1), values["estrategicos_login_rate_limited_total"])
}
