// Package metrics expone los contadores Prometheus de la aplicación.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Escaneos cuenta detecciones por resultado: detectado, sin_codigo, manual.
	Escaneos = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dulces_escaneos_total",
		Help: "Detecciones de códigos de barras por resultado.",
	}, []string{"resultado"})

	// Movimientos cuenta mutaciones de stock por tipo: ingreso_nuevo,
	// ingreso_adicional, salida, cancelacion, purga.
	Movimientos = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dulces_movimientos_total",
		Help: "Movimientos de inventario por tipo.",
	}, []string{"tipo"})
)
