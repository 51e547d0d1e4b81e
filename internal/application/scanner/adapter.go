// Package scanner es la frontera de entrada por código de barras: recibe
// cuadros de cámara o texto manual del operador y entrega códigos detectados
// a los flujos de ingreso y salida. No deduplica detecciones repetidas.
package scanner

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dulceria/dulces-api/internal/domain"
	"github.com/dulceria/dulces-api/pkg/logger"
	"github.com/dulceria/dulces-api/pkg/metrics"
)

// Decoder decodifica un cuadro de cámara a texto de código de barras.
type Decoder interface {
	Decode(frame []byte) (string, error)
}

// Capacidades declara lo que el dispositivo del operador soporta; se negocia
// al registrarse, no se asume.
type Capacidades struct {
	Linterna bool
}

// Dispositivo es una cámara registrada con su estado de linterna.
type Dispositivo struct {
	ID       string
	Caps     Capacidades
	Linterna bool // encendida
}

// Adapter coordina decodificación de cuadros, entrada manual y la linterna
// por dispositivo.
type Adapter struct {
	decoder Decoder
	log     *logger.Logger

	mu           sync.Mutex
	dispositivos map[string]*Dispositivo
}

// NewAdapter construye el adaptador.
func NewAdapter(decoder Decoder, log *logger.Logger) *Adapter {
	return &Adapter{
		decoder:      decoder,
		log:          log,
		dispositivos: make(map[string]*Dispositivo),
	}
}

// ProcesarFrame intenta decodificar un cuadro. Un cuadro sin código devuelve
// domain.ErrCodigoNoDetectado; el escaneo continúa, no es fatal.
func (a *Adapter) ProcesarFrame(frame []byte) (string, error) {
	codigo, err := a.decoder.Decode(frame)
	if err != nil {
		metrics.Escaneos.WithLabelValues("sin_codigo").Inc()
		return "", err
	}
	metrics.Escaneos.WithLabelValues("detectado").Inc()
	return codigo, nil
}

// EntradaManual valida texto libre del operador y lo usa igual que una
// detección de cámara. Texto vacío se rechaza.
func (a *Adapter) EntradaManual(texto string) (string, error) {
	codigo := strings.TrimSpace(texto)
	if codigo == "" {
		return "", domain.ErrInvalidInput
	}
	metrics.Escaneos.WithLabelValues("manual").Inc()
	return codigo, nil
}

// RegistrarDispositivo registra la cámara del operador con sus capacidades
// declaradas y devuelve su identificador.
func (a *Adapter) RegistrarDispositivo(caps Capacidades) *Dispositivo {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := &Dispositivo{ID: uuid.New().String(), Caps: caps}
	a.dispositivos[d.ID] = d
	return d
}

// AlternarLinterna enciende o apaga la linterna del dispositivo. Si el
// dispositivo no declaró la capacidad devuelve domain.ErrLinternaNoSoportada;
// el llamador lo muestra como aviso, el escaneo sigue.
func (a *Adapter) AlternarLinterna(dispositivoID string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.dispositivos[dispositivoID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if !d.Caps.Linterna {
		a.log.Warn().Str("dispositivo", d.ID).Msg("linterna no soportada por el dispositivo")
		return false, domain.ErrLinternaNoSoportada
	}
	d.Linterna = !d.Linterna
	return d.Linterna, nil
}
