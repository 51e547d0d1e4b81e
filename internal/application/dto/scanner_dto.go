package dto

// RegistrarDispositivoRequest capacidades declaradas por la cámara del operador.
type RegistrarDispositivoRequest struct {
	Linterna bool `json:"linterna"`
}

// DispositivoResponse dispositivo registrado.
type DispositivoResponse struct {
	DispositivoID string `json:"dispositivo_id"`
	Linterna      bool   `json:"linterna"`
}

// EntradaManualRequest body para la captura manual de un código.
type EntradaManualRequest struct {
	Texto string `json:"texto"`
}

// DeteccionResponse resultado de procesar un cuadro o una entrada manual.
// Detectado=false con Mensaje es el caso normal de un cuadro sin código.
type DeteccionResponse struct {
	Detectado bool   `json:"detectado"`
	Codigo    string `json:"codigo,omitempty"`
	Mensaje   string `json:"mensaje,omitempty"`
}

// LinternaResponse estado de la linterna tras alternarla.
type LinternaResponse struct {
	Encendida bool `json:"encendida"`
}
