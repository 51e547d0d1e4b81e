package dto

import "time"

// AbrirSesionRequest body para POST /api/salida/sesiones.
type AbrirSesionRequest struct {
	Receptor string `json:"receptor"`
}

// SesionResponse sesión de salida abierta.
type SesionResponse struct {
	SesionID string    `json:"sesion_id"`
	Receptor string    `json:"receptor"`
	Creada   time.Time `json:"creada"`
}

// RetiroRequest body para registrar un retiro (escaneado o selección manual).
// Cajas llega como texto del operador; lo no numérico vale 0 y se rechaza.
type RetiroRequest struct {
	Codigo string `json:"codigo"`
	Cajas  string `json:"cajas"`
}

// RetiroResponse resultado de un retiro confirmado.
type RetiroResponse struct {
	Codigo         string `json:"codigo"`
	Nombre         string `json:"nombre"`
	CajasRetiradas int    `json:"cajas_retiradas"`
	PiezasRetiradas int   `json:"piezas_retiradas"`
	CajasRestantes int    `json:"cajas_restantes"`
	Eliminado      bool   `json:"eliminado"` // el registro se borró al llegar a cero
}

// TicketItemResponse línea del ticket de la sesión.
type TicketItemResponse struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
	Cajas  int    `json:"cajas"`
	Piezas int    `json:"piezas"`
}

// TicketResponse resumen actual de la sesión.
type TicketResponse struct {
	Receptor    string               `json:"receptor"`
	Creada      time.Time            `json:"creada"`
	Items       []TicketItemResponse `json:"items"`
	TotalPiezas int                  `json:"total_piezas"`
}

// CancelacionResponse reporte de la acción compensatoria por fila.
type CancelacionResponse struct {
	Restaurados []string `json:"restaurados"`
	Omitidos    []string `json:"omitidos"` // registros ya eliminados: no se resucitan
}
