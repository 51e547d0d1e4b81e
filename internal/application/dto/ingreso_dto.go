package dto

// ResolverCodigoRequest body para POST /api/ingreso/resolver.
type ResolverCodigoRequest struct {
	Codigo string `json:"codigo"`
}

// CampoRequerido describe un dato que el operador debe capturar para
// completar el ingreso. Sustituye a los prompts bloqueantes: el flujo publica
// qué necesita y la UI lo resuelve con un formulario.
type CampoRequerido struct {
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"` // texto | entero
}

// ResolucionIngresoResponse resultado de resolver un código escaneado.
// Estado "nuevo": capturar nombre, cajas y piezas por caja.
// Estado "existente": capturar cajas adicionales; incluye el registro actual.
type ResolucionIngresoResponse struct {
	Estado string           `json:"estado"`
	Campos []CampoRequerido `json:"campos_requeridos"`
	Dulce  *DulceResponse   `json:"dulce,omitempty"`
}

// ConfirmarNuevoRequest body para POST /api/ingreso/nuevo. Las cantidades
// llegan como texto del operador; lo no numérico vale 0.
type ConfirmarNuevoRequest struct {
	Codigo        string `json:"codigo"`
	Nombre        string `json:"nombre"`
	Cajas         string `json:"cajas"`
	PiezasPorCaja string `json:"piezas_por_caja"`
}

// ConfirmarExistenteRequest body para POST /api/ingreso/existente.
type ConfirmarExistenteRequest struct {
	Codigo           string `json:"codigo"`
	CajasAdicionales string `json:"cajas_adicionales"`
}

// IngresoResponse resultado de un ingreso confirmado.
type IngresoResponse struct {
	Aplicado bool           `json:"aplicado"`
	Dulce    *DulceResponse `json:"dulce,omitempty"`
	Mensaje  string         `json:"mensaje"`
}
