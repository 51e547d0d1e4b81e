package entity

// Dulce representa un registro de inventario, identificado por su código de
// barras. PiezasPorCaja se fija en el primer ingreso y no cambia después.
// Total se mantiene por incrementos independientes; bajo uso correcto siempre
// cumple Total == Cajas * PiezasPorCaja.
type Dulce struct {
	Codigo        string
	Nombre        string
	Cajas         int
	PiezasPorCaja int
	Total         int
}

// TotalConsistente indica si el total denormalizado coincide con el cálculo
// directo. La deriva solo es posible si se viola el supuesto de PiezasPorCaja
// constante.
func (d *Dulce) TotalConsistente() bool {
	return d.Total == d.Cajas*d.PiezasPorCaja
}

// AgotadoEnCajas indica si el registro violó el invariante de existencia
// (un dulce existe en el almacén sólo mientras tenga cajas).
func (d *Dulce) AgotadoEnCajas() bool {
	return d.Cajas <= 0
}
