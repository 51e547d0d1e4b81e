package dto

import "strconv"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseCantidad replica la captura de cantidades del operador: texto libre
// que, si no es un entero válido, vale 0. Es la semántica de los prompts de
// la dulcería — la validación de positividad ocurre en cada flujo.
func ParseCantidad(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
