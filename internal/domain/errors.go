package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("dulce no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("el código ya está registrado")
	ErrInsufficientStock   = errors.New("cajas insuficientes en inventario")
	ErrSesionNoEncontrada  = errors.New("sesión de salida no encontrada")
	ErrLinternaNoSoportada = errors.New("el dispositivo no soporta linterna")
	ErrCodigoNoDetectado   = errors.New("no se detectó ningún código en la imagen")
	ErrConfirmRequerido    = errors.New("la eliminación requiere confirmación explícita")
)
