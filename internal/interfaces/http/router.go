package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dulceria/dulces-api/internal/application/consulta"
	"github.com/dulceria/dulces-api/internal/application/ingreso"
	"github.com/dulceria/dulces-api/internal/application/salida"
	"github.com/dulceria/dulces-api/internal/application/scanner"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Scanner    *scanner.Adapter
	IngresoUC  *ingreso.UseCase
	SalidaUC   *salida.UseCase
	ConsultaUC *consulta.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Frontera de escaneo
	escaner := api.Group("/escaner")
	scannerHandler := NewScannerHandler(deps.Scanner)
	escaner.Post("/frames", scannerHandler.ProcesarFrame)
	escaner.Post("/manual", scannerHandler.EntradaManual)
	escaner.Post("/dispositivos", scannerHandler.RegistrarDispositivo)
	escaner.Post("/dispositivos/:id/linterna", scannerHandler.AlternarLinterna)

	// Ingreso de dulces
	ing := api.Group("/ingreso")
	ingresoHandler := NewIngresoHandler(deps.IngresoUC)
	ing.Post("/resolver", ingresoHandler.Resolver)
	ing.Post("/nuevo", ingresoHandler.ConfirmarNuevo)
	ing.Post("/existente", ingresoHandler.ConfirmarExistente)

	// Salida por cajas
	sal := api.Group("/salida")
	salidaHandler := NewSalidaHandler(deps.SalidaUC)
	sal.Post("/sesiones", salidaHandler.AbrirSesion)
	sal.Get("/sesiones/:id", salidaHandler.Resumen)
	sal.Post("/sesiones/:id/retiros", salidaHandler.RegistrarRetiro)
	sal.Post("/sesiones/:id/cancelar", salidaHandler.Cancelar)
	sal.Get("/sesiones/:id/ticket", salidaHandler.GenerarTicket)
	sal.Delete("/sesiones/:id", salidaHandler.CerrarSesion)

	// Consulta de inventario
	consultaHandler := NewConsultaHandler(deps.ConsultaUC)
	dulces := api.Group("/dulces")
	dulces.Get("/", consultaHandler.Listar)
	dulces.Get("/export", consultaHandler.ExportarExcel)
	dulces.Delete("/:codigo", consultaHandler.Eliminar)
}
