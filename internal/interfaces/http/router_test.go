package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulceria/dulces-api/internal/application/consulta"
	"github.com/dulceria/dulces-api/internal/application/ingreso"
	"github.com/dulceria/dulces-api/internal/application/salida"
	"github.com/dulceria/dulces-api/internal/application/scanner"
	"github.com/dulceria/dulces-api/internal/domain/entity"
	"github.com/dulceria/dulces-api/internal/infrastructure/memstore"
	apphttp "github.com/dulceria/dulces-api/internal/interfaces/http"
	"github.com/dulceria/dulces-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// decoderFijo devuelve siempre el mismo código, sin mirar el cuadro.
type decoderFijo struct{ codigo string }

func (d *decoderFijo) Decode(frame []byte) (string, error) { return d.codigo, nil }

// generadorFake evita renderizar PDF reales en los tests del router.
type generadorFake struct{}

func (g *generadorFake) Generar(ticket *entity.Ticket) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// exportadorFake evita generar libros de Excel reales.
type exportadorFake struct{}

func (e *exportadorFake) Exportar(items []*entity.Dulce, total int) ([]byte, error) {
	return []byte("xlsx"), nil
}

// buildTestApp construye la aplicación Fiber completa sobre un inventario en
// memoria, con los dulces semilla indicados.
func buildTestApp(t *testing.T, dulces ...*entity.Dulce) (*fiber.App, *memstore.DulceRepo) {
	t.Helper()
	repo := memstore.NewDulceRepository()
	for _, d := range dulces {
		require.NoError(t, repo.Create(d))
	}
	log := logger.Nop()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Scanner:    scanner.NewAdapter(&decoderFijo{codigo: "7501000111112"}, log),
		IngresoUC:  ingreso.NewUseCase(repo, log),
		SalidaUC:   salida.NewUseCase(repo, &generadorFake{}, log),
		ConsultaUC: consulta.NewUseCase(repo, &exportadorFake{}, log),
	})
	return app, repo
}

// doJSON lanza una petición con body JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Ingreso
// ──────────────────────────────────────────────────────────────────────────────

// Flujo completo de ingreso: resolver código nuevo → alta → resolver de nuevo
// → sumar cajas adicionales.
func TestIngreso_FlujoCompleto(t *testing.T) {
	app, _ := buildTestApp(t)

	// Código nunca visto: el flujo pide el alta completa.
	resp := doJSON(t, app, http.MethodPost, "/api/ingreso/resolver", map[string]string{"codigo": "ABC123"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "nuevo", body["estado"])

	// Alta: 5 cajas de 24 piezas.
	resp = doJSON(t, app, http.MethodPost, "/api/ingreso/nuevo", map[string]string{
		"codigo": "ABC123", "nombre": "Skittles", "cajas": "5", "piezas_por_caja": "24",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["aplicado"])
	dulce := body["dulce"].(map[string]any)
	assert.Equal(t, float64(120), dulce["total"])

	// Ahora el código resuelve como existente y solo pide cajas.
	resp = doJSON(t, app, http.MethodPost, "/api/ingreso/resolver", map[string]string{"codigo": "ABC123"})
	defer resp.Body.Close()
	body = decodeBody(t, resp)
	assert.Equal(t, "existente", body["estado"])

	// 3 cajas adicionales: 8 cajas, 192 piezas.
	resp = doJSON(t, app, http.MethodPost, "/api/ingreso/existente", map[string]string{
		"codigo": "ABC123", "cajas_adicionales": "3",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	dulce = body["dulce"].(map[string]any)
	assert.Equal(t, float64(8), dulce["cajas"])
	assert.Equal(t, float64(192), dulce["total"])
}

func TestIngreso_AltaDuplicada_Retorna409(t *testing.T) {
	app, _ := buildTestApp(t, &entity.Dulce{
		Codigo: "ABC123", Nombre: "Skittles", Cajas: 5, PiezasPorCaja: 24, Total: 120,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/ingreso/nuevo", map[string]string{
		"codigo": "ABC123", "nombre": "Skittles", "cajas": "1", "piezas_por_caja": "24",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "DUPLICATE")
}

// Una cantidad no numérica se trata como 0: no se escribe nada y la respuesta
// lo dice con aplicado=false.
func TestIngreso_CantidadNoNumerica_NoOp(t *testing.T) {
	app, repo := buildTestApp(t, &entity.Dulce{
		Codigo: "ABC123", Nombre: "Skittles", Cajas: 5, PiezasPorCaja: 24, Total: 120,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/ingreso/existente", map[string]string{
		"codigo": "ABC123", "cajas_adicionales": "muchas",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["aplicado"])

	guardado, err := repo.Get("ABC123")
	require.NoError(t, err)
	assert.Equal(t, 5, guardado.Cajas, "el stock no debe cambiar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Salida
// ──────────────────────────────────────────────────────────────────────────────

func abrirSesion(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/salida/sesiones", map[string]string{"receptor": "María"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	id, ok := body["sesion_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)
	return id
}

func TestSalida_RetiroYTicket(t *testing.T) {
	app, repo := buildTestApp(t, &entity.Dulce{
		Codigo: "ABC123", Nombre: "Skittles", Cajas: 8, PiezasPorCaja: 24, Total: 192,
	})
	id := abrirSesion(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/salida/sesiones/"+id+"/retiros", map[string]string{
		"codigo": "ABC123", "cajas": "3",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(3), body["cajas_retiradas"])
	assert.Equal(t, float64(72), body["piezas_retiradas"])
	assert.Equal(t, float64(5), body["cajas_restantes"])
	assert.Equal(t, false, body["eliminado"])

	guardado, err := repo.Get("ABC123")
	require.NoError(t, err)
	assert.Equal(t, 5, guardado.Cajas)

	// El ticket de la sesión refleja el retiro.
	resp = doJSON(t, app, http.MethodGet, "/api/salida/sesiones/"+id, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(72), body["total_piezas"])

	// El PDF del ticket se descarga sin vaciar la sesión.
	req := httptest.NewRequest(http.MethodGet, "/api/salida/sesiones/"+id+"/ticket", nil)
	pdfResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer pdfResp.Body.Close()
	assert.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Equal(t, "application/pdf", pdfResp.Header.Get("Content-Type"))
}

func TestSalida_RetiroExcedeStock_Retorna422(t *testing.T) {
	app, _ := buildTestApp(t, &entity.Dulce{
		Codigo: "ABC123", Nombre: "Skittles", Cajas: 8, PiezasPorCaja: 24, Total: 192,
	})
	id := abrirSesion(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/salida/sesiones/"+id+"/retiros", map[string]string{
		"codigo": "ABC123", "cajas": "9",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INSUFFICIENT_STOCK")
}

func TestSalida_RetiroCantidadInvalida_Retorna400(t *testing.T) {
	app, _ := buildTestApp(t, &entity.Dulce{
		Codigo: "ABC123", Nombre: "Skittles", Cajas: 8, PiezasPorCaja: 24, Total: 192,
	})
	id := abrirSesion(t, app)

	// "abc" se interpreta como 0 cajas: validación estricta, se rechaza.
	resp := doJSON(t, app, http.MethodPost, "/api/salida/sesiones/"+id+"/retiros", map[string]string{
		"codigo": "ABC123", "cajas": "abc",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSalida_SesionAusente_Retorna404(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/salida/sesiones/no-existe/retiros", map[string]string{
		"codigo": "ABC123", "cajas": "1",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "SESSION_NOT_FOUND")
}

func TestSalida_Cancelar_RestauraYReporta(t *testing.T) {
	app, repo := buildTestApp(t, &entity.Dulce{
		Codigo: "ABC123", Nombre: "Skittles", Cajas: 8, PiezasPorCaja: 24, Total: 192,
	})
	id := abrirSesion(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/salida/sesiones/"+id+"/retiros", map[string]string{
		"codigo": "ABC123", "cajas": "3",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/salida/sesiones/"+id+"/cancelar", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, []any{"ABC123"}, body["restaurados"])

	guardado, err := repo.Get("ABC123")
	require.NoError(t, err)
	assert.Equal(t, 8, guardado.Cajas, "cancelar debe devolver las cajas retiradas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestConsulta_ListarConFiltro(t *testing.T) {
	app, _ := buildTestApp(t,
		&entity.Dulce{Codigo: "A1", Nombre: "Paleta Payaso", Cajas: 2, PiezasPorCaja: 10, Total: 20},
		&entity.Dulce{Codigo: "B2", Nombre: "Chicle", Cajas: 3, PiezasPorCaja: 5, Total: 15},
	)

	resp := doJSON(t, app, http.MethodGet, "/api/dulces/?filtro=paleta", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(20), body["total_piezas"])
}

func TestConsulta_EliminarSinConfirmar_Retorna400(t *testing.T) {
	app, repo := buildTestApp(t, &entity.Dulce{
		Codigo: "A1", Nombre: "Paleta", Cajas: 2, PiezasPorCaja: 10, Total: 20,
	})

	resp := doJSON(t, app, http.MethodDelete, "/api/dulces/A1", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "CONFIRM_REQUIRED")

	resp = doJSON(t, app, http.MethodDelete, "/api/dulces/A1?confirmar=true", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	guardado, err := repo.Get("A1")
	require.NoError(t, err)
	assert.Nil(t, guardado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Escáner
// ──────────────────────────────────────────────────────────────────────────────

func TestEscaner_FrameDetectado(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/escaner/frames", bytes.NewReader([]byte{0xff, 0xd8, 0x01}))
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["detectado"])
	assert.Equal(t, "7501000111112", body["codigo"])
}

func TestEscaner_LinternaNoSoportada_Retorna409(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/escaner/dispositivos", map[string]bool{"linterna": false})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	resp.Body.Close()
	id := body["dispositivo_id"].(string)

	resp = doJSON(t, app, http.MethodPost, "/api/escaner/dispositivos/"+id+"/linterna", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "TORCH_UNSUPPORTED")
}

func TestEscaner_EntradaManualVacia_Retorna400(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/escaner/manual", map[string]string{"texto": "   "})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
