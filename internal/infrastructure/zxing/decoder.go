// Package zxing decodifica códigos de barras desde cuadros de cámara usando
// el port puro-Go de la librería zxing.
package zxing

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/dulceria/dulces-api/internal/application/scanner"
	"github.com/dulceria/dulces-api/internal/domain"
)

var _ scanner.Decoder = (*Decoder)(nil)

// Decoder intenta varios lectores en orden: UPC/EAN (el formato típico de los
// empaques de dulces), Code 128 y QR.
type Decoder struct {
	readers []gozxing.Reader
}

// NewDecoder construye el decodificador con los lectores soportados.
func NewDecoder() *Decoder {
	return &Decoder{
		readers: []gozxing.Reader{
			oned.NewMultiFormatUPCEANReader(nil),
			oned.NewCode128Reader(),
			qrcode.NewQRCodeReader(),
		},
	}
}

// Decode decodifica un cuadro (JPEG o PNG). Si ningún lector reconoce un
// código devuelve domain.ErrCodigoNoDetectado: es el resultado normal de la
// mayoría de los cuadros de un video en vivo, no una falla.
func (d *Decoder) Decode(frame []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return "", fmt.Errorf("decodificar imagen: %w", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("preparar bitmap: %w", err)
	}
	for _, r := range d.readers {
		if res, err := r.Decode(bmp, nil); err == nil {
			return res.GetText(), nil
		}
	}
	return "", domain.ErrCodigoNoDetectado
}
