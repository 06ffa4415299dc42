package telegrambot

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// Размер QR-кода со ссылкой на страницу расписания
const qrCodeSize = 512

// GenerateQRCode генерирует QR-код в виде PNG-изображения
func GenerateQRCode(content string, size int) ([]byte, error) {
	qrCode, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования QR-кода: %w", err)
	}

	qrCode, err = barcode.Scale(qrCode, size, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка изменения размера QR-кода: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return nil, fmt.Errorf("ошибка кодирования PNG: %w", err)
	}

	return buf.Bytes(), nil
}
