// QR code generation for the optional source-URL layer.
package main

import (
	"bytes"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImage encodes text as a size x size QR code image.
func qrImage(text string, size int) (image.Image, error) {
	data, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}
