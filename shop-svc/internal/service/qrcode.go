package service

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(shopID string) ([]byte, error)
}

// DefaultQRGenerator encodes the public menu link of a shop as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) MenuURL(shopID string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/menu/" + url.PathEscape(shopID)
}

func (g DefaultQRGenerator) Generate(shopID string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.MenuURL(shopID), qrcode.Medium, size)
}
