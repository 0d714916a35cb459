package cardimg

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Card holds the member fields printed on the rendered membership card
type Card struct {
	Name       string
	Category   string
	CardNumber string
	BloodGroup string
	Phone      string
	PhotoURL   string
}

const (
	cardWidth  = 640
	cardHeight = 400

	photoX = 24
	photoY = 96
	photoW = 150
	photoH = 180
)

var (
	headerColor = color.RGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}
	photoBorder = color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF}
	textColor   = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	labelColor  = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xFF}
)

// Filename returns the download filename for a card number
func Filename(cardNumber string) string {
	return "membership-card-" + cardNumber + ".png"
}

// Render draws the membership card as a PNG. Output is deterministic for the
// same input fields: photo decoding failures fall back to a plain placeholder
// rather than erroring, so a stored data URI always yields a card.
func Render(card Card) ([]byte, error) {
	if card.CardNumber == "" {
		return nil, errors.New("cardimg: card number is required")
	}

	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Header band
	draw.Draw(img, image.Rect(0, 0, cardWidth, 72), image.NewUniform(headerColor), image.Point{}, draw.Src)
	drawText(img, 24, 34, "ARTIST MEMBERSHIP", color.White)
	drawText(img, 24, 54, card.CardNumber, color.White)

	drawPhoto(img, card.PhotoURL)

	x := photoX + photoW + 36
	y := photoY + 20
	for _, line := range []struct{ label, value string }{
		{"Name", card.Name},
		{"Category", card.Category},
		{"Card No", card.CardNumber},
		{"Blood Group", card.BloodGroup},
		{"Phone", card.Phone},
	} {
		drawText(img, x, y, line.label, labelColor)
		drawText(img, x, y+16, line.value, textColor)
		y += 44
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPhoto(img *image.RGBA, photoURL string) {
	box := image.Rect(photoX, photoY, photoX+photoW, photoY+photoH)

	// Border then placeholder fill
	draw.Draw(img, box.Inset(-2), image.NewUniform(photoBorder), image.Point{}, draw.Src)
	draw.Draw(img, box, image.NewUniform(color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}), image.Point{}, draw.Src)

	photo, ok := decodeDataURI(photoURL)
	if !ok {
		return
	}
	xdraw.ApproxBiLinear.Scale(img, box, photo, photo.Bounds(), xdraw.Src, nil)
}

// decodeDataURI decodes a base64 data URI into an image. Hosted URLs are not
// fetched at render time; those fall back to the placeholder.
func decodeDataURI(uri string) (image.Image, bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, false
	}
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(uri[idx+1:])
	if err != nil {
		return nil, false
	}
	photo, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	return photo, true
}

func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
