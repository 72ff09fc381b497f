package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/jpeg"
	"image/png"

	"github.com/chromedp/chromedp"

	"faceplate/pkg/cache"
	"faceplate/pkg/errors"
)

// Raster output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// DefaultJPEGQuality balances preview size against dimension-text
// legibility.
const DefaultJPEGQuality = 90

// RasterOptions configures the SVG-to-bitmap conversion.
type RasterOptions struct {
	Format  string // FormatPNG (default) or FormatJPEG
	Width   int    // browser viewport width in px; 0 = browser default
	Quality int    // JPEG quality; 0 = DefaultJPEGQuality
}

func (o RasterOptions) normalize() RasterOptions {
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Quality == 0 {
		o.Quality = DefaultJPEGQuality
	}
	return o
}

// Raster renders SVG bytes to a bitmap with a headless browser: the SVG
// goes in as a data URI, the browser lays it out, and the screenshot of
// the svg element comes back as PNG, optionally re-encoded as JPEG.
// Results are cached by content hash when a cache is provided; browser
// startup dominates the cost, so hits skip it entirely.
func Raster(ctx context.Context, svgData []byte, opts RasterOptions, store cache.Cache) ([]byte, error) {
	opts = opts.normalize()
	if opts.Format != FormatPNG && opts.Format != FormatJPEG {
		return nil, errors.New(errors.ErrCodeUnsupported, "raster format %q", opts.Format)
	}

	key := cache.Key("raster", cache.Hash(svgData), opts.Format, opts.Width, opts.Quality)
	if store != nil {
		if data, hit, err := store.Get(ctx, key); err == nil && hit {
			return data, nil
		}
	}

	shot, err := screenshot(ctx, svgData, opts.Width)
	if err != nil {
		return nil, err
	}

	out := shot
	if opts.Format == FormatJPEG {
		if out, err = toJPEG(shot, opts.Quality); err != nil {
			return nil, err
		}
	}

	if store != nil {
		// Best effort: a full cache must not fail the export.
		_ = store.Set(ctx, key, out, 0)
	}
	return out, nil
}

func screenshot(ctx context.Context, svgData []byte, width int) ([]byte, error) {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svgData)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	if width > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(width, width))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	err := chromedp.Run(browserCtx, chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "headless browser screenshot")
	}
	if len(buf) == 0 {
		return nil, errors.New(errors.ErrCodeRender, "empty screenshot")
	}
	return buf, nil
}

func toJPEG(pngData []byte, quality int) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "decoding screenshot")
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encoding jpeg")
	}
	return buf.Bytes(), nil
}
