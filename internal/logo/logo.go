// Package logo holds the embedded logo and converts rasters into terminal
// cells.
package logo

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	_ "image/png"
	"sync"
)

//go:embed xno-light.png
var asset []byte

// DecodeError means the embedded asset could not be decoded. It indicates a
// broken build, not a runtime condition.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode embedded logo: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Embedded returns the decoded logo. The asset is decoded on first call and
// the result is shared for the life of the process.
var Embedded = sync.OnceValues(func() (image.Image, error) {
	return decode(asset)
})

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if b := img.Bounds(); b.Empty() {
		return nil, &DecodeError{Err: fmt.Errorf("empty image %v", b)}
	}
	return img, nil
}
