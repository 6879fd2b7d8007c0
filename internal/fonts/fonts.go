package fonts

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var ErrFontNotFound = errors.New("font file not found")

// Font is a parsed TrueType/OpenType font shared by the chart and PDF composers.
// Faces are cached per point size; Font is safe for concurrent use.
type Font struct {
	path  string
	data  []byte
	otf   *opentype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
		}
		return nil, fmt.Errorf("read font [%s]: %w", path, err)
	}
	f, err := FromBytes(data)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

func FromBytes(data []byte) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Font{
		data:  data,
		otf:   otf,
		faces: make(map[float64]font.Face),
	}, nil
}

// GoRegular is the bundled Go font. It has no CJK glyphs.
func GoRegular() *Font {
	f, err := FromBytes(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("bundled go font: %s", err))
	}
	f.path = "goregular"
	return f
}

func (f *Font) Path() string {
	return f.path
}

// Bytes returns the raw font file, e.g. for embedding into a PDF.
func (f *Font) Bytes() []byte {
	return f.data
}

func (f *Font) Face(points float64) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[points]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %.1fpt: %w", points, err)
	}
	f.faces[points] = face
	return face, nil
}
