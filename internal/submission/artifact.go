// Package submission packages a learner's final progress into two
// artifacts, a colour-coded PNG strip and a CSV answer log, and stores
// them through a Sink.
package submission

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/session"
)

// ErrMissingName is returned when the learner name is blank. Nothing is
// uploaded.
var ErrMissingName = errors.New("learner name is required")

// Progress image geometry.
const (
	ImageWidth  = 480
	ImageHeight = 40
	cellGap     = 2
)

var (
	colorLocked  = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorSolved  = color.RGBA{0x2e, 0xcc, 0x71, 0xff}
	colorSkipped = color.RGBA{0xe6, 0x7e, 0x22, 0xff}
	colorOutline = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// StatusColor returns the fill colour used for st.
func StatusColor(st session.Status) color.RGBA {
	switch st {
	case session.StatusSolved:
		return colorSolved
	case session.StatusSkipped:
		return colorSkipped
	}
	return colorLocked
}

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// SafeName trims name and turns it into a single path element: spaces and
// path separators become underscores and leading dots are dropped.
func SafeName(name string) (string, error) {
	name = nameReplacer.Replace(strings.TrimSpace(name))
	name = strings.TrimLeft(name, ".")
	if strings.Trim(name, "_") == "" {
		return "", ErrMissingName
	}
	return name, nil
}

// Artifact is one file to store.
type Artifact struct {
	Path    string // file name relative to the sink root
	Data    []byte
	Message string // commit message
}

// Bundle is everything one submission uploads.
type Bundle struct {
	Name      string // as typed by the learner
	SafeName  string
	Artifacts []Artifact
}

// Package renders the progress image and answer log for state.
func Package(name string, catalog []exercises.Exercise, state *session.SessionState) (*Bundle, error) {
	safe, err := SafeName(name)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	img, err := ProgressImage(state.Statuses)
	if err != nil {
		return nil, err
	}
	log, err := AnswersCSV(catalog, state)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Name:     name,
		SafeName: safe,
		Artifacts: []Artifact{
			{Path: safe + "_progress.png", Data: img, Message: "Progress " + name},
			{Path: safe + "_answers.csv", Data: log, Message: "Answers " + name},
		},
	}, nil
}

// ProgressImage draws one cell per exercise on a white 480x40 canvas. Each
// cell is 480/N pixels wide with a 2-pixel gap and a black outline.
func ProgressImage(statuses []session.Status) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, ImageWidth, ImageHeight))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	if n := len(statuses); n > 0 {
		w := ImageWidth / n
		for i, st := range statuses {
			x0, x1 := i*w, (i+1)*w-cellGap
			fillCell(img, x0, x1, StatusColor(st))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode progress image: %w", err)
	}
	return buf.Bytes(), nil
}

// fillCell paints columns [x0, x1] over the full height with an outline.
func fillCell(img *image.RGBA, x0, x1 int, fill color.RGBA) {
	for x := x0; x <= x1; x++ {
		for y := 0; y < ImageHeight; y++ {
			c := fill
			if x == x0 || x == x1 || y == 0 || y == ImageHeight-1 {
				c = colorOutline
			}
			img.SetRGBA(x, y, c)
		}
	}
}

// AnswersCSV writes one row per exercise: number, prompt, last answer and
// status.
func AnswersCSV(catalog []exercises.Exercise, state *session.SessionState) ([]byte, error) {
	if len(catalog) != state.Len() {
		return nil, fmt.Errorf("answers csv: %d exercises but %d statuses", len(catalog), state.Len())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Exercise", "Prompt", "Answer", "Status"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, ex := range catalog {
		row := []string{strconv.Itoa(ex.Number()), ex.Prompt, state.Answers[i], string(state.Statuses[i])}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
