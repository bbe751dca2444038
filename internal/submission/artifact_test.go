package submission

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/session"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "Ada", "Ada", false},
		{"inner spaces", "Ada  Lovelace", "Ada__Lovelace", false},
		{"trimmed", "  Grace Hopper \n", "Grace_Hopper", false},
		{"empty", "", "", true},
		{"whitespace only", "   \t", "", true},
		{"parent dir", "../.github/workflows/x", "_.github_workflows_x", false},
		{"backslashes", `..\..\evil`, "_.._evil", false},
		{"hidden", ".bashrc", "bashrc", false},
		{"only separators", "../", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProgressImage(t *testing.T) {
	statuses := make([]session.Status, 20)
	for i := range statuses {
		statuses[i] = session.StatusLocked
	}
	statuses[0] = session.StatusSolved
	statuses[1] = session.StatusSkipped

	data, err := ProgressImage(statuses)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, ImageWidth, img.Bounds().Dx())
	assert.Equal(t, ImageHeight, img.Bounds().Dy())

	// 480/20 = 24 px per cell; sample cell interiors.
	rgba := func(x, y int) [3]uint32 {
		r, g, b, _ := img.At(x, y).RGBA()
		return [3]uint32{r >> 8, g >> 8, b >> 8}
	}
	assert.Equal(t, [3]uint32{0x2e, 0xcc, 0x71}, rgba(10, 20), "solved cell")
	assert.Equal(t, [3]uint32{0xe6, 0x7e, 0x22}, rgba(34, 20), "skipped cell")
	assert.Equal(t, [3]uint32{0xcc, 0xcc, 0xcc}, rgba(58, 20), "locked cell")
	assert.Equal(t, [3]uint32{0, 0, 0}, rgba(0, 20), "outline")
	assert.Equal(t, [3]uint32{0xff, 0xff, 0xff}, rgba(23, 20), "gap")
}

func TestProgressImage_Empty(t *testing.T) {
	data, err := ProgressImage(nil)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestAnswersCSV(t *testing.T) {
	catalog := exercises.All()
	state := session.NewSessionState(len(catalog))
	state.Statuses[0] = session.StatusSolved
	state.Answers[0] = "SELECT title, year\nFROM books;"
	state.Statuses[2] = session.StatusSkipped
	state.Answers[2] = catalog[2].Solution

	data, err := AnswersCSV(catalog, state)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(catalog)+1)

	assert.Equal(t, []string{"Exercise", "Prompt", "Answer", "Status"}, records[0])
	assert.Equal(t, []string{"1", catalog[0].Prompt, "SELECT title, year\nFROM books;", "solved"}, records[1])
	assert.Equal(t, []string{"2", catalog[1].Prompt, "", "locked"}, records[2])
	assert.Equal(t, "3", records[3][0])
	assert.Equal(t, "skipped", records[3][3])
	for _, r := range records {
		assert.Len(t, r, 4)
	}
}

func TestAnswersCSV_LengthMismatch(t *testing.T) {
	_, err := AnswersCSV(exercises.All(), session.NewSessionState(3))
	require.Error(t, err)
}

func TestPackage(t *testing.T) {
	catalog := exercises.All()
	state := session.NewSessionState(len(catalog))

	b, err := Package("  Ada Lovelace ", catalog, state)
	require.NoError(t, err)

	assert.Equal(t, "Ada_Lovelace", b.SafeName)
	require.Len(t, b.Artifacts, 2)
	assert.Equal(t, "Ada_Lovelace_progress.png", b.Artifacts[0].Path)
	assert.Equal(t, "Progress Ada Lovelace", b.Artifacts[0].Message)
	assert.Equal(t, "Ada_Lovelace_answers.csv", b.Artifacts[1].Path)
	assert.Equal(t, "Answers Ada Lovelace", b.Artifacts[1].Message)

	_, err = Package(" ", catalog, state)
	assert.ErrorIs(t, err, ErrMissingName)
}
