package legacy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`{
		"images": [
			{
				"filename": "sunset.jpg",
				"title": "Sunset",
				"categories": [{"name": "Landscapes"}, {"name": " "}, "Nature"],
				"camera": "Canon EOS R5",
				"iso": "400"
			},
			{
				"filename": "owl.jpg",
				"camera_make": "Nikon",
				"camera_model": "D850",
				"iso": 1600,
				"categories": null
			},
			{"filename": "x.jpg", "iso": "auto"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, doc.Images, 3)

	sunset := doc.Images[0]
	assert.Equal(t, CategoryList{"Landscapes", "Nature"}, sunset.Categories)
	assert.Equal(t, LooseInt(400), sunset.ISO)
	mk, model := sunset.cameraMakeModel()
	assert.Equal(t, "Canon", mk)
	assert.Equal(t, "EOS R5", model)

	owl := doc.Images[1]
	assert.Nil(t, owl.Categories)
	assert.Equal(t, LooseInt(1600), owl.ISO)
	mk, model = owl.cameraMakeModel()
	assert.Equal(t, "Nikon", mk)
	assert.Equal(t, "D850", model)

	assert.Equal(t, LooseInt(0), doc.Images[2].ISO)
}

func TestReadDocument_Invalid(t *testing.T) {
	_, err := ReadDocument(strings.NewReader(`{"images": [{"categories": [42]}]}`))
	assert.ErrorContains(t, err, "unsupported entry")

	_, err = ReadDocument(strings.NewReader(`not json`))
	assert.Error(t, err)
}
