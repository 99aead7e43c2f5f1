package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func TestGenerateImageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "id1.jpg"},
		{"my.house.photo.png", "id1.id2.id3.png"},
		{"noext", "id1"},
		{"trailing.", "id1"},
		{"../../etc/passwd.txt", "id1.txt"},
		{`C:\images\room.jpeg`, "id1.jpeg"},
		{".jpg", "id1.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, generateImageName(tt.in, sequentialIDs()))
		})
	}
}

func TestGenerateImageName_Random(t *testing.T) {
	a := GenerateImageName("photo.jpg")
	b := GenerateImageName("photo.jpg")

	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^[0-9a-f-]{36}\.jpg$`, a)
}
