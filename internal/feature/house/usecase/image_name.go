package usecase

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateImageName はアップロードされたファイル名から保存用のファイル名を生成します。
// ドット区切りの各要素のうち拡張子以外をランダムなUUIDに置き換えます（photo.jpg → <uuid>.jpg）。
// 拡張子のないファイル名は全体をUUIDにします。
func GenerateImageName(original string) string {
	return generateImageName(original, uuid.NewString)
}

func generateImageName(original string, newID func() string) string {
	// パス区切りを含む名前はファイル名部分だけを使う
	if i := strings.LastIndexAny(original, `/\`); i >= 0 {
		original = original[i+1:]
	}
	parts := strings.Split(original, ".")
	if len(parts) < 2 || parts[len(parts)-1] == "" {
		return newID()
	}
	for i := 0; i < len(parts)-1; i++ {
		parts[i] = newID()
	}
	return strings.Join(parts, ".")
}
