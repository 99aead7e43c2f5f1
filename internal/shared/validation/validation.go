// Package validation はフィールド単位の入力エラーを扱います。
// バインディング時のバリデーションエラーと、メールアドレス重複のような業務ルール上のエラーを同じ形で返します。
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldErrors はフィールド名（JSON名）からエラーメッセージへの対応です。
type FieldErrors map[string]string

// Error implements error.
func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add はフィールドにメッセージを設定します。最初に設定されたメッセージを優先します。
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Err はエラーがあれば自身を、無ければ nil を返します。
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// Setup はginのバリデーターがエラーのフィールド名にJSONタグ名を使うよう設定します。起動時に1回呼びます。
func Setup() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// FromBinding はバインディングエラーを FieldErrors に変換します。
// バリデーション以外のエラー（JSON構文エラーなど）の場合は false を返します。
func FromBinding(err error) (FieldErrors, bool) {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil, false
	}
	out := FieldErrors{}
	for _, fe := range ves {
		out.Add(fe.Field(), message(fe))
	}
	return out, true
}

func message(fe validator.FieldError) string {
	numeric := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch fe.Tag() {
	case "required":
		return "入力してください。"
	case "email":
		return "メールアドレスは正しい形式で入力してください。"
	case "min", "gte":
		if numeric {
			return fmt.Sprintf("%s以上の値を入力してください。", fe.Param())
		}
		return fmt.Sprintf("%s文字以上で入力してください。", fe.Param())
	case "max", "lte":
		if numeric {
			return fmt.Sprintf("%s以下の値を入力してください。", fe.Param())
		}
		return fmt.Sprintf("%s文字以内で入力してください。", fe.Param())
	case "datetime":
		return "日付はYYYY-MM-DD形式で入力してください。"
	case "oneof":
		return fmt.Sprintf("次のいずれかを指定してください: %s", fe.Param())
	default:
		return "入力内容が正しくありません。"
	}
}

// Respond はバインディングエラーをレスポンスに変換します。
// バリデーションエラーは422とフィールド別メッセージ、それ以外は400を返します。
func Respond(c *gin.Context, err error) {
	if fe, ok := FromBinding(err); ok {
		RespondFields(c, fe)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

// RespondFields はフィールドエラーを422で返します。
func RespondFields(c *gin.Context, fe FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fe})
}
