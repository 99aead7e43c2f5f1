package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	Setup()
	os.Exit(m.Run())
}

type sampleRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Score    int    `json:"score" binding:"required,min=1,max=5"`
	Content  string `json:"content" binding:"max=3"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var req sampleRequest
	return c.ShouldBindJSON(&req)
}

func TestFromBinding_UsesJSONNamesAndMessages(t *testing.T) {
	err := bind(t, `{"email":"not-an-email","password":"short","score":9,"content":"abcd"}`)
	require.Error(t, err)

	fe, ok := FromBinding(err)

	require.True(t, ok)
	assert.Equal(t, "メールアドレスは正しい形式で入力してください。", fe["email"])
	assert.Equal(t, "8文字以上で入力してください。", fe["password"])
	assert.Equal(t, "5以下の値を入力してください。", fe["score"])
	assert.Equal(t, "3文字以内で入力してください。", fe["content"])
}

func TestFromBinding_Required(t *testing.T) {
	err := bind(t, `{}`)
	require.Error(t, err)

	fe, ok := FromBinding(err)

	require.True(t, ok)
	assert.Equal(t, "入力してください。", fe["email"])
	assert.Equal(t, "入力してください。", fe["password"])
}

func TestFromBinding_NonValidationError(t *testing.T) {
	fe, ok := FromBinding(errors.New("unexpected EOF"))

	assert.False(t, ok)
	assert.Nil(t, fe)
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	assert.NoError(t, fe.Err())

	fe.Add("email", "first")
	fe.Add("email", "second")
	fe.Add("password", "mismatch")

	assert.Equal(t, "first", fe["email"])
	require.Error(t, fe.Err())
	assert.Equal(t, "validation failed: email: first, password: mismatch", fe.Error())
}

func TestRespond(t *testing.T) {
	t.Run("validation error returns 422 with fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, bind(t, `{"email":"a@example.com","password":"password1"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var body struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Fields, "score")
	})

	t.Run("malformed json returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, bind(t, `{"email":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
