// Package params はパスパラメータの読み取りを提供します。
package params

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ID はパスパラメータ name を正の整数IDとして読み取ります。
// 不正な値の場合は400を返して false を返します。
func ID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
