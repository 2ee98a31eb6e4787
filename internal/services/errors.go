package services

import (
	"errors"
	"fmt"
	"time"
)

// 哨兵错误，handler 层用 errors.Is 映射到对应的状态码；
// 不属于任何哨兵的错误视为存储层错误，返回 500
var (
	ErrNotFound   = errors.New("资源不存在")
	ErrForbidden  = errors.New("无权限执行该操作")
	ErrValidation = errors.New("验证失败")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
