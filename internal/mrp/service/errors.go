package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput 调用方输入不合法（缺零件号、缺类型、空搜索等）
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError 属性值校验失败，Attribute 为空时表示聚合的必填缺失错误
type ValidationError struct {
	Attribute string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("属性 %s: %s", e.Attribute, e.Message)
	}
	return e.Message
}
