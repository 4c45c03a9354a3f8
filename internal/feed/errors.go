package feed

import (
	"fmt"
)

// ValidationError 过滤参数非法（未知模式、极性、物种或坏游标）
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数 %s 非法: %s", e.Field, e.Reason)
}

// LoadErrorKind 区分加载失败的原因：网络传输 vs 查询本身
type LoadErrorKind string

const (
	LoadErrorNetwork LoadErrorKind = "network"
	LoadErrorQuery   LoadErrorKind = "query"
)

// LoadError 持久层失败，调用方决定是否重试（引擎不自动重试）
type LoadError struct {
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("feed 加载失败(%s): %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func NewNetworkError(err error) *LoadError {
	return &LoadError{Kind: LoadErrorNetwork, Err: err}
}

func NewQueryError(err error) *LoadError {
	return &LoadError{Kind: LoadErrorQuery, Err: err}
}
