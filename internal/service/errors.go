package service

// 业务错误分四类：输入问题、权限问题（软/硬）、目标不存在、持久化失败。
// transport 层据此决定响应码和跳转提示，原始 DB 错误不外露。

type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(msg string) error { return &ValidationError{Msg: msg} }

// AuthorizationError Soft=true 表示"带提示跳回商品页"，而不是硬 403
type AuthorizationError struct {
	Msg  string
	Soft bool
}

func (e *AuthorizationError) Error() string { return e.Msg }

func NotAllowed() error { return &AuthorizationError{Msg: "Not allowed.", Soft: true} }
func Forbidden(msg string) error {
	return &AuthorizationError{Msg: msg}
}

type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

func NotFound(msg string) error { return &NotFoundError{Msg: msg} }

type PersistenceError struct{ Err error }

func (e *PersistenceError) Error() string { return "storage failure" }
func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Err: err}
}
