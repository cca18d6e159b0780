package response

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
	// Redirect 非空时前端应带着 msg 跳转过去；
	// 软性授权失败（如他人订单的会话）走这个通道而不是硬 403
	Redirect string `json:"redirect,omitempty"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// OKMsg 成功但要给用户看一句话（"Added to cart." 之类）
func OKMsg(msg string, data interface{}) Resp {
	r := New(CodeOK, msg, data)
	return r
}

func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

func Redirect(code int, msg, to string) Resp {
	r := Error(code, msg)
	r.Redirect = to
	return r
}
