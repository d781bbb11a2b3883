package domain

// Message 归一化调用结果，调用方无需了解具体供应商
type Message struct {
	Code    Code   `json:"code"`
	SubCode string `json:"subCode,omitempty"` // 供应商原始状态码
	Msg     string `json:"msg,omitempty"`
	Data    any    `json:"data,omitempty"` // 供应商原始响应
}

func NewMessage(code Code, subCode, msg string, data any) Message {
	if !code.IsValid() {
		code = CodeFailure
	}
	return Message{
		Code:    code,
		SubCode: subCode,
		Msg:     msg,
		Data:    data,
	}
}

func NewSuccess(subCode, msg string, data any) Message {
	return NewMessage(CodeSuccess, subCode, msg, data)
}

func NewFailure(subCode, msg string) Message {
	return NewMessage(CodeFailure, subCode, msg, nil)
}

// NewUnsupported 供应商不支持 op 时返回
func NewUnsupported(vendor string, op Operation) Message {
	return NewMessage(CodeUnsupported, "", vendor+" 不支持 "+string(op)+" 操作", nil)
}

func (m Message) IsSuccess() bool {
	return m.Code == CodeSuccess
}
