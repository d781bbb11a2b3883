package domain

// Code 归一化结果码，所有供应商的状态最终都映射到这里
type Code string

const (
	CodeSuccess     Code = "SUCCESS"     // 供应商确认受理
	CodeFailure     Code = "FAILURE"     // 校验、传输或业务失败
	CodeUnsupported Code = "UNSUPPORTED" // 供应商未实现该操作
)

func (c Code) IsValid() bool {
	switch c {
	case CodeSuccess, CodeFailure, CodeUnsupported:
		return true
	default:
		return false
	}
}

func (c Code) String() string {
	return string(c)
}

// StatusTable 供应商状态到归一化结果码的映射表
// 构造后只读，可在并发调用之间共享。未登记的状态一律视为 CodeFailure。
type StatusTable struct {
	entries map[string]Code
}

func NewStatusTable(entries map[string]Code) StatusTable {
	m := make(map[string]Code, len(entries))
	for status, code := range entries {
		if !code.IsValid() {
			code = CodeFailure
		}
		m[status] = code
	}
	return StatusTable{entries: m}
}

// Lookup 查找状态对应的结果码
func (t StatusTable) Lookup(status string) Code {
	code, ok := t.entries[status]
	if !ok {
		return CodeFailure
	}
	return code
}

// Covers 状态是否在表中显式登记
func (t StatusTable) Covers(status string) bool {
	_, ok := t.entries[status]
	return ok
}

func (t StatusTable) Len() int {
	return len(t.entries)
}

// Statuses 返回表中登记的全部状态，顺序不固定
func (t StatusTable) Statuses() []string {
	res := make([]string, 0, len(t.entries))
	for status := range t.entries {
		res = append(res, status)
	}
	return res
}
