package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTable_Lookup(t *testing.T) {
	t.Parallel()

	entries := map[string]Code{
		"200":     CodeSuccess,
		"500":     CodeFailure,
		"illegal": Code("WHATEVER"),
	}
	table := NewStatusTable(entries)
	// 构造后修改原始 map 不影响映射表
	entries["500"] = CodeSuccess
	entries["404"] = CodeSuccess

	testCases := []struct {
		name       string
		status     string
		wantCode   Code
		wantCovers bool
	}{
		{
			name:       "已登记的成功状态",
			status:     "200",
			wantCode:   CodeSuccess,
			wantCovers: true,
		},
		{
			name:       "已登记的失败状态",
			status:     "500",
			wantCode:   CodeFailure,
			wantCovers: true,
		},
		{
			name:       "非法结果码被归一化为失败",
			status:     "illegal",
			wantCode:   CodeFailure,
			wantCovers: true,
		},
		{
			name:       "未登记的状态视为失败",
			status:     "404",
			wantCode:   CodeFailure,
			wantCovers: false,
		},
		{
			name:       "空状态视为失败",
			status:     "",
			wantCode:   CodeFailure,
			wantCovers: false,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantCode, table.Lookup(tc.status))
			assert.Equal(t, tc.wantCovers, table.Covers(tc.status))
		})
	}
	assert.Equal(t, 3, table.Len())
	assert.ElementsMatch(t, []string{"200", "500", "illegal"}, table.Statuses())
}

func TestStatusTable_Zero(t *testing.T) {
	t.Parallel()
	var table StatusTable
	assert.Equal(t, CodeFailure, table.Lookup("OK"))
	assert.Equal(t, 0, table.Len())
}

func TestMessage(t *testing.T) {
	t.Parallel()

	msg := NewMessage(Code("unknown"), "X", "detail", nil)
	assert.Equal(t, CodeFailure, msg.Code)
	assert.False(t, msg.IsSuccess())

	msg = NewSuccess("OK", "成功", map[string]string{"bizId": "1"})
	assert.True(t, msg.IsSuccess())
	assert.Equal(t, "OK", msg.SubCode)

	msg = NewFailure("isv.MOBILE_NUMBER_ILLEGAL", "号码非法")
	assert.Equal(t, CodeFailure, msg.Code)
	assert.Nil(t, msg.Data)

	msg = NewUnsupported("jdcloud", OperationRefund)
	assert.Equal(t, CodeUnsupported, msg.Code)
	assert.Contains(t, msg.Msg, "jdcloud")
	assert.Contains(t, msg.Msg, "refund")
}
