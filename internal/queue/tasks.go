package queue

import (
	"encoding/json"
	"errors"

	"github.com/duomart-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPricingChanged 商品定价变更事件
	TaskPricingChanged = constants.TaskPricingChanged
)

// ErrInvalidPayload 任务载荷非法
var ErrInvalidPayload = errors.New("invalid task payload")

// PricingChangedPayload 定价变更事件载荷（只携带商品 ID，不关心缓存如何组织）
type PricingChangedPayload struct {
	ProductID uint   `json:"product_id"`
	Version   int64  `json:"version"`
	Reason    string `json:"reason"`
}

// NewPricingChangedTask 创建定价变更任务
func NewPricingChangedTask(payload PricingChangedPayload) (*asynq.Task, error) {
	if payload.ProductID == 0 {
		return nil, ErrInvalidPayload
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPricingChanged, body), nil
}

// ParsePricingChangedPayload 解析定价变更任务载荷
func ParsePricingChangedPayload(task *asynq.Task) (PricingChangedPayload, error) {
	var payload PricingChangedPayload
	if task == nil {
		return payload, ErrInvalidPayload
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	if payload.ProductID == 0 {
		return payload, ErrInvalidPayload
	}
	return payload, nil
}
