package queue

import (
	"encoding/json"

	"github.com/laptopstore-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVerifyEmail 验证邮件发送任务
	TaskVerifyEmail = constants.TaskVerifyEmail
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
)

// VerifyEmailPayload 验证邮件任务载荷
type VerifyEmailPayload struct {
	UserID  uint   `json:"user_id"`
	Token   string `json:"token"`
	Purpose string `json:"purpose"`
	Locale  string `json:"locale"`
}

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
	Locale  string `json:"locale"`
}

// NewVerifyEmailTask 创建验证邮件任务
func NewVerifyEmailTask(payload VerifyEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerifyEmail, body), nil
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}
