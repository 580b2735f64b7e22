package service

import (
	"strings"

	"github.com/laptopstore-next/internal/constants"
)

// allowedTransitions 订单状态流转图
// delivered 与 cancelled 为终态
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipping:  true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipping: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

// CanTransitionOrderStatus 判断订单状态能否从 from 流转到 to
func CanTransitionOrderStatus(from, to string) bool {
	normalizedFrom := strings.ToLower(strings.TrimSpace(from))
	normalizedTo := strings.ToLower(strings.TrimSpace(to))
	if normalizedFrom == "" || normalizedTo == "" || normalizedFrom == normalizedTo {
		return false
	}
	targets, ok := allowedTransitions[normalizedFrom]
	if !ok {
		return false
	}
	return targets[normalizedTo]
}

// IsValidOrderStatus 状态值是否合法
func IsValidOrderStatus(status string) bool {
	_, ok := allowedTransitions[strings.ToLower(strings.TrimSpace(status))]
	return ok
}
