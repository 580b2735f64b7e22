package repository

import (
	"strings"

	"gorm.io/gorm"
)

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// likeOperator 按数据库方言返回模糊匹配操作符，postgres 使用不区分大小写的 ILIKE。
func likeOperator(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "LIKE"
	}
	switch strings.ToLower(strings.TrimSpace(db.Dialector.Name())) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}
