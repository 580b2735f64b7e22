package admin

import (
	"net/url"
	"strconv"

	"github.com/laptopstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetStaffRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 获取当前操作者权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	actorID, ok := getActorID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetStaffRoles(actorID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	policies, err := h.AuthzService.GetStaffPolicies(actorID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	role := ""
	if value, exists := c.Get("user_role"); exists {
		if r, typeOK := value.(string); typeOK {
			role = r
		}
	}

	response.Success(c, gin.H{
		"user_id":  actorID,
		"role":     role,
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	requestLog(c).Infow("admin_authz_role_created", "role", role)
	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole 删除角色及其策略
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role, err := url.PathUnescape(c.Param("role"))
	if err != nil || role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	requestLog(c).Infow("admin_authz_role_deleted", "role", role)
	response.Success(c, gin.H{"deleted": true})
}

// GetAuthzRolePolicies 查询角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role, err := url.PathUnescape(c.Param("role"))
	if err != nil || role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 为角色授予策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	requestLog(c).Infow("admin_authz_policy_granted", "role", req.Role, "object", req.Object, "action", req.Action)
	response.Success(c, gin.H{"granted": true})
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	requestLog(c).Infow("admin_authz_policy_revoked", "role", req.Role, "object", req.Object, "action", req.Action)
	response.Success(c, gin.H{"revoked": true})
}

// GetAuthzStaffRoles 查询员工授权角色
func (h *Handler) GetAuthzStaffRoles(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	roles, err := h.AuthzService.GetStaffRoles(uint(id))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"user_id": id, "roles": roles})
}

// SetAuthzStaffRoles 覆盖设置员工授权角色
func (h *Handler) SetAuthzStaffRoles(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req authzSetStaffRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.SetStaffRoles(uint(id), req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	requestLog(c).Infow("admin_authz_staff_roles_set", "target_user_id", id, "roles", req.Roles)
	response.Success(c, gin.H{"user_id": id, "roles": req.Roles})
}
