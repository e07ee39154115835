package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionBillManage))
	assert.True(t, HasPermission(RoleAccountant, PermissionSalaryManage))
	assert.False(t, HasPermission(RoleAccountant, PermissionAttendanceManage))
	assert.True(t, HasPermission(RoleOperator, PermissionJobManage))
	assert.False(t, HasPermission(RoleOperator, PermissionReportsView))
	assert.False(t, HasPermission(Role("guest"), PermissionMasterView))
}

func TestCreateUserRequest_Validate(t *testing.T) {
	req := CreateUserRequest{Name: "Ravi", Email: " Ravi@Example.com ", Password: "password123", Role: "accountant"}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "ravi@example.com", req.Email)

	bad := CreateUserRequest{Email: "nope", Password: "short", Role: "owner"}
	err := bad.Validate()
	assert.Error(t, err)
	assert.Len(t, err.(interface{ ToMap() map[string]string }).ToMap(), 4)
}
