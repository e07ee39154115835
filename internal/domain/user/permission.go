package user

type Permission string

const (
	// Master data
	PermissionMasterView   Permission = "master.view"
	PermissionMasterManage Permission = "master.manage"

	// Jobs
	PermissionJobView   Permission = "job.view"
	PermissionJobManage Permission = "job.manage"

	// Vehicle expenses
	PermissionExpenseManage Permission = "expense.manage"

	// Client payments
	PermissionPaymentManage Permission = "payment.manage"

	// Attendance
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionAttendanceManage Permission = "attendance.manage"

	// Payroll
	PermissionSalaryManage Permission = "salary.manage"

	// Billing
	PermissionBillManage Permission = "bill.manage"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionMasterView,
		PermissionMasterManage,
		PermissionJobView,
		PermissionJobManage,
		PermissionExpenseManage,
		PermissionPaymentManage,
		PermissionAttendanceView,
		PermissionAttendanceManage,
		PermissionSalaryManage,
		PermissionBillManage,
		PermissionReportsView,
		PermissionDashboardView,
	},
	RoleAccountant: {
		PermissionMasterView,
		PermissionJobView,
		PermissionExpenseManage,
		PermissionPaymentManage,
		PermissionAttendanceView,
		PermissionSalaryManage,
		PermissionBillManage,
		PermissionReportsView,
		PermissionDashboardView,
	},
	RoleOperator: {
		PermissionMasterView,
		PermissionJobView,
		PermissionJobManage,
		PermissionExpenseManage,
		PermissionAttendanceView,
		PermissionAttendanceManage,
		PermissionDashboardView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
