package domain

type Permission string

const (
	PermCreateUnclaimed Permission = "unclaimed:create"
	PermUpdateUnclaimed Permission = "unclaimed:update"
	PermDeleteUnclaimed Permission = "unclaimed:delete"
	PermMarkCollected   Permission = "unclaimed:mark_collected"
	PermViewUnclaimed   Permission = "unclaimed:view"
	PermCreateUser      Permission = "user:create"
	PermUpdateUser      Permission = "user:update"
	PermDeleteUser      Permission = "user:delete"
	PermViewUsers       Permission = "user:view"
	PermViewReports     Permission = "report:view"
	PermExportReports   Permission = "report:export"
)

var Permissions = []Permission{
	PermCreateUnclaimed,
	PermUpdateUnclaimed,
	PermDeleteUnclaimed,
	PermMarkCollected,
	PermViewUnclaimed,
	PermCreateUser,
	PermUpdateUser,
	PermDeleteUser,
	PermViewUsers,
	PermViewReports,
	PermExportReports,
}

// Attributed is a record that may be assigned to a collector.
type Attributed interface {
	AssignedCollector() string
}
