package domain

type TicketStatus string

const (
	TicketPlanned    TicketStatus = "planned"
	TicketInProgress TicketStatus = "in-progress"
	TicketCompleted  TicketStatus = "completed"
)

// ValidTicketStatuses is the canonical set of accepted ticket status strings.
var ValidTicketStatuses = map[string]bool{
	"planned": true, "in-progress": true, "completed": true,
}

type PhaseType string

const (
	PhaseDevWindow  PhaseType = "DevWindow"
	PhaseTesting    PhaseType = "Testing"
	PhaseDeployment PhaseType = "Deployment"
	PhaseApproval   PhaseType = "Approval"
	PhaseLaunch     PhaseType = "Launch"
	PhaseCustom     PhaseType = "Custom"
)

// ValidPhaseTypes is the canonical set of accepted phase type strings.
var ValidPhaseTypes = map[string]bool{
	"DevWindow": true, "Testing": true, "Deployment": true,
	"Approval": true, "Launch": true, "Custom": true,
}

type Role string

const (
	RoleDeveloper Role = "Developer"
	RoleDesigner  Role = "Designer"
	RoleQA        Role = "QA"
)

// ValidRoles is the canonical set of accepted team member roles.
var ValidRoles = map[string]bool{
	"Developer": true, "Designer": true, "QA": true,
}

// UnassignedName is the placeholder assignee used by imports for unowned tickets.
const UnassignedName = "Unassigned"
