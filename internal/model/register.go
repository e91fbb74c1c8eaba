package model

import "time"

// Register module identifiers. Every module shares the same record shape;
// module-specific fields live in the Fields map.
const (
	ModuleImprovement = "improvement"
	ModuleLegal       = "legal"
	ModuleSupplier    = "supplier"
	ModuleMaintenance = "maintenance"
	ModuleEmployee    = "employee"
	ModuleSkill       = "skill"
)

var modules = map[string]bool{
	ModuleImprovement: true,
	ModuleLegal:       true,
	ModuleSupplier:    true,
	ModuleMaintenance: true,
	ModuleEmployee:    true,
	ModuleSkill:       true,
}

// ValidModule reports whether name is a known register module.
func ValidModule(name string) bool {
	return modules[name]
}

// Modules returns the known register module names.
func Modules() []string {
	return []string{
		ModuleImprovement,
		ModuleLegal,
		ModuleSupplier,
		ModuleMaintenance,
		ModuleEmployee,
		ModuleSkill,
	}
}

// RegisterRecord is a top-level entry in one of the compliance registers.
// Archived records stay queryable but are excluded from default listings.
type RegisterRecord struct {
	ID        string         `json:"id"`
	Module    string         `json:"module"`
	Title     string         `json:"title"`
	Status    string         `json:"status,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	Archived  bool           `json:"archived"`
	CreatedBy string         `json:"created_by"`
	UpdatedBy string         `json:"updated_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
