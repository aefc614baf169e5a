package entity

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleLab          = "lab"
	RolePharmacy     = "pharmacy"
	RoleReceptionist = "receptionist"
)

// Roles lista de roles aceptados en el registro.
var Roles = []string{RoleAdmin, RoleDoctor, RoleNurse, RoleLab, RolePharmacy, RoleReceptionist}

// RegisteredUser usuario registrado tal como se persiste en la lista "users".
// La contraseña se guarda en claro: la consola es una simulación local de un solo usuario.
type RegisteredUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
	Password   string `json:"password"`
}

// SessionUser forma de usuario que se persiste como sesión actual ("currentUser").
type SessionUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// SessionUser vista sin contraseña del usuario registrado.
func (u RegisteredUser) SessionUser() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Department: u.Department}
}

// Fields campos del registro de la colección user.
func (u RegisteredUser) Fields() map[string]any {
	status := u.Status
	if status == "" {
		status = "active"
	}
	return map[string]any{
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"department": u.Department,
		"status":     status,
	}
}

// IsWellFormed una sesión persistida es válida si trae id, email y rol.
func (u SessionUser) IsWellFormed() bool {
	return u.ID != "" && u.Email != "" && u.Role != ""
}
