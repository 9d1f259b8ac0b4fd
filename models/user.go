package models

const UserCollection = "user"

type RoleKind string

const (
	RolePlain        RoleKind = "plain"
	RoleNutritionist RoleKind = "nutritionist"
	RoleAdmin        RoleKind = "admin"
)

// Role carries the payload each kind needs: only a nutritionist has a list of
// delegated user ids.
type Role struct {
	Kind      RoleKind `json:"kind"`
	Delegated []string `json:"delegated,omitempty"`
}

func PlainRole() Role { return Role{Kind: RolePlain} }
func AdminRole() Role { return Role{Kind: RoleAdmin} }
func NutritionistRole(delegated ...string) Role {
	return Role{Kind: RoleNutritionist, Delegated: delegated}
}

// CanView reports whether a user with this role and their own id may read data
// owned by owner.
func (r Role) CanView(self, owner string) bool {
	if self == owner {
		return true
	}
	switch r.Kind {
	case RolePlain:
		return false
	case RoleNutritionist:
		for _, id := range r.Delegated {
			if id == owner {
				return true
			}
		}
		return false
	case RoleAdmin:
		return true
	default:
		return false
	}
}

// User is created lazily on the first authenticated request. ID is the stable
// username handed over by the identity provider.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) Collection() string { return UserCollection }
func (u User) Key() string        { return u.ID }
