package domain

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	// ResetCode holds a pending password-reset code; cleared once consumed.
	ResetCode          *string `json:"-"`
	ResetCodeExpiresOn *string `json:"-"`
	CreatedOn          string  `json:"created_on"`
}
