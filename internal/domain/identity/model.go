package identity

// User maps to the users table. Accounts are created only by seeding;
// passwords are stored in plaintext for compatibility with existing
// hospital.db files.
type User struct {
	ID        int64  `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Password  string `db:"password" json:"-"`
	Role      string `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
