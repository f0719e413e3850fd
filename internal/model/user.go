// internal/model/user.go
package model

type User struct {
    ID       int    `db:"id" json:"id"`
    Email    string `db:"email" json:"email"`
    Name     string `db:"name" json:"name"`
    GoogleID string `db:"google_id" json:"-"`
}
