package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func emailPtr(email string) *string {
	return &email
}

func TestUserIsAdmin(t *testing.T) {
	patient := User{Email: emailPtr("p@x.com"), Role: RolePatient}
	admin := User{Email: emailPtr("a@x.com"), Role: RoleAdmin}

	assert.False(t, patient.IsAdmin())
	assert.True(t, admin.IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

func TestUserEmailUnique(t *testing.T) {
	db := setupTestDB(t, "user_unique", &User{})

	first := User{Name: "John", Email: emailPtr("john@example.com"), Role: RolePatient}
	assert.NoError(t, db.Create(&first).Error)

	dup := User{Name: "Johnny", Email: emailPtr("john@example.com"), Role: RolePatient}
	assert.Error(t, db.Create(&dup).Error)
}

func TestUserNilEmailsDoNotCollide(t *testing.T) {
	db := setupTestDB(t, "user_nil_email", &User{})

	// Role records created before registration carry no email; the unique
	// index must not reject a second one.
	first := User{Role: RoleAdmin}
	first.ID = 4242
	assert.NoError(t, db.Create(&first).Error)

	second := User{Role: RoleAdmin}
	second.ID = 4343
	assert.NoError(t, db.Create(&second).Error)
}
