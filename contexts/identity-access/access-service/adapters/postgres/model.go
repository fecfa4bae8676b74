package postgresadapter

import (
	"time"

	"parceltrack/contexts/identity-access/access-service/domain/entities"
)

type userRoleModel struct {
	Identity  string    `gorm:"column:identity;primaryKey"`
	Role      string    `gorm:"column:role"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRoleModel) TableName() string {
	return "user_roles"
}

type userProfileModel struct {
	Identity  string    `gorm:"column:identity;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userProfileModel) TableName() string {
	return "user_profiles"
}

func userProfileModelFromEntity(identity string, profile entities.Profile) *userProfileModel {
	return &userProfileModel{
		Identity:  identity,
		Name:      profile.Name,
		Email:     profile.Email,
		Phone:     profile.Phone,
		UpdatedAt: time.Now().UTC(),
	}
}

func (m userProfileModel) toEntity() entities.Profile {
	return entities.Profile{
		Name:  m.Name,
		Email: m.Email,
		Phone: m.Phone,
	}
}

type bootstrapStateModel struct {
	StateID    string     `gorm:"column:state_id;primaryKey"`
	Consumed   bool       `gorm:"column:consumed"`
	GrantedTo  string     `gorm:"column:granted_to"`
	ConsumedAt *time.Time `gorm:"column:consumed_at"`
}

func (bootstrapStateModel) TableName() string {
	return "bootstrap_state"
}
