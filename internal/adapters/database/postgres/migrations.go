package postgres

import "github.com/clubmsg/backend/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Profile{},
	&entity.Club{},
	&entity.Membership{},
	&entity.Message{},
}
