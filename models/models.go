package models

// All lists every model in dependency order for migration and code generation.
func All() []any {
	return []any{
		&User{},
		&SocialNetwork{},
		&Category{},
		&Tag{},
		&Project{},
		&Achievement{},
		&Experience{},
		&Comment{},
		&Like{},
		&AboutMe{},
	}
}
