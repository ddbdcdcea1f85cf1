package model

// All lists the models managed by AutoMigrate.
func All() []any {
	return []any{&User{}, &Session{}, &Category{}, &Task{}}
}
