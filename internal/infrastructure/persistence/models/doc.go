// Package models contains GORM persistence models that map to database tables.
// They are separate from domain types so the domain layer stays free of ORM
// tags; each model converts to and from its domain type with ToDomain and a
// ...FromDomain constructor.
package models
