package models

type Role string

const (
	RoleStudent   Role = "student"
	RoleInstitute Role = "institute"
	RoleCompany   Role = "company"
	RoleAdmin     Role = "admin"
)
