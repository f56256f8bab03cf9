package models

// Tables lists every model registered for auto migration.
var Tables = []interface{}{
	&User{},
	&Category{},
	&Product{},
	&Sale{},
}
