package store

import _ "embed"

// Schema is the query-side DDL. Integration tests apply it to a fresh
// database; production schemas are owned by the CRUD system.
//
//go:embed schema.sql
var Schema string
